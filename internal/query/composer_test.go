package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose_EmptyInputsGiveEmptyParams(t *testing.T) {
	p := Compose("", FilterSet{})
	assert.Empty(t, p)
	assert.Equal(t, "", p.Key())
}

func TestCompose_SearchAndWeek(t *testing.T) {
	p := Compose("foo", FilterSet{Recency: RecencyWeek})
	assert.Equal(t, Params{"search": "foo", "days_ago": 7}, p)
}

func TestCompose_AllFilters(t *testing.T) {
	p := Compose("  golang ", FilterSet{
		LocationType: LocationRemote,
		JobType:      JobTypeContract,
		Recency:      RecencyDay,
		MinSalary:    50000,
		MaxSalary:    90000,
	})
	assert.Equal(t, Params{
		"search":        "golang",
		"location_type": "remote",
		"job_type":      "contract",
		"days_ago":      1,
		"min_salary":    50000,
		"max_salary":    90000,
	}, p)
	assert.Equal(t, "days_ago=1&job_type=contract&location_type=remote&max_salary=90000&min_salary=50000&search=golang", p.Key())
}

func TestCompose_BlankSearchOmitted(t *testing.T) {
	assert.Empty(t, Compose("   ", FilterSet{}))
}

func TestCompose_RecencyDays(t *testing.T) {
	assert.Equal(t, 1, Compose("", FilterSet{Recency: RecencyDay})["days_ago"])
	assert.Equal(t, 30, Compose("", FilterSet{Recency: RecencyMonth})["days_ago"])
	_, ok := Compose("", FilterSet{Recency: RecencyAny})["days_ago"]
	assert.False(t, ok)
}

func TestCompose_IsStable(t *testing.T) {
	f := FilterSet{LocationType: LocationHybrid, Recency: RecencyMonth}
	a := Compose("rust", f)
	b := Compose("rust", f)
	assert.Equal(t, a, b)
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), Compose("rust", FilterSet{LocationType: LocationHybrid}).Key())
}

func TestParams_Values(t *testing.T) {
	v := Params{"search": "go", "days_ago": 7}.Values()
	assert.Equal(t, "go", v.Get("search"))
	assert.Equal(t, "7", v.Get("days_ago"))
}

func TestParams_CloneIsIndependent(t *testing.T) {
	p := Params{"search": "go"}
	c := p.Clone()
	c["search"] = "rust"
	assert.Equal(t, "go", p["search"])
}

func TestParseLocationType(t *testing.T) {
	v, err := ParseLocationType("remote")
	require.NoError(t, err)
	assert.Equal(t, LocationRemote, v)

	v, err = ParseLocationType("")
	require.NoError(t, err)
	assert.Equal(t, LocationAny, v)

	_, err = ParseLocationType("moon")
	assert.ErrorIs(t, err, ErrUnknownValue)
}

func TestParseJobType(t *testing.T) {
	v, err := ParseJobType("internship")
	require.NoError(t, err)
	assert.Equal(t, JobTypeInternship, v)

	_, err = ParseJobType("gig")
	assert.ErrorIs(t, err, ErrUnknownValue)
}

func TestParseRecency(t *testing.T) {
	cases := map[string]Recency{
		"":      RecencyAny,
		"24h":   RecencyDay,
		"1":     RecencyDay,
		"week":  RecencyWeek,
		"7":     RecencyWeek,
		"month": RecencyMonth,
		"30":    RecencyMonth,
	}
	for in, want := range cases {
		got, err := ParseRecency(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseRecency("year")
	assert.ErrorIs(t, err, ErrUnknownValue)
}
