package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"jobdash/internal/models"
)

func TestDecodeList_BareArray(t *testing.T) {
	jobs, err := DecodeList[models.Job]([]byte(`[{"id":1,"title":"Go dev"},{"id":2}]`))
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "Go dev", jobs[0].Title)
}

func TestDecodeList_Envelope(t *testing.T) {
	jobs, err := DecodeList[models.Job]([]byte(`{"count":1,"next":null,"results":[{"id":7}]}`))
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, int64(7), jobs[0].ID)
}

func TestDecodeList_EmptyEnvelope(t *testing.T) {
	jobs, err := DecodeList[models.Job]([]byte(`{"count":0}`))
	require.NoError(t, err)
	assert.NotNil(t, jobs)
	assert.Empty(t, jobs)
}

func TestDecodeList_Garbage(t *testing.T) {
	_, err := DecodeList[models.Job]([]byte(`<html>`))
	assert.ErrorIs(t, err, ErrNetwork)

	_, err = DecodeList[models.Job](nil)
	assert.ErrorIs(t, err, ErrNetwork)
}
