package query

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	ParamSearch       = "search"
	ParamLocationType = "location_type"
	ParamJobType      = "job_type"
	ParamDaysAgo      = "days_ago"
	ParamMinSalary    = "min_salary"
	ParamMaxSalary    = "max_salary"
)

// Params is the canonical request-parameter set. Values are string or int.
type Params map[string]any

// Compose is pure: equal inputs give equal Params.
func Compose(search string, f FilterSet) Params {
	p := make(Params)
	if s := strings.TrimSpace(search); s != "" {
		p[ParamSearch] = s
	}
	if f.LocationType != LocationAny {
		p[ParamLocationType] = string(f.LocationType)
	}
	if f.JobType != JobTypeAny {
		p[ParamJobType] = string(f.JobType)
	}
	if days := f.Recency.Days(); days > 0 {
		p[ParamDaysAgo] = days
	}
	if f.MinSalary > 0 {
		p[ParamMinSalary] = f.MinSalary
	}
	if f.MaxSalary > 0 {
		p[ParamMaxSalary] = f.MaxSalary
	}
	return p
}

func (p Params) Values() url.Values {
	v := make(url.Values, len(p))
	for k, val := range p {
		switch t := val.(type) {
		case string:
			v.Set(k, t)
		case int:
			v.Set(k, strconv.Itoa(t))
		}
	}
	return v
}

// Key is a stable identity for the parameter set, usable for change detection.
func (p Params) Key() string {
	return p.Values().Encode()
}

func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
