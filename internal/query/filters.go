// Package query turns search text and filter selections into the
// parameter set sent to GET /jobs/.
package query

import (
	"errors"
	"fmt"
)

var ErrUnknownValue = errors.New("unknown filter value")

type LocationType string

const (
	LocationAny    LocationType = ""
	LocationRemote LocationType = "remote"
	LocationOnsite LocationType = "onsite"
	LocationHybrid LocationType = "hybrid"
)

type JobType string

const (
	JobTypeAny        JobType = ""
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeFreelance  JobType = "freelance"
	JobTypeInternship JobType = "internship"
)

type Recency string

const (
	RecencyAny   Recency = ""
	RecencyDay   Recency = "24h"
	RecencyWeek  Recency = "week"
	RecencyMonth Recency = "month"
)

// Days returns the posted-within window in days, 0 when unset.
func (r Recency) Days() int {
	switch r {
	case RecencyDay:
		return 1
	case RecencyWeek:
		return 7
	case RecencyMonth:
		return 30
	default:
		return 0
	}
}

// FilterSet is the closed set of job search constraints. A zero field means
// no constraint.
type FilterSet struct {
	LocationType LocationType
	JobType      JobType
	Recency      Recency
	MinSalary    int
	MaxSalary    int
}

func ParseLocationType(s string) (LocationType, error) {
	switch v := LocationType(s); v {
	case LocationAny, LocationRemote, LocationOnsite, LocationHybrid:
		return v, nil
	}
	return LocationAny, fmt.Errorf("location type %q: %w", s, ErrUnknownValue)
}

func ParseJobType(s string) (JobType, error) {
	switch v := JobType(s); v {
	case JobTypeAny, JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeFreelance, JobTypeInternship:
		return v, nil
	}
	return JobTypeAny, fmt.Errorf("job type %q: %w", s, ErrUnknownValue)
}

// ParseRecency also accepts the day counts 1, 7 and 30.
func ParseRecency(s string) (Recency, error) {
	switch s {
	case "", "any":
		return RecencyAny, nil
	case "24h", "day", "1":
		return RecencyDay, nil
	case "week", "7":
		return RecencyWeek, nil
	case "month", "30":
		return RecencyMonth, nil
	}
	return RecencyAny, fmt.Errorf("recency %q: %w", s, ErrUnknownValue)
}
