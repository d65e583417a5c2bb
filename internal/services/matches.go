package services

import (
	"context"

	"jobdash/internal/models"
	"jobdash/internal/transport"
)

type MatchesInterface interface {
	List(ctx context.Context) ([]models.JobMatch, error)
}

type Matches struct {
	api transport.Requester
}

func NewMatches(api transport.Requester) *Matches {
	return &Matches{api: api}
}

func (m *Matches) List(ctx context.Context) ([]models.JobMatch, error) {
	return fetchList[models.JobMatch](ctx, m.api, matchesPath, nil)
}
