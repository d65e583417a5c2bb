package services

import (
	"context"
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
	"jobdash/internal/models"
	"jobdash/internal/providers"
	"jobdash/internal/transport"
)

type JobDetailsInterface interface {
	Get(ctx context.Context, id int64) (models.Job, error)
	Forget(id int64)
}

// JobDetails reads single postings, keeping recent ones in the cache provider.
type JobDetails struct {
	api    transport.Requester
	cache  providers.CacheProviderInterface
	logger providers.Logger
}

func NewJobDetails(api transport.Requester, cache providers.CacheProviderInterface, logger providers.Logger) *JobDetails {
	return &JobDetails{
		api:    api,
		cache:  cache,
		logger: logger,
	}
}

func detailKey(id int64) string {
	return "job:" + strconv.FormatInt(id, 10)
}

func (d *JobDetails) Get(ctx context.Context, id int64) (models.Job, error) {
	key := detailKey(id)
	var job models.Job

	if data, ok := d.cache.Get(key); ok {
		if err := json.Unmarshal(data, &job); err == nil {
			return job, nil
		}
		d.logger.Warnf(providers.TypeJobs, "Dropping unreadable cache entry %s", key)
		d.cache.Del(key)
	}

	raw, err := fetchRaw(ctx, d.api, jobPath(id, ""), nil)
	if err != nil {
		return models.Job{}, err
	}
	if err := json.Unmarshal(raw, &job); err != nil {
		return models.Job{}, fmt.Errorf("%w: decode job %d: %w", transport.ErrNetwork, id, err)
	}
	d.cache.Set(key, raw)
	return job, nil
}

// Forget drops id from the cache, e.g. after its flags changed.
func (d *JobDetails) Forget(id int64) {
	d.cache.Del(detailKey(id))
}
