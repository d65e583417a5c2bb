package services

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"jobdash/internal/models"
	"jobdash/internal/providers"
	"jobdash/internal/query"
	"jobdash/internal/transport"
)

type JobCollectionInterface interface {
	Load(ctx context.Context, params query.Params) ([]models.Job, error)
	ToggleBookmark(ctx context.Context, id int64) (bool, error)
	MarkApplied(ctx context.Context, id int64) error
	Hydrate(ctx context.Context) (int, error)
	Jobs() []models.Job
	Job(id int64) (models.Job, bool)
	Params() query.Params
	Len() int
}

type mutation uint8

const (
	mutationBookmark mutation = iota + 1
	mutationApply
)

func (m mutation) String() string {
	switch m {
	case mutationBookmark:
		return "bookmark"
	case mutationApply:
		return "apply"
	default:
		return "unknown"
	}
}

// transition is an optimistic flag change awaiting the server's answer.
type transition struct {
	op     mutation
	target bool
}

// flagState is the confirmed flags of one job plus at most one pending
// transition. Mutations on an id are serialized, so one is enough.
type flagState struct {
	bookmarked bool
	applied    bool
	pending    *transition
}

func (s *flagState) visible() (bookmarked, applied bool) {
	bookmarked, applied = s.bookmarked, s.applied
	if s.pending == nil {
		return
	}
	switch s.pending.op {
	case mutationBookmark:
		bookmarked = s.pending.target
	case mutationApply:
		applied = s.pending.target
	}
	return
}

// JobCollection is the cached result page of the last applied load, with
// optimistic bookmark and apply flags layered on top.
type JobCollection struct {
	mu      sync.RWMutex
	jobs    []models.Job
	index   map[int64]int
	flags   map[int64]*flagState
	params  query.Params
	issued  uint64
	applied uint64
	tails   map[int64]chan struct{}

	api     transport.Requester
	metrics providers.MetricsProviderInterface
	logger  providers.Logger
}

func NewJobCollection(api transport.Requester, metrics providers.MetricsProviderInterface, logger providers.Logger) *JobCollection {
	return &JobCollection{
		jobs:    []models.Job{},
		index:   make(map[int64]int),
		flags:   make(map[int64]*flagState),
		params:  query.Params{},
		tails:   make(map[int64]chan struct{}),
		api:     api,
		metrics: metrics,
		logger:  logger,
	}
}

// Load fetches a page for params. The result replaces the collection only
// if no later Load has been applied first; a superseded result is dropped
// and the currently visible collection is returned instead.
func (c *JobCollection) Load(ctx context.Context, params query.Params) ([]models.Job, error) {
	params = params.Clone()

	c.mu.Lock()
	c.issued++
	seq := c.issued
	c.mu.Unlock()

	raw, err := fetchRaw(ctx, c.api, jobsPath, params.Values())
	if err != nil {
		c.logger.Warnf(providers.TypeJobs, "Load #%d failed: %s", seq, err)
		return nil, err
	}
	jobs, err := transport.DecodeList[models.Job](raw)
	if err != nil {
		return nil, err
	}
	payloadFlags, err := transport.DecodeList[models.JobFlags](raw)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq <= c.applied {
		c.metrics.IncStaleLoads()
		c.logger.Debugf(providers.TypeJobs, "Dropping load #%d, #%d already applied", seq, c.applied)
		return c.visibleLocked(), nil
	}

	index := make(map[int64]int, len(jobs))
	flags := make(map[int64]*flagState, len(jobs))
	kept := jobs[:0]
	for i, job := range jobs {
		if _, dup := index[job.ID]; dup {
			c.logger.Warnf(providers.TypeJobs, "Duplicate job id %d in load #%d", job.ID, seq)
			continue
		}
		st, ok := c.flags[job.ID]
		if !ok {
			st = &flagState{}
		}
		if f := payloadFlags[i]; f.Bookmarked != nil {
			st.bookmarked = *f.Bookmarked
		}
		if f := payloadFlags[i]; f.Applied != nil {
			st.applied = *f.Applied
		}
		index[job.ID] = len(kept)
		flags[job.ID] = st
		kept = append(kept, job)
	}

	c.jobs = kept
	c.index = index
	c.flags = flags
	c.params = params
	c.applied = seq
	c.metrics.SetJobsTotal(len(kept))
	c.logger.Debugf(providers.TypeJobs, "Applied load #%d with %d jobs", seq, len(kept))

	return c.visibleLocked(), nil
}

// ToggleBookmark flips the bookmark on id before the server confirms it.
// A failed request restores the previous value. Calls for the same id run
// in the order they were made.
func (c *JobCollection) ToggleBookmark(ctx context.Context, id int64) (bool, error) {
	release, err := c.acquire(ctx, id)
	if err != nil {
		return false, err
	}
	defer release()

	c.mu.Lock()
	st, ok := c.flags[id]
	if !ok {
		c.mu.Unlock()
		return false, fmt.Errorf("job %d: %w", id, transport.ErrNotFound)
	}
	tr := &transition{op: mutationBookmark, target: !st.bookmarked}
	st.pending = tr
	c.mu.Unlock()

	res := models.BookmarkResult{Bookmarked: tr.target}
	err = c.api.Do(ctx, transport.Request{Method: http.MethodPost, Path: jobPath(id, "bookmark")}, &res)

	c.mu.Lock()
	defer c.mu.Unlock()
	st = c.settle(id, tr)
	if err != nil {
		c.rollback(id, tr, err)
		if st == nil {
			return !tr.target, err
		}
		return st.bookmarked, err
	}
	if st != nil {
		st.bookmarked = res.Bookmarked
	}
	return res.Bookmarked, nil
}

// MarkApplied sets the applied flag on id. There is no way back; marking an
// applied job again does nothing.
func (c *JobCollection) MarkApplied(ctx context.Context, id int64) error {
	release, err := c.acquire(ctx, id)
	if err != nil {
		return err
	}
	defer release()

	c.mu.Lock()
	st, ok := c.flags[id]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("job %d: %w", id, transport.ErrNotFound)
	}
	if st.applied {
		c.mu.Unlock()
		return nil
	}
	tr := &transition{op: mutationApply, target: true}
	st.pending = tr
	c.mu.Unlock()

	var res models.ApplyResult
	err = c.api.Do(ctx, transport.Request{Method: http.MethodPost, Path: jobPath(id, "apply")}, &res)

	c.mu.Lock()
	defer c.mu.Unlock()
	st = c.settle(id, tr)
	if err != nil {
		c.rollback(id, tr, err)
		return err
	}
	if st != nil {
		st.applied = true
	}
	return nil
}

// settle clears tr from id's state and returns that state, or nil when id
// left the collection while the request was in flight. Callers hold c.mu.
func (c *JobCollection) settle(id int64, tr *transition) *flagState {
	st, ok := c.flags[id]
	if !ok {
		return nil
	}
	if st.pending == tr {
		st.pending = nil
	}
	return st
}

func (c *JobCollection) rollback(id int64, tr *transition, err error) {
	c.metrics.IncRollbacks(tr.op.String())
	c.logger.Warnf(providers.TypeJobs, "Rolled back %s on job %d: %s", tr.op, id, err)
}

// acquire waits for every earlier mutation on id to finish. The returned
// release must be called once the caller's own mutation has settled.
func (c *JobCollection) acquire(ctx context.Context, id int64) (func(), error) {
	c.mu.Lock()
	prev := c.tails[id]
	done := make(chan struct{})
	c.tails[id] = done
	c.mu.Unlock()

	release := func() {
		c.mu.Lock()
		if c.tails[id] == done {
			delete(c.tails, id)
		}
		c.mu.Unlock()
		close(done)
	}

	if prev == nil {
		return release, nil
	}
	select {
	case <-prev:
		return release, nil
	case <-ctx.Done():
		// later waiters are chained on done, so it may only close after prev
		go func() {
			<-prev
			release()
		}()
		return nil, ctx.Err()
	}
}

// Hydrate seeds confirmed flags from the user's match records, which carry
// the bookmark and apply state the job list omits. Jobs with a mutation in
// flight are left alone. It returns how many jobs were updated.
func (c *JobCollection) Hydrate(ctx context.Context) (int, error) {
	matches, err := fetchList[models.JobMatch](ctx, c.api, matchesPath, nil)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, m := range matches {
		st, ok := c.flags[m.Job.ID]
		if !ok || st.pending != nil {
			continue
		}
		st.bookmarked = m.IsBookmarked
		st.applied = m.IsApplied
		n++
	}
	c.logger.Debugf(providers.TypeJobs, "Hydrated %d of %d jobs from %d matches", n, len(c.jobs), len(matches))
	return n, nil
}

func (c *JobCollection) Jobs() []models.Job {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.visibleLocked()
}

func (c *JobCollection) Job(id int64) (models.Job, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[id]
	if !ok {
		return models.Job{}, false
	}
	return c.materialize(c.jobs[i]), true
}

// Params returns the parameters of the applied load.
func (c *JobCollection) Params() query.Params {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.params.Clone()
}

func (c *JobCollection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.jobs)
}

func (c *JobCollection) visibleLocked() []models.Job {
	out := make([]models.Job, len(c.jobs))
	for i, job := range c.jobs {
		out[i] = c.materialize(job)
	}
	return out
}

func (c *JobCollection) materialize(job models.Job) models.Job {
	if st, ok := c.flags[job.ID]; ok {
		job.Bookmarked, job.Applied = st.visible()
	}
	if job.Tags != nil {
		job.Tags = append([]string(nil), job.Tags...)
	}
	return job
}
