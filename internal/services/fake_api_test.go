package services

import (
	"context"
	"sync"

	json "github.com/goccy/go-json"
	"jobdash/internal/transport"
)

// fakeAPI is a scripted transport.Requester. handle returns the raw JSON
// body for a request.
type fakeAPI struct {
	mu     sync.Mutex
	calls  []transport.Request
	handle func(ctx context.Context, req transport.Request) (string, error)
}

func (f *fakeAPI) Do(ctx context.Context, req transport.Request, out any) error {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	body, err := f.handle(ctx, req)
	if err != nil {
		return err
	}
	if out == nil || body == "" {
		return nil
	}
	return json.Unmarshal([]byte(body), out)
}

func (f *fakeAPI) count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

func (f *fakeAPI) last() transport.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}
