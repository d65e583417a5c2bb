package services

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	json "github.com/goccy/go-json"
	"jobdash/internal/transport"
)

const (
	jobsPath      = "/jobs/"
	matchesPath   = "/jobs/matches/"
	dashboardPath = "/jobs/dashboard/"
)

func jobPath(id int64, action string) string {
	p := jobsPath + strconv.FormatInt(id, 10) + "/"
	if action != "" {
		p += action + "/"
	}
	return p
}

// fetchRaw returns the undecoded body of a GET, so one payload can be read
// through more than one shape.
func fetchRaw(ctx context.Context, api transport.Requester, path string, params url.Values) ([]byte, error) {
	var raw json.RawMessage
	if err := api.Do(ctx, transport.Request{Method: http.MethodGet, Path: path, Params: params}, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func fetchList[T any](ctx context.Context, api transport.Requester, path string, params url.Values) ([]T, error) {
	raw, err := fetchRaw(ctx, api, path, params)
	if err != nil {
		return nil, err
	}
	return transport.DecodeList[T](raw)
}
