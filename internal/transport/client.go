package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"jobdash/internal/providers"
	"jobdash/internal/structures"
)

const maxResponseBodySize = 8 << 20 // 8 MB

// CredentialSource supplies the current access token, if a session is live.
type CredentialSource interface {
	AccessToken() (string, bool)
}

type Request struct {
	Method string
	Path   string
	Body   any
	Params url.Values
	// Anonymous requests never carry a credential, even when one exists.
	Anonymous bool
	// Token, when set, is sent instead of the live access token.
	Token string
}

type Requester interface {
	Do(ctx context.Context, req Request, out any) error
}

// Client is a thin pass-through to the job API. It neither retries nor
// refreshes tokens.
type Client struct {
	baseURL string
	http    *http.Client
	creds   CredentialSource
	logger  providers.Logger
	now     func() time.Time
}

func NewClient(conf *structures.Config, creds CredentialSource, metrics providers.MetricsProviderInterface, logger providers.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(conf.Api.BaseURL, "/"),
		http: &http.Client{
			Timeout:   conf.Api.Timeout,
			Transport: providers.MetricsRoundTripper(metrics, http.DefaultTransport),
		},
		creds:  creds,
		logger: logger,
		now:    time.Now,
	}
}

// Request issues an authenticated call and returns the raw response body.
func (c *Client) Request(ctx context.Context, method, path string, body any, params url.Values) ([]byte, error) {
	return c.send(ctx, Request{Method: method, Path: path, Body: body, Params: params})
}

// Do issues req and decodes a non-empty response body into out, if out is not nil.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	data, err := c.send(ctx, req)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %w", ErrNetwork, req.Method, req.Path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, r Request) ([]byte, error) {
	logType := providers.GetLogTypeByPath(r.Path)

	var token string
	if !r.Anonymous {
		tok, ok := r.Token, r.Token != ""
		if !ok {
			tok, ok = c.creds.AccessToken()
		}
		if !ok {
			return nil, fmt.Errorf("%s %s: no session: %w", r.Method, r.Path, ErrUnauthorized)
		}
		if tokenExpired(tok, c.now()) {
			c.logger.Infof(logType, "Access token expired, refusing %s %s", r.Method, r.Path)
			return nil, fmt.Errorf("%s %s: access token expired: %w", r.Method, r.Path, ErrUnauthorized)
		}
		token = tok
	}

	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", r.Method, r.Path, err)
		}
		body = bytes.NewReader(b)
	}

	target := c.baseURL + r.Path
	if len(r.Params) > 0 {
		target += "?" + r.Params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", r.Method, r.Path, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warnf(logType, "%s %s [%s] failed: %s", r.Method, r.Path, requestID, err)
		return nil, fmt.Errorf("%w: %s %s: %w", ErrNetwork, r.Method, r.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s %s: %w", ErrNetwork, r.Method, r.Path, err)
	}
	c.logger.Debugf(logType, "%s %s [%s] -> %d in %s", r.Method, r.Path, requestID, resp.StatusCode, time.Since(start))

	switch code := resp.StatusCode; {
	case code >= 200 && code < 300:
		return data, nil
	case code == http.StatusBadRequest:
		return nil, parseValidationError(data)
	case code == http.StatusUnauthorized:
		return nil, fmt.Errorf("%s %s: %w", r.Method, r.Path, ErrUnauthorized)
	case code == http.StatusNotFound:
		return nil, fmt.Errorf("%s %s: %w", r.Method, r.Path, ErrNotFound)
	default:
		return nil, &StatusError{Code: code, Body: data}
	}
}

// tokenExpired reports whether token is a JWT whose exp claim has passed.
// Opaque tokens are never considered expired; the server decides.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}
