package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	resty "resty.dev/v3"
)

// defaultTimeout bounds every outbound call. There is no retry at this
// layer: a timed-out or failed call is a plain failure, and callers that
// need resilience must wrap their own around it.
const defaultTimeout = 30 * time.Second

type Client interface {
	ExecuteRequest(ctx context.Context, method, url string, body any, result any) (*resty.Response, error)
}

type BaseClient struct {
	resty               *resty.Client
	authTokenFn         func() string
	errorUnmarshallerFn func(r *resty.Response) error
}

type Option func(*BaseClient)

func New(baseURL string, httpClient *http.Client, opts ...Option) *BaseClient {
	c := &BaseClient{}
	c.resty = resty.NewWithClient(httpClient).
		SetBaseURL(baseURL).
		SetTimeout(defaultTimeout).
		SetHeader("Content-Type", "application/json").
		AddResponseMiddleware(func(_ *resty.Client, r *resty.Response) error {
			req := r.Request
			zerolog.Ctx(req.Context()).Debug().
				Str("http.url", req.URL).
				Str("http.method", req.Method).
				Err(r.Err).
				Dur("http.duration_ms", r.ReceivedAt().Sub(req.Time)).
				Int("http.status_code", r.StatusCode()).
				Msg("performed HTTP request")
			return nil
		})

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		opt(c)
	}

	return c
}

func WithAuthToken(authToken string) Option {
	return func(c *BaseClient) {
		c.resty.SetHeader("Authorization", authToken)
	}
}

// WithAuthTokenFunc resolves the Authorization header on every request
// rather than once at construction, so a rotated credential takes effect
// without rebuilding the client.
func WithAuthTokenFunc(authTokenFn func() string) Option {
	return func(c *BaseClient) {
		c.authTokenFn = authTokenFn
	}
}

func WithBaseURL(url string) Option {
	return func(c *BaseClient) {
		c.resty.SetBaseURL(url)
	}
}

func WithErrorUnmarshaller(unmarshallerFn func(r *resty.Response) error) Option {
	return func(c *BaseClient) {
		c.errorUnmarshallerFn = unmarshallerFn
	}
}

func (c *BaseClient) ExecuteRequest(ctx context.Context, method, url string, body any, result any) (*resty.Response, error) {
	req := c.resty.R().
		SetContext(ctx).
		SetResult(result)

	if c.authTokenFn != nil {
		req = req.SetHeader("Authorization", c.authTokenFn())
	}

	if body != nil {
		req = req.SetBody(body)
	}

	resp, err := req.Execute(method, url)
	if err != nil {
		return resp, fmt.Errorf("%s %s failed: %w", method, resp.Request.URL, err)
	}

	if resp.IsError() {
		if c.errorUnmarshallerFn != nil {
			return nil, c.errorUnmarshallerFn(resp)
		}

		return nil, fmt.Errorf("HTTP request failed with status %d: %s", resp.StatusCode(), resp.String())
	}

	return resp, nil
}
