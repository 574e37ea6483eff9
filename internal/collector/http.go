package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const defaultTimeout = 30 * time.Second

// Option configures the HTTP side of a fetcher.
type Option func(*requester)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(r *requester) { r.client = c }
}

// WithBaseURL points the fetcher at another host, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(r *requester) { r.baseURL = u }
}

// WithProxy routes requests through proxyURL. Invalid URLs are ignored.
func WithProxy(proxyURL string) Option {
	return func(r *requester) {
		if proxyURL == "" {
			return
		}
		u, err := url.Parse(proxyURL)
		if err != nil {
			return
		}
		if t, ok := r.client.Transport.(*http.Transport); ok {
			t.Proxy = http.ProxyURL(u)
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *requester) {
		if d > 0 {
			r.client.Timeout = d
		}
	}
}

// WithRateLimit paces requests to rps with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(r *requester) {
		if rps <= 0 {
			r.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		r.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(r *requester) {
		if ua != "" {
			r.userAgent = ua
		}
	}
}

// WithToken sends a bearer token on every request.
func WithToken(token string) Option {
	return func(r *requester) { r.token = token }
}

type requester struct {
	name      string
	baseURL   string
	token     string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
}

func newRequester(name, baseURL string, opts []Option) requester {
	r := requester{
		name:      name,
		baseURL:   baseURL,
		userAgent: "Mozilla/5.0",
		client: &http.Client{
			Timeout:   defaultTimeout,
			Transport: &http.Transport{Proxy: http.ProxyFromEnvironment},
		},
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// getJSON issues a GET to baseURL+path and decodes a 200 response into out.
func (r *requester) getJSON(ctx context.Context, path string, out any) error {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%s rate limit: %w", r.name, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s fetch: %w", r.name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s read body: %w", r.name, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: status %d, body: %s", r.name, resp.StatusCode, snippet(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s decode: %w", r.name, err)
	}
	return nil
}

func snippet(body []byte) string {
	const limit = 256
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
