// Package client is a typed Go client for the portfolio API with a query
// cache that mutations invalidate.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	DefaultTimeout  = 15 * time.Second
	DefaultCacheTTL = 30 * time.Second
)

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }

func WithToken(token string) Option { return func(c *Client) { c.token = token } }

// WithCacheTTL sets how long query results are reused. Zero keeps them
// until a mutation invalidates them.
func WithCacheTTL(ttl time.Duration) Option { return func(c *Client) { c.cache.ttl = ttl } }

type Client struct {
	base  *url.URL
	http  *http.Client
	cache *cache
	group singleflight.Group

	mu    sync.RWMutex
	token string
}

// New returns a client for the API rooted at baseURL, e.g.
// "https://example.com/api".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}
	c := &Client{
		base:  u,
		http:  &http.Client{Timeout: DefaultTimeout},
		cache: newCache(DefaultCacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Invalidate drops cached results under the given keys.
func (c *Client) Invalidate(keys ...Key) { c.cache.invalidate(keys...) }

// Cached reports whether a result for key is cached.
func (c *Client) Cached(key Key) bool { return c.cache.has(key) }

func (c *Client) endpoint(path string, q url.Values) string {
	u := *c.base
	u.Path = c.base.Path + path
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func (c *Client) newRequest(ctx context.Context, method, path string, q url.Values, body any) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		r = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, q), r)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// send performs req and returns the body of a 2xx response.
func (c *Client) send(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp.StatusCode, raw)
	}
	return raw, nil
}

func decodeError(status int, raw []byte) error {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(raw, &body)
	msg := body.Message
	if msg == "" {
		msg = body.Error
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{Status: status, Message: msg}
}

// query serves key from the cache, otherwise fetches path once no matter
// how many callers ask concurrently. The shared fetch is detached from any
// one caller's cancellation; each caller stops waiting when its own ctx ends.
func query[T any](ctx context.Context, c *Client, key Key, path string, q url.Values) (T, error) {
	var out T
	raw, ok := c.cache.get(key)
	if !ok {
		gen := c.cache.generation(key[0])
		flightCtx := context.WithoutCancel(ctx)
		ch := c.group.DoChan(key.String(), func() (any, error) {
			req, err := c.newRequest(flightCtx, http.MethodGet, path, q, nil)
			if err != nil {
				return nil, err
			}
			body, err := c.send(req)
			if err != nil {
				return nil, err
			}
			c.cache.put(key, gen, body)
			return body, nil
		})
		select {
		case <-ctx.Done():
			return out, ctx.Err()
		case res := <-ch:
			if res.Err != nil {
				return out, res.Err
			}
			raw = res.Val.([]byte)
		}
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

// mutate sends a write and, only when it succeeds, invalidates keys.
func mutate[T any](ctx context.Context, c *Client, method, path string, body any, keys ...Key) (T, error) {
	var out T
	req, err := c.newRequest(ctx, method, path, nil, body)
	if err != nil {
		return out, err
	}
	raw, err := c.send(req)
	if err != nil {
		return out, err
	}
	c.cache.invalidate(keys...)
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

// do sends an uncached request and decodes the body into out when non-nil.
func (c *Client) do(req *http.Request, out any) error {
	raw, err := c.send(req)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}
