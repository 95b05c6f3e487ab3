package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/idilsaglam/items/internal/model"
)

// Client talks to the items REST resource under a single base URL.
// Headers are computed once; there is no retry, caching or token refresh.
type Client struct {
	base    string
	headers http.Header
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient swaps the underlying transport (tests, proxies).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every request. Unset by default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

func New(baseURL, token string, opts ...Option) *Client {
	h := make(http.Header)
	h.Set("Authorization", "Bearer "+token)
	h.Set("Content-Type", "application/json")

	c := &Client{
		base:    strings.TrimRight(baseURL, "/"),
		headers: h,
		http:    &http.Client{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) GetItems(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	if err := c.do(ctx, OpList, http.MethodGet, "/items", nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

func (c *Client) CreateItem(ctx context.Context, dto model.CreateItemDto) (model.Item, error) {
	var it model.Item
	if err := c.do(ctx, OpCreate, http.MethodPost, "/items", dto, &it); err != nil {
		return model.Item{}, err
	}
	return it, nil
}

func (c *Client) UpdateItem(ctx context.Context, id string, dto model.UpdateItemDto) (model.Item, error) {
	var it model.Item
	if err := c.do(ctx, OpUpdate, http.MethodPut, itemPath(id), dto, &it); err != nil {
		return model.Item{}, err
	}
	return it, nil
}

func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, OpDelete, http.MethodDelete, itemPath(id), nil, nil)
}

func itemPath(id string) string { return "/items/" + url.PathEscape(id) }

// do performs one round-trip. body is JSON-encoded when non-nil; out is
// decoded from a 2xx response when non-nil. Every failure is an *Error.
func (c *Client) do(ctx context.Context, op Op, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &Error{Op: op, Err: fmt.Errorf("encode body: %w", err)}
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rdr)
	if err != nil {
		return &Error{Op: op, Err: fmt.Errorf("new request: %w", err)}
	}
	for k, v := range c.headers {
		req.Header[k] = v
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Body is not inspected for error detail.
		_, _ = io.Copy(io.Discard, resp.Body)
		return &Error{Op: op, StatusCode: resp.StatusCode}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
