package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Client sends JSON requests to paths under one base address.
type Client struct {
	base *url.URL
	http *http.Client
}

// New builds a Client for baseURL whose transport is base wrapped in
// stages. A nil base uses http.DefaultTransport. baseURL must be absolute.
func New(baseURL string, base http.RoundTripper, stages ...Stage) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("httpclient: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("httpclient: base url %q must be absolute", baseURL)
	}
	return &Client{
		base: u,
		http: &http.Client{Transport: Chain(base, stages...)},
	}, nil
}

// BaseURL is the address paths are resolved against.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// URL resolves escaped path segments against the base address.
func (c *Client) URL(segments ...string) string {
	esc := make([]string, len(segments))
	for i, s := range segments {
		esc[i] = url.PathEscape(s)
	}
	return c.base.JoinPath(esc...).String()
}

func (c *Client) Get(ctx context.Context, out any, segments ...string) error {
	return c.Do(ctx, http.MethodGet, nil, out, segments...)
}

func (c *Client) Post(ctx context.Context, body, out any, segments ...string) error {
	return c.Do(ctx, http.MethodPost, body, out, segments...)
}

func (c *Client) Put(ctx context.Context, body, out any, segments ...string) error {
	return c.Do(ctx, http.MethodPut, body, out, segments...)
}

func (c *Client) Delete(ctx context.Context, out any, segments ...string) error {
	return c.Do(ctx, http.MethodDelete, nil, out, segments...)
}

// Do sends one request. A 2xx body is decoded into out (when non-nil);
// anything else comes back as the error the stages produced or a
// *ServerError carrying the backend's status and body.
func (c *Client) Do(ctx context.Context, method string, body, out any, segments ...string) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", method, err)
		}
		rd = bytes.NewReader(b)
	}

	target := c.URL(segments...)
	req, err := http.NewRequestWithContext(ctx, method, target, rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return unwrapURLError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, target, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ServerError{
			Status:  resp.StatusCode,
			Message: messageOf(raw),
			Body:    raw,
			Method:  method,
			URL:     target,
		}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, target, err)
	}
	return nil
}

// Probe reports whether the backend answers at all. Any HTTP response
// counts as reachable.
func (c *Client) Probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base.String(), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return unwrapURLError(err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// unwrapURLError drops the *url.Error added by http.Client so callers get
// the typed error produced by the stages.
func unwrapURLError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) && ue.Err != nil {
		return ue.Err
	}
	return err
}

// messageOf reads the conventional {"message": "..."} field, if present.
func messageOf(raw []byte) string {
	var env struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return ""
	}
	if env.Message != "" {
		return env.Message
	}
	return env.Error
}
