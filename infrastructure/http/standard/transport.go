// ABOUTME: HTTP transport used underneath the search engine SDK
// ABOUTME: Idempotent requests retry with exponential backoff; writes are sent exactly once

package standard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxRetries = 3

// Transport is an http.RoundTripper that bounds each attempt with a timeout
// and retries GET and HEAD requests on transport errors and 5xx answers.
type Transport struct {
	next    http.RoundTripper
	timeout time.Duration
	backoff func(attempt int) time.Duration
}

// NewTransport wraps next. A nil next uses http.DefaultTransport and a zero
// timeout leaves attempts bounded only by the request context.
func NewTransport(timeout time.Duration, next http.RoundTripper) *Transport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &Transport{
		next:    next,
		timeout: timeout,
		backoff: exponentialBackoff,
	}
}

// RoundTrip implements http.RoundTripper
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !idempotent(req) {
		return t.attempt(req)
	}

	ctx := req.Context()
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(t.backoff(attempt)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		resp, err := t.attempt(req)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode < 500 || attempt == maxRetries-1 {
			return resp, nil
		}

		lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}
	return nil, lastErr
}

// attempt sends one request. The per-attempt deadline stays armed until the
// caller closes the response body.
func (t *Transport) attempt(req *http.Request) (*http.Response, error) {
	if t.timeout <= 0 {
		return t.next.RoundTrip(req)
	}

	ctx, cancel := context.WithTimeout(req.Context(), t.timeout)
	resp, err := t.next.RoundTrip(req.Clone(ctx))
	if err != nil {
		cancel()
		return nil, err
	}
	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

// idempotent reports whether req can be resent as is.
func idempotent(req *http.Request) bool {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		return false
	}
	return req.Body == nil || req.Body == http.NoBody
}

// 100ms, 200ms, 400ms
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(100*(1<<(attempt-1))) * time.Millisecond
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelOnClose) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}
