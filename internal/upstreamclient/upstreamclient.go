// Package upstreamclient issues the rewritten upstream request and
// yields a normalized Response, or a ClientError on connect/TLS/timeout/
// body-read failure. No automatic retries.
package upstreamclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/aaytec/rebound/internal/reqmodel"
)

// ClientError wraps an upstream send failure: connect failure, TLS
// failure, timeout, or body-read failure.
type ClientError struct {
	Cause error
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("upstream client: %v", e.Cause)
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Client sends rewritten RequestModels to their upstream and buffers the
// full response body into memory before returning (no streaming).
type Client struct {
	http *http.Client
}

// Config configures connect and total-request timeouts. No defaults are
// mandated; these are suitable for a synchronous, non-streaming backend
// call.
type Config struct {
	ConnectTimeout time.Duration
	RequestTimeout time.Duration
}

// New builds a Client. Zero-value Config fields fall back to a 10s connect
// timeout and a 30s total-request timeout.
func New(cfg Config) *Client {
	connectTimeout := cfg.ConnectTimeout
	if connectTimeout == 0 {
		connectTimeout = 10 * time.Second
	}
	requestTimeout := cfg.RequestTimeout
	if requestTimeout == 0 {
		requestTimeout = 30 * time.Second
	}

	return &Client{
		http: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
			},
		},
	}
}

// Send builds the request URL from req.URI and req.QueryParams
// (percent-encoded), strips any inbound Content-Type header before
// re-adding req.Headers (so the client's own content-type inference never
// collides with a forwarded one — an explicit req.Headers value still
// wins), sends the body verbatim, and reads the entire response body into
// memory before returning.
func (c *Client) Send(ctx context.Context, req *reqmodel.Request) (*reqmodel.Response, error) {
	target, err := buildURL(req)
	if err != nil {
		return nil, &ClientError{Cause: err}
	}

	method := req.Method.String()
	if method == "" {
		// Method == Invalid: forward the inbound verb as received rather
		// than letting an empty method silently become GET.
		method = req.RawMethod
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(req.Body))
	if err != nil {
		return nil, &ClientError{Cause: err}
	}

	httpReq.Header.Del("Content-Type")
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &ClientError{Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ClientError{Cause: err}
	}

	headers := make(map[string]string, len(resp.Header))
	for name, values := range resp.Header {
		if len(values) == 0 {
			continue
		}
		headers[name] = values[len(values)-1]
	}

	return &reqmodel.Response{
		Status:  resp.StatusCode,
		Headers: headers,
		Body:    body,
	}, nil
}

func buildURL(req *reqmodel.Request) (string, error) {
	u, err := url.Parse(req.URI)
	if err != nil {
		return "", err
	}

	if len(req.QueryParams) > 0 {
		q := u.Query()
		for k, v := range req.QueryParams {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}
