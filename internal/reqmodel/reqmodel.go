// Package reqmodel defines the normalized Request/Response records that
// flow through the rewrite and upstream pipeline, and the ingress builder
// that constructs a Request from a raw inbound *http.Request.
package reqmodel

import (
	"io"
	"net/http"
	"strings"
)

// Method is the normalized HTTP method enum. Unrecognized methods map to
// Invalid rather than being rejected outright, leaving the accept/reject
// decision to the worker.
type Method int

const (
	Invalid Method = iota
	Get
	Post
	Patch
	Put
	Delete
	Head
	Connect
	Trace
	Options
)

var methodNames = map[string]Method{
	http.MethodGet:     Get,
	http.MethodPost:    Post,
	http.MethodPatch:   Patch,
	http.MethodPut:     Put,
	http.MethodDelete:  Delete,
	http.MethodHead:    Head,
	http.MethodConnect: Connect,
	http.MethodTrace:   Trace,
	http.MethodOptions: Options,
}

// ParseMethod maps a textual HTTP method to its Method enum value, or
// Invalid when unrecognized.
func ParseMethod(s string) Method {
	if m, ok := methodNames[strings.ToUpper(s)]; ok {
		return m
	}
	return Invalid
}

// String renders m back to its textual HTTP method, or "" for Invalid.
func (m Method) String() string {
	for text, v := range methodNames {
		if v == m {
			return text
		}
	}
	return ""
}

// Request is the normalized inbound/outbound request record.
type Request struct {
	Method Method
	// RawMethod is the inbound request's verb exactly as received, kept
	// alongside the normalized Method enum so an unrecognized verb (Method
	// == Invalid) still has something to forward — String() on Invalid
	// carries no text of its own.
	RawMethod   string
	URI         string
	Headers     map[string]string
	QueryParams map[string]string
	Body        []byte
}

// Clone returns a deep copy of r, so the rewrite engine can mutate its
// result without aliasing the inbound request's maps.
func (r *Request) Clone() *Request {
	headers := make(map[string]string, len(r.Headers))
	for k, v := range r.Headers {
		headers[k] = v
	}
	query := make(map[string]string, len(r.QueryParams))
	for k, v := range r.QueryParams {
		query[k] = v
	}
	return &Request{
		Method:      r.Method,
		RawMethod:   r.RawMethod,
		URI:         r.URI,
		Headers:     headers,
		QueryParams: query,
		Body:        r.Body,
	}
}

// Response is the normalized response record.
type Response struct {
	Status  int
	Headers map[string]string
	Body    []byte
}

// FromHTTP builds a Request from a raw inbound *http.Request: the URI is
// the request target up to the first "?"; query params are parsed from
// the remainder,
// split on "&" then on the first "="; pairs lacking "=" are discarded; no
// URL-decoding is performed; headers are last-value-wins; the body is
// fully buffered, becoming empty on a read error rather than failing the
// request.
func FromHTTP(req *http.Request) *Request {
	target := req.URL.RequestURI()

	uri := target
	queryText := ""
	if idx := strings.IndexByte(target, '?'); idx != -1 {
		uri = target[:idx]
		queryText = target[idx+1:]
	}

	headers := make(map[string]string, len(req.Header))
	for name, values := range req.Header {
		if len(values) == 0 {
			continue
		}
		headers[name] = values[len(values)-1]
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		body = nil
	}

	return &Request{
		Method:      ParseMethod(req.Method),
		RawMethod:   req.Method,
		URI:         uri,
		Headers:     headers,
		QueryParams: parseQuery(queryText),
		Body:        body,
	}
}

// parseQuery parses "k=v&k=v" pairs, discarding any pair lacking "=" and
// performing no URL-decoding.
func parseQuery(text string) map[string]string {
	params := make(map[string]string)
	if text == "" {
		return params
	}
	for _, pair := range strings.Split(text, "&") {
		if pair == "" {
			continue
		}
		idx := strings.IndexByte(pair, '=')
		if idx == -1 {
			continue
		}
		params[pair[:idx]] = pair[idx+1:]
	}
	return params
}
