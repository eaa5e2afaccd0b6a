// Package errorprovider supplies the Response used when no rule matches
// or the upstream call fails. It reopens its backing file on every call so
// the on-disk asset can change without a restart, and is safe to call
// concurrently from many workers.
package errorprovider

import (
	"os"

	"github.com/aaytec/rebound/internal/reqmodel"
)

// Provider serves a static file's contents as an error response body,
// paired with a caller-assigned status code.
type Provider struct {
	path   string
	status int
}

// New builds a Provider that reads path fresh on every Provide call and
// reports status as the response status.
func New(path string, status int) *Provider {
	return &Provider{path: path, status: status}
}

// Provide reads the backing file and returns it as a ResponseModel body
// with the provider's status. A read failure (missing or unreadable file)
// degrades to an empty body rather than panicking — the worker loop must
// always get exactly one response to write back.
func (p *Provider) Provide() *reqmodel.Response {
	body, err := os.ReadFile(p.path)
	if err != nil {
		body = nil
	}
	return &reqmodel.Response{
		Status:  p.status,
		Headers: map[string]string{},
		Body:    body,
	}
}
