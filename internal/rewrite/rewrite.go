// Package rewrite turns an inbound Request and the Circuit node it
// resolved to into the rewritten upstream Request: header/query
// preservation or override, and path remount or strip.
package rewrite

import (
	"strings"

	"github.com/aaytec/rebound/internal/circuit"
	"github.com/aaytec/rebound/internal/circuitpath"
	"github.com/aaytec/rebound/internal/reqmodel"
	"github.com/aaytec/rebound/internal/upstream"
)

// Apply rewrites inbound according to node. If node is the Error sentinel,
// Apply returns (nil, false) to signal "no rewrite" — the caller should
// fall back to the ErrorProvider. Otherwise it returns the rewritten
// upstream Request.
func Apply(inbound *reqmodel.Request, node *circuit.Node) (*reqmodel.Request, bool) {
	if node.IsError() {
		return nil, false
	}

	r := node.Rule
	out := inbound.Clone()

	if !r.PreserveHdrs {
		out.Headers = make(map[string]string)
	}
	for k, v := range r.AdditionalHdrs {
		out.Headers[k] = v
	}

	if !r.PreserveQuery {
		out.QueryParams = make(map[string]string)
	}
	for k, v := range r.AdditionalQuery {
		out.QueryParams[k] = v
	}

	u := r.Upstream
	endsWithSlash := strings.HasSuffix(r.UpstreamText, "/")

	inboundPath := circuitpath.New(inbound.URI)

	var rewritten upstream.Upstream
	switch {
	case u.Path.Len() == 0 && !endsWithSlash:
		rewritten = u.Join(inboundPath)
	case !r.PreservePath:
		// preserve_path=false degenerates the strip-and-remount case to
		// forwarding an empty tail. A bare upstream (no path, no trailing
		// "/") is handled by the case above and ignores preserve_path.
		rewritten = u.Join(circuitpath.Path{})
	default:
		rewritten = u.Join(inboundPath.Diff(node.Path))
	}

	out.URI = rewritten.String()
	return out, true
}
