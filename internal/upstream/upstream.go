// Package upstream parses and renders a rule's upstream target:
// scheme://host[:port]/path.
package upstream

import (
	"strings"

	"github.com/aaytec/rebound/internal/circuitpath"
)

// Upstream is a parsed rule target.
type Upstream struct {
	Scheme string // "http" or "https"
	Host   string // host[:port]
	Path   circuitpath.Path
}

// Parse parses a textual upstream of the form "[scheme://]host[/path]".
// When no "scheme://" prefix is present, Scheme defaults to "http".
func Parse(text string) Upstream {
	scheme := "http"
	rest := text

	if idx := strings.Index(text, "://"); idx != -1 {
		scheme = text[:idx]
		rest = text[idx+3:]
	}

	host := rest
	pathText := ""
	if idx := strings.IndexByte(rest, '/'); idx != -1 {
		host = rest[:idx]
		pathText = rest[idx:]
	}

	return Upstream{
		Scheme: scheme,
		Host:   host,
		Path:   circuitpath.New(pathText),
	}
}

// Join appends tail's segments to u's path, returning a new Upstream whose
// Path is u.Path.Join(tail).
func (u Upstream) Join(tail circuitpath.Path) Upstream {
	return Upstream{
		Scheme: u.Scheme,
		Host:   u.Host,
		Path:   u.Path.Join(tail),
	}
}

// String renders the Upstream back to "scheme://host/path", with a
// trailing "/" when Path is empty or Path.IsResourceDir is set.
func (u Upstream) String() string {
	var b strings.Builder
	b.WriteString(u.Scheme)
	b.WriteString("://")
	b.WriteString(u.Host)
	b.WriteString(u.Path.String())
	return b.String()
}
