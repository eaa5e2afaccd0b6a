// Package circuitpath implements CircuitPath, the normalized path
// representation the routing graph and rewrite engine key their decisions
// on. A CircuitPath is an ordered sequence of non-empty segments plus a
// marker recording whether the original text ended in "/".
package circuitpath

import "strings"

// Path is an ordered sequence of non-empty path segments with a
// directory-marker bit. The routing relation between two Paths is a
// prefix match (see Path.HasPrefix); Path.Equal compares segments exactly.
type Path struct {
	segments      []string
	isResourceDir bool
}

// New parses a textual path into a Path. Exactly one leading and one
// trailing "/" are stripped before splitting on "/"; empty segments
// produced by repeated slashes are dropped.
func New(text string) Path {
	isResourceDir := strings.HasSuffix(text, "/")

	trimmed := text
	trimmed = strings.TrimPrefix(trimmed, "/")
	trimmed = strings.TrimSuffix(trimmed, "/")

	var segments []string
	for _, seg := range strings.Split(trimmed, "/") {
		if seg == "" {
			continue
		}
		segments = append(segments, seg)
	}

	return Path{segments: segments, isResourceDir: isResourceDir}
}

// Segments returns the ordered path segments. The returned slice must not
// be mutated by the caller.
func (p Path) Segments() []string {
	return p.segments
}

// IsResourceDir reports whether the textual form this Path was built from
// ended in "/".
func (p Path) IsResourceDir() bool {
	return p.isResourceDir
}

// Len returns the number of segments.
func (p Path) Len() int {
	return len(p.segments)
}

// HasPrefix reports whether p is a prefix-match of other: len(p) <=
// len(other) and the first len(p) segments of other equal p's segments in
// order. This is the relation the routing graph descends on.
func (p Path) HasPrefix(other Path) bool {
	if len(p.segments) > len(other.segments) {
		return false
	}
	for i, seg := range p.segments {
		if other.segments[i] != seg {
			return false
		}
	}
	return true
}

// Equal reports whether two Paths have identical segments, regardless of
// IsResourceDir.
func (p Path) Equal(other Path) bool {
	if len(p.segments) != len(other.segments) {
		return false
	}
	for i, seg := range p.segments {
		if other.segments[i] != seg {
			return false
		}
	}
	return true
}

// Join concatenates p's segments with other's, and inherits other's
// IsResourceDir flag.
func (p Path) Join(other Path) Path {
	segments := make([]string, 0, len(p.segments)+len(other.segments))
	segments = append(segments, p.segments...)
	segments = append(segments, other.segments...)
	return Path{segments: segments, isResourceDir: other.isResourceDir}
}

// Diff returns the suffix of p after skipping the common positional
// prefix p shares with other. If other is not a prefix of p, Diff still
// skips as many leading segments as match positionally before the first
// divergence (or min length, whichever comes first) — in practice Diff is
// only ever called with other being the matched rule's path, which
// HasPrefix already guarantees is a prefix of p.
func (p Path) Diff(other Path) Path {
	i := 0
	for i < len(p.segments) && i < len(other.segments) && p.segments[i] == other.segments[i] {
		i++
	}
	return Path{segments: p.segments[i:], isResourceDir: p.isResourceDir}
}

// String renders the Path back to its textual form: a leading "/",
// segments joined by "/", and a trailing "/" when IsResourceDir is set
// (or the path has no segments).
func (p Path) String() string {
	var b strings.Builder
	b.WriteByte('/')
	b.WriteString(strings.Join(p.segments, "/"))
	if p.isResourceDir && len(p.segments) > 0 {
		b.WriteByte('/')
	}
	return b.String()
}
