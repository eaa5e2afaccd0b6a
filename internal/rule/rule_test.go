package rule

import "testing"

func boolPtr(b bool) *bool { return &b }

func TestNewDefaults(t *testing.T) {
	r := New(Config{Pattern: "/api", Upstream: "http://backend:9000"})

	if !r.PreservePath || !r.PreserveHdrs || !r.PreserveQuery {
		t.Errorf("expected all preserve_* flags to default true, got path=%v hdrs=%v query=%v",
			r.PreservePath, r.PreserveHdrs, r.PreserveQuery)
	}
	if r.Upstream.Scheme != "http" || r.Upstream.Host != "backend:9000" {
		t.Errorf("unexpected parsed upstream: %+v", r.Upstream)
	}
}

func TestNewExplicitFalse(t *testing.T) {
	r := New(Config{
		Pattern:      "/hide",
		Upstream:     "http://backend:9000/exposed",
		PreservePath: boolPtr(false),
	})

	if r.PreservePath {
		t.Error("expected PreservePath to be false")
	}
	if !r.PreserveHdrs || !r.PreserveQuery {
		t.Error("expected unset flags to still default true")
	}
}

func TestPatternGetsDirectorySegments(t *testing.T) {
	r := New(Config{Pattern: "/api", Upstream: "http://backend"})
	if !equalSegs(r.Path.Segments(), []string{"api"}) {
		t.Errorf("Path.Segments() = %v", r.Path.Segments())
	}
	if !r.Path.IsResourceDir() {
		t.Error("rule pattern path should always be marked a resource dir")
	}
}

func equalSegs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
