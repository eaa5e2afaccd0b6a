package errorprovider

import (
	"os"
	"path/filepath"
	"testing"
)

func TestProvideReadsFileEachCall(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "error.html")
	if err := os.WriteFile(path, []byte("not found"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := New(path, 404)
	resp := p.Provide()
	if resp.Status != 404 {
		t.Errorf("Status = %d", resp.Status)
	}
	if string(resp.Body) != "not found" {
		t.Errorf("Body = %q", resp.Body)
	}

	if err := os.WriteFile(path, []byte("updated"), 0o644); err != nil {
		t.Fatal(err)
	}
	resp = p.Provide()
	if string(resp.Body) != "updated" {
		t.Errorf("Body after update = %q, provider should reopen the file per call", resp.Body)
	}
}

func TestProvideMissingFileReturnsEmptyBody(t *testing.T) {
	p := New(filepath.Join(t.TempDir(), "missing.html"), 502)
	resp := p.Provide()
	if resp.Status != 502 {
		t.Errorf("Status = %d", resp.Status)
	}
	if resp.Body != nil {
		t.Errorf("Body = %v, want nil on read failure", resp.Body)
	}
}

func TestProvideConcurrentCallsAreSafe(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "error.html")
	os.WriteFile(path, []byte("x"), 0o644)
	p := New(path, 500)

	done := make(chan struct{})
	for i := 0; i < 16; i++ {
		go func() {
			p.Provide()
			done <- struct{}{}
		}()
	}
	for i := 0; i < 16; i++ {
		<-done
	}
}
