package circuit

import (
	"testing"

	"github.com/aaytec/rebound/internal/circuitpath"
	"github.com/aaytec/rebound/internal/rule"
)

func mkRule(pattern, upstream string) rule.Rule {
	return rule.New(rule.Config{Pattern: pattern, Upstream: upstream})
}

// TestResolveReturnsErrorOrPrefixMatch verifies that for every non-empty
// rules list, Resolve(p) returns either the Error node or a Routable node
// whose stored path is a prefix of p.
func TestResolveReturnsErrorOrPrefixMatch(t *testing.T) {
	rules := []rule.Rule{
		mkRule("/a", "http://u1"),
		mkRule("/a/b", "http://u2"),
		mkRule("/z", "http://u3"),
	}
	c := Build(rules)

	queries := []string{"/a", "/a/b", "/a/b/c", "/a/x", "/q", "/"}
	for _, q := range queries {
		path := circuitpath.New(q)
		node := c.Resolve(path)
		if node.IsError() {
			continue
		}
		if !node.Path.HasPrefix(path) {
			t.Errorf("Resolve(%q) returned node with path %v, not a prefix", q, node.Path.Segments())
		}
	}
}

func TestLongestPrefixWins(t *testing.T) {
	rules := []rule.Rule{
		mkRule("/a", "http://u1"),
		mkRule("/a/b", "http://u2"),
	}
	c := Build(rules)

	node := c.Resolve(circuitpath.New("/a/b/c"))
	if node.IsError() {
		t.Fatal("expected a match, got Error node")
	}
	if node.Rule.UpstreamText != "http://u2" {
		t.Errorf("expected most specific rule (/a/b) to win, got upstream %q", node.Rule.UpstreamText)
	}
}

func TestNoMatchResolvesToError(t *testing.T) {
	rules := []rule.Rule{
		mkRule("/a", "http://u1"),
	}
	c := Build(rules)

	node := c.Resolve(circuitpath.New("/x"))
	if !node.IsError() {
		t.Errorf("expected Error node for unmatched path, got rule %q", node.Rule.Pattern)
	}
}

// TestEarliestDeclaredWinsOnTie verifies that among same-specificity
// rules, the earliest-declared one wins.
func TestEarliestDeclaredWinsOnTie(t *testing.T) {
	rules := []rule.Rule{
		mkRule("/a", "http://first"),
		mkRule("/a", "http://second"),
	}
	c := Build(rules)

	node := c.Resolve(circuitpath.New("/a"))
	if node.IsError() {
		t.Fatal("expected a match, got Error node")
	}
	if node.Rule.UpstreamText != "http://first" {
		t.Errorf("expected earliest-declared duplicate rule to win, got upstream %q", node.Rule.UpstreamText)
	}
}

// TestEarliestDeclaredWinsOnTieDeeper exercises the same tie-break one
// level down the graph, where the duplicate pattern is not a direct
// child of the Error root.
func TestEarliestDeclaredWinsOnTieDeeper(t *testing.T) {
	rules := []rule.Rule{
		mkRule("/a", "http://root"),
		mkRule("/a/b", "http://first"),
		mkRule("/a/b", "http://second"),
	}
	c := Build(rules)

	node := c.Resolve(circuitpath.New("/a/b"))
	if node.IsError() {
		t.Fatal("expected a match, got Error node")
	}
	if node.Rule.UpstreamText != "http://first" {
		t.Errorf("expected earliest-declared duplicate rule to win, got upstream %q", node.Rule.UpstreamText)
	}
}

func TestResolveEmptyRuleSetIsAlwaysError(t *testing.T) {
	c := Build(nil)
	node := c.Resolve(circuitpath.New("/anything"))
	if !node.IsError() {
		t.Error("expected Error node when no rules are configured")
	}
}
