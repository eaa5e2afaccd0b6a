// Package rule defines the declarative routing Rule and the construction
// of its derived fields (parsed pattern path, parsed upstream) from raw
// configuration.
package rule

import (
	"github.com/aaytec/rebound/internal/circuitpath"
	"github.com/aaytec/rebound/internal/upstream"
)

// Rule is a declarative routing rule binding a path pattern to an
// upstream target and a set of request-transformation flags.
type Rule struct {
	// Pattern is the raw pattern text as configured.
	Pattern string
	// Path is Pattern parsed as a CircuitPath, with a trailing "/"
	// appended before parsing so every rule is represented as a
	// directory-style prefix.
	Path circuitpath.Path

	// UpstreamText is the raw upstream text as configured.
	UpstreamText string
	// Upstream is UpstreamText parsed.
	Upstream upstream.Upstream

	PreservePath  bool
	PreserveHdrs  bool
	PreserveQuery bool

	AdditionalHdrs  map[string]string
	AdditionalQuery map[string]string
}

// Config is the raw, deserialized shape of a rule, as read from the
// configuration file. Pointer fields distinguish "absent from the file"
// (nil, apply the default) from an explicit false.
type Config struct {
	Pattern         string            `yaml:"pattern"`
	Upstream        string            `yaml:"upstream"`
	PreservePath    *bool             `yaml:"preserve_path"`
	PreserveHdrs    *bool             `yaml:"preserve_hdrs"`
	PreserveQuery   *bool             `yaml:"preserve_query"`
	AdditionalHdrs  map[string]string `yaml:"additional_hdrs"`
	AdditionalQuery map[string]string `yaml:"additional_query"`
}

// New builds a Rule from its raw Config, applying the default-true
// semantics of preserve_path/preserve_hdrs/preserve_query and parsing the
// pattern and upstream text.
func New(cfg Config) Rule {
	return Rule{
		Pattern:         cfg.Pattern,
		Path:            circuitpath.New(cfg.Pattern + "/"),
		UpstreamText:    cfg.Upstream,
		Upstream:        upstream.Parse(cfg.Upstream),
		PreservePath:    boolOrDefault(cfg.PreservePath, true),
		PreserveHdrs:    boolOrDefault(cfg.PreserveHdrs, true),
		PreserveQuery:   boolOrDefault(cfg.PreserveQuery, true),
		AdditionalHdrs:  cfg.AdditionalHdrs,
		AdditionalQuery: cfg.AdditionalQuery,
	}
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
