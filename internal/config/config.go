// Package config loads the rebound configuration file: host, port, worker
// count, optional TLS material, and the ordered rule list.
package config

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/aaytec/rebound/internal/rerrors"
	"github.com/aaytec/rebound/internal/rule"
)

// DefaultWorkers is the worker pool size used when the config file omits
// "workers".
const DefaultWorkers = 10

// SSL names the certificate and key files used to terminate TLS on the
// listening socket.
type SSL struct {
	PubCert string `yaml:"pub_cert"`
	PrivKey string `yaml:"priv_key"`
}

// Config is the deserialized shape of the configuration file.
type Config struct {
	Host    string        `yaml:"host"`
	Port    uint16        `yaml:"port"`
	Workers *uint         `yaml:"workers"`
	SSL     *SSL          `yaml:"ssl"`
	Rules   []rule.Config `yaml:"rules"`
}

// WorkerCount returns Workers, or DefaultWorkers when unset.
func (c Config) WorkerCount() uint {
	if c.Workers == nil {
		return DefaultWorkers
	}
	return *c.Workers
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, rerrors.Wrap(rerrors.ConfigParse, "read config file "+path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, rerrors.Wrap(rerrors.ConfigParse, "parse config file "+path, err)
	}

	return &cfg, nil
}

// BuildRules builds the Rule slice from the config's raw rule entries, in
// the declared order (rule order in the file is significant).
func (c Config) BuildRules() []rule.Rule {
	rules := make([]rule.Rule, len(c.Rules))
	for i, raw := range c.Rules {
		rules[i] = rule.New(raw)
	}
	return rules
}
