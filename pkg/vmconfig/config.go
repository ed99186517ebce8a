// Package vmconfig holds the small set of tunables that cut across the
// lexer, compiler, GC pool, and trampoline: include search paths, the
// exponent bound on numeric literals, the GC's light-collection cadence,
// and the trampoline's bounce budget. A Config is built with functional
// options the way the teacher's lexer.Option/lexer.WithMaxExponent pattern
// builds a Lexer, and can optionally be loaded from a YAML file for
// `cmd/edgevm run --config`.
package vmconfig

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config collects the sanity bounds spec.md leaves to "implementation
// chooses": the numeric-literal exponent bound (§4.1), the trampoline's
// bounce budget (§4.7), the GC's light-collection cadence (§4.8), and the
// #include resolver's search path list.
type Config struct {
	MaxExponent        int      `yaml:"max_exponent"`
	MaxBounces         int      `yaml:"max_bounces"`
	GCLightInterval    int      `yaml:"gc_light_interval"`
	IncludeSearchPaths []string `yaml:"include_search_paths"`
}

// Option configures a Config at construction time.
type Option func(*Config)

// WithMaxExponent overrides the default numeric-literal exponent bound.
func WithMaxExponent(max int) Option {
	return func(c *Config) { c.MaxExponent = max }
}

// WithMaxBounces overrides the default trampoline bounce budget.
func WithMaxBounces(max int) Option {
	return func(c *Config) { c.MaxBounces = max }
}

// WithGCLightInterval overrides the default light-collection cadence, in
// bounces between each LightCollect call. The value is stored (and read
// from YAML), but nothing in the VM reads it: neither the trampoline nor
// pkg/vmhost calls LightCollect on its own.
func WithGCLightInterval(n int) Option {
	return func(c *Config) { c.GCLightInterval = n }
}

// WithIncludeSearchPaths sets the directories `#include <...>` resolves
// against, in search order.
func WithIncludeSearchPaths(paths ...string) Option {
	return func(c *Config) { c.IncludeSearchPaths = paths }
}

const (
	defaultMaxExponent     = 1 << 16
	defaultMaxBounces      = 1 << 20
	defaultGCLightInterval = 256
)

// New builds a Config from its defaults plus any opts, the same
// construction shape as lexer.New(source, input, opts...).
func New(opts ...Option) *Config {
	c := &Config{
		MaxExponent:     defaultMaxExponent,
		MaxBounces:      defaultMaxBounces,
		GCLightInterval: defaultGCLightInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoadFile reads a YAML-formatted config file, starting from New's
// defaults so a file needs only name the fields it wants to override.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("vmconfig: reading %s: %w", path, err)
	}
	c := New()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("vmconfig: parsing %s: %w", path, err)
	}
	return c, nil
}
