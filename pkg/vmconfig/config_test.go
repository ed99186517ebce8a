package vmconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	c := New()
	if c.MaxExponent != defaultMaxExponent {
		t.Errorf("MaxExponent = %d, want %d", c.MaxExponent, defaultMaxExponent)
	}
	if c.MaxBounces != defaultMaxBounces {
		t.Errorf("MaxBounces = %d, want %d", c.MaxBounces, defaultMaxBounces)
	}
	if c.GCLightInterval != defaultGCLightInterval {
		t.Errorf("GCLightInterval = %d, want %d", c.GCLightInterval, defaultGCLightInterval)
	}
	if len(c.IncludeSearchPaths) != 0 {
		t.Errorf("IncludeSearchPaths = %v, want empty", c.IncludeSearchPaths)
	}
}

func TestOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
		get  func(*Config) any
		want any
	}{
		{"MaxExponent", WithMaxExponent(8), func(c *Config) any { return c.MaxExponent }, 8},
		{"MaxBounces", WithMaxBounces(100), func(c *Config) any { return c.MaxBounces }, 100},
		{"GCLightInterval", WithGCLightInterval(16), func(c *Config) any { return c.GCLightInterval }, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.opt)
			if got := tt.get(c); got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestWithIncludeSearchPaths(t *testing.T) {
	c := New(WithIncludeSearchPaths("/usr/lib/edgevm", "./lib"))
	want := []string{"/usr/lib/edgevm", "./lib"}
	if len(c.IncludeSearchPaths) != len(want) {
		t.Fatalf("IncludeSearchPaths = %v, want %v", c.IncludeSearchPaths, want)
	}
	for i := range want {
		if c.IncludeSearchPaths[i] != want[i] {
			t.Errorf("IncludeSearchPaths[%d] = %q, want %q", i, c.IncludeSearchPaths[i], want[i])
		}
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "edgevm.yaml")
	content := "max_bounces: 42\ninclude_search_paths:\n  - ./lib\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if c.MaxBounces != 42 {
		t.Errorf("MaxBounces = %d, want 42", c.MaxBounces)
	}
	if c.MaxExponent != defaultMaxExponent {
		t.Errorf("MaxExponent = %d, want default %d (unspecified in file)", c.MaxExponent, defaultMaxExponent)
	}
	if len(c.IncludeSearchPaths) != 1 || c.IncludeSearchPaths[0] != "./lib" {
		t.Errorf("IncludeSearchPaths = %v, want [./lib]", c.IncludeSearchPaths)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("LoadFile: expected an error for a missing file")
	}
}
