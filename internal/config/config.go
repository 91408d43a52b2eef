// Copyright 2023 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package config loads the site configuration of an XCTest suite.
//
// A configuration file is YAML:
//
//	name: foundation
//	tests_dir: build/Tests
//	bundle_test_finder: build/xctest-finder
//	enable_perf_tests: false
//	environment:
//	  NSUnbufferedIO: "YES"
//	jobs: 4
//	timeout: 5m
//
// Relative paths are resolved against the directory of the file.
package config

import (
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/exp/maps"
	"gopkg.in/yaml.v2"

	"go.chromium.org/xctest/errors"
	"go.chromium.org/xctest/internal/harness"
)

// DefaultName is the suite name used when the file sets none.
const DefaultName = "xctest"

// Config is the parsed configuration file.
type Config struct {
	Name             string `yaml:"name"`
	TestsDir         string `yaml:"tests_dir"`
	BundleTestFinder string `yaml:"bundle_test_finder"`
	EnablePerfTests  bool   `yaml:"enable_perf_tests"`
	// DeveloperDir skips the xcode-select query when set.
	DeveloperDir string `yaml:"developer_dir"`
	// XCTest is the command executing a bundle; defaults to xcrun xctest.
	XCTest []string `yaml:"xctest"`
	// Environment is added to the environment tests run with.
	Environment map[string]string `yaml:"environment"`
	// CleanEnvironment drops the runner's own environment, so that tests
	// see only Environment.
	CleanEnvironment bool `yaml:"clean_environment"`
	Jobs             int  `yaml:"jobs"`
	// Timeout bounds each test. Zero means no limit.
	Timeout time.Duration `yaml:"timeout"`
}

// Load reads, completes and validates the configuration file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config")
	}
	cfg := &Config{}
	if err := yaml.UnmarshalStrict(b, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	cfg.resolve(filepath.Dir(path))
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

func (c *Config) resolve(base string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	c.TestsDir = abs(c.TestsDir)
	c.BundleTestFinder = abs(c.BundleTestFinder)
	if c.Name == "" {
		c.Name = DefaultName
	}
	if len(c.XCTest) == 0 {
		c.XCTest = []string{"xcrun", "xctest"}
	}
	c.Jobs = defaultJobs(c.Jobs)
}

// defaultJobs maps zero jobs to one per CPU.
func defaultJobs(n int) int {
	if n == 0 {
		return runtime.NumCPU()
	}
	return n
}

// Validate checks that c can drive a run.
func (c *Config) Validate() error {
	switch {
	case c.TestsDir == "":
		return errors.New("tests_dir is not set")
	case c.BundleTestFinder == "":
		return errors.New("bundle_test_finder is not set")
	case c.DeveloperDir != "" && !filepath.IsAbs(c.DeveloperDir):
		return errors.Errorf("developer_dir %q is not absolute", c.DeveloperDir)
	case c.Jobs < 0:
		return errors.Errorf("jobs must not be negative, got %d", c.Jobs)
	case c.Timeout < 0:
		return errors.Errorf("timeout must not be negative, got %v", c.Timeout)
	}
	for k := range c.Environment {
		if k == "" || strings.Contains(k, "=") {
			return errors.Errorf("bad environment variable name %q", k)
		}
	}
	return nil
}

// TestEnvironment returns the environment tests run with as sorted
// KEY=VALUE entries. base is the runner's own environment, normally
// os.Environ(); it is ignored with CleanEnvironment. Entries of Environment
// override base.
func (c *Config) TestEnvironment(base []string) []string {
	vars := make(map[string]string)
	if !c.CleanEnvironment {
		for _, kv := range base {
			if k, v, ok := strings.Cut(kv, "="); ok {
				vars[k] = v
			}
		}
	}
	for k, v := range c.Environment {
		vars[k] = v
	}
	keys := maps.Keys(vars)
	sort.Strings(keys)
	env := make([]string, 0, len(keys))
	for _, k := range keys {
		env = append(env, k+"="+vars[k])
	}
	return env
}

// SuiteConfig converts c to the harness representation.
func (c *Config) SuiteConfig(base []string) *harness.SuiteConfig {
	return &harness.SuiteConfig{
		Name:            c.Name,
		TestsDir:        c.TestsDir,
		EnablePerfTests: c.EnablePerfTests,
		Environment:     c.TestEnvironment(base),
	}
}

// Flags holds command-line overrides of a Config.
type Flags struct {
	perf         bool
	jobs         int
	timeout      time.Duration
	developerDir string
}

// SetFlags registers the override flags on fs.
func (fl *Flags) SetFlags(fs *flag.FlagSet) {
	fs.BoolVar(&fl.perf, "perf", false, "include performance test bundles")
	fs.IntVar(&fl.jobs, "j", 0, "number of tests to run in parallel (0 for one per CPU)")
	fs.DurationVar(&fl.timeout, "timeout", 0, "per-test timeout (0 for none)")
	fs.StringVar(&fl.developerDir, "developer_dir", "", "developer directory (skips xcode-select)")
}

// Apply copies the flags explicitly set on fs into c and revalidates it.
func (fl *Flags) Apply(c *Config, fs *flag.FlagSet) error {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "perf":
			c.EnablePerfTests = fl.perf
		case "j":
			c.Jobs = defaultJobs(fl.jobs)
		case "timeout":
			c.Timeout = fl.timeout
		case "developer_dir":
			c.DeveloperDir = fl.developerDir
		}
	})
	return c.Validate()
}
