// Package config holds run configuration, loadable from a YAML file with
// environment variable overrides.
package config

import (
	"github.com/mvp-joe/py2dataset/internal/oracle"
)

// Config is the complete configuration for one dataset generation run.
type Config struct {
	Paths    PathsConfig   `yaml:"paths" mapstructure:"paths"`
	Output   OutputConfig  `yaml:"output" mapstructure:"output"`
	Oracle   oracle.Config `yaml:"oracle" mapstructure:"oracle"`
	Database string        `yaml:"database" mapstructure:"database"` // optional SQLite corpus store path
}

// PathsConfig defines which files to process and which to skip.
type PathsConfig struct {
	Questions string   `yaml:"questions" mapstructure:"questions"` // custom question file; empty uses the built-in set
	Ignore    []string `yaml:"ignore" mapstructure:"ignore"`       // glob patterns to skip
}

// OutputConfig defines where and how artifacts are written.
type OutputConfig struct {
	Dir   string `yaml:"dir" mapstructure:"dir"`
	Graph bool   `yaml:"graph" mapstructure:"graph"` // also write DOT call-graph exports
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Ignore: []string{
				"venv/**",
				".venv/**",
				"node_modules/**",
				".git/**",
				"dist/**",
				"build/**",
				"__pycache__/**",
				"**/*_test.py",
			},
		},
		Output: OutputConfig{
			Dir:   "datasets",
			Graph: false,
		},
		Oracle: oracle.Config{
			Provider:  "stub",
			CacheSize: 4096,
		},
	}
}
