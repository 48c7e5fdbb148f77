package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	configFile string
}

// NewLoader creates a loader. configFile may be empty, in which case
// py2dataset.yaml in the working directory is used when present.
func NewLoader(configFile string) Loader {
	return &loader{configFile: configFile}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (PY2DATASET_*)
// 2. Config file
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName("py2dataset")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("PY2DATASET")
	v.AutomaticEnv()
	// PY2DATASET_ORACLE_PROVIDER overrides oracle.provider, etc.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("paths.questions")
	v.BindEnv("output.dir")
	v.BindEnv("output.graph")
	v.BindEnv("oracle.provider")
	v.BindEnv("oracle.model")
	v.BindEnv("oracle.api_key")
	v.BindEnv("oracle.cache_size")
	v.BindEnv("database")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; an explicitly named one is not.
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || l.configFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("paths.questions", defaults.Paths.Questions)
	v.SetDefault("paths.ignore", defaults.Paths.Ignore)
	v.SetDefault("output.dir", defaults.Output.Dir)
	v.SetDefault("output.graph", defaults.Output.Graph)
	v.SetDefault("oracle.provider", defaults.Oracle.Provider)
	v.SetDefault("oracle.model", defaults.Oracle.Model)
	v.SetDefault("oracle.cache_size", defaults.Oracle.CacheSize)
	v.SetDefault("database", defaults.Database)
}
