// Package config loads pickle settings from defaults, an optional
// .pickle.yaml file and PICKLE_* environment variables, in increasing
// precedence.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/chriserin/pickle/internal/parser"
)

const (
	// FileName is the config file looked up in the working directory.
	FileName  = ".pickle"
	EnvPrefix = "PICKLE"
)

type Config struct {
	Language    string   `mapstructure:"language"`
	Paths       []string `mapstructure:"paths"`
	Journal     string   `mapstructure:"journal"`
	Concurrency int      `mapstructure:"concurrency"`
	BestEffort  bool     `mapstructure:"best_effort"`
	Format      string   `mapstructure:"format"`
}

func Default() Config {
	return Config{
		Language:    parser.DefaultLanguage,
		Paths:       []string{"features"},
		Journal:     ".pickle/journal.db",
		Concurrency: 4,
		Format:      "table",
	}
}

// Load reads configuration. An explicit path must exist; otherwise a missing
// .pickle.yaml in dir is not an error.
func Load(dir, path string) (*Config, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("language", defaults.Language)
	v.SetDefault("paths", defaults.Paths)
	v.SetDefault("journal", defaults.Journal)
	v.SetDefault("concurrency", defaults.Concurrency)
	v.SetDefault("best_effort", defaults.BestEffort)
	v.SetDefault("format", defaults.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if !parser.SupportedLanguage(c.Language) {
		return fmt.Errorf("unsupported language %q", c.Language)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	switch c.Format {
	case "table", "ndjson", "yaml":
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	return nil
}
