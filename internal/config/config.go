package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDataset     = "./galleries.jsonl"
	DefaultOutput      = "./library"
	DefaultConcurrency = 4
	DefaultReport      = "convert_report.yaml"
	DefaultAddr        = ":8888"
	DefaultConfigFile  = "archivist.yaml"
)

// Config holds the settings shared by the commands. Values are resolved as
// defaults, then the YAML file, then ARCHIVIST_* environment variables; flags
// set on the command line win over all of them.
type Config struct {
	Dataset     string `yaml:"dataset"`
	Output      string `yaml:"output"`
	Concurrency int    `yaml:"concurrency"`
	Report      string `yaml:"report"`
	Addr        string `yaml:"addr"`
}

func Default() *Config {
	return &Config{
		Dataset:     DefaultDataset,
		Output:      DefaultOutput,
		Concurrency: DefaultConcurrency,
		Report:      DefaultReport,
		Addr:        DefaultAddr,
	}
}

// Load reads path on top of the defaults and applies environment overrides.
// A missing file is not an error when path is the default config file name.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = getenv("ARCHIVIST_CONFIG", DefaultConfigFile)
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && path == DefaultConfigFile:
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg.Dataset = getenv("ARCHIVIST_DATASET", cfg.Dataset)
	cfg.Output = getenv("ARCHIVIST_OUTPUT", cfg.Output)
	cfg.Report = getenv("ARCHIVIST_REPORT", cfg.Report)
	cfg.Addr = getenv("ARCHIVIST_ADDR", cfg.Addr)
	cfg.Concurrency = getInt("ARCHIVIST_CONCURRENCY", cfg.Concurrency)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.Output == "" {
		return errors.New("output directory must not be empty")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
