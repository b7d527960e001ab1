// Package config reads the relex configuration from the environment and an
// optional YAML file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/revelaction/relex/svo"
)

type Config struct {
	DocPath           string        `envconfig:"RELEX_DOC_PATH" yaml:"doc_path"`
	PatternPath       string        `envconfig:"RELEX_PATTERN_PATH" default:"patterns" yaml:"pattern_path"`
	AdjectiveAsObject bool          `envconfig:"RELEX_ADJ_AS_OBJECT" default:"false" yaml:"adjective_as_object"`
	LogLevel          string        `envconfig:"RELEX_LOG_LEVEL" default:"INFO" yaml:"log_level"`
	APIPort           string        `envconfig:"RELEX_API_PORT" default:"10000" yaml:"api_port"`
	RedisAddr         string        `envconfig:"RELEX_REDIS_ADDR" yaml:"redis_addr"`
	RedisDB           int           `envconfig:"RELEX_REDIS_DB" default:"0" yaml:"redis_db"`
	CacheTTL          time.Duration `envconfig:"RELEX_CACHE_TTL" default:"24h" yaml:"cache_ttl"`

	// File is the YAML file read after the environment. Keys present in the
	// file win.
	File string `envconfig:"RELEX_CONFIG_FILE" yaml:"-"`
}

// Load reads the environment and then, if RELEX_CONFIG_FILE is set, the YAML
// file it points to.
// Empty RELEX_* variables count as unset, so their defaults apply.
func Load() (Config, error) {
	unsetEmpty()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}

	if cfg.File == "" {
		return cfg, nil
	}

	if err := cfg.readFile(cfg.File); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

const envPrefix = "RELEX_"

func unsetEmpty() {
	for _, kv := range os.Environ() {
		k, v, _ := strings.Cut(kv, "=")
		if v == "" && strings.HasPrefix(k, envPrefix) {
			os.Unsetenv(k)
		}
	}
}

func (c *Config) readFile(path string) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(buf, c); err != nil {
		return fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	return nil
}

// SVO returns the extraction configuration.
func (c Config) SVO() svo.Config {
	return svo.Config{AdjectiveAsObject: c.AdjectiveAsObject}
}

// CacheEnabled reports whether a Redis address is configured.
func (c Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}
