// Package config loads the graphidentity configuration from a YAML
// file with GRAPHIDENTITY_* environment overrides. The loaded value is
// passed explicitly into the graph Provider; nothing downstream reads
// configuration ambiently.
package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/gcanossa/graphidentity/internal/graph"
	"github.com/gcanossa/graphidentity/internal/types"
)

// Config is the top-level configuration.
type Config struct {
	Graph   graph.Config  `yaml:"graph" mapstructure:"graph"`
	Tracing TracingConfig `yaml:"tracing" mapstructure:"tracing"`
}

// TracingConfig controls the OpenTelemetry store decorator.
type TracingConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Graph: graph.DefaultConfig(),
	}
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if err := c.Graph.Validate(); err != nil {
		return types.WrapError(types.CONFIG_VALIDATION_FAILED, "graph section invalid", err)
	}
	return nil
}

// Load reads the configuration from path. Environment variables
// prefixed with GRAPHIDENTITY_ override file values, with dots replaced
// by underscores (GRAPHIDENTITY_GRAPH_URI overrides graph.uri).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("GRAPHIDENTITY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, types.WrapError(types.CONFIG_LOAD_FAILED, "failed to read config file", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, types.WrapError(types.CONFIG_PARSE_FAILED, "failed to unmarshal config", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadWithDefaults behaves like Load but falls back to Default() when
// the file does not exist.
func LoadWithDefaults(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return Load(path)
}

func setDefaults(v *viper.Viper) {
	def := graph.DefaultConfig()
	v.SetDefault("graph.uri", def.URI)
	v.SetDefault("graph.username", def.Username)
	v.SetDefault("graph.password", def.Password)
	v.SetDefault("graph.database", def.Database)
	v.SetDefault("graph.max_connection_pool_size", def.MaxConnectionPoolSize)
	v.SetDefault("graph.connection_timeout", def.ConnectionTimeout)
	v.SetDefault("tracing.enabled", false)
}
