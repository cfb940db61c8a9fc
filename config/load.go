package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvPrefix is the default environment variable prefix.
const DefaultEnvPrefix = "PETITE_"

// Load returns the default config overridden by the YAML file at path (if not empty)
// and then by environment variables. Variables are named after the config keys:
// PETITE_NET_ADDR sets NET.Addr, PETITE_NET_MAXCONNS sets NET.MaxConns and so on.
func Load(path, envPrefix string) (*Config, error) {
	if len(envPrefix) == 0 {
		envPrefix = DefaultEnvPrefix
	}

	k := koanf.New(".")

	if len(path) > 0 {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	transform := func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "_", ".")
	}

	if err := k.Load(env.Provider(envPrefix, ".", transform), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}
