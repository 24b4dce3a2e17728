package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering, lowest precedence first: defaults, the
// YAML file at path (or REMATCH_CONFIG when path is empty), then REMATCH_*
// environment variables. A double underscore in an env key descends into a
// section, so REMATCH_SERVER__ADDR sets server.addr while
// REMATCH_MIN_NAME_CONFIDENCE stays a single key.
func Load(path string) (*Config, error) {
	cfg := Default()

	k := koanf.New(".")

	if path == "" {
		path = os.Getenv("REMATCH_CONFIG")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider("REMATCH_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "rematch_")
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
