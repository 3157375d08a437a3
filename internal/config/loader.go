package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if PALATE_CONFIG is set
//  3. env (prefix PALATE_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("PALATE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: PALATE_ADDR, PALATE_MONGO_URI, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("PALATE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "palate_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.CrowdWindowMinutes <= 0:
		return fmt.Errorf("%w: crowd_window_minutes must be positive", ErrInvalidConfig)
	case c.ThrottleWindowMinutes <= 0:
		return fmt.Errorf("%w: throttle_window_minutes must be positive", ErrInvalidConfig)
	case c.RestaurantFetchConcurrency <= 0:
		return fmt.Errorf("%w: restaurant_fetch_concurrency must be positive", ErrInvalidConfig)
	case c.MongoURI != "" && c.MongoDatabase == "":
		return fmt.Errorf("%w: mongo_database required with mongo_uri", ErrInvalidConfig)
	}
	return nil
}
