// Package config loads probo's tunables the way
// 0xtitan6-polymarket-mm's internal/config does: a typed struct with
// mapstructure tags, sane defaults set in code, and env var overrides
// via viper. There is no YAML file requirement here — this core has
// so few tunables that a file is unnecessary ceremony — but the
// mechanism (defaults + env override through one viper instance) is
// the same.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds every tunable this core reads at startup. Nothing here
// is mutated after Load — the engine treats it as read-only.
type Config struct {
	// EventQueueCapacity bounds the outbound event queue (spec.md §5).
	EventQueueCapacity int `mapstructure:"event_queue_capacity"`

	// FaceValue is the combined payoff of one matched YES+NO pair
	// (spec.md §4.4.3, §GLOSSARY). Fixed at 10 by the spec; exposed
	// here, not hardcoded in the engine, so a test can exercise a
	// different face value without touching engine internals.
	FaceValue string `mapstructure:"face_value"`

	// PriceMin and PriceMax bound every resting and minting price
	// (spec.md §3).
	PriceMin string `mapstructure:"price_min"`
	PriceMax string `mapstructure:"price_max"`
}

// envPrefix namespaces environment overrides, e.g. PROBO_EVENT_QUEUE_CAPACITY.
const envPrefix = "PROBO"

// Load returns a Config populated with defaults, overridable by
// PROBO_* environment variables.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("event_queue_capacity", 1024)
	v.SetDefault("face_value", "10")
	v.SetDefault("price_min", "1")
	v.SetDefault("price_max", "10")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
