// Package config provides Viper-backed configuration shared by every CLI mode:
// typed getters over SetDefault-seeded keys rather than a bare struct,
// so a config file can override any field without touching call sites.
package config

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds the runtime parameters of a single CLI invocation:
// evaluator choices, budget, k, sample counts, and the Beta prior.
type Config struct {
	v *viper.Viper
}

// New returns a Config with the defaults every mode shares.
func New() *Config {
	v := viper.New()

	v.SetDefault("run.seed", time.Now().UnixNano())
	v.SetDefault("run.budget", 1)
	v.SetDefault("run.k", 1)
	v.SetDefault("run.samples", 100)

	v.SetDefault("prior.alpha", 1.0)
	v.SetDefault("prior.beta", 1.0)

	v.SetDefault("evaluator.exploit", 0)
	v.SetDefault("evaluator.explore", 1)
	v.SetDefault("evaluator.exploit_type", "mean")
	v.SetDefault("evaluator.explore_type", "high")

	v.SetDefault("bandit.epsilon", 0.1)
	v.SetDefault("bandit.eta", 0.5)
	v.SetDefault("bandit.update", true)
	v.SetDefault("bandit.learn", true)

	v.SetDefault("logging.level", "info")

	return &Config{v: v}
}

// LoadFromFile overlays a config file (YAML/JSON/TOML, by extension) on
// top of the defaults.
func (c *Config) LoadFromFile(path string) error {
	c.v.SetConfigFile(path)
	return c.v.ReadInConfig()
}

// Set allows CLI argument parsing to override a key after defaults are
// established.
func (c *Config) Set(key string, value interface{}) {
	c.v.Set(key, value)
}

func (c *Config) Seed() int64         { return c.v.GetInt64("run.seed") }
func (c *Config) Budget() int         { return c.v.GetInt("run.budget") }
func (c *Config) K() int              { return c.v.GetInt("run.k") }
func (c *Config) Samples() int        { return c.v.GetInt("run.samples") }
func (c *Config) PriorAlpha() float64 { return c.v.GetFloat64("prior.alpha") }
func (c *Config) PriorBeta() float64  { return c.v.GetFloat64("prior.beta") }

func (c *Config) ExploitIndex() int { return c.v.GetInt("evaluator.exploit") }
func (c *Config) ExploreIndex() int { return c.v.GetInt("evaluator.explore") }

func (c *Config) Epsilon() float64 { return c.v.GetFloat64("bandit.epsilon") }
func (c *Config) Eta() float64     { return c.v.GetFloat64("bandit.eta") }
func (c *Config) Update() bool     { return c.v.GetBool("bandit.update") }
func (c *Config) Learn() bool      { return c.v.GetBool("bandit.learn") }

func (c *Config) LogLevel() string { return c.v.GetString("logging.level") }

// CreateLogger builds a console-formatted zerolog.Logger from the
// configured level.
func (c *Config) CreateLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Str("service", "oim").Logger()
}
