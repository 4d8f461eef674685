// Package config loads application settings from flags, environment,
// an optional .env file and an optional config file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"gbmsim/internal/sim"
)

// EnvPrefix namespaces environment variables, e.g. GBMSIM_MODEL_NUM_PATHS.
const EnvPrefix = "GBMSIM"

// Config holds application configuration
type Config struct {
	Model       ModelConfig     `mapstructure:"model"`
	Seed        uint64          `mapstructure:"seed"` // 0 derives a seed from the clock
	Workers     int             `mapstructure:"workers"  validate:"gte=0"`
	VaRLevel    float64         `mapstructure:"var_level" validate:"gt=0,lt=100"`
	Histogram   HistogramConfig `mapstructure:"histogram"`
	Log         LogConfig       `mapstructure:"log"`
	MetricsFile string          `mapstructure:"metrics_file"`
	Verbose     bool            `mapstructure:"verbose"`
}

// ModelConfig holds the GBM parameters. Domain checks happen in sim.NewConfig.
type ModelConfig struct {
	Mu           float64 `mapstructure:"mu"`
	Sigma        float64 `mapstructure:"sigma"`
	StepsPerYear int     `mapstructure:"steps_per_year"`
	NumPaths     int     `mapstructure:"num_paths"`
	InitialPrice float64 `mapstructure:"initial_price"`
}

type HistogramConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Bins    int  `mapstructure:"bins"  validate:"gte=1"`
	Width   int  `mapstructure:"width" validate:"gte=1"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Pretty bool   `mapstructure:"pretty"`
}

// SimConfig builds the validated simulation parameters.
func (c *Config) SimConfig() (sim.Config, error) {
	m := c.Model
	return sim.NewConfig(m.Mu, m.Sigma, m.StepsPerYear, m.NumPaths, m.InitialPrice)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("model.mu", 0.07)
	v.SetDefault("model.sigma", 0.15)
	v.SetDefault("model.steps_per_year", 252)
	v.SetDefault("model.num_paths", 1000)
	v.SetDefault("model.initial_price", 100.0)
	v.SetDefault("seed", 0)
	v.SetDefault("workers", 0)
	v.SetDefault("var_level", sim.DefaultVaRLevel)
	v.SetDefault("histogram.enabled", true)
	v.SetDefault("histogram.bins", 50)
	v.SetDefault("histogram.width", 60)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("metrics_file", "")
	v.SetDefault("verbose", false)
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"mu":            "model.mu",
	"sigma":         "model.sigma",
	"steps":         "model.steps_per_year",
	"paths":         "model.num_paths",
	"initial-price": "model.initial_price",
	"seed":          "seed",
	"workers":       "workers",
	"var-level":     "var_level",
	"histogram":     "histogram.enabled",
	"bins":          "histogram.bins",
	"width":         "histogram.width",
	"log-level":     "log.level",
	"log-pretty":    "log.pretty",
	"metrics-file":  "metrics_file",
	"verbose":       "verbose",
}

// RegisterFlags adds every setting as a flag on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Float64("mu", 0.07, "annual drift")
	fs.Float64("sigma", 0.15, "annual volatility")
	fs.Int("steps", 252, "time steps per year")
	fs.Int("paths", 1000, "number of simulated paths")
	fs.Float64("initial-price", 100, "starting price")
	fs.Uint64("seed", 0, "random seed (0 picks one from the clock)")
	fs.Int("workers", 0, "parallel workers (0 runs a single sequential stream)")
	fs.Float64("var-level", sim.DefaultVaRLevel, "VaR percentile")
	fs.Bool("histogram", true, "print a histogram of returns")
	fs.Int("bins", 50, "histogram bins")
	fs.Int("width", 60, "histogram bar width")
	fs.String("log-level", "info", "debug, info, warn or error")
	fs.Bool("log-pretty", false, "human-readable logs")
	fs.String("metrics-file", "", "write Prometheus metrics to this file")
	fs.BoolP("verbose", "v", false, "print expected shortfall and seed")
}

// Load resolves settings with precedence flags > env > config file > defaults.
// configFile may be empty. fs may be nil.
func Load(configFile string, fs *pflag.FlagSet) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks application-level settings.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fmt.Sprintf("%s failed %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value())
			}
			return fmt.Errorf("invalid settings: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}
