// Package config loads run settings from an optional file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"value-rating/rating"
)

// EnvPrefix prefixes every environment override, e.g. VALUE_RATING_RATING_PRESET.
const EnvPrefix = "VALUE_RATING"

type Config struct {
	Preset          string
	ByGroup         bool
	TargetSpread    float64
	WeightOverrides map[string]float64

	LogLevel  string
	LogFormat string

	ServerAddr string

	SheetsCredentialsFile string
	SheetsURL             string
	SheetsTab             string

	LedgerDir string
}

// Load reads path if given, otherwise value-rating.{yaml,json,toml} from the
// working directory when present. Environment variables override both.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("rating.preset", rating.PresetBalanced)
	v.SetDefault("rating.by_group", true)
	v.SetDefault("rating.target_spread", rating.DefaultTargetSpread)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("sheets.tab", "Ratings")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("value-rating")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		Preset:                v.GetString("rating.preset"),
		ByGroup:               v.GetBool("rating.by_group"),
		TargetSpread:          v.GetFloat64("rating.target_spread"),
		WeightOverrides:       make(map[string]float64),
		LogLevel:              v.GetString("log.level"),
		LogFormat:             v.GetString("log.format"),
		ServerAddr:            v.GetString("server.addr"),
		SheetsCredentialsFile: v.GetString("sheets.credentials_file"),
		SheetsURL:             v.GetString("sheets.url"),
		SheetsTab:             v.GetString("sheets.tab"),
		LedgerDir:             v.GetString("ledger.dir"),
	}
	for _, metric := range rating.Metrics {
		key := "rating.weights." + metric
		if v.IsSet(key) {
			cfg.WeightOverrides[metric] = v.GetFloat64(key)
		}
	}
	if cfg.TargetSpread <= 0 {
		cfg.TargetSpread = rating.DefaultTargetSpread
	}
	return cfg, nil
}

// Weights resolves the preset and applies per-metric overrides.
func (c Config) Weights() (rating.Weights, error) {
	w, err := rating.Preset(c.Preset)
	if err != nil {
		return nil, fmt.Errorf("preset %q: %w", c.Preset, err)
	}
	return w.With(c.WeightOverrides), nil
}

func (c Config) Options() rating.Options {
	return rating.Options{ByGroup: c.ByGroup, TargetSpread: c.TargetSpread}
}

// NewLogger builds a logrus logger writing to stderr.
func (c Config) NewLogger() (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(level)

	switch c.LogFormat {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return log, nil
}
