// Package config loads application configuration from file and environment
// and bootstraps the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
	Dataset   DatasetConfig   `yaml:"dataset" mapstructure:"dataset"`
	Map       MapConfig       `yaml:"map" mapstructure:"map"`
	Aggregate AggregateConfig `yaml:"aggregate" mapstructure:"aggregate"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host           string  `yaml:"host" mapstructure:"host"`
	Port           int     `yaml:"port" mapstructure:"port"`
	RateLimitRPS   float64 `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst" mapstructure:"rate_limit_burst"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// DatasetConfig configures the postal code dataset source.
type DatasetConfig struct {
	Path   string       `yaml:"path" mapstructure:"path"`
	Format string       `yaml:"format" mapstructure:"format"`
	Bounds BoundsConfig `yaml:"bounds" mapstructure:"bounds"`
}

// BoundsConfig is the geographic bounding box applied when loading point
// records. Rows outside the box are dropped as bad data.
type BoundsConfig struct {
	MinLat float64 `yaml:"min_lat" mapstructure:"min_lat"`
	MaxLat float64 `yaml:"max_lat" mapstructure:"max_lat"`
	MinLng float64 `yaml:"min_lng" mapstructure:"min_lng"`
	MaxLng float64 `yaml:"max_lng" mapstructure:"max_lng"`
}

// Contains reports whether the point lies inside the bounding box.
func (b BoundsConfig) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

// MapConfig configures the rendered base map.
type MapConfig struct {
	CenterLat   float64 `yaml:"center_lat" mapstructure:"center_lat"`
	CenterLng   float64 `yaml:"center_lng" mapstructure:"center_lng"`
	Zoom        int     `yaml:"zoom" mapstructure:"zoom"`
	TileURL     string  `yaml:"tile_url" mapstructure:"tile_url"`
	Attribution string  `yaml:"attribution" mapstructure:"attribution"`
}

// AggregateConfig configures region aggregation.
type AggregateConfig struct {
	OutlierMultiplier float64 `yaml:"outlier_multiplier" mapstructure:"outlier_multiplier"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PETAKODE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.rate_limit_rps", 0)
	v.SetDefault("server.rate_limit_burst", 20)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("dataset.path", "kodepos.csv")
	v.SetDefault("dataset.format", "csv")
	// Approximate bounds for Indonesia.
	v.SetDefault("dataset.bounds.min_lat", -11.0)
	v.SetDefault("dataset.bounds.max_lat", 6.0)
	v.SetDefault("dataset.bounds.min_lng", 95.0)
	v.SetDefault("dataset.bounds.max_lng", 141.0)
	// Geographic centroid of Indonesia.
	v.SetDefault("map.center_lat", -2.5489)
	v.SetDefault("map.center_lng", 118.0149)
	v.SetDefault("map.zoom", 5)
	v.SetDefault("map.tile_url", "https://tile.openstreetmap.org/{z}/{x}/{y}.png")
	v.SetDefault("map.attribution", "&copy; OpenStreetMap contributors")
	v.SetDefault("aggregate.outlier_multiplier", 1.5)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
