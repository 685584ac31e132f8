// Package config loads application configuration from file and environment.
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
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Match  MatchConfig  `yaml:"match" mapstructure:"match"`
	Market MarketConfig `yaml:"market" mapstructure:"market"`
	Deal   DealConfig   `yaml:"deal" mapstructure:"deal"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the profile store backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"` // sqlite or postgres
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	SQLitePath  string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
}

// MatchConfig configures the compatibility engine. Sub-score weights are
// fractions that should sum to 1; the meeting weights likewise.
type MatchConfig struct {
	IndustryWeight float64 `yaml:"industry_weight" mapstructure:"industry_weight"`
	TitleWeight    float64 `yaml:"title_weight" mapstructure:"title_weight"`
	BioWeight      float64 `yaml:"bio_weight" mapstructure:"bio_weight"`
	NetworkWeight  float64 `yaml:"network_weight" mapstructure:"network_weight"`
	LocationWeight float64 `yaml:"location_weight" mapstructure:"location_weight"`

	CompatWeight     float64 `yaml:"compat_weight" mapstructure:"compat_weight"`
	ContextWeight    float64 `yaml:"context_weight" mapstructure:"context_weight"`
	ReputationWeight float64 `yaml:"reputation_weight" mapstructure:"reputation_weight"`
	HistoryWeight    float64 `yaml:"history_weight" mapstructure:"history_weight"`

	HistoricalRate float64 `yaml:"historical_rate" mapstructure:"historical_rate"`
	DefaultContext float64 `yaml:"default_context" mapstructure:"default_context"`

	// TablesPath optionally points at a YAML file overriding the built-in
	// industry affinity and seniority keyword tables.
	TablesPath string `yaml:"tables_path" mapstructure:"tables_path"`
}

// MarketConfig configures the market intelligence service.
type MarketConfig struct {
	CacheTTLHours  int     `yaml:"cache_ttl_hours" mapstructure:"cache_ttl_hours"`
	BaseConfidence float64 `yaml:"base_confidence" mapstructure:"base_confidence"`
	JitterStdDev   float64 `yaml:"jitter_std_dev" mapstructure:"jitter_std_dev"`
}

// DealConfig configures the deal outcome predictor.
type DealConfig struct {
	TrainingSamples int   `yaml:"training_samples" mapstructure:"training_samples"`
	TrainingSeed    int64 `yaml:"training_seed" mapstructure:"training_seed"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port         int     `yaml:"port" mapstructure:"port"`
	RateLimitRPS float64 `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	RateBurst    int     `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("INSIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.sqlite_path", "insight.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.rate_limit_rps", 50)
	v.SetDefault("server.rate_burst", 100)
	v.SetDefault("match.industry_weight", 0.25)
	v.SetDefault("match.title_weight", 0.20)
	v.SetDefault("match.bio_weight", 0.20)
	v.SetDefault("match.network_weight", 0.15)
	v.SetDefault("match.location_weight", 0.20)
	v.SetDefault("match.compat_weight", 0.40)
	v.SetDefault("match.context_weight", 0.25)
	v.SetDefault("match.reputation_weight", 0.20)
	v.SetDefault("match.history_weight", 0.15)
	v.SetDefault("match.historical_rate", 0.65)
	v.SetDefault("match.default_context", 0.7)
	v.SetDefault("market.cache_ttl_hours", 6)
	v.SetDefault("market.base_confidence", 0.85)
	v.SetDefault("market.jitter_std_dev", 0.05)
	v.SetDefault("deal.training_samples", 1000)
	v.SetDefault("deal.training_seed", 42)

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
