// Package config loads the settings of the replay tool.
package config

import (
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultQuoteLengthMax     = 1024
	DefaultSessionCount       = 1
	DefaultQuoteDriftMargin   = 70
	DefaultAnomalyLogInterval = time.Second
	DefaultAnomalyLogBurst    = 10

	envPrefix = "REPLYINFO"
)

var ErrConfiguration = errors.New("configuration error")

type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Options OptionsConfig `mapstructure:"options"`
	Reply   ReplyConfig   `mapstructure:"reply"`
	State   StateConfig   `mapstructure:"state"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"  validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// OptionsConfig holds the defaults of server-provided options.
type OptionsConfig struct {
	QuoteLengthMax int64 `mapstructure:"message_reply_quote_length_max" validate:"gte=1"`
	SessionCount   int64 `mapstructure:"session_count"                  validate:"gte=0"`
}

type ReplyConfig struct {
	QuoteDriftMargin   int64         `mapstructure:"quote_drift_margin"   validate:"gte=0"`
	SelfUserID         int64         `mapstructure:"self_user_id"         validate:"gte=0"`
	AnomalyLogInterval time.Duration `mapstructure:"anomaly_log_interval" validate:"gte=0"`
	AnomalyLogBurst    int           `mapstructure:"anomaly_log_burst"    validate:"gte=1"`
}

type StateConfig struct {
	// Path of the bbolt file keeping option overrides. Empty keeps them in
	// memory.
	Path string `mapstructure:"path"`
}

// Load reads defaults, the optional YAML file at path and REPLYINFO_*
// environment variables, in increasing priority.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(ErrConfiguration, "read %s: %v", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrapf(ErrConfiguration, "parse: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrapf(ErrConfiguration, "%v", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)

	v.SetDefault("options.message_reply_quote_length_max", DefaultQuoteLengthMax)
	v.SetDefault("options.session_count", DefaultSessionCount)

	v.SetDefault("reply.quote_drift_margin", DefaultQuoteDriftMargin)
	v.SetDefault("reply.self_user_id", 0)
	v.SetDefault("reply.anomaly_log_interval", DefaultAnomalyLogInterval)
	v.SetDefault("reply.anomaly_log_burst", DefaultAnomalyLogBurst)

	v.SetDefault("state.path", "")
}
