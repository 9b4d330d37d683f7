package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds runtime configuration. Every key can be set in pos.yaml or through a POS_
// prefixed environment variable, e.g. POS_HTTP_ADDR.
type Config struct {
	HTTPAddr        string        `mapstructure:"http_addr"`
	DBConnString    string        `mapstructure:"db_dsn"`
	DBMaxConns      int32         `mapstructure:"db_max_conns"`
	DBPingTimeout   time.Duration `mapstructure:"db_ping_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	PaymentDelay    time.Duration `mapstructure:"payment_delay"`
	AMQPURL         string        `mapstructure:"amqp_url"`
	AMQPExchange    string        `mapstructure:"amqp_exchange"`
	// Fixtures loads the demo catalog into the in-memory stores when no database is configured.
	Fixtures       bool     `mapstructure:"fixtures"`
	CORSOrigins    []string `mapstructure:"cors_origins"`
	LogLevel       string   `mapstructure:"log_level"`
	LogDevelopment bool     `mapstructure:"log_development"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("db_dsn", "")
	v.SetDefault("db_max_conns", 4)
	v.SetDefault("db_ping_timeout", 5*time.Second)
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("payment_delay", 1500*time.Millisecond)
	v.SetDefault("amqp_url", "")
	v.SetDefault("amqp_exchange", "pos_events")
	v.SetDefault("fixtures", true)
	v.SetDefault("cors_origins", []string{"*"})
	v.SetDefault("log_level", "info")
	v.SetDefault("log_development", false)
}

// Load reads defaults, an optional pos.yaml and the environment into a Config.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	v.SetConfigName("pos")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/pos/")
	v.SetEnvPrefix("POS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv builds Config from defaults and environment variables only.
func FromEnv() (Config, error) {
	return Load(viper.New())
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.HTTPAddr) == "" {
		return errors.New("config: http_addr required")
	}
	if c.PaymentDelay < 0 {
		return fmt.Errorf("config: payment_delay must not be negative, got %s", c.PaymentDelay)
	}
	if c.DBMaxConns < 1 {
		return fmt.Errorf("config: db_max_conns must be at least 1, got %d", c.DBMaxConns)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("config: shutdown_timeout must be positive, got %s", c.ShutdownTimeout)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: log_level: %w", err)
	}
	return nil
}

// NewLogger builds the process logger: JSON output in production, console output in
// development.
func (c Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if c.LogDevelopment {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
