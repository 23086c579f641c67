package config

import (
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/env"
)

type Config struct {
	Primary    Primary          `koanf:"primary"`
	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	Checkout   CheckoutConfig   `koanf:"checkout"`
	Retry      RetryConfig      `koanf:"retry"`
	Logger     LoggerConfig     `koanf:"logger"`
	Worker     WorkerConfig     `koanf:"worker"`
	Giving     GivingConfig     `koanf:"giving"`
	Storefront StorefrontConfig `koanf:"storefront"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port         string        `koanf:"port" validate:"required"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" validate:"required"`
}

type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password" validate:"required"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time" validate:"required"`
}

type CheckoutConfig struct {
	BaseURL         string        `koanf:"base_url" validate:"required"`
	APIKey          string        `koanf:"api_key" validate:"required"`
	MerchantAccount string        `koanf:"merchant_account" validate:"required"`
	ConnTimeout     time.Duration `koanf:"conn_timeout" validate:"required"`
}

type RetryConfig struct {
	BaseDelay  int32 `koanf:"base_delay"`
	MaxRetries int32 `koanf:"max_retries"`
}

type LoggerConfig struct {
	Level string `koanf:"level"`
}

type WorkerConfig struct {
	Interval  time.Duration `koanf:"interval" validate:"required"`
	SweepAge  time.Duration `koanf:"sweep_age" validate:"required"`
	BatchSize int           `koanf:"batch_size" validate:"required"`
}

// GivingConfig gates the charitable donation feature per sales channel.
type GivingConfig struct {
	Enabled       bool     `koanf:"enabled"`
	SalesChannels []string `koanf:"sales_channels"`
}

// EnabledFor reports whether donations are enabled for the sales channel. An
// empty channel list with the feature on means "all channels".
func (g GivingConfig) EnabledFor(salesChannelID string) bool {
	if !g.Enabled {
		return false
	}
	if len(g.SalesChannels) == 0 {
		return true
	}
	return slices.Contains(g.SalesChannels, salesChannelID)
}

// StorefrontConfig holds the storefront paths redirect results land on.
type StorefrontConfig struct {
	CartPath   string `koanf:"cart_path"`
	FinishPath string `koanf:"finish_path"`
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	err := k.Load(env.Provider("GATEWAY_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "GATEWAY_")),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{
		Storefront: StorefrontConfig{
			CartPath:   "/checkout/cart",
			FinishPath: "/checkout/finish",
		},
	}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}
