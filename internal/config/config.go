package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Exchange ExchangeConfig `mapstructure:"exchange"`
	Wallet   WalletConfig   `mapstructure:"wallet"`
	Order    OrderConfig    `mapstructure:"order"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port      string  `mapstructure:"port"`
	APIKey    string  `mapstructure:"api_key"` // empty disables auth
	RateLimit float64 `mapstructure:"rate_limit"` // requests per second, 0 disables
	RateBurst int     `mapstructure:"rate_burst"`
}

type ExchangeConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	WSURL     string `mapstructure:"ws_url"`
	IsMainnet bool   `mapstructure:"is_mainnet"`
	TimeoutMs int    `mapstructure:"timeout_ms"`
}

type WalletConfig struct {
	// Custodially-held embedded key; always required for signing.
	EmbeddedKey string `mapstructure:"embedded_key"`
	// Optional externally-owned key. When set the embedded key acts as a
	// delegated agent for this account.
	EOAKey string `mapstructure:"eoa_key"`
}

type OrderConfig struct {
	// Offset applied to mark price for the aggressive entry and the
	// protective trigger, e.g. 0.01 for 1%.
	Offset  float64 `mapstructure:"offset"`
	Trigger string  `mapstructure:"trigger"` // "tp" or "sl"
	// Named trading agent registered with the exchange on delegation.
	AgentName string `mapstructure:"agent_name"`
}

type RedisConfig struct {
	Addr                  string `mapstructure:"addr"`
	Password              string `mapstructure:"password"`
	DB                    int    `mapstructure:"db"`
	IdempotencyTTLSeconds int    `mapstructure:"idempotency_ttl_seconds"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")

	// Environment variables support
	// e.g. HYPERGATE_WALLET_EMBEDDED_KEY
	viper.SetEnvPrefix("hypergate")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.rate_limit", 10.0)
	viper.SetDefault("server.rate_burst", 20)
	viper.SetDefault("exchange.base_url", "https://api.hyperliquid-testnet.xyz")
	viper.SetDefault("exchange.ws_url", "wss://api.hyperliquid-testnet.xyz/ws")
	viper.SetDefault("exchange.is_mainnet", false)
	viper.SetDefault("exchange.timeout_ms", 10000)
	viper.SetDefault("order.offset", 0.01)
	viper.SetDefault("order.trigger", "tp")
	viper.SetDefault("order.agent_name", "hypergate")
	viper.SetDefault("redis.idempotency_ttl_seconds", 86400)
	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.path", "/metrics")
	viper.SetDefault("log.level", "info")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No config file found, using defaults and env vars")
		} else {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
