package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "deskflow/internal/shared/config"
)

type Config struct {
	Environment string                       `mapstructure:"environment"`
	Database    sharedConfig.DatabaseConfig  `mapstructure:"database"`
	Logger      sharedConfig.LoggerConfig    `mapstructure:"logger"`
	Redis       sharedConfig.RedisConfig     `mapstructure:"redis"`
	Messaging   sharedConfig.MessagingConfig `mapstructure:"messaging"`
	Sync        sharedConfig.SyncConfig      `mapstructure:"sync"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("DESKFLOW")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration.
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func setDefaults() {
	viper.SetDefault("environment", "development")

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.username", "root")
	viper.SetDefault("database.password", "password")
	viper.SetDefault("database.database", "deskflow_dev")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 100)
	viper.SetDefault("database.conn_max_lifetime", 60)

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("messaging.gateway_url", "http://localhost:8090")
	viper.SetDefault("messaging.api_token", "")
	viper.SetDefault("messaging.send_timeout_seconds", 10)
	viper.SetDefault("messaging.dedup_ttl_minutes", 5)

	viper.SetDefault("sync.sweep_window_hours", 72)
	viper.SetDefault("sync.sweep_batch_size", 200)
	viper.SetDefault("sync.business_timezone", "UTC")
}
