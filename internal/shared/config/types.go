package config

import "fmt"

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// MessagingConfig bounds the fire-and-forget outbound send path. The
// gateway is the channel connector service that owns the actual sessions.
type MessagingConfig struct {
	GatewayURL         string `mapstructure:"gateway_url"`
	APIToken           string `mapstructure:"api_token"`
	SendTimeoutSeconds int    `mapstructure:"send_timeout_seconds"`
	DedupTTLMinutes    int    `mapstructure:"dedup_ttl_minutes"`
}

// SyncConfig controls the ticket-to-card backlog sweep.
type SyncConfig struct {
	SweepWindowHours int    `mapstructure:"sweep_window_hours"`
	SweepBatchSize   int    `mapstructure:"sweep_batch_size"`
	BusinessTimezone string `mapstructure:"business_timezone"`
}
