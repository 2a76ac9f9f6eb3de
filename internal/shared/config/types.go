package config

import "fmt"

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

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
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Enabled  bool   `mapstructure:"enabled"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// AccessConfig holds tunables for the access and claim services.
type AccessConfig struct {
	// BusinessTimezone is used to compute calendar-month boundaries for
	// allowance accounting. Storage stays in UTC.
	BusinessTimezone string `mapstructure:"business_timezone"`
	// DelegateCacheTTLSeconds bounds how long delegate lookups are cached.
	DelegateCacheTTLSeconds int `mapstructure:"delegate_cache_ttl_seconds"`
	// AllowanceCacheTTLSeconds bounds how long allowance snapshots are cached.
	AllowanceCacheTTLSeconds int `mapstructure:"allowance_cache_ttl_seconds"`
}
