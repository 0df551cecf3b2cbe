package config

import (
	"time"
	_ "time/tzdata"
)

// Config is the process configuration of the crmdocs binaries.
type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	Database DatabaseConfig `mapstructure:"database"`
	Logo     LogoConfig     `mapstructure:"logo"`
	Render   RenderConfig   `mapstructure:"render"`
	Log      LogConfig      `mapstructure:"log"`
}

type HTTPConfig struct {
	Addr            string        `mapstructure:"addr" validate:"required"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gte=0"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	DSN         string        `mapstructure:"dsn"`
	MaxOpen     int           `mapstructure:"max_open" validate:"gte=1"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"gte=0"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime" validate:"gte=0"`
}

type LogoConfig struct {
	Timeout  time.Duration   `mapstructure:"timeout" validate:"gt=0"`
	MaxBytes int64           `mapstructure:"max_bytes" validate:"gt=0"`
	Cache    LogoCacheConfig `mapstructure:"cache"`
}

// LogoCacheConfig enables the Redis logo cache when Addr is set.
type LogoCacheConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db" validate:"gte=0"`
	TTL      time.Duration `mapstructure:"ttl" validate:"gt=0"`
}

type RenderConfig struct {
	Timezone      string              `mapstructure:"timezone" validate:"required,timezone"`
	Compress      bool                `mapstructure:"compress"`
	Letterhead    string              `mapstructure:"letterhead"`
	Author        string              `mapstructure:"author"`
	ReferenceCode ReferenceCodeConfig `mapstructure:"reference_code"`
}

// ReferenceCodeConfig draws a QR or PDF417 code on exported documents when
// Pattern is set. "{{id}}" in Pattern is replaced by the document id.
type ReferenceCodeConfig struct {
	Kind    string `mapstructure:"kind" validate:"omitempty,oneof=qr pdf417"`
	Pattern string `mapstructure:"pattern"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// Location returns the time zone quote dates are printed in.
func (r RenderConfig) Location() *time.Location {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
