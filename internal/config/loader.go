package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, as in CRMDOCS_HTTP_ADDR
// for http.addr.
const EnvPrefix = "CRMDOCS"

var defaults = map[string]any{
	"http.addr":                     ":8080",
	"http.read_timeout":             "15s",
	"http.write_timeout":            "60s",
	"http.shutdown_timeout":         "10s",
	"http.allowed_origins":          []string{},
	"database.dsn":                  "",
	"database.max_open":             10,
	"database.max_idle":             2,
	"database.max_lifetime":         "5m",
	"logo.timeout":                  "5s",
	"logo.max_bytes":                3 << 20,
	"logo.cache.addr":               "",
	"logo.cache.password":           "",
	"logo.cache.db":                 0,
	"logo.cache.ttl":                "1h",
	"render.timezone":               "America/Sao_Paulo",
	"render.compress":               true,
	"render.letterhead":             "",
	"render.author":                 "Comercial OS",
	"render.reference_code.kind":    "qr",
	"render.reference_code.pattern": "",
	"log.level":                     "info",
	"log.format":                    "json",
}

// Load reads config.yaml from the first of dirs that has one (./configs and
// . when dirs is empty), then applies CRMDOCS_* environment overrides. A
// .env file in the same directories is loaded into the environment first
// without replacing variables that are already set.
func Load(dirs ...string) (*Config, error) {
	if len(dirs) == 0 {
		dirs = []string{"./configs", "."}
	}
	loadEnvFile(dirs)

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, d := range dirs {
		v.AddConfigPath(d)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile(dirs []string) {
	for _, d := range dirs {
		path := filepath.Join(d, ".env")
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

var validate = validator.New()

func validateConfig(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return err
	}
	if cfg.Database.MaxIdle > cfg.Database.MaxOpen {
		return fmt.Errorf("database.max_idle (%d) exceeds database.max_open (%d)",
			cfg.Database.MaxIdle, cfg.Database.MaxOpen)
	}
	return nil
}
