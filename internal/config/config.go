package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

var (
	errServerPortEmpty  = errors.New("server.port is required")
	errUnknownStorage   = errors.New("storage.driver must be memory or postgres")
	errDBUserEmpty      = errors.New("postgres.user is required")
	errDBNameEmpty      = errors.New("postgres.db_name is required")
	errDBHostEmpty      = errors.New("postgres.host is required")
	errUnknownAppEnv    = errors.New("app.env must be dev or prod")
	errNegativeTimeouts = errors.New("timeouts must be positive")
)

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type HTTPConfig struct {
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver"`
}

type PostgresConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	DBName        string `mapstructure:"db_name"`
	SSLMode       string `mapstructure:"ssl_mode"`
	MigrationsDir string `mapstructure:"migrations_dir"`
	MaxConns      int32  `mapstructure:"max_conns"`
	MinConns      int32  `mapstructure:"min_conns"`
}

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

// LoadConfig читает .env (если есть) и переменные окружения.
func LoadConfig(envFile string) (*Config, error) {
	if envFile != "" {
		envMap, err := godotenv.Read(envFile)
		if err == nil {
			for k, val := range envMap {
				// Переменные окружения важнее файла
				if _, exists := os.LookupEnv(k); !exists {
					_ = os.Setenv(k, val)
				}
			}
		}
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Storage.Driver = strings.ToLower(cfg.Storage.Driver)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "dev")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("http.request_timeout", 5*time.Second)

	v.SetDefault("storage.driver", StorageMemory)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "postgres")
	v.SetDefault("postgres.db_name", "emtool")
	v.SetDefault("postgres.ssl_mode", "disable")
	v.SetDefault("postgres.migrations_dir", "migrations")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 2)
}

func bindEnvs(v *viper.Viper) {
	keys := []string{
		"app.env",
		"server.host",
		"server.port",
		"server.shutdown_timeout",
		"http.request_timeout",
		"storage.driver",
		"postgres.host",
		"postgres.port",
		"postgres.user",
		"postgres.password",
		"postgres.db_name",
		"postgres.ssl_mode",
		"postgres.migrations_dir",
		"postgres.max_conns",
		"postgres.min_conns",
	}

	for _, k := range keys {
		_ = v.BindEnv(k)
	}
}

func (c *Config) Validate() error {
	if c.App.Env != "dev" && c.App.Env != "prod" {
		return errUnknownAppEnv
	}
	if c.Server.Port == 0 {
		return errServerPortEmpty
	}
	if c.Server.ShutdownTimeout <= 0 || c.HTTP.RequestTimeout <= 0 {
		return errNegativeTimeouts
	}

	switch c.Storage.Driver {
	case StorageMemory:
		return nil
	case StoragePostgres:
	default:
		return errUnknownStorage
	}

	// Для postgres нужны реквизиты подключения
	if c.Postgres.Host == "" {
		return errDBHostEmpty
	}
	if c.Postgres.User == "" {
		return errDBUserEmpty
	}
	if c.Postgres.DBName == "" {
		return errDBNameEmpty
	}
	return nil
}

func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// URL собирает строку подключения в формате, который понимают и pgx, и migrate.
func (p PostgresConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:     "/" + p.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(p.SSLMode),
	}
	return u.String()
}
