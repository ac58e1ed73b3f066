package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App struct {
		Name      string `koanf:"name"`
		LogLevel  string `koanf:"log_level"`
		DebugAddr string `koanf:"debug_addr"`
	} `koanf:"app"`

	NATS struct {
		URL            string        `koanf:"url"`
		RequestTimeout time.Duration `koanf:"request_timeout"`
		HandleTimeout  time.Duration `koanf:"handle_timeout"`
	} `koanf:"nats"`

	Postgres struct {
		Conn            string        `koanf:"conn"`
		MaxOpenConns    int           `koanf:"max_open_conns"`
		MaxIdleConns    int           `koanf:"max_idle_conns"`
		ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	} `koanf:"postgres"`

	Orders struct {
		Currency  string `koanf:"currency"`
		PageLimit int    `koanf:"page_limit"`
	} `koanf:"orders"`
}

// Load reads the YAML file at path and overlays environment variables
// (prefix ORDERS_, nested keys with __), e.g. ORDERS_POSTGRES__CONN.
func Load(path string) (Config, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := k.Load(env.Provider("ORDERS_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "ORDERS_")
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "orders-ms"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "INFO"
	}
	if c.NATS.RequestTimeout == 0 {
		c.NATS.RequestTimeout = 5 * time.Second
	}
	if c.NATS.HandleTimeout == 0 {
		c.NATS.HandleTimeout = 10 * time.Second
	}
	if c.Postgres.MaxOpenConns == 0 {
		c.Postgres.MaxOpenConns = 5
	}
	if c.Postgres.MaxIdleConns == 0 {
		c.Postgres.MaxIdleConns = 5
	}
	if c.Orders.Currency == "" {
		c.Orders.Currency = "usd"
	}
	if c.Orders.PageLimit == 0 {
		c.Orders.PageLimit = 10
	}
}

func (c Config) Validate() error {
	if c.NATS.URL == "" {
		return fmt.Errorf("nats.url required")
	}
	if c.Postgres.Conn == "" {
		return fmt.Errorf("postgres.conn required")
	}
	return nil
}
