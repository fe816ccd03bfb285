package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv         string `mapstructure:"APP_ENV"`
	HTTPAddr       string `mapstructure:"HTTP_ADDR"`
	Storage        string `mapstructure:"STORAGE"`
	DBHost         string `mapstructure:"DB_HOST"`
	DBPort         string `mapstructure:"DB_PORT"`
	DBUser         string `mapstructure:"DB_USER"`
	DBPassword     string `mapstructure:"DB_PASSWORD"`
	DBName         string `mapstructure:"DB_NAME"`
	DBSSLMode      string `mapstructure:"DB_SSLMODE"`
	MigrationsPath string `mapstructure:"MIGRATIONS_PATH"`

	// days an auction stays open before the closer picks it up
	CloseAfterDays  int    `mapstructure:"CLOSE_AFTER_DAYS"`
	CloseSchedule   string `mapstructure:"CLOSE_SCHEDULE"`
	PaymentSchedule string `mapstructure:"PAYMENT_SCHEDULE"`

	Notifier     string `mapstructure:"NOTIFIER"`
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`
}

var defaults = map[string]any{
	"APP_ENV":          "development",
	"HTTP_ADDR":        ":9000",
	"STORAGE":          "postgres",
	"DB_HOST":          "localhost",
	"DB_PORT":          "5432",
	"DB_USER":          "postgres",
	"DB_PASSWORD":      "",
	"DB_NAME":          "auctions",
	"DB_SSLMODE":       "disable",
	"MIGRATIONS_PATH":  "file://internal/shared/db/migrations/sql",
	"CLOSE_AFTER_DAYS": 7,
	"CLOSE_SCHEDULE":   "@daily",
	"PAYMENT_SCHEDULE": "0 30 0 * * *",
	"NOTIFIER":         "log",
	"SMTP_HOST":        "localhost",
	"SMTP_PORT":        25,
	"SMTP_USER":        "",
	"SMTP_PASSWORD":    "",
	"SMTP_FROM":        "leiloes@localhost",
}

// Load reads .env (if present) and the process environment, environment wins.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.CloseAfterDays < 1 {
		return fmt.Errorf("CLOSE_AFTER_DAYS must be at least 1, got %d", c.CloseAfterDays)
	}
	switch c.Storage {
	case "postgres", "memory":
	default:
		return fmt.Errorf("unknown STORAGE %q", c.Storage)
	}
	switch c.Notifier {
	case "log", "smtp":
	default:
		return fmt.Errorf("unknown NOTIFIER %q", c.Notifier)
	}
	return nil
}

func (c *Config) IsProduction() bool { return c.AppEnv == "production" }

// PostgresDSN builds the pgx/migrate connection url
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}
