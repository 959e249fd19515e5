package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const Production = "production"

type DatabaseOptions struct {
	Host       string `env:"DB_HOST" envDefault:"localhost"`
	Port       string `env:"DB_PORT" envDefault:"5432"`
	User       string `env:"DB_USER" envDefault:"postgres"`
	Password   string `env:"DB_PASSWORD" envDefault:"postgres"`
	Name       string `env:"DB_NAME" envDefault:"empledger"`
	SSLMode    string `env:"DB_SSLMODE" envDefault:"disable"`
	MaxRetries int    `env:"DB_MAX_RETRIES" envDefault:"5"`
}

func (d DatabaseOptions) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

type AssetOptions struct {
	Backend      string `env:"ASSET_BACKEND" envDefault:"local"`
	Dir          string `env:"ASSET_DIR" envDefault:"./public/assets"`
	MaxDimension int    `env:"ASSET_MAX_DIMENSION" envDefault:"1024"`
	MaxBytes     int64  `env:"ASSET_MAX_BYTES" envDefault:"5242880"`
	GCSBucket    string `env:"GCS_BUCKET"`
	GCSPrefix    string `env:"GCS_PREFIX" envDefault:"employees"`

	GCSCredentialsJSON string `env:"GCS_CREDENTIALS_JSON"`
}

type KafkaOptions struct {
	Broker  string `env:"KAFKA_BROKER"`
	GroupID string `env:"KAFKA_GROUP_ID" envDefault:"empledger-salary-ledger"`
}

type Config struct {
	Port               string        `env:"PORT" envDefault:"5000"`
	Env                string        `env:"APP_ENV" envDefault:"development"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFile            string        `env:"LOG_FILE"`
	RedisAddr          string        `env:"REDIS_ADDR"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
	RateLimitRPS       float64       `env:"RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst     int           `env:"RATE_LIMIT_BURST" envDefault:"20"`
	OutboxPollInterval time.Duration `env:"OUTBOX_POLL_INTERVAL" envDefault:"3s"`
	AutoMigrate        bool          `env:"AUTO_MIGRATE" envDefault:"true"`
	MetricsAddr        string        `env:"METRICS_ADDR"`

	Database DatabaseOptions
	Asset    AssetOptions
	Kafka    KafkaOptions
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, Production)
}

// Load reads .env files that exist and parses the environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	existing := make([]string, 0, len(envFiles))
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return nil, fmt.Errorf("load env files: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
