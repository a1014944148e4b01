package config

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const EnvProduction = "production"

type Config struct {
	Env         string `env:"APP_ENV,default=development"`
	HTTPAddr    string `env:"HTTP_ADDR,default=:5000"`
	MetricsAddr string `env:"METRICS_ADDR"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`

	DBDriver    string `env:"DB_DRIVER,default=postgres"`
	DatabaseURL string `env:"DATABASE_URL"`

	JWTSecret  string        `env:"JWT_SECRET"`
	TokenTTL   time.Duration `env:"TOKEN_TTL,default=3h"`
	BcryptCost int           `env:"BCRYPT_COST,default=12"`

	ActivationTTL      time.Duration `env:"ACTIVATION_TTL,default=24h"`
	RequireActiveLogin bool          `env:"REQUIRE_ACTIVE_LOGIN,default=false"`

	FrontendHost string `env:"FRONTEND_HOST"`

	KafkaBrokers []string `env:"KAFKA_BROKERS"`
	KafkaTopic   string   `env:"KAFKA_TOPIC,default=user_events"`
}

func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func (c Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("missing required env DATABASE_URL"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("missing required env JWT_SECRET"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	return errors.Join(errs...)
}

// Load reads .env when present, then the process environment.
func Load(ctx context.Context) (Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v. Using system environment variables", err)
	}
	return FromLookuper(ctx, envconfig.OsLookuper())
}

func FromLookuper(ctx context.Context, l envconfig.Lookuper) (Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &cfg, l); err != nil {
		return Config{}, fmt.Errorf("parsing env vars: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
