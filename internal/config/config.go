package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTPAddr       string        `envconfig:"HTTP_ADDR" default:":8081"`
	APIBaseURL     string        `envconfig:"API_BASE_URL" default:"http://localhost:8080/api"`
	PublicOrigin   string        `envconfig:"PUBLIC_ORIGIN" default:"http://localhost:4200"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"15s"`
	AllowedOrigins []string      `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:4200"`

	DB    DBConfig    `envconfig:"DB"`
	Redis RedisConfig `envconfig:"REDIS"`

	SessionTTL   time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	CookieName   string        `envconfig:"COOKIE_NAME" default:"storefront_session"`
	SecureCookie bool          `envconfig:"SECURE_COOKIE" default:"false"`

	Checkout CheckoutConfig `envconfig:"CHECKOUT"`

	LogFile string `envconfig:"LOG_FILE" default:"./logs/storefront.log"`

	BreakerMaxFailures uint32        `envconfig:"BREAKER_MAX_FAILURES" default:"5"`
	BreakerOpenTimeout time.Duration `envconfig:"BREAKER_OPEN_TIMEOUT" default:"30s"`

	CountdownInterval    time.Duration `envconfig:"COUNTDOWN_INTERVAL" default:"1s"`
	AttemptSweepInterval time.Duration `envconfig:"ATTEMPT_SWEEP_INTERVAL" default:"1m"`
}

type DBConfig struct {
	Host     string `envconfig:"HOST" default:"localhost"`
	Port     string `envconfig:"PORT" default:"5432"`
	User     string `envconfig:"USERNAME" default:"storefront"`
	Password string `envconfig:"PASSWORD" default:"storefront"`
	Name     string `envconfig:"DATABASE" default:"storefront"`
	Schema   string `envconfig:"SCHEMA" default:"public"`
}

// DSN is the pgx connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.Schema,
	)
}

type RedisConfig struct {
	Addr     string `envconfig:"ADDR" default:"localhost:6379"`
	Password string `envconfig:"PASSWORD" default:""`
	DB       int    `envconfig:"DB" default:"0"`
}

// CheckoutConfig holds the fixed values the checkout widget is opened with.
type CheckoutConfig struct {
	ExpirationMinutes int    `envconfig:"EXPIRATION_MINUTES" default:"20"`
	MerchantName      string `envconfig:"MERCHANT_NAME" default:"CoreShop"`
	MerchantLogo      string `envconfig:"MERCHANT_LOGO" default:""`
	ButtonColor       string `envconfig:"BUTTON_COLOR" default:"#D80000"`
}

func (c CheckoutConfig) Expiration() time.Duration {
	return time.Duration(c.ExpirationMinutes) * time.Minute
}

const prefix = "STOREFRONT"

// Load reads .env when present, then the STOREFRONT_* environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	cfg.PublicOrigin = strings.TrimRight(cfg.PublicOrigin, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("STOREFRONT_HTTP_ADDR is required"))
	}
	if c.APIBaseURL == "" {
		errs = append(errs, errors.New("STOREFRONT_API_BASE_URL is required"))
	}
	if c.PublicOrigin == "" {
		errs = append(errs, errors.New("STOREFRONT_PUBLIC_ORIGIN is required"))
	}
	if c.Checkout.ExpirationMinutes < 1 {
		errs = append(errs, errors.New("STOREFRONT_CHECKOUT_EXPIRATION_MINUTES must be positive"))
	}
	return errors.Join(errs...)
}
