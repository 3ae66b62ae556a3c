package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

// Config enumerates every option the process reads. Loaded once at startup;
// there is no hot-reload.
type Config struct {
	// Either a full DSN or the discrete DB_* parts below.
	DatabaseURL string `envconfig:"DATABASE_URL"`
	DBHost      string `envconfig:"DB_HOST" default:"localhost"`
	DBPort      string `envconfig:"DB_PORT" default:"5432"`
	DBUser      string `envconfig:"DB_USER" default:"postgres"`
	DBPassword  string `envconfig:"DB_PASSWORD"`
	DBName      string `envconfig:"DB_NAME" default:"storefront"`

	Port     string `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	RazorpayKeyID     string `envconfig:"RAZORPAY_KEY_ID" required:"true"`
	RazorpayKeySecret string `envconfig:"RAZORPAY_KEY_SECRET" required:"true"`
	RazorpayAPIURL    string `envconfig:"RAZORPAY_API_URL" default:"https://api.razorpay.com/v1"`

	SendgridAPIKey string `envconfig:"SENDGRID_API_KEY"`
	EmailSender    string `envconfig:"EMAIL_SENDER" default:"orders@autocosmic.shop"`

	StoreName     string `envconfig:"STORE_NAME" default:"AutoCosmic"`
	StoreCurrency string `envconfig:"STORE_CURRENCY" default:"INR"`
}

// DSN returns the postgres connection string, preferring DATABASE_URL.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}

var (
	config Config
	once   sync.Once
)

// Load reads .env (if present) and the environment into the Config. Fatal on
// missing required keys.
func Load(logger *logrus.Logger) *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		}

		if err := envconfig.Process("", &config); err != nil {
			logger.Fatalf("Failed to process configuration from environment variables: %v", err)
		}

		logger.Infof("Configuration loaded: port=%s log_level=%s currency=%s",
			config.Port, config.LogLevel, config.StoreCurrency)
		if config.SendgridAPIKey == "" {
			logger.Warn("SENDGRID_API_KEY not set, order-confirmation emails will fail")
		}
	})
	return &config
}
