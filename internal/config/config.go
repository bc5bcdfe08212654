package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "dev-secret-change-me"

type Config struct {
	Env  string
	Port string

	DatabaseURL string
	SQLitePath  string
	AMQPURL     string

	JWTSecret      string
	AllowedOrigins []string

	FacebookPixelID       string
	FacebookAccessToken   string
	FacebookTestEventCode string
	ConversionCurrency    string

	MailHost     string
	MailPort     int
	MailUser     string
	MailPass     string
	MailFrom     string
	LeadNotifyTo []string

	LogLevel           string
	RateLimitPerMinute int
}

// Load lê o .env (se existir) e depois as variáveis de ambiente.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (*Config, error) {
	mailPort, err := strconv.Atoi(getEnv("MAIL_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("MAIL_PORT inválida: %w", err)
	}
	rateLimit, err := strconv.Atoi(getEnv("RATE_LIMIT_PER_MINUTE", "10"))
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE inválido: %w", err)
	}

	cfg := &Config{
		Env:                   getEnv("APP_ENV", "development"),
		Port:                  getEnv("PORT", "8080"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		SQLitePath:            getEnv("SQLITE_PATH", "leads.db"),
		AMQPURL:               os.Getenv("AMQP_URL"),
		JWTSecret:             getEnv("JWT_SECRET", defaultJWTSecret),
		AllowedOrigins:        splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		FacebookPixelID:       os.Getenv("FACEBOOK_PIXEL_ID"),
		FacebookAccessToken:   os.Getenv("FACEBOOK_ACCESS_TOKEN"),
		FacebookTestEventCode: os.Getenv("FACEBOOK_TEST_EVENT_CODE"),
		ConversionCurrency:    strings.ToUpper(getEnv("CONVERSION_CURRENCY", "USD")),
		MailHost:              os.Getenv("MAIL_HOST"),
		MailPort:              mailPort,
		MailUser:              os.Getenv("MAIL_USER"),
		MailPass:              os.Getenv("MAIL_PASS"),
		MailFrom:              os.Getenv("MAIL_FROM"),
		LeadNotifyTo:          splitList(os.Getenv("LEAD_NOTIFY_TO")),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		RateLimitPerMinute:    rateLimit,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) FacebookEnabled() bool {
	return c.FacebookPixelID != "" && c.FacebookAccessToken != ""
}

func (c *Config) MailEnabled() bool {
	return c.MailHost != "" && len(c.LeadNotifyTo) > 0
}

func (c *Config) Validate() error {
	var errs []error
	if c.IsProduction() && c.JWTSecret == defaultJWTSecret {
		errs = append(errs, errors.New("JWT_SECRET é obrigatório em produção"))
	}
	if c.RateLimitPerMinute <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_PER_MINUTE deve ser positivo"))
	}
	if len(c.ConversionCurrency) != 3 {
		errs = append(errs, fmt.Errorf("CONVERSION_CURRENCY inválida: %q", c.ConversionCurrency))
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
