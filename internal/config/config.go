package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	SMTP     SMTPConfig
	Google   GoogleConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	BaseURL     string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type JWTConfig struct {
	SecretKey string
	ExpiresIn time.Duration
	CookieTTL time.Duration
}

type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Environment, "production")
}

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		BaseURL:     opt("APP_BASE_URL"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
	}

	cfg.JWT = JWTConfig{
		SecretKey: req("JWT_SECRET_KEY"),
		ExpiresIn: durationOrDefault(opt("JWT_EXPIRES_IN"), 24*time.Hour),
		CookieTTL: durationOrDefault(opt("JWT_COOKIE_EXPIRES_IN"), 24*time.Hour),
	}

	cfg.SMTP = SMTPConfig{
		Host: opt("SMTP_HOST"),
		Port: opt("SMTP_PORT"),
		User: opt("SMTP_USER"),
		Pass: opt("SMTP_PASS"),
		From: opt("MAIL_FROM"),
	}

	cfg.Google = GoogleConfig{
		ClientID:     opt("GOOGLE_CLIENT_ID"),
		ClientSecret: opt("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  opt("GOOGLE_REDIRECT_URL"),
	}
	if cfg.Google.RedirectURL == "" && cfg.App.BaseURL != "" {
		cfg.Google.RedirectURL = strings.TrimRight(cfg.App.BaseURL, "/") + "/api/v1/auth/google/callback"
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func durationOrDefault(raw string, def time.Duration) time.Duration {
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
