package config

import (
	"os"
	"strings"
	"time"
)

// Config holds the runtime configuration for the storefront API.
type Config struct {
	Environment string
	HTTPPort    string

	// DatabaseDSN points the SQLite driver at the backing store. The
	// default keeps every table in process memory, so state dies with
	// the process exactly like the original deployment.
	DatabaseDSN string

	SigningKey         string
	TokenTTL           time.Duration
	Issuer             string
	Audience           []string
	CodeTTL            time.Duration
	DefaultPhoneRegion string

	SendGridAPIKey string
	MailFrom       string
	MailFromName   string
}

// Load reads configuration from environment variables with defaults that
// match the original deployment.
func Load() Config {
	return Config{
		Environment:        getEnv("APP_ENV", "development"),
		HTTPPort:           getEnv("PORT", "3000"),
		DatabaseDSN:        getEnv("DATABASE_DSN", "file::memory:?cache=shared"),
		SigningKey:         getEnv("SECRET", "ongod_secret_key"),
		TokenTTL:           getDuration("TOKEN_TTL", 7*24*time.Hour),
		Issuer:             getEnv("TOKEN_ISSUER", "ongod-storefront"),
		Audience:           getList("TOKEN_AUDIENCE", nil),
		CodeTTL:            getDuration("VERIFICATION_CODE_TTL", 15*time.Minute),
		DefaultPhoneRegion: getEnv("PHONE_REGION", "NG"),
		SendGridAPIKey:     os.Getenv("SENDGRID_API_KEY"),
		MailFrom:           getEnv("MAIL_FROM", "no-reply@ongodgadgets.com"),
		MailFromName:       getEnv("MAIL_FROM_NAME", "ONGOD PHONE GADGET"),
	}
}

// IsProduction reports whether the service runs with production settings.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getList(key string, def []string) []string {
	if v, ok := os.LookupEnv(key); ok {
		var cleaned []string
		for _, p := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cleaned = append(cleaned, trimmed)
			}
		}
		if len(cleaned) > 0 {
			return cleaned
		}
	}
	return def
}
