package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

// knownWeakSecrets are placeholders long enough to pass the length check.
var knownWeakSecrets = []string{
	"change-me-to-a-long-random-secret-value",
	"your-admin-secret-at-least-32-characters",
	"replace-with-output-of-gen-secret-script",
	"00000000000000000000000000000000",
}

type Config struct {
	Port                int      `env:"PORT" envDefault:"8080"`
	AppEnv              string   `env:"APP_ENV" envDefault:"production"`
	LogLevel            string   `env:"LOG_LEVEL" envDefault:"info"`
	AdminEmail          string   `env:"ADMIN_EMAIL"`
	AdminSecret         string   `env:"ADMIN_SECRET"`
	DatabaseURL         string   `env:"DATABASE_URL"`
	RedisURL            string   `env:"REDIS_URL"`
	PostmarkServerToken string   `env:"POSTMARK_SERVER_TOKEN"`
	EmailFrom           string   `env:"EMAIL_FROM"`
	ContactWebhookURL   string   `env:"CONTACT_WEBHOOK_URL"`
	CORSAllowedOrigins  []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	AdminStaticDir      string   `env:"ADMIN_STATIC_DIR" envDefault:"static/admin"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// IsDevelopment reports whether the process runs as a local development
// server. Session cookies drop the Secure flag only in this mode.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, "development")
}

func (c *Config) ChallengeTTL() time.Duration {
	return ChallengeTTL
}

func (c *Config) Validate(isProduction bool) error {
	if c.AdminEmail != "" && !strings.Contains(c.AdminEmail, "@") {
		return fmt.Errorf("ADMIN_EMAIL must be an email address")
	}

	if isProduction {
		if err := validateSecret("ADMIN_SECRET", c.AdminSecret); err != nil {
			return err
		}

		if c.DatabaseURL == "" {
			log.Warn().Msg("DATABASE_URL is empty in production: content reads serve defaults and writes are refused")
		}
		if c.PostmarkServerToken == "" || c.EmailFrom == "" {
			log.Warn().Msg("POSTMARK_SERVER_TOKEN or EMAIL_FROM is empty in production: admin login codes cannot be delivered")
		}
		if strings.HasPrefix(c.RedisURL, "redis://") {
			log.Warn().Msg("REDIS_URL uses redis:// (not TLS) in production: consider using rediss://")
		}
	}

	if c.AdminEmail == "" {
		log.Warn().Msg("ADMIN_EMAIL is empty: every login challenge will be refused")
	}

	return nil
}

func validateSecret(name, value string) error {
	if len(value) < 32 {
		return fmt.Errorf("%s must be at least 32 characters in production (generate with: go run scripts/gen-secret.go)", name)
	}
	for _, weak := range knownWeakSecrets {
		if strings.EqualFold(value, weak) {
			return fmt.Errorf("%s is a known weak default; set a strong secret in production", name)
		}
	}
	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
