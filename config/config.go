package config

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL              string   `env:"DATABASE_URL" envDefault:"sqlite:///./time_tracker.db"`
	TestDatabaseURL          string   `env:"TEST_DATABASE_URL" envDefault:"sqlite:///./test_time_tracker.db"`
	SecretKey                string   `env:"SECRET_KEY"`
	AccessTokenExpireMinutes int      `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"1440"`
	AllowedOrigins           []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	SQLEcho                  bool     `env:"SQL_ECHO" envDefault:"false"`
	LogLevel                 string   `env:"LOG_LEVEL" envDefault:"info"`
	SMTPHost                 string   `env:"SMTP_HOST"`
	SMTPPort                 int      `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser                 string   `env:"SMTP_USER"`
	SMTPPassword             string   `env:"SMTP_PASSWORD"`
	SMTPFrom                 string   `env:"SMTP_FROM"`
	Port                     string   `env:"PORT" envDefault:"8080"`
}

// Load reads the process environment into a Config. A .env file is loaded
// first when present so the template in .env.example works as-is.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Tokens signed with an ephemeral secret become invalid on restart.
	if cfg.SecretKey == "" {
		cfg.SecretKey = randomSecret()
		log.Println("SECRET_KEY not set, using a generated secret")
	}

	JWTSecret = []byte(cfg.SecretKey)
	JWTExpiration = time.Duration(cfg.AccessTokenExpireMinutes) * time.Minute

	return cfg, nil
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatal("failed to generate secret key:", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}
