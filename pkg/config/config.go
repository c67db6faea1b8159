package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	AuthProviderJWT      = "jwt"
	AuthProviderFirebase = "firebase"

	defaultJWTSecret = "supersecretjwtkey"
)

type Config struct {
	Port                    string `mapstructure:"PORT"`
	Env                     string `mapstructure:"ENV"`
	LogLevel                string `mapstructure:"LOG_LEVEL"`
	PostgresConnStr         string `mapstructure:"POSTGRES_CONN_STR"`
	MongoURI                string `mapstructure:"MONGO_URI"`
	MongoDatabase           string `mapstructure:"MONGO_DATABASE"`
	RedisURL                string `mapstructure:"REDIS_URL"`
	JWTSecret               string `mapstructure:"JWT_SECRET"`
	AuthProvider            string `mapstructure:"AUTH_PROVIDER"`
	FirebaseCredentialsPath string `mapstructure:"FIREBASE_CREDENTIALS_PATH"`
	MetricsPort             string `mapstructure:"METRICS_PORT"`
}

// Load reads .env when present, then the process environment, over defaults
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, assuming environment variables are set.")
	}
	return loadFrom(viper.New())
}

func loadFrom(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("POSTGRES_CONN_STR", "")
	v.SetDefault("MONGO_URI", "")
	v.SetDefault("MONGO_DATABASE", "socialmedia")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("AUTH_PROVIDER", AuthProviderJWT)
	v.SetDefault("FIREBASE_CREDENTIALS_PATH", "")
	v.SetDefault("METRICS_PORT", "9090")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	cfg.AuthProvider = strings.ToLower(strings.TrimSpace(cfg.AuthProvider))
	return &cfg, nil
}

// IsProduction reports whether ENV names a production deployment
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// Validate checks the settings a server needs before it starts
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.PostgresConnStr == "" {
		return errors.New("POSTGRES_CONN_STR environment variable not set")
	}
	switch c.AuthProvider {
	case AuthProviderJWT:
		if c.JWTSecret == "" {
			return errors.New("JWT_SECRET is required")
		}
		if c.IsProduction() && c.JWTSecret == defaultJWTSecret {
			return errors.New("JWT_SECRET must be changed from the default value in production")
		}
	case AuthProviderFirebase:
		if c.FirebaseCredentialsPath == "" {
			return errors.New("FIREBASE_CREDENTIALS_PATH is required when AUTH_PROVIDER is firebase")
		}
	default:
		return fmt.Errorf("unknown AUTH_PROVIDER %q (want %s or %s)", c.AuthProvider, AuthProviderJWT, AuthProviderFirebase)
	}
	return nil
}
