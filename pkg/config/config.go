package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// devJWTSecret signs tokens when ENV=development and no secret is set.
const devJWTSecret = "development-only-secret"

type Config struct {
	Port                    string
	Env                     string
	PostgresConnStr         string
	JWTSecret               string
	JWTTTL                  time.Duration
	FirebaseCredentialsPath string
	LogLevel                string
	MigrateOnStart          bool

	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	DefaultPageLimit int
	MaxPageLimit     int
}

// IsDevelopment reports whether error details may be shown to clients.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads .env (if present), then environment variables and an optional
// config.yaml, applying defaults for everything unset.
func Load() (*Config, error) {
	_ = godotenv.Load() // ignore error if no file

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("POSTGRES_CONN_STR", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", "72h")
	v.SetDefault("FIREBASE_CREDENTIALS_PATH", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MIGRATE_ON_START", true)
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("DEFAULT_PAGE_LIMIT", 20)
	v.SetDefault("MAX_PAGE_LIMIT", 100)

	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{
		Port:                    v.GetString("PORT"),
		Env:                     v.GetString("ENV"),
		PostgresConnStr:         v.GetString("POSTGRES_CONN_STR"),
		JWTSecret:               v.GetString("JWT_SECRET"),
		JWTTTL:                  parseDuration(v.GetString("JWT_TTL"), 72*time.Hour),
		FirebaseCredentialsPath: v.GetString("FIREBASE_CREDENTIALS_PATH"),
		LogLevel:                v.GetString("LOG_LEVEL"),
		MigrateOnStart:          v.GetBool("MIGRATE_ON_START"),
		DBMaxOpenConns:          v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:          v.GetInt("DB_MAX_IDLE_CONNS"),
		DBConnMaxLifetime:       parseDuration(v.GetString("DB_CONN_MAX_LIFETIME"), 30*time.Minute),
		DefaultPageLimit:        v.GetInt("DEFAULT_PAGE_LIMIT"),
		MaxPageLimit:            v.GetInt("MAX_PAGE_LIMIT"),
	}
	if cfg.JWTSecret == "" && cfg.IsDevelopment() {
		cfg.JWTSecret = devJWTSecret
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" && !c.IsDevelopment() {
		return errors.New("JWT_SECRET must be set outside development")
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	if c.DefaultPageLimit <= 0 || c.MaxPageLimit < c.DefaultPageLimit {
		return errors.New("page limits must satisfy 0 < DEFAULT_PAGE_LIMIT <= MAX_PAGE_LIMIT")
	}
	return nil
}

func parseDuration(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return def
}
