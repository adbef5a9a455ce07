// Package logger builds the process-wide zap logger and scrubs sensitive values
// out of free-form log text.
package logger

import (
	"fmt"
	"regexp"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	emailRegex  = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	tokenRegex  = regexp.MustCompile(`eyJ[^\s"]+`)
	bearerRegex = regexp.MustCompile(`(?i)bearer\s+[^\s"]+`)
	walletRegex = regexp.MustCompile(`0[xX][0-9a-fA-F]{40}`)
)

// New returns a JSON logger in production and a console logger otherwise.
// level is a zap level name; an empty level means info.
func New(env, level string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}

	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// Anonymize replaces sensitive information in logs (emails, tokens, wallets)
func Anonymize(s string) string {
	s = emailRegex.ReplaceAllString(s, "[REDACTED_EMAIL]")
	s = bearerRegex.ReplaceAllString(s, "Bearer [REDACTED_TOKEN]")
	s = tokenRegex.ReplaceAllString(s, "[REDACTED_TOKEN]")
	s = walletRegex.ReplaceAllString(s, "[REDACTED_WALLET]")
	return s
}

// Err is zap.Error with the message passed through Anonymize.
func Err(err error) zap.Field {
	if err == nil {
		return zap.Skip()
	}
	return zap.String("error", Anonymize(err.Error()))
}
