package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ENV", "development")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 72*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 30*time.Minute, cfg.DBConnMaxLifetime)
	assert.Equal(t, 20, cfg.DefaultPageLimit)
	assert.Equal(t, 100, cfg.MaxPageLimit)
	assert.True(t, cfg.MigrateOnStart)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadFromEnvAndFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("PORT: \"9000\"\nLOG_LEVEL: debug\n"), 0o600))
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("MIGRATE_ON_START", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.False(t, cfg.MigrateOnStart)
	assert.False(t, cfg.IsDevelopment())
}

func TestValidate(t *testing.T) {
	base := Config{Env: "production", JWTSecret: "x", JWTTTL: time.Hour, DefaultPageLimit: 20, MaxPageLimit: 100}
	require.NoError(t, base.Validate())

	noSecret := base
	noSecret.JWTSecret = ""
	require.Error(t, noSecret.Validate())

	badPages := base
	badPages.MaxPageLimit = 10
	require.Error(t, badPages.Validate())
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
