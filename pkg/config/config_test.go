package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.DB.LockTimeoutMS)
	assert.Equal(t, 5*time.Second, cfg.DB.LockTimeout())
	assert.Equal(t, "America/Sao_Paulo", cfg.App.Timezone)
	assert.False(t, cfg.DB.AutoMigrate)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_LOCK_TIMEOUT_MS", "750")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("APP_TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 750*time.Millisecond, cfg.DB.LockTimeout())
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, time.UTC, cfg.App.Location())
}

func TestLoad_LockTimeoutInvalido(t *testing.T) {
	t.Setenv("DB_LOCK_TIMEOUT_MS", "0")

	_, err := Load()
	assert.Error(t, err, "un timeout no positivo debe rechazarse")
}

func TestAppConfig_LocationInvalidaCaeAUTC(t *testing.T) {
	c := AppConfig{Timezone: "No/Existe"}
	assert.Equal(t, time.UTC, c.Location())
}

func TestDBConfig_DSN(t *testing.T) {
	c := DBConfig{User: "bar", Password: "p@ss", Host: "db", Port: 5432, DBName: "stock", SSLMode: "disable"}
	assert.Equal(t, "postgres://bar:p%40ss@db:5432/stock?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
