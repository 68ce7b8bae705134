package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
password = "from-file"

[redis]
enabled = true
ttl = 60

[scheduler]
enabled = true
retention_days = 30
`)

	t.Setenv(EnvDBPassword, "from-env")
	t.Setenv(EnvAdminTokenHash, " $2a$10$hash ")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "calendar", cfg.Database.DBName)
	assert.Equal(t, "$2a$10$hash", cfg.Admin.TokenHash)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, int64(60), int64(cfg.Redis.TTLDuration().Seconds()))
	assert.Equal(t, "0 3 * * *", cfg.Scheduler.PruneCron)
	assert.Equal(t, 30, cfg.Scheduler.RetentionDays)
	assert.Equal(t, "main", cfg.Calendar.DefaultSlug)
	assert.Equal(t, "Europe/Warsaw", cfg.Calendar.Timezone)
	assert.Contains(t, cfg.Database.DSN(), "password=from-env")
}

func TestLoad_Invalid(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 0

[calendar]
timezone = "Mars/Olympus"
`)

	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "http_port")
	assert.Contains(t, err.Error(), "calendar.timezone")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
