package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:3000", cfg.Server.Addr)
	assert.Equal(t, "data/attendance.db", cfg.Database.Path)
	assert.Equal(t, "data/uploads", cfg.Uploads.Dir)
	assert.Equal(t, "plain", cfg.Auth.PasswordScheme)
	assert.True(t, cfg.Scanner.Enabled)
	assert.Empty(t, cfg.Storage.Bucket)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ATTEND_SERVER_ADDR", "127.0.0.1:8080")
	t.Setenv("ATTEND_AUTH_PASSWORDSCHEME", "bcrypt")
	t.Setenv("ATTEND_SCANNER_ENABLED", "false")
	t.Setenv("ATTEND_STORAGE_BUCKET", "attendance-media")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, "bcrypt", cfg.Auth.PasswordScheme)
	assert.False(t, cfg.Scanner.Enabled)
	assert.Equal(t, "attendance-media", cfg.Storage.Bucket)
}
