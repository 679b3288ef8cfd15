package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"ADDR", "DATABASE_URL", "SESSION_LIFETIME_HOURS", "REMEMBER_LIFETIME_HOURS", "PICTURE_DIR", "SECURE_COOKIES"} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 24*time.Hour, cfg.SessionLifetime)
	assert.Equal(t, 720*time.Hour, cfg.RememberLifetime)
	assert.Equal(t, "data/profile_pics", cfg.PictureDir)
	assert.False(t, cfg.SecureCookies)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("DATABASE_URL", "postgres://db:5432/blog")
	t.Setenv("SESSION_LIFETIME_HOURS", "2")
	t.Setenv("REMEMBER_LIFETIME_HOURS", "48")
	t.Setenv("PICTURE_DIR", "/tmp/pics")
	t.Setenv("SECURE_COOKIES", "true")

	cfg := LoadConfig()
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "postgres://db:5432/blog", cfg.DatabaseURL)
	assert.Equal(t, 2*time.Hour, cfg.SessionLifetime)
	assert.Equal(t, 48*time.Hour, cfg.RememberLifetime)
	assert.Equal(t, "/tmp/pics", cfg.PictureDir)
	assert.True(t, cfg.SecureCookies)
}

func TestLoadConfigBadHours(t *testing.T) {
	t.Setenv("SESSION_LIFETIME_HOURS", "not-a-number")
	t.Setenv("REMEMBER_LIFETIME_HOURS", "-3")

	cfg := LoadConfig()
	assert.Equal(t, 24*time.Hour, cfg.SessionLifetime)
	assert.Equal(t, 720*time.Hour, cfg.RememberLifetime)
}
