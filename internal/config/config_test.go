package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAdminAllowList(t *testing.T) {
	cfg := HelpdeskConfig{AdminEmails: parseEmailSet(" Maria@Example.com , joao@example.com ,, ")}

	assert.True(t, cfg.IsAdmin("maria@example.com"))
	assert.True(t, cfg.IsAdmin("  MARIA@example.com "))
	assert.True(t, cfg.IsAdmin("joao@example.com"))
	assert.False(t, cfg.IsAdmin("ana@example.com"))
	assert.False(t, cfg.IsAdmin(""))
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "helpdesk-service", cfg.App.Name)
	assert.Equal(t, "America/Sao_Paulo", cfg.Helpdesk.DisplayTimezone)
	assert.Equal(t, 5*time.Second, cfg.Helpdesk.DashboardCacheTTL())

	loc, err := cfg.Helpdesk.DisplayLocation()
	require.NoError(t, err)
	assert.Equal(t, "America/Sao_Paulo", loc.String())
}

func TestLoadReadsHelpdeskEnv(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", "root@example.com")
	t.Setenv("UNLOCK_SECRET", "hunter2")
	t.Setenv("DASHBOARD_CACHE_TTL_SECONDS", "30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Helpdesk.IsAdmin("root@example.com"))
	assert.Equal(t, "hunter2", cfg.Helpdesk.UnlockSecret)
	assert.Equal(t, 30*time.Second, cfg.Helpdesk.DashboardCacheTTL())
}

func TestRequestTimeout(t *testing.T) {
	assert.Equal(t, 30*time.Second, AppConfig{RequestTimeoutSeconds: 30}.RequestTimeout())
	assert.Zero(t, AppConfig{RequestTimeoutSeconds: 0}.RequestTimeout())
}
