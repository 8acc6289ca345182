package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults_FillsMissingSections(t *testing.T) {
	cfg := &Config{Session: &SessionConfig{Secret: "0123456789abcdef"}}

	require.NoError(t, applyDefaults(cfg))

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, 6, cfg.Auth.MinPasswordLength)
	assert.Equal(t, "accounts_session", cfg.Session.CookieName)
	assert.Equal(t, 7*24*time.Hour, cfg.Session.MaxAge)
	assert.Equal(t, "UTC", cfg.Dashboard.Timezone)
	assert.Equal(t, 6, cfg.Dashboard.MonthsBack)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 200*time.Millisecond, cfg.Persistence.SlowQueryThreshold)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Auth:      &AuthConfig{BcryptCost: 12, MinPasswordLength: 10},
		Session:   &SessionConfig{Secret: "s", CookieName: "sid", MaxAge: time.Hour},
		Dashboard: &DashboardConfig{Timezone: "UTC", MonthsBack: 12},
	}

	require.NoError(t, applyDefaults(cfg))

	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, 10, cfg.Auth.MinPasswordLength)
	assert.Equal(t, "sid", cfg.Session.CookieName)
	assert.Equal(t, time.Hour, cfg.Session.MaxAge)
	assert.Equal(t, 12, cfg.Dashboard.MonthsBack)
}

func TestApplyDefaults_RequiresSessionSecret(t *testing.T) {
	err := applyDefaults(&Config{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "session.secret")
}

func TestApplyDefaults_RejectsUnknownTimezone(t *testing.T) {
	cfg := &Config{
		Session:   &SessionConfig{Secret: "s"},
		Dashboard: &DashboardConfig{Timezone: "Mars/Olympus_Mons"},
	}

	err := applyDefaults(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "dashboard.timezone")
}
