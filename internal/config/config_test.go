package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "mealmax-smoke", cfg.Name)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "http://localhost:5000/api", cfg.BaseURL)
	assert.False(t, cfg.EchoJSON)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, time.Duration(0), cfg.WaitReady)
	assert.Equal(t, "classic", cfg.Profile)
	assert.Empty(t, cfg.ProfileFile)
	assert.Empty(t, cfg.ReportPath)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SMOKE_BASE_URL", "https://meals.example.com/api")
	t.Setenv("SMOKE_ECHO_JSON", "true")
	t.Setenv("SMOKE_HTTP_TIMEOUT", "12s")
	t.Setenv("SMOKE_WAIT_READY", "30s")
	t.Setenv("SMOKE_PROFILE", "leaderboard")
	t.Setenv("SMOKE_REPORT", "out/run.xlsx")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "https://meals.example.com/api", cfg.BaseURL)
	assert.True(t, cfg.EchoJSON)
	assert.Equal(t, 12*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 30*time.Second, cfg.WaitReady)
	assert.Equal(t, "leaderboard", cfg.Profile)
	assert.Equal(t, "out/run.xlsx", cfg.ReportPath)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("SMOKE_HTTP_TIMEOUT", "soon")

	_, err := Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
