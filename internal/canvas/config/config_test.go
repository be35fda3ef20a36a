package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, ":8191", cfg.ServerAddress)
	assert.Equal(t, "./projects", cfg.ProjectsDir)
	assert.Equal(t, "root_agent.yaml", cfg.RootFilename)
	assert.Equal(t, LayoutBackendFile, cfg.LayoutBackend)
	assert.True(t, cfg.EnableMetrics)
}

func TestNewConfigRespectsEnvOverride(t *testing.T) {
	t.Setenv("AGENTCANVAS_SERVER_ADDRESS", ":9999")
	t.Setenv("AGENTCANVAS_CORS_ORIGINS", "http://a.test,http://b.test")

	cfg := NewConfig()
	assert.Equal(t, ":9999", cfg.ServerAddress)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestValidate(t *testing.T) {
	require.Error(t, Validate(nil))

	cfg := NewConfig()
	require.NoError(t, Validate(cfg))

	cfg.LayoutBackend = "etcd"
	assert.Error(t, Validate(cfg))

	cfg.LayoutBackend = LayoutBackendPostgres
	cfg.DatabaseURL = ""
	assert.Error(t, Validate(cfg))

	cfg.DatabaseURL = "postgres://localhost/canvas"
	assert.NoError(t, Validate(cfg))
}
