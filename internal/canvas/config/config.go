// Package config loads the editor server configuration from the
// environment, with an optional .env file for local development.
package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Layout store backends.
const (
	LayoutBackendMemory   = "memory"
	LayoutBackendFile     = "file"
	LayoutBackendPostgres = "postgres"
)

// Config holds all runtime settings for the editor server.
type Config struct {
	ServerAddress string `env:"AGENTCANVAS_SERVER_ADDRESS" envDefault:":8191"`
	ProjectsDir   string `env:"AGENTCANVAS_PROJECTS_DIR" envDefault:"./projects"`
	RootFilename  string `env:"AGENTCANVAS_ROOT_FILENAME" envDefault:"root_agent.yaml"`

	LayoutBackend string `env:"AGENTCANVAS_LAYOUT_BACKEND" envDefault:"file"`
	LayoutDir     string `env:"AGENTCANVAS_LAYOUT_DIR" envDefault:"./.agentcanvas/layouts"`
	DatabaseURL   string `env:"AGENTCANVAS_DATABASE_URL"`

	CORSOrigins   []string `env:"AGENTCANVAS_CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	EnableMetrics bool     `env:"AGENTCANVAS_ENABLE_METRICS" envDefault:"true"`
	EnableWatcher bool     `env:"AGENTCANVAS_ENABLE_WATCHER" envDefault:"true"`
}

// NewConfig loads configuration from the environment. A missing .env file
// is fine; a malformed environment is a programming error and panics.
func NewConfig() *Config {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}
	return &cfg
}
