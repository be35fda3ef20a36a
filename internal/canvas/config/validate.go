package config

import "fmt"

// Validate performs runtime validations on the loaded configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	switch cfg.LayoutBackend {
	case LayoutBackendMemory, LayoutBackendFile, LayoutBackendPostgres:
	default:
		return fmt.Errorf("unknown layout backend %q", cfg.LayoutBackend)
	}
	if cfg.LayoutBackend == LayoutBackendPostgres && cfg.DatabaseURL == "" {
		return fmt.Errorf("database URL must be specified when the postgres layout backend is enabled")
	}
	if cfg.ProjectsDir == "" {
		return fmt.Errorf("projects dir must not be empty")
	}
	if cfg.RootFilename == "" {
		return fmt.Errorf("root filename must not be empty")
	}
	return nil
}
