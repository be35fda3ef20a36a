package cli

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/api"
	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/config"
	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/layout"
	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/logging"
	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/project"
)

var serveDebug bool

// ServeCmd runs the editor API server until interrupted.
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the editor API server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.NewConfig()
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		logger := logging.NewLogger("agentcanvas")
		if serveDebug {
			logger = logging.NewDevelopmentLogger("agentcanvas")
		}
		defer func() { _ = logger.Sync() }()

		projects, err := project.NewManager(cfg.ProjectsDir, cfg.RootFilename)
		if err != nil {
			return err
		}
		layouts, err := openLayoutStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if cfg.EnableWatcher {
			if err := watchProjects(ctx, cfg, projects, logger); err != nil {
				logger.Warn("file watching disabled", zap.Error(err))
			}
		}

		server := api.NewServer(cfg, projects, layouts, logger)
		return server.Run(ctx)
	},
}

// watchProjects logs external edits to project files so operators can tell
// when on-disk configs drift from what the editor last wrote.
func watchProjects(ctx context.Context, cfg *config.Config, projects *project.Manager, logger *zap.Logger) error {
	ids, err := projects.ListProjects(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		w, err := project.NewWatcher(filepath.Join(cfg.ProjectsDir, id), logger)
		if err != nil {
			return err
		}
		go w.Run(ctx)
		go func(id string, w *project.Watcher) {
			for ev := range w.Events() {
				logger.Info("project file changed",
					zap.String("project", id),
					zap.String("file", ev.Filename),
					zap.String("op", ev.Op.String()))
			}
		}(id, w)
	}
	return nil
}

func init() {
	ServeCmd.Flags().BoolVar(&serveDebug, "debug", false, "human-readable debug logging")
}

func openLayoutStore(ctx context.Context, cfg *config.Config) (layout.Store, error) {
	switch cfg.LayoutBackend {
	case config.LayoutBackendMemory:
		return layout.NewMemoryStore(), nil
	case config.LayoutBackendFile:
		return layout.NewFileStore(cfg.LayoutDir)
	case config.LayoutBackendPostgres:
		return layout.NewPostgresStore(ctx, cfg.DatabaseURL)
	}
	return nil, fmt.Errorf("unknown layout backend %q", cfg.LayoutBackend)
}
