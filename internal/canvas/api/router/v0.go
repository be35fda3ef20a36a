// Package router contains API routing logic.
package router

import (
	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	v0 "github.com/agentcanvas-dev/agentcanvas/internal/canvas/api/handlers/v0"
	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/config"
	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/layout"
	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/project"
)

// RegisterRoutes registers all API routes under /v0.
func RegisterRoutes(
	api huma.API,
	cfg *config.Config,
	projects project.Service,
	layouts layout.Store,
	versionInfo *v0.VersionBody,
	logger *zap.Logger,
) {
	pathPrefix := "/v0"

	v0.RegisterPingEndpoint(api, pathPrefix)
	v0.RegisterHealthEndpoint(api, pathPrefix, cfg.LayoutBackend)
	v0.RegisterVersionEndpoint(api, pathPrefix, versionInfo)
	v0.RegisterFilesEndpoints(api, pathPrefix, projects)
	v0.RegisterGraphEndpoints(api, pathPrefix, projects, layouts, logger)
	v0.RegisterLayoutEndpoints(api, pathPrefix, layouts)
}
