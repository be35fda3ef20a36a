package v0

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/agentcanvas-dev/agentcanvas/pkg/types"
)

// HealthBody reports server liveness and the configured layout backend.
type HealthBody struct {
	Status        string `json:"status" example:"ok"`
	LayoutBackend string `json:"layout_backend,omitempty"`
}

// RegisterHealthEndpoint registers the health endpoint.
func RegisterHealthEndpoint(api huma.API, pathPrefix, layoutBackend string) {
	huma.Register(api, huma.Operation{
		OperationID: "get-health",
		Method:      http.MethodGet,
		Path:        pathPrefix + "/health",
		Summary:     "Health check",
		Tags:        []string{"meta"},
	}, func(_ context.Context, _ *struct{}) (*types.Response[HealthBody], error) {
		return &types.Response[HealthBody]{
			Body: HealthBody{Status: "ok", LayoutBackend: layoutBackend},
		}, nil
	})
}
