package v0

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/agentcanvas-dev/agentcanvas/pkg/types"
)

// VersionBody reports the server build metadata.
type VersionBody struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
}

// RegisterVersionEndpoint registers the version endpoint.
func RegisterVersionEndpoint(api huma.API, pathPrefix string, info *VersionBody) {
	huma.Register(api, huma.Operation{
		OperationID: "get-version",
		Method:      http.MethodGet,
		Path:        pathPrefix + "/version",
		Summary:     "Server version",
		Tags:        []string{"meta"},
	}, func(_ context.Context, _ *struct{}) (*types.Response[VersionBody], error) {
		return &types.Response[VersionBody]{Body: *info}, nil
	})
}
