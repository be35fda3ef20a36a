package v0

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/graph"
	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/layout"
	"github.com/agentcanvas-dev/agentcanvas/pkg/types"
)

// LayoutBody is the saved position map of a project.
type LayoutBody struct {
	Positions map[string]graph.Position `json:"positions"`
}

// RegisterLayoutEndpoints registers layout read/write endpoints.
func RegisterLayoutEndpoints(api huma.API, pathPrefix string, layouts layout.Store) {
	huma.Register(api, huma.Operation{
		OperationID: "get-layout",
		Method:      http.MethodGet,
		Path:        pathPrefix + "/projects/{project}/layout",
		Summary:     "Read saved node positions",
		Tags:        []string{"layout"},
	}, func(ctx context.Context, input *struct {
		Project string `path:"project"`
	}) (*types.Response[LayoutBody], error) {
		positions, err := layouts.Get(ctx, input.Project)
		if err != nil {
			return nil, huma.Error500InternalServerError("layout storage failure", err)
		}
		return &types.Response[LayoutBody]{Body: LayoutBody{Positions: positions}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "put-layout",
		Method:      http.MethodPut,
		Path:        pathPrefix + "/projects/{project}/layout",
		Summary:     "Save node positions",
		Description: "Positions are a visual side channel; they never affect YAML content.",
		Tags:        []string{"layout"},
	}, func(ctx context.Context, input *struct {
		Project string `path:"project"`
		Body    LayoutBody
	}) (*types.Response[LayoutBody], error) {
		if err := layouts.Set(ctx, input.Project, input.Body.Positions); err != nil {
			return nil, huma.Error500InternalServerError("layout storage failure", err)
		}
		return &types.Response[LayoutBody]{Body: input.Body}, nil
	})
}
