package v0

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/graph"
	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/layout"
	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/project"
	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/validate"
	"github.com/agentcanvas-dev/agentcanvas/pkg/types"
)

// GraphBody is the node/edge projection returned to the canvas.
type GraphBody struct {
	Nodes []graph.Node `json:"nodes"`
	Edges []graph.Edge `json:"edges"`
}

// CompileBody is one compiled document.
type CompileBody struct {
	Filename string `json:"filename,omitempty"`
	YAMLText string `json:"yamlText"`
}

// RegisterGraphEndpoints registers graph build, compile, and validate.
func RegisterGraphEndpoints(api huma.API, pathPrefix string, projects project.Service, layouts layout.Store, logger *zap.Logger) {
	huma.Register(api, huma.Operation{
		OperationID: "build-graph",
		Method:      http.MethodGet,
		Path:        pathPrefix + "/projects/{project}/graph",
		Summary:     "Build the node/edge graph from a project's files",
		Description: "Unparseable files are skipped; run validate to surface them.",
		Tags:        []string{"graph"},
	}, func(ctx context.Context, input *struct {
		Project  string `path:"project"`
		RootFile string `query:"root" doc:"Focus-root filename override for editing a sub-scope"`
	}) (*types.Response[GraphBody], error) {
		files, err := projects.ListFiles(ctx, input.Project)
		if err != nil {
			return nil, mapProjectError(err)
		}
		positions, err := layouts.Get(ctx, input.Project)
		if err != nil {
			logger.Warn("layout load failed, using defaults",
				zap.String("project", input.Project), zap.Error(err))
			positions = nil
		}
		root := input.RootFile
		if root == "" {
			root = projects.RootFilename()
		}
		nodes, edges := graph.Build(files, positions, root)
		if nodes == nil {
			nodes = []graph.Node{}
		}
		if edges == nil {
			edges = []graph.Edge{}
		}
		return &types.Response[GraphBody]{Body: GraphBody{Nodes: nodes, Edges: edges}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "compile-node",
		Method:      http.MethodPost,
		Path:        pathPrefix + "/projects/{project}/compile",
		Summary:     "Compile one node's document back to YAML",
		Description: "Compiles the node flagged isRoot. An empty yamlText means nothing to compile.",
		Tags:        []string{"graph"},
	}, func(_ context.Context, input *struct {
		Project string `path:"project"`
		Body    GraphBody
	}) (*types.Response[CompileBody], error) {
		out := CompileBody{YAMLText: graph.Compile(input.Body.Nodes, input.Body.Edges)}
		for _, n := range input.Body.Nodes {
			if n.Data.IsRoot {
				out.Filename = n.Data.Filename
				break
			}
		}
		return &types.Response[CompileBody]{Body: out}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "validate-project",
		Method:      http.MethodGet,
		Path:        pathPrefix + "/projects/{project}/validate",
		Summary:     "Check cross-file structural integrity",
		Tags:        []string{"graph"},
	}, func(ctx context.Context, input *struct {
		Project  string `path:"project"`
		RootFile string `query:"root" doc:"Cycle search start file; defaults to the project root"`
	}) (*types.Response[validate.Report], error) {
		files, err := projects.ListFiles(ctx, input.Project)
		if err != nil {
			return nil, mapProjectError(err)
		}
		root := input.RootFile
		if root == "" {
			root = projects.RootFilename()
		}
		report := validate.CheckProject(files, root)
		return &types.Response[validate.Report]{Body: report}, nil
	})
}
