package v0

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/graph"
	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/project"
	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/schema"
	"github.com/agentcanvas-dev/agentcanvas/pkg/types"
)

// ProjectListBody lists the known project ids.
type ProjectListBody struct {
	Projects []string `json:"projects"`
}

// FileListBody lists a project's config files with their content.
type FileListBody struct {
	Files []graph.ConfigFile `json:"files"`
}

// FileBody is one file's content.
type FileBody struct {
	Filename string `json:"filename"`
	YAMLText string `json:"yamlText"`
}

func mapProjectError(err error) error {
	switch {
	case errors.Is(err, project.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, project.ErrInvalidFilename):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, project.ErrRootFileProtected):
		return huma.Error409Conflict(err.Error())
	default:
		return huma.Error500InternalServerError("project storage failure", err)
	}
}

// RegisterFilesEndpoints registers project listing and file CRUD endpoints.
func RegisterFilesEndpoints(api huma.API, pathPrefix string, projects project.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "list-projects",
		Method:      http.MethodGet,
		Path:        pathPrefix + "/projects",
		Summary:     "List projects",
		Tags:        []string{"projects"},
	}, func(ctx context.Context, _ *struct{}) (*types.Response[ProjectListBody], error) {
		ids, err := projects.ListProjects(ctx)
		if err != nil {
			return nil, mapProjectError(err)
		}
		if ids == nil {
			ids = []string{}
		}
		return &types.Response[ProjectListBody]{Body: ProjectListBody{Projects: ids}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-files",
		Method:      http.MethodGet,
		Path:        pathPrefix + "/projects/{project}/files",
		Summary:     "List a project's config files",
		Tags:        []string{"files"},
	}, func(ctx context.Context, input *struct {
		Project string `path:"project"`
	}) (*types.Response[FileListBody], error) {
		files, err := projects.ListFiles(ctx, input.Project)
		if err != nil {
			return nil, mapProjectError(err)
		}
		if files == nil {
			files = []graph.ConfigFile{}
		}
		return &types.Response[FileListBody]{Body: FileListBody{Files: files}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-file",
		Method:      http.MethodGet,
		Path:        pathPrefix + "/projects/{project}/files/{filename}",
		Summary:     "Read one config file",
		Tags:        []string{"files"},
	}, func(ctx context.Context, input *struct {
		Project  string `path:"project"`
		Filename string `path:"filename"`
	}) (*types.Response[FileBody], error) {
		text, err := projects.ReadFile(ctx, input.Project, input.Filename)
		if err != nil {
			return nil, mapProjectError(err)
		}
		return &types.Response[FileBody]{Body: FileBody{Filename: input.Filename, YAMLText: text}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "put-file",
		Method:      http.MethodPut,
		Path:        pathPrefix + "/projects/{project}/files/{filename}",
		Summary:     "Create or replace one config file",
		Description: "An empty yamlText creates a scaffold document named after the file.",
		Tags:        []string{"files"},
	}, func(ctx context.Context, input *struct {
		Project  string `path:"project"`
		Filename string `path:"filename"`
		Body     struct {
			YAMLText string `json:"yamlText"`
		}
	}) (*types.Response[FileBody], error) {
		text := input.Body.YAMLText
		if text == "" {
			text = schema.Scaffold(input.Filename)
		}
		if err := projects.WriteFile(ctx, input.Project, input.Filename, text); err != nil {
			return nil, mapProjectError(err)
		}
		return &types.Response[FileBody]{Body: FileBody{Filename: input.Filename, YAMLText: text}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-file",
		Method:      http.MethodDelete,
		Path:        pathPrefix + "/projects/{project}/files/{filename}",
		Summary:     "Delete one config file",
		Description: "The project's root file may not be deleted.",
		Tags:        []string{"files"},
	}, func(ctx context.Context, input *struct {
		Project  string `path:"project"`
		Filename string `path:"filename"`
	}) (*struct{}, error) {
		if err := projects.DeleteFile(ctx, input.Project, input.Filename); err != nil {
			return nil, mapProjectError(err)
		}
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "rename-file",
		Method:      http.MethodPost,
		Path:        pathPrefix + "/projects/{project}/files/{filename}/rename",
		Summary:     "Rename one config file",
		Description: "Rewrites config_path references across sibling files. The root file may not be renamed.",
		Tags:        []string{"files"},
	}, func(ctx context.Context, input *struct {
		Project  string `path:"project"`
		Filename string `path:"filename"`
		Body     struct {
			NewFilename string `json:"newFilename"`
		}
	}) (*types.Response[FileBody], error) {
		if err := projects.RenameFile(ctx, input.Project, input.Filename, input.Body.NewFilename); err != nil {
			return nil, mapProjectError(err)
		}
		text, err := projects.ReadFile(ctx, input.Project, input.Body.NewFilename)
		if err != nil {
			return nil, mapProjectError(err)
		}
		return &types.Response[FileBody]{Body: FileBody{Filename: input.Body.NewFilename, YAMLText: text}}, nil
	})
}
