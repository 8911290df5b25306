package controllers

import (
	"context"

	"github.com/anubhavpatrick/Cluster-Images/internal/harbor"
	"github.com/anubhavpatrick/Cluster-Images/pkg/model"
	"github.com/danielgtaylor/huma/v2"
	"github.com/samber/lo"
)

// HarborController proxies a subset of the Harbor management API.
type HarborController struct {
	Path   string
	Api    *huma.API
	Client *harbor.Client
	Config *model.Config
}

type NameList struct {
	Body []string `json:"body"`
}

type HarborImages struct {
	Body []model.HarborImage `json:"body"`
}

type ProjectInput struct {
	Project string `path:"project" doc:"Harbor project name"`
}

type RepositoryInput struct {
	Project    string `path:"project" doc:"Harbor project name"`
	Repository string `path:"repository" doc:"Repository name within the project"`
}

type ArtifactRefInput struct {
	Project    string `path:"project" doc:"Harbor project name"`
	Repository string `path:"repository" doc:"Repository name within the project"`
	Reference  string `path:"reference" doc:"Artifact tag or digest"`
}

func NewHarborController(api *huma.API, config *model.Config) *HarborController {
	return &HarborController{
		Path:   "/harbor",
		Api:    api,
		Config: config,
	}
}

func (hc *HarborController) WithClient(client *harbor.Client) *HarborController {
	hc.Client = client
	return hc
}

func (hc *HarborController) AddRoutes() {
	{
		op, handler := hc.GetProjects()
		huma.Register(*hc.Api, op, handler)
	}
	{
		op, handler := hc.GetRepositories()
		huma.Register(*hc.Api, op, handler)
	}
	{
		op, handler := hc.GetArtifacts()
		huma.Register(*hc.Api, op, handler)
	}
	{
		op, handler := hc.DeleteArtifact()
		huma.Register(*hc.Api, op, handler)
	}
}

func (hc *HarborController) GetProjects() (huma.Operation, func(ctx context.Context, input *struct{}) (*NameList, error)) {
	return huma.Operation{
			OperationID: "GetHarborProjects",
			Method:      "GET",
			Path:        hc.Path + "/projects",
			Summary:     "List Harbor projects",
			Tags:        []string{"harbor"},
			Responses: map[string]*huma.Response{
				"200": {Description: "Project names"},
				"502": {Description: "Harbor unreachable"},
			},
		}, func(ctx context.Context, input *struct{}) (*NameList, error) {
			projects, err := hc.Client.ListProjects(ctx)
			if err != nil {
				return nil, harborError(err)
			}
			return &NameList{Body: lo.Map(projects, func(project harbor.Project, _ int) string {
				return project.Name
			})}, nil
		}
}

func (hc *HarborController) GetRepositories() (huma.Operation, func(ctx context.Context, input *ProjectInput) (*NameList, error)) {
	return huma.Operation{
			OperationID: "GetHarborRepositories",
			Method:      "GET",
			Path:        hc.Path + "/repositories/{project}",
			Summary:     "List repositories of a Harbor project",
			Tags:        []string{"harbor"},
			Responses: map[string]*huma.Response{
				"200": {Description: "Repository names"},
				"502": {Description: "Harbor unreachable"},
			},
		}, func(ctx context.Context, input *ProjectInput) (*NameList, error) {
			repositories, err := hc.Client.ListRepositories(ctx, input.Project)
			if err != nil {
				return nil, harborError(err)
			}
			return &NameList{Body: lo.Map(repositories, func(repo harbor.Repository, _ int) string {
				return repo.Name
			})}, nil
		}
}

func (hc *HarborController) GetArtifacts() (huma.Operation, func(ctx context.Context, input *RepositoryInput) (*HarborImages, error)) {
	return huma.Operation{
			OperationID: "GetHarborArtifacts",
			Method:      "GET",
			Path:        hc.Path + "/artifacts/{project}/{repository}",
			Summary:     "List artifact tags of a repository",
			Description: "Lists all artifacts of a repository, flattened to one entry per tag.",
			Tags:        []string{"harbor"},
			Responses: map[string]*huma.Response{
				"200": {Description: "Artifact/tag entries"},
				"502": {Description: "Harbor unreachable"},
			},
		}, func(ctx context.Context, input *RepositoryInput) (*HarborImages, error) {
			images, err := hc.Client.ListArtifacts(ctx, input.Project, input.Repository)
			if err != nil {
				return nil, harborError(err)
			}
			return &HarborImages{Body: images}, nil
		}
}

// DeleteArtifact is a fire-and-forget proxy call: Harbor's own status code and
// error detail are passed back to the caller unchanged.
func (hc *HarborController) DeleteArtifact() (huma.Operation, func(ctx context.Context, input *ArtifactRefInput) (*CommonResponse, error)) {
	return huma.Operation{
			OperationID: "DeleteHarborArtifact",
			Method:      "DELETE",
			Path:        hc.Path + "/artifacts/{project}/{repository}/{reference}",
			Summary:     "Delete one artifact by tag or digest",
			Tags:        []string{"harbor"},
			Responses: map[string]*huma.Response{
				"200": {Description: "Artifact deleted"},
				"404": {Description: "Artifact not found (from Harbor)"},
				"502": {Description: "Harbor unreachable"},
			},
		}, func(ctx context.Context, input *ArtifactRefInput) (*CommonResponse, error) {
			if err := hc.Client.DeleteArtifact(ctx, input.Project, input.Repository, input.Reference); err != nil {
				return nil, harborError(err)
			}
			return &CommonResponse{Body: "deleted"}, nil
		}
}
