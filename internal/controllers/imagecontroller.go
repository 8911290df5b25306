package controllers

import (
	"context"

	"github.com/anubhavpatrick/Cluster-Images/internal/aggregator"
	"github.com/anubhavpatrick/Cluster-Images/pkg/model"
	"github.com/danielgtaylor/huma/v2"
)

type ImageController struct {
	Path       string
	Api        *huma.API
	Aggregator *aggregator.Aggregator
	Config     *model.Config
	Metrics    *MetricsController
}

type AggregateResponse struct {
	Body model.AggregateResult `json:"body"`
}

type ContainerdImages struct {
	Body []model.ContainerdImage `json:"body"`
}

func NewImageController(api *huma.API, config *model.Config) *ImageController {
	return &ImageController{
		Path:   "/images",
		Api:    api,
		Config: config,
	}
}

func (ic *ImageController) WithAggregator(agg *aggregator.Aggregator) *ImageController {
	ic.Aggregator = agg
	return ic
}

func (ic *ImageController) WithMetrics(metrics *MetricsController) *ImageController {
	ic.Metrics = metrics
	return ic
}

func (ic *ImageController) AddRoutes() {
	{
		op, handler := ic.GetImages()
		huma.Register(*ic.Api, op, handler)
	}
	{
		op, handler := ic.GetLocalImages()
		huma.Register(*ic.Api, op, handler)
	}
}

// GetImages returns the unified inventory from both sources. Source failures
// are data, not faults: the response is always 200 with the error list
// populated, even when every source failed.
func (ic *ImageController) GetImages() (huma.Operation, func(ctx context.Context, input *struct{}) (*AggregateResponse, error)) {
	return huma.Operation{
			OperationID: "GetImages",
			Method:      "GET",
			Path:        ic.Path,
			Summary:     "Get images from containerd and Harbor",
			Description: "Aggregates local containerd images (crictl) and Harbor registry images into one response. Per-source failures are collected in the errors list without failing the request.",
			Tags:        []string{"images"},
			Responses: map[string]*huma.Response{
				"200": {
					Description: "Unified image inventory, partial results on source failures",
				},
			},
		}, func(ctx context.Context, input *struct{}) (*AggregateResponse, error) {
			result := ic.Aggregator.Aggregate(ctx)
			if ic.Metrics != nil {
				ic.Metrics.CountSourceErrors(result.Errors)
			}
			return &AggregateResponse{Body: result}, nil
		}
}

// GetLocalImages returns the filtered local containerd images only.
func (ic *ImageController) GetLocalImages() (huma.Operation, func(ctx context.Context, input *struct{}) (*ContainerdImages, error)) {
	return huma.Operation{
			OperationID: "GetLocalImages",
			Method:      "GET",
			Path:        "/local-images",
			Summary:     "Get local containerd images",
			Description: "Lists images known to the local containerd runtime via crictl, with the configured ignore list applied.",
			Tags:        []string{"images"},
			Responses: map[string]*huma.Response{
				"200": {
					Description: "A list of local containerd images",
				},
				"500": {
					Description: "crictl invocation failed",
				},
			},
		}, func(ctx context.Context, input *struct{}) (*ContainerdImages, error) {
			images, err := ic.Aggregator.LocalImages(ctx)
			if err != nil {
				return nil, huma.Error500InternalServerError("Failed to list local images: " + err.Error())
			}
			return &ContainerdImages{Body: images}, nil
		}
}
