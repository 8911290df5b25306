package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/anubhavpatrick/Cluster-Images/internal/logging"
	"github.com/anubhavpatrick/Cluster-Images/pkg/model"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type ProbeResult struct {
	Body string `json:"body"`
}

type MetricsController struct {
	Path         string
	Api          *huma.API
	Config       *model.Config
	Logger       *zerolog.Logger
	HttpRequests *prometheus.CounterVec
	SourceErrors *prometheus.CounterVec
}

func NewMetricsController(api *huma.API, config *model.Config) *MetricsController {
	logger := logging.NewLogger("info", "component", "MetricsController")
	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "clusterimages_http_request_count",
		Help: "Counter for HTTP requests to the Cluster Images API",
	}, []string{"operation_id", "method", "status_code"})
	sourceErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "clusterimages_source_error_count",
		Help: "Counter for per-source errors collected during aggregation",
	}, []string{"source"})
	if err := prometheus.Register(httpRequests); err != nil {
		logger.Warn().Msg("Failed to register clusterimages_http_request_count, duplicate registration?")
	}
	if err := prometheus.Register(sourceErrors); err != nil {
		logger.Warn().Msg("Failed to register clusterimages_source_error_count, duplicate registration?")
	}
	return &MetricsController{
		Path:         "/metrics",
		Api:          api,
		Config:       config,
		Logger:       logger,
		HttpRequests: httpRequests,
		SourceErrors: sourceErrors,
	}
}

func (mc *MetricsController) AddRoutes() {
	{
		op, handler := mc.GetDefaultMetrics()
		huma.Register(*mc.Api, op, handler)
	}
	{
		op, handler := mc.GetLiveness()
		huma.Register(*mc.Api, op, handler)
	}
}

// CountSourceErrors buckets aggregation error strings by their source prefix
// (containerd, harbor, ignore).
func (mc *MetricsController) CountSourceErrors(errors []string) {
	for _, message := range errors {
		source := strings.TrimSuffix(strings.SplitN(message, " ", 2)[0], ":")
		mc.SourceErrors.WithLabelValues(source).Inc()
	}
}

// MetricsMiddleware counts requests per operation and keeps the raw
// request/writer reachable for the promhttp handler.
func (mc *MetricsController) MetricsMiddleware() func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		r, w := humachi.Unwrap(ctx)
		ctx = huma.WithValue(ctx, "request", r)
		ctx = huma.WithValue(ctx, "writer", w)
		next(ctx)
		mc.HttpRequests.WithLabelValues(
			ctx.Operation().OperationID,
			ctx.Method(),
			fmt.Sprintf("%d", ctx.Status()),
		).Inc()
	}
}

func (mc *MetricsController) GetDefaultMetrics() (huma.Operation, func(ctx context.Context, input *struct{}) (*struct{ Body string }, error)) {
	return huma.Operation{
			OperationID: "GetMetrics",
			Method:      "GET",
			Path:        mc.Path,
			Summary:     "Prometheus metrics",
			Tags:        []string{"metrics"},
			Responses: map[string]*huma.Response{
				"200": {
					Content: map[string]*huma.MediaType{
						"text/plain": {},
					},
					Description: "Metrics",
				},
			},
		}, func(ctx context.Context, input *struct{}) (*struct{ Body string }, error) {
			writer := ctx.Value("writer").(http.ResponseWriter)
			request := ctx.Value("request").(*http.Request)
			promhttp.Handler().ServeHTTP(writer, request)
			return nil, nil
		}
}

func (mc *MetricsController) GetLiveness() (huma.Operation, func(ctx context.Context, input *struct{}) (*ProbeResult, error)) {
	return huma.Operation{
			OperationID: "GetLiveness",
			Method:      "GET",
			Path:        "/healthz",
			Summary:     "Liveness probe",
			Tags:        []string{"metrics"},
			Responses: map[string]*huma.Response{
				"200": {Description: "Service is alive"},
			},
		}, func(ctx context.Context, input *struct{}) (*ProbeResult, error) {
			return &ProbeResult{Body: "ok"}, nil
		}
}
