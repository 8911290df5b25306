package cmd

import (
	"fmt"
	"net/http"

	"github.com/anubhavpatrick/Cluster-Images/internal/aggregator"
	"github.com/anubhavpatrick/Cluster-Images/internal/controllers"
	"github.com/anubhavpatrick/Cluster-Images/internal/crictl"
	"github.com/anubhavpatrick/Cluster-Images/internal/harbor"
	"github.com/anubhavpatrick/Cluster-Images/internal/logging"
	"github.com/anubhavpatrick/Cluster-Images/pkg/model"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
)

var httpPort int

// httpCmd represents the http command
var httpCmd = &cobra.Command{
	Use:   "http",
	Short: "Starts the HTTP server serving the unified image inventory.",
	Long: `Starts an HTTP server exposing the aggregated image inventory (/images and
/local-images) and the Harbor passthrough routes (/harbor/...). Each request
runs a fresh aggregation, there is no cross-request state.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := logging.NewLogger(logLevel)
		currentConfig := cmd.Context().Value("config").(*model.Config)
		if currentConfig == nil {
			logger.Fatal().Msg("Configuration not found in context. Ensure rootCmd PersistentPreRun is setting it.")
		}

		harborClient, err := harbor.NewClient(currentConfig.Harbor, logging.NewLogger(logLevel, "component", "harbor"))
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to create harbor client")
		}
		runner := crictl.NewCrictlRunner(currentConfig.Crictl, logging.NewLogger(logLevel, "component", "crictl"))
		agg := aggregator.New(
			runner,
			harborClient,
			currentConfig.Crictl.IgnoreFile,
			currentConfig.Aggregator.Workers,
			logging.NewLogger(logLevel, "component", "aggregator"),
		)

		router := chi.NewMux()
		router.Use(middleware.RequestID)
		router.Use(middleware.Recoverer)

		apiConfig := huma.DefaultConfig("Cluster Images API", "1.0.0")
		apiConfig.OpenAPIPath = "/openapi"
		api := humachi.New(router, apiConfig)

		metricsController := controllers.NewMetricsController(&api, currentConfig)
		api.UseMiddleware(metricsController.MetricsMiddleware())
		controllers.NewImageController(&api, currentConfig).WithAggregator(agg).WithMetrics(metricsController).AddRoutes()
		controllers.NewHarborController(&api, currentConfig).WithClient(harborClient).AddRoutes()
		metricsController.AddRoutes()

		// I love swagger

		router.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <meta name="description" content="SwaggerUI" />
  <title>SwaggerUI</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
  window.onload = () => {
    window.ui = SwaggerUIBundle({
      url: '/openapi.json',
      dom_id: '#swagger-ui',
    });
  };
</script>
</body>
</html>`))
		})

		serverAddr := fmt.Sprintf(":%d", httpPort)
		logger.Info().Str("address", serverAddr).Msg("Starting HTTP server")
		if err := http.ListenAndServe(serverAddr, router); err != nil {
			logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	},
}

func init() {
	rootCmd.AddCommand(httpCmd)
	httpCmd.Flags().IntVarP(&httpPort, "port", "p", 8080, "Port for the HTTP server")
}
