package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"github.com/rtoki/japan-national-admin-procedures/internal/handler"
	"github.com/rtoki/japan-national-admin-procedures/internal/middleware"
)

// Setup sets up all routes
func Setup(
	h *server.Hertz,
	healthHandler *handler.HealthHandler,
	datasetHandler *handler.DatasetHandler,
	queryHandler *handler.QueryHandler,
	procedureHandler *handler.ProcedureHandler,
) {
	// Global middleware
	h.Use(middleware.Recovery())
	h.Use(middleware.Logger())
	h.Use(middleware.CORS())

	// Health check routes
	h.GET("/ping", healthHandler.Ping)
	h.GET("/health/ready", healthHandler.Readiness)
	h.GET("/health/live", healthHandler.Liveness)

	// API v1 routes
	apiV1 := h.Group("/api/v1")
	{
		// Dataset metadata
		dataset := apiV1.Group("/dataset")
		{
			dataset.GET("/summary", datasetHandler.Summary)
			dataset.POST("/summary", datasetHandler.Summary) // filtered KPIs
			dataset.GET("/fields", datasetHandler.Fields)
			dataset.GET("/fields/:key/values", datasetHandler.FieldValues)
		}

		// Aggregation queries. Filters ride in the body, so these are POST
		// even though they are pure reads.
		query := apiV1.Group("/query")
		{
			query.POST("/aggregate", queryHandler.Aggregate)
			query.POST("/crosstab", queryHandler.Crosstab)
			query.POST("/ministry-stats", queryHandler.MinistryStats)
			query.POST("/ministry-status", queryHandler.MinistryStatusMatrix)
			query.POST("/law-types", queryHandler.LawTypes)
			query.POST("/top-laws", queryHandler.TopLaws)
			query.POST("/system-stats", queryHandler.SystemStats)
		}

		// Record-level routes
		procedures := apiV1.Group("/procedures")
		{
			procedures.POST("/search", procedureHandler.Search)
			procedures.GET("/:id", procedureHandler.Get)
		}

		apiV1.POST("/export", procedureHandler.Export)
	}
}
