package router

import (
	"github.com/gin-gonic/gin"

	"billscan/internal/handler"
	"billscan/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	apiKey string,
	ingestH *handler.IngestHandler,
	billH *handler.BillHandler,
	businessH *handler.BusinessHandler,
	reportH *handler.ReportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.APIKey(apiKey))

	// Document ingestion
	v1.POST("/ingest", ingestH.Ingest)
	v1.GET("/ingestions", ingestH.List)
	v1.GET("/ingestions/:id", ingestH.GetByID)

	// Bills
	bills := v1.Group("/bills")
	bills.GET("", billH.List)
	bills.GET("/:id", billH.GetByID)

	// Payee businesses
	businesses := v1.Group("/businesses")
	businesses.POST("", businessH.Create)
	businesses.GET("", businessH.List)
	businesses.GET("/:id", businessH.GetByID)

	// Report exports
	reports := v1.Group("/reports")
	reports.GET("/bills.csv", reportH.ExportCSV)
	reports.GET("/bills.xlsx", reportH.ExportXLSX)

	return r
}
