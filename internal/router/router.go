package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tdstrack/internal/handler"
	"tdstrack/internal/middleware"
	"tdstrack/internal/service"
)

// Setup configures the Gin engine with all routes and middleware. Read
// endpoints are public; every mutation sits behind the admin JWT.
func Setup(
	authSvc service.AuthService,
	corsOrigins []string,
	authH *handler.AuthHandler,
	registryH *handler.RegistryHandler,
	gstr2aH *handler.Gstr2aHandler,
	paymentH *handler.PaymentHandler,
	reportH *handler.ReportHandler,
	sampleH *handler.SampleHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks and metrics
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// GSTIN master
	v1.GET("/gstin", registryH.ListTaxpayers)
	v1.GET("/gstin/pan/:pan", registryH.ListTaxpayersByPAN)
	v1.GET("/gstin/:gstin", registryH.GetTaxpayer)
	protected.POST("/gstin", registryH.UpsertTaxpayer)

	// TDS registrations
	v1.GET("/tds-gstin", registryH.ListRegistrants)
	v1.GET("/tds-gstin/pan/:pan", registryH.ListRegistrantsByPAN)
	v1.GET("/tds-gstin/:gstin", registryH.GetRegistrant)
	protected.POST("/tds-gstin", registryH.UpsertRegistrant)

	// GSTR2A batches
	v1.GET("/gstr2a/summary", gstr2aH.OverallTotals)
	v1.GET("/gstr2a/gstin/:gstin", gstr2aH.ListBatches)
	v1.GET("/gstr2a/gstin/:gstin/period/:period", gstr2aH.GetBatch)
	v1.GET("/gstr2a/gstin/:gstin/total", gstr2aH.TotalsByGSTIN)
	v1.GET("/gstr2a/gstin/:gstin/file", gstr2aH.DownloadOriginal)
	protected.POST("/gstr2a/upload", gstr2aH.Upload)

	// TDS payments
	v1.GET("/payments/pending", paymentH.ListPending)
	v1.GET("/payments/period/:period", paymentH.ListByPeriod)
	v1.GET("/payments/summary/:period", paymentH.StatusSummary)
	v1.GET("/payments/gstin/:gstin/period/:period", paymentH.Get)
	protected.POST("/payments", paymentH.Upsert)

	// Reconciliation report
	v1.GET("/reports/tds", reportH.TdsReport)
	protected.POST("/reports/tds/notify", reportH.Notify)

	// Demo data
	protected.POST("/sample/generate-tds-data", sampleH.GenerateTdsData)

	return r
}
