package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "porttariff/docs" // registers the generated OpenAPI spec
	"porttariff/internal/config"
	"porttariff/internal/handler"
	"porttariff/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	tariffH *handler.TariffHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/", healthH.Liveness)
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/dues", tariffH.ListDues)

	tariffs := r.Group("/calculate-tariffs")
	tariffs.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	tariffs.POST("", tariffH.Calculate)
	tariffs.POST("/query", tariffH.Query)
	tariffs.POST("/export", tariffH.Export)

	return r
}
