package rest

import (
	"github.com/lorenzodc/catalyst-api/internal/api/rest/middleware"
	"github.com/lorenzodc/catalyst-api/internal/app"
	"github.com/lorenzodc/catalyst-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter configures the Gin router with all routes and middleware.
func SetupRouter(a *app.App, registry *prometheus.Registry, log *logger.Logger) *gin.Engine {
	r := gin.New()

	r.Use(middleware.LoggerMiddleware(log))
	r.Use(gin.Recovery())
	r.Use(a.AuthMiddleware.ResolveUser())

	r.GET("/health", a.HealthHandler.Check)

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	v1 := r.Group("/api/v1")
	{
		v1.POST("/chat", a.ChatHandler.Chat)

		voice := v1.Group("/voice")
		{
			voice.POST("/transcribe", a.VoiceHandler.Transcribe)
			voice.POST("/synthesize", a.VoiceHandler.Synthesize)
		}

		v1.POST("/documents/analyze", a.DocumentHandler.Analyze)
		v1.POST("/assessments", a.AssessmentHandler.Submit)

		goals := v1.Group("/goals")
		{
			goals.GET("", a.GoalHandler.List)
			goals.GET("/:id", a.GoalHandler.Get)
			goals.POST("", a.GoalHandler.Create)
			goals.PUT("/:id", a.GoalHandler.Update)
			goals.DELETE("/:id", a.GoalHandler.Delete)
		}

		v1.POST("/checkout", a.CheckoutHandler.CreateSession)
	}

	return r
}
