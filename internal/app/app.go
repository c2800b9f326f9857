package app

import (
	"github.com/lorenzodc/catalyst-api/config"
	"github.com/lorenzodc/catalyst-api/internal/api/rest/handlers"
	"github.com/lorenzodc/catalyst-api/internal/api/rest/middleware"
	"github.com/lorenzodc/catalyst-api/internal/gate"
	"github.com/lorenzodc/catalyst-api/internal/integration/openai"
	"github.com/lorenzodc/catalyst-api/internal/service"
	"github.com/lorenzodc/catalyst-api/internal/stripe"
	"github.com/lorenzodc/catalyst-api/pkg/logger"
)

// App is the container for all application components.
type App struct {
	Config            *config.Config
	AuthMiddleware    *middleware.AuthMiddleware
	HealthHandler     *handlers.HealthHandler
	ChatHandler       *handlers.ChatHandler
	VoiceHandler      *handlers.VoiceHandler
	DocumentHandler   *handlers.DocumentHandler
	AssessmentHandler *handlers.AssessmentHandler
	GoalHandler       *handlers.GoalHandler
	CheckoutHandler   *handlers.CheckoutHandler
	Logger            *logger.Logger
}

// Dependencies are the wired services and clients the app is built from.
type Dependencies struct {
	Gate       *gate.Gate
	Usage      *service.UsageService
	Goals      *service.GoalService
	Assessment *service.AssessmentService
	AI         *openai.Client
	Stripe     stripe.Client
}

// NewApp creates and initializes the application container.
func NewApp(cfg *config.Config, deps Dependencies, log *logger.Logger) *App {
	authMiddleware := middleware.NewAuthMiddleware(log, &middleware.DefaultTokenValidator{
		Secret: []byte(cfg.Auth.JWTSecret),
	})

	return &App{
		Config:            cfg,
		AuthMiddleware:    authMiddleware,
		HealthHandler:     handlers.NewHealthHandler(),
		ChatHandler:       handlers.NewChatHandler(deps.Gate, deps.AI, log),
		VoiceHandler:      handlers.NewVoiceHandler(deps.Gate, deps.Usage, deps.AI, log),
		DocumentHandler:   handlers.NewDocumentHandler(deps.Gate, deps.AI, log),
		AssessmentHandler: handlers.NewAssessmentHandler(deps.Gate, deps.Assessment, log),
		GoalHandler:       handlers.NewGoalHandler(deps.Goals, log),
		CheckoutHandler:   handlers.NewCheckoutHandler(deps.Stripe, cfg, log),
		Logger:            log,
	}
}
