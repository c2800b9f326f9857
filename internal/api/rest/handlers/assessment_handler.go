package handlers

import (
	"net/http"

	"github.com/lorenzodc/catalyst-api/internal/api/rest/middleware"
	"github.com/lorenzodc/catalyst-api/internal/domain"
	"github.com/lorenzodc/catalyst-api/internal/gate"
	"github.com/lorenzodc/catalyst-api/internal/service"
	"github.com/lorenzodc/catalyst-api/pkg/logger"
	"github.com/lorenzodc/catalyst-api/pkg/req"

	"github.com/gin-gonic/gin"
)

// AssessmentHandler serves the metered readiness assessment endpoint.
// Scoring is local arithmetic; no AI provider call.
type AssessmentHandler struct {
	gate    *gate.Gate
	scoring *service.AssessmentService
	log     *logger.Logger
}

// NewAssessmentHandler creates a new assessment handler.
func NewAssessmentHandler(g *gate.Gate, scoring *service.AssessmentService, log *logger.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		gate:    g,
		scoring: scoring,
		log:     log,
	}
}

// Submit scores a completed assessment.
func (h *AssessmentHandler) Submit(c *gin.Context) {
	user := middleware.UserFromContext(c)

	decision := h.gate.Enforce(c.Request.Context(), user,
		enforceInput(c, domain.FeatureAssessment, "submission",
			"You've reached your monthly assessment limit. Upgrade to keep assessing!"))
	if !decision.Allowed {
		writeDenial(c, decision.Denial)
		return
	}

	submission, err := req.HandleBody[domain.AssessmentSubmission](c.Writer, c.Request, h.log)
	if err != nil {
		return
	}

	result := h.scoring.Score(*submission)
	c.JSON(http.StatusOK, result)
}
