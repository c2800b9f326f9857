package handlers

import (
	"net/http"

	"github.com/lorenzodc/catalyst-api/internal/api/rest/middleware"
	"github.com/lorenzodc/catalyst-api/internal/domain"
	"github.com/lorenzodc/catalyst-api/internal/gate"
	"github.com/lorenzodc/catalyst-api/internal/integration/openai"
	"github.com/lorenzodc/catalyst-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

const documentSystemPrompt = "You are Catalyst, an AI business analyst. Summarize the document, extract the key decisions and risks, and suggest next steps."

// DocumentHandler serves the metered document analysis endpoint.
type DocumentHandler struct {
	gate *gate.Gate
	ai   *openai.Client
	log  *logger.Logger
}

// NewDocumentHandler creates a new document handler.
func NewDocumentHandler(g *gate.Gate, ai *openai.Client, log *logger.Logger) *DocumentHandler {
	return &DocumentHandler{
		gate: g,
		ai:   ai,
		log:  log,
	}
}

type documentRequest struct {
	Title   string `json:"title"`
	Content string `json:"content" binding:"required"`
}

// Analyze runs an AI analysis over the submitted document text.
func (h *DocumentHandler) Analyze(c *gin.Context) {
	user := middleware.UserFromContext(c)

	decision := h.gate.Enforce(c.Request.Context(), user,
		enforceInput(c, domain.FeatureDocument, "analysis",
			"You've reached your monthly document limit. Upgrade to analyze more documents!"))
	if !decision.Allowed {
		writeDenial(c, decision.Denial)
		return
	}

	var req documentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid document request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	content := req.Content
	if req.Title != "" {
		content = req.Title + "\n\n" + content
	}

	analysis, err := h.ai.CreateChatCompletion(c.Request.Context(), "", []openai.ChatMessage{
		{Role: "system", Content: documentSystemPrompt},
		{Role: "user", Content: content},
	})
	if err != nil {
		h.log.Error("Document analysis failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze document"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}
