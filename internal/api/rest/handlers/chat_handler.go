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

const chatSystemPrompt = "You are Catalyst, an AI business coach. Give concrete, actionable advice grounded in the user's goals."

// ChatHandler serves the metered chat endpoint.
type ChatHandler struct {
	gate *gate.Gate
	ai   *openai.Client
	log  *logger.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(g *gate.Gate, ai *openai.Client, log *logger.Logger) *ChatHandler {
	return &ChatHandler{
		gate: g,
		ai:   ai,
		log:  log,
	}
}

type chatRequest struct {
	Message string               `json:"message" binding:"required"`
	History []openai.ChatMessage `json:"history"`
}

// Chat runs one chat completion after the usage gate.
func (h *ChatHandler) Chat(c *gin.Context) {
	user := middleware.UserFromContext(c)

	decision := h.gate.Enforce(c.Request.Context(), user,
		enforceInput(c, domain.FeatureChat, "message_sent",
			"You've reached your monthly chat limit. Upgrade for more conversations!"))
	if !decision.Allowed {
		writeDenial(c, decision.Denial)
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid chat request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	messages := make([]openai.ChatMessage, 0, len(req.History)+2)
	messages = append(messages, openai.ChatMessage{Role: "system", Content: chatSystemPrompt})
	messages = append(messages, req.History...)
	messages = append(messages, openai.ChatMessage{Role: "user", Content: req.Message})

	reply, err := h.ai.CreateChatCompletion(c.Request.Context(), "", messages)
	if err != nil {
		h.log.Error("Chat completion failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate a response"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
