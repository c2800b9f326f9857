package handlers

import (
	"io"
	"net/http"

	"github.com/lorenzodc/catalyst-api/internal/api/rest/middleware"
	"github.com/lorenzodc/catalyst-api/internal/domain"
	"github.com/lorenzodc/catalyst-api/internal/gate"
	"github.com/lorenzodc/catalyst-api/internal/integration/openai"
	"github.com/lorenzodc/catalyst-api/internal/service"
	"github.com/lorenzodc/catalyst-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// maxAudioUploadBytes caps transcription uploads at 25 MB, matching the
// provider's own limit.
const maxAudioUploadBytes = 25 << 20

const defaultVoice = "alloy"

// transcriptionVoiceID identifies the transcription engine in the store's
// voice capability check.
const transcriptionVoiceID = "whisper-1"

// VoiceHandler serves the metered voice endpoints. Both endpoints layer a
// voice-specific capability check on top of the generic usage gate.
type VoiceHandler struct {
	gate  *gate.Gate
	usage *service.UsageService
	ai    *openai.Client
	log   *logger.Logger
}

// NewVoiceHandler creates a new voice handler.
func NewVoiceHandler(g *gate.Gate, usage *service.UsageService, ai *openai.Client, log *logger.Logger) *VoiceHandler {
	return &VoiceHandler{
		gate:  g,
		usage: usage,
		ai:    ai,
		log:   log,
	}
}

// Transcribe converts an uploaded audio file to text.
func (h *VoiceHandler) Transcribe(c *gin.Context) {
	user := middleware.UserFromContext(c)

	decision := h.gate.Enforce(c.Request.Context(), user,
		enforceInput(c, domain.FeatureVoice, "transcription",
			"You've reached your monthly voice limit. Upgrade for more voice messages!"))
	if !decision.Allowed {
		writeDenial(c, decision.Denial)
		return
	}

	if !h.checkVoiceAccess(c, user.ID, transcriptionVoiceID) {
		return
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		h.log.Warn("Missing audio upload: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "An audio file is required"})
		return
	}
	if fileHeader.Size > maxAudioUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Audio file is too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.log.Error("Failed to open audio upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read audio file"})
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, maxAudioUploadBytes))
	if err != nil {
		h.log.Error("Failed to read audio upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read audio file"})
		return
	}

	text, err := h.ai.Transcribe(c.Request.Context(), fileHeader.Filename, audio)
	if err != nil {
		h.log.Error("Transcription failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to transcribe audio"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": text})
}

type synthesizeRequest struct {
	Text  string `json:"text" binding:"required"`
	Voice string `json:"voice"`
	HD    bool   `json:"hd"`
}

// Synthesize renders text to speech and returns the audio.
func (h *VoiceHandler) Synthesize(c *gin.Context) {
	user := middleware.UserFromContext(c)

	decision := h.gate.Enforce(c.Request.Context(), user,
		enforceInput(c, domain.FeatureVoice, "synthesis",
			"You've reached your monthly voice limit. Upgrade for more voice messages!"))
	if !decision.Allowed {
		writeDenial(c, decision.Denial)
		return
	}

	var req synthesizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid synthesize request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	voice := req.Voice
	if voice == "" {
		voice = defaultVoice
	}
	voiceID := voice
	if req.HD {
		voiceID += "-hd"
	}

	if !h.checkVoiceAccess(c, user.ID, voiceID) {
		return
	}

	audio, err := h.ai.Synthesize(c.Request.Context(), req.Text, voice, req.HD)
	if err != nil {
		h.log.Error("Speech synthesis failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to synthesize speech"})
		return
	}

	c.Data(http.StatusOK, "audio/mpeg", audio)
}

// checkVoiceAccess runs the secondary voice capability check and writes the
// rejection itself. Returns false when the request must stop.
func (h *VoiceHandler) checkVoiceAccess(c *gin.Context, userID, voiceID string) bool {
	allowed, err := h.usage.CanUseVoice(c.Request.Context(), userID, voiceID)
	if err != nil {
		h.log.Error("Voice capability check failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check usage limits"})
		return false
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{
			"error":           "This voice is not available in your current plan.",
			"upgradeRequired": true,
		})
		return false
	}
	return true
}
