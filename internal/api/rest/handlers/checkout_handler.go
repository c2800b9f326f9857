package handlers

import (
	"net/http"

	"github.com/lorenzodc/catalyst-api/config"
	"github.com/lorenzodc/catalyst-api/internal/api/rest/middleware"
	"github.com/lorenzodc/catalyst-api/internal/stripe"
	"github.com/lorenzodc/catalyst-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// CheckoutHandler starts Stripe subscription checkouts for paid tiers.
type CheckoutHandler struct {
	stripe stripe.Client
	config *config.Config
	log    *logger.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(sc stripe.Client, cfg *config.Config, log *logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		stripe: sc,
		config: cfg,
		log:    log,
	}
}

type checkoutRequest struct {
	Tier string `json:"tier" binding:"required"`
}

// CreateSession creates a checkout session for the requested tier and
// returns the hosted checkout URL.
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	user := middleware.UserFromContext(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	priceID, ok := h.config.Stripe.PriceIDs[req.Tier]
	if !ok || priceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown subscription tier"})
		return
	}

	customerID, err := h.stripe.GetOrCreateCustomer(c.Request.Context(), user.ID, user.Email)
	if err != nil {
		h.log.Error("Failed to resolve Stripe customer: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start checkout"})
		return
	}

	url, err := h.stripe.CreateCheckoutSession(c.Request.Context(), customerID, priceID,
		h.config.Stripe.SuccessURL, h.config.Stripe.CancelURL)
	if err != nil {
		h.log.Error("Failed to create checkout session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start checkout"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
