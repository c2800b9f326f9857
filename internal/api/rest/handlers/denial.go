package handlers

import (
	"github.com/lorenzodc/catalyst-api/internal/domain"
	"github.com/lorenzodc/catalyst-api/internal/gate"

	"github.com/gin-gonic/gin"
)

// writeDenial writes a gate denial response unmodified.
func writeDenial(c *gin.Context, denial *gate.Denial) {
	for key, value := range denial.Headers {
		c.Header(key, value)
	}
	c.JSON(denial.StatusCode, denial.Body)
}

// enforceInput builds the gate input for the current request.
func enforceInput(c *gin.Context, feature domain.FeatureType, action, customMessage string) gate.EnforceInput {
	return gate.EnforceInput{
		Feature:            feature,
		Endpoint:           c.FullPath(),
		Method:             c.Request.Method,
		TrackUsage:         true,
		Action:             action,
		CustomErrorMessage: customMessage,
		UserAgent:          c.Request.UserAgent(),
		ClientIP:           gate.ResolveClientIP(c.Request.Header),
	}
}
