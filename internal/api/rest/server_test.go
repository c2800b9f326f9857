package rest

import (
	"context"
	"io"
	"testing"

	"github.com/lorenzodc/catalyst-api/config"
	"github.com/lorenzodc/catalyst-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestShutdown_BeforeStart(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logger.New(logger.ERROR)
	log.SetOutput(io.Discard)

	server := NewServer(gin.New(), &config.Config{}, log)

	// A shutdown signal can land before Start has built the listener.
	assert.NoError(t, server.Shutdown(context.Background()))
}
