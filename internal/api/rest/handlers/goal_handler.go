package handlers

import (
	"errors"
	"net/http"

	"github.com/lorenzodc/catalyst-api/internal/api/rest/middleware"
	"github.com/lorenzodc/catalyst-api/internal/domain"
	"github.com/lorenzodc/catalyst-api/internal/repository"
	"github.com/lorenzodc/catalyst-api/internal/service"
	"github.com/lorenzodc/catalyst-api/pkg/logger"
	"github.com/lorenzodc/catalyst-api/pkg/req"

	"github.com/gin-gonic/gin"
)

// GoalHandler serves the goal CRUD endpoints. Goals are not metered, but
// they do require an authenticated user.
type GoalHandler struct {
	goals *service.GoalService
	log   *logger.Logger
}

// NewGoalHandler creates a new goal handler.
func NewGoalHandler(goals *service.GoalService, log *logger.Logger) *GoalHandler {
	return &GoalHandler{
		goals: goals,
		log:   log,
	}
}

// List returns all of the user's goals, newest first.
func (h *GoalHandler) List(c *gin.Context) {
	user := middleware.UserFromContext(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	goals, err := h.goals.GetAll(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error("Failed to list goals: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load goals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// Get returns a single goal by ID.
func (h *GoalHandler) Get(c *gin.Context) {
	user := middleware.UserFromContext(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	goal, err := h.goals.GetByID(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		h.writeGoalError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

// Create stores a new goal.
func (h *GoalHandler) Create(c *gin.Context) {
	user := middleware.UserFromContext(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	body, err := req.HandleBody[domain.GoalRequest](c.Writer, c.Request, h.log)
	if err != nil {
		return
	}

	goal, err := h.goals.Create(c.Request.Context(), user.ID, *body)
	if err != nil {
		h.log.Error("Failed to create goal: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create goal"})
		return
	}

	c.JSON(http.StatusCreated, goal)
}

// Update replaces a goal's mutable fields.
func (h *GoalHandler) Update(c *gin.Context) {
	user := middleware.UserFromContext(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	body, err := req.HandleBody[domain.GoalRequest](c.Writer, c.Request, h.log)
	if err != nil {
		return
	}

	goal, err := h.goals.Update(c.Request.Context(), user.ID, c.Param("id"), *body)
	if err != nil {
		h.writeGoalError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

// Delete removes a goal.
func (h *GoalHandler) Delete(c *gin.Context) {
	user := middleware.UserFromContext(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if err := h.goals.Delete(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		h.writeGoalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *GoalHandler) writeGoalError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
	case errors.Is(err, repository.ErrInvalidData):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid goal ID"})
	default:
		h.log.Error("Goal operation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Goal operation failed"})
	}
}
