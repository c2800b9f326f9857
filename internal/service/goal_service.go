package service

import (
	"context"

	"github.com/lorenzodc/catalyst-api/internal/domain"
	"github.com/lorenzodc/catalyst-api/internal/repository"
	"github.com/lorenzodc/catalyst-api/pkg/logger"

	"github.com/google/uuid"
)

// GoalService manages user-owned tracked goals.
type GoalService struct {
	repo repository.GoalRepository
	log  *logger.Logger
}

// NewGoalService creates a new goal service.
func NewGoalService(repo repository.GoalRepository, log *logger.Logger) *GoalService {
	return &GoalService{
		repo: repo,
		log:  log,
	}
}

// GetAll returns the user's goals.
func (s *GoalService) GetAll(ctx context.Context, userID string) ([]domain.Goal, error) {
	return s.repo.GetAllByUser(ctx, userID)
}

// GetByID returns one goal; goals belonging to other users read as not
// found so their existence does not leak.
func (s *GoalService) GetByID(ctx context.Context, userID, id string) (domain.Goal, error) {
	goalID, err := uuid.Parse(id)
	if err != nil {
		return domain.Goal{}, repository.ErrInvalidData
	}

	goal, err := s.repo.GetByID(ctx, goalID)
	if err != nil {
		return domain.Goal{}, err
	}
	if goal.UserID != userID {
		return domain.Goal{}, repository.ErrNotFound
	}

	return goal, nil
}

// Create stores a new goal for the user.
func (s *GoalService) Create(ctx context.Context, userID string, req domain.GoalRequest) (domain.Goal, error) {
	status := req.Status
	if status == "" {
		status = domain.GoalStatusActive
	}

	goal := domain.Goal{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Status:      status,
		Progress:    req.Progress,
		TargetDate:  req.TargetDate,
	}

	created, err := s.repo.Create(ctx, goal)
	if err != nil {
		return domain.Goal{}, err
	}

	s.log.Infow("Goal created", "goalID", created.ID, "userID", userID)
	return created, nil
}

// Update applies the request to an existing goal owned by the user.
func (s *GoalService) Update(ctx context.Context, userID, id string, req domain.GoalRequest) (domain.Goal, error) {
	goal, err := s.GetByID(ctx, userID, id)
	if err != nil {
		return domain.Goal{}, err
	}

	goal.Title = req.Title
	goal.Description = req.Description
	goal.Category = req.Category
	if req.Status != "" {
		goal.Status = req.Status
	}
	goal.Progress = req.Progress
	goal.TargetDate = req.TargetDate

	if err := s.repo.Update(ctx, goal); err != nil {
		return domain.Goal{}, err
	}

	return goal, nil
}

// Delete removes a goal owned by the user.
func (s *GoalService) Delete(ctx context.Context, userID, id string) error {
	goal, err := s.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, goal.ID); err != nil {
		return err
	}

	s.log.Infow("Goal deleted", "goalID", goal.ID, "userID", userID)
	return nil
}
