package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/lorenzodc/catalyst-api/internal/domain"
	"github.com/lorenzodc/catalyst-api/pkg/logger"

	"github.com/google/uuid"
)

// GoalRepository is the storage contract for tracked goals.
type GoalRepository interface {
	GetAllByUser(ctx context.Context, userID string) ([]domain.Goal, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Goal, error)
	Create(ctx context.Context, goal domain.Goal) (domain.Goal, error)
	Update(ctx context.Context, goal domain.Goal) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// InMemoryGoalRepository keeps goals in a map, used in tests and local runs.
type InMemoryGoalRepository struct {
	goals map[uuid.UUID]domain.Goal
	mutex sync.RWMutex
	log   *logger.Logger
}

// NewInMemoryGoalRepository creates a new in-memory goal repository.
func NewInMemoryGoalRepository(log *logger.Logger) *InMemoryGoalRepository {
	return &InMemoryGoalRepository{
		goals: make(map[uuid.UUID]domain.Goal),
		log:   log,
	}
}

// GetAllByUser returns the user's goals, newest first.
func (r *InMemoryGoalRepository) GetAllByUser(ctx context.Context, userID string) ([]domain.Goal, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	goals := make([]domain.Goal, 0)
	for _, goal := range r.goals {
		if goal.UserID == userID {
			goals = append(goals, goal)
		}
	}
	sort.Slice(goals, func(i, j int) bool {
		return goals[i].CreatedAt.After(goals[j].CreatedAt)
	})

	return goals, nil
}

// GetByID returns a goal by ID.
func (r *InMemoryGoalRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Goal, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	goal, exists := r.goals[id]
	if !exists {
		return domain.Goal{}, ErrNotFound
	}

	return goal, nil
}

// Create stores a new goal.
func (r *InMemoryGoalRepository) Create(ctx context.Context, goal domain.Goal) (domain.Goal, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if goal.ID == uuid.Nil {
		goal.ID = uuid.New()
	}
	now := time.Now().UTC()
	goal.CreatedAt = now
	goal.UpdatedAt = now

	r.goals[goal.ID] = goal
	return goal, nil
}

// Update replaces an existing goal.
func (r *InMemoryGoalRepository) Update(ctx context.Context, goal domain.Goal) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.goals[goal.ID]; !exists {
		return ErrNotFound
	}

	goal.UpdatedAt = time.Now().UTC()
	r.goals[goal.ID] = goal
	return nil
}

// Delete removes a goal.
func (r *InMemoryGoalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.goals[id]; !exists {
		return ErrNotFound
	}

	delete(r.goals, id)
	return nil
}
