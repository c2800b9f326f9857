package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lorenzodc/catalyst-api/internal/domain"
	"github.com/lorenzodc/catalyst-api/internal/repository"
	"github.com/lorenzodc/catalyst-api/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GoalRepository is the Postgres implementation of goal storage.
type GoalRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewGoalRepository creates a goal repository backed by the given pool.
func NewGoalRepository(pool *pgxpool.Pool, log *logger.Logger) *GoalRepository {
	return &GoalRepository{
		pool: pool,
		log:  log,
	}
}

// GetAllByUser returns the user's goals, newest first.
func (r *GoalRepository) GetAllByUser(ctx context.Context, userID string) ([]domain.Goal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, title, description, category, status, progress, target_date, created_at, updated_at
		FROM goals
		WHERE user_id = $1
		ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	goals := make([]domain.Goal, 0)
	for rows.Next() {
		var goal domain.Goal
		if err := rows.Scan(
			&goal.ID, &goal.UserID, &goal.Title, &goal.Description, &goal.Category,
			&goal.Status, &goal.Progress, &goal.TargetDate, &goal.CreatedAt, &goal.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}

	return goals, nil
}

// GetByID returns a goal by ID.
func (r *GoalRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Goal, error) {
	var goal domain.Goal
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, title, description, category, status, progress, target_date, created_at, updated_at
		FROM goals
		WHERE id = $1`,
		id,
	).Scan(
		&goal.ID, &goal.UserID, &goal.Title, &goal.Description, &goal.Category,
		&goal.Status, &goal.Progress, &goal.TargetDate, &goal.CreatedAt, &goal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Goal{}, repository.ErrNotFound
		}
		return domain.Goal{}, fmt.Errorf("get goal: %w", err)
	}

	return goal, nil
}

// Create stores a new goal.
func (r *GoalRepository) Create(ctx context.Context, goal domain.Goal) (domain.Goal, error) {
	if goal.ID == uuid.Nil {
		goal.ID = uuid.New()
	}
	now := time.Now().UTC()
	goal.CreatedAt = now
	goal.UpdatedAt = now

	_, err := r.pool.Exec(ctx, `
		INSERT INTO goals (id, user_id, title, description, category, status, progress, target_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		goal.ID, goal.UserID, goal.Title, goal.Description, goal.Category,
		goal.Status, goal.Progress, goal.TargetDate, goal.CreatedAt, goal.UpdatedAt,
	)
	if err != nil {
		return domain.Goal{}, fmt.Errorf("create goal: %w", err)
	}

	return goal, nil
}

// Update replaces an existing goal.
func (r *GoalRepository) Update(ctx context.Context, goal domain.Goal) error {
	goal.UpdatedAt = time.Now().UTC()

	tag, err := r.pool.Exec(ctx, `
		UPDATE goals
		SET title = $1, description = $2, category = $3, status = $4, progress = $5, target_date = $6, updated_at = $7
		WHERE id = $8`,
		goal.Title, goal.Description, goal.Category, goal.Status, goal.Progress,
		goal.TargetDate, goal.UpdatedAt, goal.ID,
	)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a goal.
func (r *GoalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}
