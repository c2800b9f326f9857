package domain

import (
	"time"

	"github.com/google/uuid"
)

// GoalStatus is the lifecycle state of a tracked goal.
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusArchived  GoalStatus = "archived"
)

// Goal is a user-owned tracked goal.
type Goal struct {
	ID          uuid.UUID  `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"`
	Status      GoalStatus `json:"status"`
	Progress    int        `json:"progress"`
	TargetDate  *time.Time `json:"target_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// GoalRequest is the create/update payload for a goal.
type GoalRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	Category    string     `json:"category" validate:"max=100"`
	Status      GoalStatus `json:"status" validate:"omitempty,oneof=active completed archived"`
	Progress    int        `json:"progress" validate:"min=0,max=100"`
	TargetDate  *time.Time `json:"target_date"`
}
