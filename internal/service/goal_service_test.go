package service

import (
	"context"
	"io"
	"testing"

	"github.com/lorenzodc/catalyst-api/internal/domain"
	"github.com/lorenzodc/catalyst-api/internal/repository"
	"github.com/lorenzodc/catalyst-api/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGoalService(t *testing.T) *GoalService {
	t.Helper()
	log := logger.New(logger.ERROR)
	log.SetOutput(io.Discard)
	return NewGoalService(repository.NewInMemoryGoalRepository(log), log)
}

func TestGoalService_CreateAndGet(t *testing.T) {
	svc := newGoalService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", domain.GoalRequest{
		Title:    "Automate weekly reports",
		Category: "operations",
		Progress: 10,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "u1", created.UserID)
	assert.Equal(t, domain.GoalStatusActive, created.Status, "status defaults to active")

	got, err := svc.GetByID(ctx, "u1", created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Automate weekly reports", got.Title)
}

func TestGoalService_GetByID_InvalidID(t *testing.T) {
	svc := newGoalService(t)

	_, err := svc.GetByID(context.Background(), "u1", "not-a-uuid")
	assert.ErrorIs(t, err, repository.ErrInvalidData)
}

func TestGoalService_OwnershipHidesOtherUsersGoals(t *testing.T) {
	svc := newGoalService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", domain.GoalRequest{Title: "Private goal"})
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, "u2", created.ID.String())
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = svc.Delete(ctx, "u2", created.ID.String())
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// Still there for the owner
	_, err = svc.GetByID(ctx, "u1", created.ID.String())
	assert.NoError(t, err)
}

func TestGoalService_Update(t *testing.T) {
	svc := newGoalService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", domain.GoalRequest{Title: "Draft"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "u1", created.ID.String(), domain.GoalRequest{
		Title:    "Draft v2",
		Status:   domain.GoalStatusCompleted,
		Progress: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, "Draft v2", updated.Title)
	assert.Equal(t, domain.GoalStatusCompleted, updated.Status)
	assert.Equal(t, 100, updated.Progress)
}

func TestGoalService_UpdateKeepsStatusWhenOmitted(t *testing.T) {
	svc := newGoalService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", domain.GoalRequest{
		Title:  "Keep status",
		Status: domain.GoalStatusCompleted,
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "u1", created.ID.String(), domain.GoalRequest{Title: "Keep status"})
	require.NoError(t, err)
	assert.Equal(t, domain.GoalStatusCompleted, updated.Status)
}

func TestGoalService_Delete(t *testing.T) {
	svc := newGoalService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", domain.GoalRequest{Title: "Short lived"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "u1", created.ID.String()))

	_, err = svc.GetByID(ctx, "u1", created.ID.String())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGoalService_GetAllScopedToUser(t *testing.T) {
	svc := newGoalService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", domain.GoalRequest{Title: "Mine"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u2", domain.GoalRequest{Title: "Theirs"})
	require.NoError(t, err)

	goals, err := svc.GetAll(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "Mine", goals[0].Title)
}
