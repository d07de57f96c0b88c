package services

import (
	"context"
	"testing"
	"time"

	"maintenance-system/internal/board"
	"maintenance-system/internal/dto"
	apperrors "maintenance-system/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestBoardService(t *testing.T) (*BoardService, *MaintenanceService) {
	t.Helper()
	maintenanceSvc, _, _, _ := newTestMaintenanceService()
	return NewBoardService(maintenanceSvc, time.Second, zap.NewNop()), maintenanceSvc
}

func TestGetBoardProjectsAllRequests(t *testing.T) {
	boardSvc, maintenanceSvc := newTestBoardService(t)
	ctx := authedCtx(1)

	_, err := maintenanceSvc.CreateRequest(ctx, dto.CreateMaintenanceRequestDTO{Name: "draft job"})
	require.NoError(t, err)
	_, err = maintenanceSvc.CreateRequest(ctx, dto.CreateMaintenanceRequestDTO{Name: "running job", State: "in_progress"})
	require.NoError(t, err)

	snapshot, err := boardSvc.GetBoard(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, snapshot.Total())
	assert.Len(t, snapshot.Open, 1)
	assert.Len(t, snapshot.InProgress, 1)
}

func TestMoveCardThroughService(t *testing.T) {
	boardSvc, maintenanceSvc := newTestBoardService(t)
	ctx := authedCtx(1)

	created, err := maintenanceSvc.CreateRequest(ctx, dto.CreateMaintenanceRequestDTO{Name: "draft job"})
	require.NoError(t, err)

	snapshot, notices, err := boardSvc.MoveCard(ctx, dto.MoveCardDTO{
		RequestID: created.ID.String(),
		Source:    "open",
		Dest:      "in_progress",
	})
	require.NoError(t, err)
	assert.Empty(t, notices)
	assert.Len(t, snapshot.InProgress, 1)

	// The move persisted through the state endpoint path.
	current, err := maintenanceSvc.FindRequest(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "in_progress", current.State.String())
}

func TestMoveCardCancelNeedsConfirmation(t *testing.T) {
	boardSvc, maintenanceSvc := newTestBoardService(t)
	ctx := authedCtx(1)

	created, err := maintenanceSvc.CreateRequest(ctx, dto.CreateMaintenanceRequestDTO{Name: "draft job"})
	require.NoError(t, err)

	_, _, err = boardSvc.MoveCard(ctx, dto.MoveCardDTO{
		RequestID: created.ID.String(),
		Source:    "open",
		Dest:      "cancelled",
		Confirmed: false,
	})
	require.ErrorIs(t, err, board.ErrMoveDeclined)

	current, err := maintenanceSvc.FindRequest(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "draft", current.State.String())

	_, _, err = boardSvc.MoveCard(ctx, dto.MoveCardDTO{
		RequestID: created.ID.String(),
		Source:    "open",
		Dest:      "cancelled",
		Confirmed: true,
	})
	require.NoError(t, err)

	current, err = maintenanceSvc.FindRequest(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", current.State.String())
}

func TestMoveCardRejectsBadInput(t *testing.T) {
	boardSvc, _ := newTestBoardService(t)
	ctx := context.Background()

	_, _, err := boardSvc.MoveCard(ctx, dto.MoveCardDTO{
		RequestID: "nope",
		Source:    "open",
		Dest:      "in_progress",
	})
	var invalid *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &invalid)

	_, _, err = boardSvc.MoveCard(ctx, dto.MoveCardDTO{
		RequestID: "0d3adf4e-2f6f-4c3f-9b1a-6f2b8f6a1c2d",
		Source:    "backlog",
		Dest:      "in_progress",
	})
	assert.ErrorAs(t, err, &invalid)
}

func TestMoveCardReorderOnly(t *testing.T) {
	boardSvc, maintenanceSvc := newTestBoardService(t)
	ctx := authedCtx(1)

	first, err := maintenanceSvc.CreateRequest(ctx, dto.CreateMaintenanceRequestDTO{Name: "a"})
	require.NoError(t, err)
	_, err = maintenanceSvc.CreateRequest(ctx, dto.CreateMaintenanceRequestDTO{Name: "b"})
	require.NoError(t, err)

	snapshot, _, err := boardSvc.MoveCard(ctx, dto.MoveCardDTO{
		RequestID: first.ID.String(),
		Source:    "open",
		Dest:      "open",
		ReorderTo: null.IntFrom(1),
	})
	require.NoError(t, err)
	require.Len(t, snapshot.Open, 2)
	assert.Equal(t, "a", snapshot.Open[1].Title)

	// Reorders never change state.
	current, err := maintenanceSvc.FindRequest(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "draft", current.State.String())
}
