package services

import (
	"context"
	"time"

	"maintenance-system/internal/board"
	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/lifecycle"
	apperrors "maintenance-system/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BoardServiceInterface exposes the Kanban view and the move operation.
type BoardServiceInterface interface {
	GetBoard(ctx context.Context, equipmentFilter string) (board.Snapshot, error)
	MoveCard(ctx context.Context, payload dto.MoveCardDTO) (board.Snapshot, []board.Notice, error)
	StartRefreshLoop(ctx context.Context, interval time.Duration)
}

// boardStore adapts the maintenance service to the coordinator's Store. State
// writes go through ChangeState so a board move gets the same transition-table
// check as the direct state endpoint.
type boardStore struct {
	maintenance MaintenanceServiceInterface
}

func (s *boardStore) FetchAll(ctx context.Context) ([]entities.MaintenanceRequest, error) {
	return s.maintenance.GetRequests(ctx)
}

func (s *boardStore) UpdateState(ctx context.Context, id uuid.UUID, state lifecycle.State) error {
	_, err := s.maintenance.ChangeState(ctx, id, state)
	return err
}

type BoardService struct {
	maintenance MaintenanceServiceInterface
	coordinator *board.Coordinator
	logger      *zap.Logger
}

func NewBoardService(maintenance MaintenanceServiceInterface, moveTimeout time.Duration, logger *zap.Logger) *BoardService {
	store := &boardStore{maintenance: maintenance}
	return &BoardService{
		maintenance: maintenance,
		coordinator: board.NewCoordinator(store, moveTimeout, logger),
		logger:      logger,
	}
}

// GetBoard projects a fresh fetch. The filter only narrows this response; the
// coordinator's own snapshot stays unfiltered.
func (s *BoardService) GetBoard(ctx context.Context, equipmentFilter string) (board.Snapshot, error) {
	requests, err := s.maintenance.GetRequests(ctx)
	if err != nil {
		return board.Snapshot{}, err
	}
	return board.Project(requests, equipmentFilter, time.Now()), nil
}

func (s *BoardService) MoveCard(ctx context.Context, payload dto.MoveCardDTO) (board.Snapshot, []board.Notice, error) {
	requestID, err := uuid.Parse(payload.RequestID)
	if err != nil {
		return board.Snapshot{}, nil, apperrors.NewInvalidInputError("malformed request id %q", payload.RequestID)
	}
	source, err := board.ParseColumn(payload.Source)
	if err != nil {
		return board.Snapshot{}, nil, apperrors.NewInvalidInputError("%v", err)
	}
	dest, err := board.ParseColumn(payload.Dest)
	if err != nil {
		return board.Snapshot{}, nil, apperrors.NewInvalidInputError("%v", err)
	}

	// Seat the coordinator's projection; a no-op while a move is in flight.
	if err := s.coordinator.Refresh(ctx); err != nil {
		return board.Snapshot{}, nil, err
	}

	confirm := func(context.Context) (bool, error) { return payload.Confirmed, nil }

	opts := board.MoveOptions{}
	if payload.ReorderTo.Valid {
		opts.ReorderTo = new(int)
		*opts.ReorderTo = int(payload.ReorderTo.Int)
	}

	moveErr := s.coordinator.Move(ctx, requestID, source, dest, confirm, opts)
	snapshot := s.coordinator.Snapshot()
	notices := s.coordinator.Notices()
	return snapshot, notices, moveErr
}

// StartRefreshLoop runs the periodic background re-fetch. The coordinator
// debounces it against in-flight moves.
func (s *BoardService) StartRefreshLoop(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.coordinator.Refresh(ctx); err != nil {
					s.logger.Warn("background board refresh failed", zap.Error(err))
				}
			}
		}
	}()
}
