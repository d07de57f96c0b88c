package board

import (
	"context"
	"fmt"
	"sync"
	"time"

	"maintenance-system/internal/entities"
	"maintenance-system/internal/lifecycle"
	apperrors "maintenance-system/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrMoveInFlight rejects a second move on a request whose first move has
	// not confirmed or rolled back yet.
	ErrMoveInFlight = fmt.Errorf("a move for this request is already in flight")
	// ErrMoveDeclined is returned when the user refuses the cancellation
	// confirmation. The projection is untouched and no store call was made.
	ErrMoveDeclined = fmt.Errorf("move declined by user")
)

// Store is the authoritative request store the coordinator confirms moves
// against.
type Store interface {
	FetchAll(ctx context.Context) ([]entities.MaintenanceRequest, error)
	UpdateState(ctx context.Context, id uuid.UUID, state lifecycle.State) error
}

// ConfirmFunc answers the "really cancel?" question. It may block on user
// input.
type ConfirmFunc func(ctx context.Context) (bool, error)

// Notice is a user-visible, non-blocking failure record.
type Notice struct {
	RequestID uuid.UUID `json:"request_id"`
	Message   string    `json:"message"`
	At        time.Time `json:"at"`
}

// MoveOptions carries the optional same-column reorder target.
type MoveOptions struct {
	// ReorderTo, when set on a same-column move, is the target index within
	// the column. Reordering is ephemeral UI state with no durability.
	ReorderTo *int
}

// Coordinator owns the board's local projection and mediates moves: snapshot
// before mutate, apply optimistically, confirm against the store, revert and
// re-fetch on failure. One in-flight move per request id.
type Coordinator struct {
	store   Store
	logger  *zap.Logger
	timeout time.Duration
	clock   func() time.Time

	mu       sync.Mutex
	snapshot Snapshot
	inFlight map[uuid.UUID]struct{}
	notices  []Notice
}

func NewCoordinator(store Store, timeout time.Duration, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		store:    store,
		logger:   logger,
		timeout:  timeout,
		clock:    time.Now,
		inFlight: make(map[uuid.UUID]struct{}),
		snapshot: Project(nil, "", time.Now()),
	}
}

// Snapshot returns a copy of the current projection.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot.Clone()
}

// Notices drains the accumulated failure notices.
func (c *Coordinator) Notices() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.notices
	c.notices = nil
	return out
}

// Refresh re-fetches the collection and rebuilds the projection. It is a
// no-op while any move is in flight so a background tick cannot visibly
// revert an optimistic move before its confirmation lands.
func (c *Coordinator) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if len(c.inFlight) > 0 {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	requests, err := c.store.FetchAll(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.inFlight) > 0 {
		// A move started while we were fetching; the move's own rollback or
		// confirmation owns the projection now.
		return nil
	}
	c.snapshot = Project(requests, "", c.clock())
	return nil
}

// Move applies a user-initiated card move from source to dest.
func (c *Coordinator) Move(ctx context.Context, requestID uuid.UUID, source, dest Column, confirm ConfirmFunc, opts MoveOptions) error {
	if source == dest {
		if opts.ReorderTo == nil {
			return nil
		}
		return c.reorder(requestID, source, *opts.ReorderTo)
	}

	// Cancelling feels irreversible, so it alone asks first. Decline aborts
	// before any projection change or store call.
	if dest == ColumnCancelled && source != ColumnCancelled {
		if confirm == nil {
			return ErrMoveDeclined
		}
		ok, err := confirm(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return ErrMoveDeclined
		}
	}

	before, err := c.beginMove(requestID, source, dest)
	if err != nil {
		return err
	}

	moveCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.store.UpdateState(moveCtx, requestID, StateFor(dest)); err != nil {
		c.rollback(ctx, requestID, before, err)
		return err
	}

	c.mu.Lock()
	delete(c.inFlight, requestID)
	c.mu.Unlock()
	return nil
}

// beginMove registers the in-flight move and applies the optimistic update,
// returning the pre-move snapshot for the rollback path.
func (c *Coordinator) beginMove(requestID uuid.UUID, source, dest Column) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, busy := c.inFlight[requestID]; busy {
		return Snapshot{}, ErrMoveInFlight
	}

	before := c.snapshot.Clone()

	srcCards := c.snapshot.column(source)
	idx := indexOf(*srcCards, requestID)
	if idx < 0 {
		return Snapshot{}, fmt.Errorf("%w: request %s not in column %s", apperrors.ErrNotFound, requestID, source)
	}

	card := (*srcCards)[idx]
	*srcCards = append((*srcCards)[:idx], (*srcCards)[idx+1:]...)
	destCards := c.snapshot.column(dest)
	*destCards = append(*destCards, card)

	c.inFlight[requestID] = struct{}{}
	return before, nil
}

// rollback discards the optimistic projection and rebuilds from authoritative
// data. If the re-fetch itself fails the pre-move snapshot stays in place.
func (c *Coordinator) rollback(ctx context.Context, requestID uuid.UUID, before Snapshot, cause error) {
	c.logger.Warn("move confirmation failed, rolling back",
		zap.String("request_id", requestID.String()),
		zap.Error(cause),
	)

	c.mu.Lock()
	c.snapshot = before
	delete(c.inFlight, requestID)
	c.notices = append(c.notices, Notice{
		RequestID: requestID,
		Message:   "Failed to save the move. The card was returned to its previous column.",
		At:        c.clock(),
	})
	c.mu.Unlock()

	requests, err := c.store.FetchAll(ctx)
	if err != nil {
		c.logger.Warn("authoritative re-fetch after rollback failed", zap.Error(err))
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.inFlight) > 0 {
		return
	}
	c.snapshot = Project(requests, "", c.clock())
}

// reorder moves a card within its column. In-memory only, no store call.
func (c *Coordinator) reorder(requestID uuid.UUID, col Column, to int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cards := c.snapshot.column(col)
	idx := indexOf(*cards, requestID)
	if idx < 0 {
		return fmt.Errorf("%w: request %s not in column %s", apperrors.ErrNotFound, requestID, col)
	}
	if to < 0 || to >= len(*cards) || to == idx {
		return nil
	}

	card := (*cards)[idx]
	*cards = append((*cards)[:idx], (*cards)[idx+1:]...)
	*cards = append((*cards)[:to], append([]Card{card}, (*cards)[to:]...)...)
	return nil
}

func indexOf(cards []Card, id uuid.UUID) int {
	for i, card := range cards {
		if card.ID == id {
			return i
		}
	}
	return -1
}
