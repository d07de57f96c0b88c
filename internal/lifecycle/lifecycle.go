// Package lifecycle holds the maintenance-request state machine, its priority
// scale and the derived overdue flag. Everything here is pure: no storage, no
// clock other than the one the caller passes in.
package lifecycle

import (
	"fmt"
	"time"

	apperrors "maintenance-system/pkg/errors"
)

// State is the lifecycle status of a maintenance request. Wire values match
// the persisted enumeration.
type State string

const (
	StateDraft      State = "draft"
	StateAssigned   State = "assigned"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
	StateCancelled  State = "cancelled"
)

// States lists every lifecycle state in display order.
var States = []State{StateDraft, StateAssigned, StateInProgress, StateCompleted, StateCancelled}

func ParseState(raw string) (State, error) {
	switch State(raw) {
	case StateDraft, StateAssigned, StateInProgress, StateCompleted, StateCancelled:
		return State(raw), nil
	}
	return "", fmt.Errorf("%w: unknown state %q", apperrors.ErrBadRequest, raw)
}

func (s State) String() string { return string(s) }

// Terminal reports whether default board affordances offer no move out of s.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateCancelled
}

// transitions is the full table of allowed single-step moves. Every transition
// is triggered by an explicit user action; none are timer-driven. Self
// transitions are absent on purpose.
var transitions = map[State]map[State]bool{
	StateDraft:      {StateAssigned: true, StateInProgress: true, StateCompleted: true, StateCancelled: true},
	StateAssigned:   {StateDraft: true, StateInProgress: true, StateCompleted: true, StateCancelled: true},
	StateInProgress: {StateDraft: true, StateAssigned: true, StateCompleted: true, StateCancelled: true},
	StateCompleted:  {StateDraft: true, StateAssigned: true, StateInProgress: true, StateCancelled: true},
	StateCancelled:  {StateDraft: true, StateAssigned: true, StateInProgress: true, StateCompleted: true},
}

func CanTransition(from, to State) bool {
	return transitions[from][to]
}

// Transition validates a single-step move against the table. Moving to
// cancelled needs a user confirmation upstream, but that is a UI safety rule;
// the server accepts any listed pair without re-confirming.
func Transition(from, to State) error {
	if _, err := ParseState(string(to)); err != nil {
		return err
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, from, to)
	}
	return nil
}

// InitialState is draft, or assigned when a technician is attached at
// creation time.
func InitialState(hasTechnician bool) State {
	if hasTechnician {
		return StateAssigned
	}
	return StateDraft
}

// IsOverdue is recomputed on read and never stored. A terminal request is
// never overdue, even with a past scheduled date.
func IsOverdue(scheduledDate *time.Time, state State, now time.Time) bool {
	if scheduledDate == nil {
		return false
	}
	if state.Terminal() {
		return false
	}
	return scheduledDate.Before(now)
}

// Priority is the ordinal urgency scale.
type Priority int

const (
	PriorityLow      Priority = 0
	PriorityMedium   Priority = 1
	PriorityHigh     Priority = 2
	PriorityCritical Priority = 3
)

var priorityLabels = map[Priority]string{
	PriorityLow:      "Low",
	PriorityMedium:   "Medium",
	PriorityHigh:     "High",
	PriorityCritical: "Critical",
}

// Label is total: unrecognized raw values read as Low rather than failing.
// Bad priority data is a quality problem, not a reason to break a view.
func (p Priority) Label() string {
	if label, ok := priorityLabels[p]; ok {
		return label
	}
	return priorityLabels[PriorityLow]
}

func (p Priority) Valid() bool {
	_, ok := priorityLabels[p]
	return ok
}
