// Package board derives the Kanban view of the maintenance-request collection
// and coordinates card moves against the authoritative store, including the
// optimistic-update and rollback path.
package board

import (
	"fmt"
	"time"

	"maintenance-system/internal/entities"
	"maintenance-system/internal/lifecycle"

	"github.com/google/uuid"
)

// Column is a derived UI grouping, not a stored attribute.
type Column string

const (
	ColumnOpen       Column = "open"
	ColumnInProgress Column = "in_progress"
	ColumnCompleted  Column = "completed"
	ColumnCancelled  Column = "cancelled"
)

// Columns lists the board columns in display order.
var Columns = []Column{ColumnOpen, ColumnInProgress, ColumnCompleted, ColumnCancelled}

func ParseColumn(raw string) (Column, error) {
	switch Column(raw) {
	case ColumnOpen, ColumnInProgress, ColumnCompleted, ColumnCancelled:
		return Column(raw), nil
	}
	return "", fmt.Errorf("unknown board column %q", raw)
}

// ColumnOf maps a lifecycle state to its board column. Draft and assigned
// share the open column. Unrecognized states also land in open so a request
// with bad state data stays visible instead of disappearing from the board.
func ColumnOf(state lifecycle.State) Column {
	switch state {
	case lifecycle.StateInProgress:
		return ColumnInProgress
	case lifecycle.StateCompleted:
		return ColumnCompleted
	case lifecycle.StateCancelled:
		return ColumnCancelled
	default:
		return ColumnOpen
	}
}

// StateFor is the write-side inverse of ColumnOf: dropping a card into a
// column picks the state persisted for it. Open writes draft, matching the
// original board behavior where an assigned card dragged back to open
// re-enters draft.
func StateFor(col Column) lifecycle.State {
	switch col {
	case ColumnInProgress:
		return lifecycle.StateInProgress
	case ColumnCompleted:
		return lifecycle.StateCompleted
	case ColumnCancelled:
		return lifecycle.StateCancelled
	default:
		return lifecycle.StateDraft
	}
}

// Card is the summary a board column holds for one request.
type Card struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Priority      string     `json:"priority"`
	Technician    string     `json:"technician"`
	EquipmentID   *uint64    `json:"equipment_id"`
	EquipmentCode string     `json:"equipment_code"`
	EquipmentName string     `json:"equipment_name"`
	DueDate       *time.Time `json:"due_date"`
	Overdue       bool       `json:"overdue"`
}

// Snapshot is one full projection of the request collection onto the four
// columns. Order within a column is the server fetch order.
type Snapshot struct {
	Open       []Card `json:"open"`
	InProgress []Card `json:"in_progress"`
	Completed  []Card `json:"completed"`
	Cancelled  []Card `json:"cancelled"`
}

func (s *Snapshot) column(col Column) *[]Card {
	switch col {
	case ColumnInProgress:
		return &s.InProgress
	case ColumnCompleted:
		return &s.Completed
	case ColumnCancelled:
		return &s.Cancelled
	default:
		return &s.Open
	}
}

func (s Snapshot) Clone() Snapshot {
	clone := Snapshot{}
	for _, col := range Columns {
		src := *s.column(col)
		dst := make([]Card, len(src))
		copy(dst, src)
		*clone.column(col) = dst
	}
	return clone
}

func (s Snapshot) Total() int {
	return len(s.Open) + len(s.InProgress) + len(s.Completed) + len(s.Cancelled)
}

func newCard(r entities.MaintenanceRequest, now time.Time) Card {
	tech := r.TechnicianName
	if tech == "" {
		tech = "Unassigned"
	}
	return Card{
		ID:            r.ID,
		Title:         r.Name,
		Priority:      r.Priority.Label(),
		Technician:    tech,
		EquipmentID:   r.EquipmentID,
		EquipmentCode: r.EquipmentCode,
		EquipmentName: r.DisplayEquipment(),
		DueDate:       r.ScheduledDate,
		Overdue:       lifecycle.IsOverdue(r.ScheduledDate, r.State, now),
	}
}

// matchesEquipment accepts either the equipment code or its numeric id.
func matchesEquipment(r entities.MaintenanceRequest, filter string) bool {
	if r.EquipmentCode == filter {
		return true
	}
	return r.EquipmentID != nil && fmt.Sprintf("%d", *r.EquipmentID) == filter
}

// Project places every request into exactly one column, in fetch order. The
// equipment filter narrows the view after the fact and never touches the
// underlying collection.
func Project(requests []entities.MaintenanceRequest, equipmentFilter string, now time.Time) Snapshot {
	snapshot := Snapshot{
		Open:       []Card{},
		InProgress: []Card{},
		Completed:  []Card{},
		Cancelled:  []Card{},
	}
	for _, r := range requests {
		if equipmentFilter != "" && !matchesEquipment(r, equipmentFilter) {
			continue
		}
		col := snapshot.column(ColumnOf(r.State))
		*col = append(*col, newCard(r, now))
	}
	return snapshot
}
