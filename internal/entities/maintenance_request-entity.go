package entities

import (
	"time"

	"maintenance-system/internal/lifecycle"

	"github.com/google/uuid"
)

// MaintenanceRequest is the server-owned lifecycle record. It is never hard
// deleted; cancellation is a terminal state, not a removal.
type MaintenanceRequest struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Priority    lifecycle.Priority `json:"priority"`
	State       lifecycle.State    `json:"state"`

	EquipmentID *uint64 `json:"equipment_id"`
	// EquipmentName is a denormalized display label. It may lag behind the
	// referenced equipment row; display prefers the resolved record and
	// falls back to this cached name, never errors.
	EquipmentName string `json:"equipment_name"`

	ScheduledDate *time.Time `json:"scheduled_date"`
	TechnicianID  *uint64    `json:"technician_id"`
	CreatedBy     uint64     `json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Joined display fields, not columns on the requests table.
	EquipmentCode         string `json:"equipment_code,omitempty"`
	ResolvedEquipmentName string `json:"resolved_equipment_name,omitempty"`
	TechnicianName        string `json:"technician_name,omitempty"`
}

// DisplayEquipment prefers the live equipment row's name and falls back to
// the cached denormalized one, so a rename wins over the stale copy.
func (r *MaintenanceRequest) DisplayEquipment() string {
	if r.ResolvedEquipmentName != "" {
		return r.ResolvedEquipmentName
	}
	if r.EquipmentName != "" {
		return r.EquipmentName
	}
	return "Unknown equipment"
}
