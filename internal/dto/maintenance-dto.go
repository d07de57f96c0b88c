package dto

import (
	"github.com/aarondl/null/v8"
)

type CreateMaintenanceRequestDTO struct {
	Name          string    `json:"name" validate:"required"`
	Description   string    `json:"description"`
	EquipmentID   null.Int  `json:"equipment_id" validate:"omitempty,min=1"`
	Priority      *int      `json:"priority" validate:"omitempty,min=0,max=3"`
	State         string    `json:"state" validate:"omitempty,lifecycle_state"`
	ScheduledDate null.Time `json:"scheduled_date"`
	TechnicianID  null.Int  `json:"technician_id" validate:"omitempty,min=1"`
	TeamID        null.Int  `json:"team_id" validate:"omitempty,min=1"`
}

type UpdateMaintenanceRequestDTO struct {
	Name          null.String `json:"name" validate:"omitempty,min=1"`
	Description   null.String `json:"description"`
	EquipmentID   null.Int    `json:"equipment_id" validate:"omitempty,min=1"`
	Priority      null.Int    `json:"priority" validate:"omitempty,min=0,max=3"`
	ScheduledDate null.Time   `json:"scheduled_date"`
	TechnicianID  null.Int    `json:"technician_id" validate:"omitempty,min=1"`
	TeamID        null.Int    `json:"team_id" validate:"omitempty,min=1"`
}

type ChangeStateDTO struct {
	State string `json:"state" validate:"required,lifecycle_state"`
}

// MoveCardDTO is a board move request. Confirmed carries the client-side
// answer to the cancellation prompt.
type MoveCardDTO struct {
	RequestID string   `json:"request_id" validate:"required,uuid"`
	Source    string   `json:"source" validate:"required"`
	Dest      string   `json:"dest" validate:"required"`
	Confirmed bool     `json:"confirmed"`
	ReorderTo null.Int `json:"reorder_to"`
}
