package dto

import (
	"github.com/aarondl/null/v8"
)

type CreateTeamDTO struct {
	Name         string   `json:"name" validate:"required"`
	Department   string   `json:"department" validate:"required"`
	Description  string   `json:"description"`
	Icon         string   `json:"icon"`
	TeamLeaderID null.Int `json:"team_leader_id" validate:"omitempty,min=1"`
}

type TechnicianDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
