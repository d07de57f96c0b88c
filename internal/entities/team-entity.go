package entities

import "time"

type Team struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	Department   string  `json:"department"`
	Description  string  `json:"description"`
	Icon         string  `json:"icon"`
	TeamLeaderID *uint64 `json:"team_leader_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TeamLeader *User  `json:"team_leader,omitempty"`
	Members    []User `json:"members,omitempty"`
}
