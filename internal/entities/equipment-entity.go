package entities

import "time"

type Equipment struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	Code       string `json:"code"`
	Location   string `json:"location"`
	Department string `json:"department"`
	Status     string `json:"status"`

	Manufacturer   string     `json:"manufacturer"`
	Model          string     `json:"model"`
	Category       string     `json:"category"`
	PurchaseDate   *time.Time `json:"purchase_date"`
	WarrantyExpiry *time.Time `json:"warranty_expiry"`
	Specifications string     `json:"specifications"`
	Notes          string     `json:"notes"`

	TeamID              *uint64 `json:"team_id"`
	DefaultTechnicianID *uint64 `json:"default_technician_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Joined display fields, not columns.
	TeamName          string `json:"team_name,omitempty"`
	DefaultTechnician string `json:"default_technician,omitempty"`
}
