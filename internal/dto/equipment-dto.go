package dto

import (
	"github.com/aarondl/null/v8"
)

type CreateEquipmentDTO struct {
	Name       string `json:"name" validate:"required"`
	Code       string `json:"code" validate:"required,equipment_code"`
	Location   string `json:"location" validate:"required"`
	Department string `json:"department" validate:"required"`
	Status     string `json:"status" validate:"omitempty,oneof=operational maintenance down scrapped"`

	Manufacturer   string    `json:"manufacturer"`
	Model          string    `json:"model"`
	Category       string    `json:"category"`
	PurchaseDate   null.Time `json:"purchase_date"`
	WarrantyExpiry null.Time `json:"warranty_expiry"`
	Specifications string    `json:"specifications"`
	Notes          string    `json:"notes"`

	TeamID              null.Int `json:"team_id" validate:"omitempty,min=1"`
	DefaultTechnicianID null.Int `json:"default_technician_id" validate:"omitempty,min=1"`
}

type UpdateEquipmentDTO struct {
	Name       null.String `json:"name" validate:"omitempty,min=1"`
	Code       null.String `json:"code" validate:"omitempty,equipment_code"`
	Location   null.String `json:"location"`
	Department null.String `json:"department"`
	Status     null.String `json:"status" validate:"omitempty,oneof=operational maintenance down scrapped"`

	Manufacturer   null.String `json:"manufacturer"`
	Model          null.String `json:"model"`
	Category       null.String `json:"category"`
	PurchaseDate   null.Time   `json:"purchase_date"`
	WarrantyExpiry null.Time   `json:"warranty_expiry"`
	Specifications null.String `json:"specifications"`
	Notes          null.String `json:"notes"`

	TeamID              null.Int `json:"team_id" validate:"omitempty,min=1"`
	DefaultTechnicianID null.Int `json:"default_technician_id" validate:"omitempty,min=1"`
}
