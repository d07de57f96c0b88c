package services

import (
	"context"
	"errors"
	"fmt"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	"maintenance-system/pkg/constants"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/utils"

	"go.uber.org/zap"
)

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, limit, offset uint64) ([]entities.Equipment, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error)
	UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*entities.Equipment, error)
	DeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentService struct {
	equipmentRepository repositories.EquipmentRepositoryInterface
	logger              *zap.Logger
}

func NewEquipmentService(equipmentRepository repositories.EquipmentRepositoryInterface, logger *zap.Logger) *EquipmentService {
	return &EquipmentService{
		equipmentRepository: equipmentRepository,
		logger:              logger,
	}
}

func (s *EquipmentService) GetEquipments(ctx context.Context, limit, offset uint64) ([]entities.Equipment, error) {
	return s.equipmentRepository.GetEquipments(ctx, limit, offset)
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	return s.equipmentRepository.FindEquipment(ctx, id)
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error) {
	// Code doubles as the human-facing serial number; it must stay unique.
	existing, err := s.equipmentRepository.FindEquipmentByCode(ctx, payload.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: equipment code %q", apperrors.ErrAlreadyExists, payload.Code)
	}

	equipment := &entities.Equipment{
		Name:           payload.Name,
		Code:           payload.Code,
		Location:       payload.Location,
		Department:     payload.Department,
		Status:         payload.Status,
		Manufacturer:   payload.Manufacturer,
		Model:          payload.Model,
		Category:       payload.Category,
		Specifications: payload.Specifications,
		Notes:          payload.Notes,
	}
	if equipment.Status == "" {
		equipment.Status = constants.EquipmentOperational
	}
	if payload.PurchaseDate.Valid {
		equipment.PurchaseDate = utils.ToPtr(payload.PurchaseDate.Time)
	}
	if payload.WarrantyExpiry.Valid {
		equipment.WarrantyExpiry = utils.ToPtr(payload.WarrantyExpiry.Time)
	}
	if payload.TeamID.Valid {
		equipment.TeamID = utils.ToPtr(uint64(payload.TeamID.Int))
	}
	if payload.DefaultTechnicianID.Valid {
		equipment.DefaultTechnicianID = utils.ToPtr(uint64(payload.DefaultTechnicianID.Int))
	}

	id, err := s.equipmentRepository.CreateEquipment(ctx, equipment)
	if err != nil {
		s.logger.Error("failed to create equipment", zap.String("code", payload.Code), zap.Error(err))
		return nil, err
	}

	s.logger.Info("equipment created", zap.Uint64("id", id), zap.String("code", payload.Code))
	return s.equipmentRepository.FindEquipment(ctx, id)
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*entities.Equipment, error) {
	equipment, err := s.equipmentRepository.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Code.Valid && payload.Code.String != equipment.Code {
		existing, err := s.equipmentRepository.FindEquipmentByCode(ctx, payload.Code.String)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: equipment code %q", apperrors.ErrAlreadyExists, payload.Code.String)
		}
		equipment.Code = payload.Code.String
	}

	if payload.Name.Valid {
		equipment.Name = payload.Name.String
	}
	if payload.Location.Valid {
		equipment.Location = payload.Location.String
	}
	if payload.Department.Valid {
		equipment.Department = payload.Department.String
	}
	if payload.Status.Valid {
		equipment.Status = payload.Status.String
	}
	if payload.Manufacturer.Valid {
		equipment.Manufacturer = payload.Manufacturer.String
	}
	if payload.Model.Valid {
		equipment.Model = payload.Model.String
	}
	if payload.Category.Valid {
		equipment.Category = payload.Category.String
	}
	if payload.Specifications.Valid {
		equipment.Specifications = payload.Specifications.String
	}
	if payload.Notes.Valid {
		equipment.Notes = payload.Notes.String
	}
	if payload.PurchaseDate.Valid {
		equipment.PurchaseDate = utils.ToPtr(payload.PurchaseDate.Time)
	}
	if payload.WarrantyExpiry.Valid {
		equipment.WarrantyExpiry = utils.ToPtr(payload.WarrantyExpiry.Time)
	}
	if payload.TeamID.Valid {
		equipment.TeamID = utils.ToPtr(uint64(payload.TeamID.Int))
	}
	if payload.DefaultTechnicianID.Valid {
		equipment.DefaultTechnicianID = utils.ToPtr(uint64(payload.DefaultTechnicianID.Int))
	}

	if err := s.equipmentRepository.UpdateEquipment(ctx, equipment); err != nil {
		return nil, err
	}
	return s.equipmentRepository.FindEquipment(ctx, id)
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uint64) error {
	return s.equipmentRepository.DeleteEquipment(ctx, id)
}
