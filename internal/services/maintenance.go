package services

import (
	"context"
	"fmt"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/lifecycle"
	"maintenance-system/internal/repositories"
	"maintenance-system/internal/schedule"
	"maintenance-system/pkg/constants"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MaintenanceServiceInterface interface {
	GetRequests(ctx context.Context) ([]entities.MaintenanceRequest, error)
	FindRequest(ctx context.Context, id uuid.UUID) (*entities.MaintenanceRequest, error)
	CreateRequest(ctx context.Context, payload dto.CreateMaintenanceRequestDTO) (*entities.MaintenanceRequest, error)
	UpdateRequest(ctx context.Context, id uuid.UUID, payload dto.UpdateMaintenanceRequestDTO) (*entities.MaintenanceRequest, error)
	ChangeState(ctx context.Context, id uuid.UUID, newState lifecycle.State) (*entities.MaintenanceRequest, error)
	GetCalendar(ctx context.Context) ([]schedule.Day, error)
}

type MaintenanceService struct {
	maintenanceRepository repositories.MaintenanceRepositoryInterface
	equipmentRepository   repositories.EquipmentRepositoryInterface
	teamRepository        repositories.TeamRepositoryInterface
	logger                *zap.Logger
}

func NewMaintenanceService(
	maintenanceRepository repositories.MaintenanceRepositoryInterface,
	equipmentRepository repositories.EquipmentRepositoryInterface,
	teamRepository repositories.TeamRepositoryInterface,
	logger *zap.Logger,
) *MaintenanceService {
	return &MaintenanceService{
		maintenanceRepository: maintenanceRepository,
		equipmentRepository:   equipmentRepository,
		teamRepository:        teamRepository,
		logger:                logger,
	}
}

func (s *MaintenanceService) GetRequests(ctx context.Context) ([]entities.MaintenanceRequest, error) {
	return s.maintenanceRepository.GetRequests(ctx)
}

func (s *MaintenanceService) FindRequest(ctx context.Context, id uuid.UUID) (*entities.MaintenanceRequest, error) {
	return s.maintenanceRepository.FindRequest(ctx, id)
}

// generateRequestName produces the next REQ-NNNN name from the collection size.
func (s *MaintenanceService) generateRequestName(ctx context.Context) (string, error) {
	count, err := s.maintenanceRepository.CountRequests(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("REQ-%04d", count+1), nil
}

// validateTechnicianTeam ensures an assigned technician belongs to the chosen
// team. Only checked when both sides are present.
func (s *MaintenanceService) validateTechnicianTeam(ctx context.Context, technicianID, teamID uint64) error {
	ok, err := s.teamRepository.TeamHasMember(ctx, teamID, technicianID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewInvalidInputError("technician must belong to the selected team")
	}
	return nil
}

func (s *MaintenanceService) CreateRequest(ctx context.Context, payload dto.CreateMaintenanceRequestDTO) (*entities.MaintenanceRequest, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	name := payload.Name
	if name == constants.AutoNamePlaceholder {
		if name, err = s.generateRequestName(ctx); err != nil {
			return nil, err
		}
	}

	request := &entities.MaintenanceRequest{
		ID:          uuid.New(),
		Name:        name,
		Description: payload.Description,
		Priority:    lifecycle.PriorityMedium,
		CreatedBy:   userID,
	}

	if payload.Priority != nil {
		request.Priority = lifecycle.Priority(*payload.Priority)
	}
	if payload.ScheduledDate.Valid {
		request.ScheduledDate = utils.ToPtr(payload.ScheduledDate.Time)
	}
	if payload.TechnicianID.Valid {
		request.TechnicianID = utils.ToPtr(uint64(payload.TechnicianID.Int))
	}

	if payload.TechnicianID.Valid && payload.TeamID.Valid {
		if err := s.validateTechnicianTeam(ctx, uint64(payload.TechnicianID.Int), uint64(payload.TeamID.Int)); err != nil {
			return nil, err
		}
	}

	// The denormalized equipment name is cached at write time so the card can
	// still render if the reference later fails to resolve.
	if payload.EquipmentID.Valid {
		equipmentID := uint64(payload.EquipmentID.Int)
		equipment, err := s.equipmentRepository.FindEquipment(ctx, equipmentID)
		if err != nil {
			return nil, fmt.Errorf("equipment lookup failed: %w", err)
		}
		request.EquipmentID = &equipmentID
		request.EquipmentName = equipment.Name
		request.EquipmentCode = equipment.Code
	}

	if payload.State != "" {
		state, err := lifecycle.ParseState(payload.State)
		if err != nil {
			return nil, err
		}
		request.State = state
	} else {
		request.State = lifecycle.InitialState(request.TechnicianID != nil)
	}

	if err := s.maintenanceRepository.CreateRequest(ctx, request); err != nil {
		s.logger.Error("failed to create maintenance request", zap.Error(err))
		return nil, err
	}

	s.logger.Info("maintenance request created",
		zap.String("id", request.ID.String()),
		zap.String("name", request.Name),
		zap.String("state", request.State.String()),
	)
	return s.maintenanceRepository.FindRequest(ctx, request.ID)
}

func (s *MaintenanceService) UpdateRequest(ctx context.Context, id uuid.UUID, payload dto.UpdateMaintenanceRequestDTO) (*entities.MaintenanceRequest, error) {
	request, err := s.maintenanceRepository.FindRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name.Valid {
		request.Name = payload.Name.String
	}
	if payload.Description.Valid {
		request.Description = payload.Description.String
	}
	if payload.Priority.Valid {
		request.Priority = lifecycle.Priority(payload.Priority.Int)
	}
	if payload.ScheduledDate.Valid {
		request.ScheduledDate = utils.ToPtr(payload.ScheduledDate.Time)
	}
	if payload.TechnicianID.Valid {
		request.TechnicianID = utils.ToPtr(uint64(payload.TechnicianID.Int))
	}

	if payload.TechnicianID.Valid && payload.TeamID.Valid {
		if err := s.validateTechnicianTeam(ctx, uint64(payload.TechnicianID.Int), uint64(payload.TeamID.Int)); err != nil {
			return nil, err
		}
	}

	if payload.EquipmentID.Valid {
		equipmentID := uint64(payload.EquipmentID.Int)
		equipment, err := s.equipmentRepository.FindEquipment(ctx, equipmentID)
		if err != nil {
			return nil, fmt.Errorf("equipment lookup failed: %w", err)
		}
		request.EquipmentID = &equipmentID
		request.EquipmentName = equipment.Name
	}

	if err := s.maintenanceRepository.UpdateRequest(ctx, request); err != nil {
		return nil, err
	}
	return s.maintenanceRepository.FindRequest(ctx, id)
}

// ChangeState applies a lifecycle transition. The pair is validated against
// the transition table before the write; the cancellation confirmation is the
// caller's concern.
func (s *MaintenanceService) ChangeState(ctx context.Context, id uuid.UUID, newState lifecycle.State) (*entities.MaintenanceRequest, error) {
	request, err := s.maintenanceRepository.FindRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := lifecycle.Transition(request.State, newState); err != nil {
		s.logger.Warn("rejected state transition",
			zap.String("id", id.String()),
			zap.String("from", request.State.String()),
			zap.String("to", newState.String()),
		)
		return nil, err
	}

	if err := s.maintenanceRepository.UpdateState(ctx, id, newState); err != nil {
		return nil, err
	}

	s.logger.Info("maintenance request state changed",
		zap.String("id", id.String()),
		zap.String("from", request.State.String()),
		zap.String("to", newState.String()),
	)
	return s.maintenanceRepository.FindRequest(ctx, id)
}

func (s *MaintenanceService) GetCalendar(ctx context.Context) ([]schedule.Day, error) {
	requests, err := s.maintenanceRepository.GetRequests(ctx)
	if err != nil {
		return nil, err
	}
	return schedule.ProjectToCalendar(requests), nil
}
