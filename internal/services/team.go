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

type TeamServiceInterface interface {
	GetTeams(ctx context.Context) ([]entities.Team, error)
	FindTeam(ctx context.Context, id uint64) (*entities.Team, error)
	CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*entities.Team, error)
	GetTechnicians(ctx context.Context) ([]dto.TechnicianDTO, error)
}

type TeamService struct {
	teamRepository repositories.TeamRepositoryInterface
	userRepository repositories.UserRepositoryInterface
	logger         *zap.Logger
}

func NewTeamService(
	teamRepository repositories.TeamRepositoryInterface,
	userRepository repositories.UserRepositoryInterface,
	logger *zap.Logger,
) *TeamService {
	return &TeamService{
		teamRepository: teamRepository,
		userRepository: userRepository,
		logger:         logger,
	}
}

func (s *TeamService) GetTeams(ctx context.Context) ([]entities.Team, error) {
	teams, err := s.teamRepository.GetTeams(ctx)
	if err != nil {
		return nil, err
	}

	for i := range teams {
		members, err := s.teamRepository.GetMembers(ctx, teams[i].ID)
		if err != nil {
			// Member enrichment is display-only; a failed lookup degrades to
			// an empty list instead of failing the whole listing.
			s.logger.Warn("failed to load team members", zap.Uint64("team_id", teams[i].ID), zap.Error(err))
			continue
		}
		teams[i].Members = members
	}
	return teams, nil
}

func (s *TeamService) FindTeam(ctx context.Context, id uint64) (*entities.Team, error) {
	team, err := s.teamRepository.FindTeam(ctx, id)
	if err != nil {
		return nil, err
	}

	members, err := s.teamRepository.GetMembers(ctx, id)
	if err == nil {
		team.Members = members
	}
	if team.TeamLeaderID != nil {
		if leader, err := s.userRepository.FindUserByID(ctx, *team.TeamLeaderID); err == nil {
			team.TeamLeader = leader
		}
	}
	return team, nil
}

func (s *TeamService) CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*entities.Team, error) {
	existing, err := s.teamRepository.FindTeamByName(ctx, payload.Name)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: team name %q", apperrors.ErrAlreadyExists, payload.Name)
	}

	team := &entities.Team{
		Name:        payload.Name,
		Department:  payload.Department,
		Description: payload.Description,
		Icon:        payload.Icon,
	}
	if team.Icon == "" {
		team.Icon = "users"
	}
	if payload.TeamLeaderID.Valid {
		leaderID := uint64(payload.TeamLeaderID.Int)
		if _, err := s.userRepository.FindUserByID(ctx, leaderID); err != nil {
			return nil, fmt.Errorf("team leader lookup failed: %w", err)
		}
		team.TeamLeaderID = utils.ToPtr(leaderID)
	}

	id, err := s.teamRepository.CreateTeam(ctx, team)
	if err != nil {
		s.logger.Error("failed to create team", zap.String("name", payload.Name), zap.Error(err))
		return nil, err
	}

	s.logger.Info("team created", zap.Uint64("id", id), zap.String("name", payload.Name))
	return s.FindTeam(ctx, id)
}

func (s *TeamService) GetTechnicians(ctx context.Context) ([]dto.TechnicianDTO, error) {
	users, err := s.userRepository.GetUsersByRole(ctx, constants.RoleTechnician)
	if err != nil {
		return nil, err
	}

	technicians := make([]dto.TechnicianDTO, 0, len(users))
	for _, u := range users {
		technicians = append(technicians, dto.TechnicianDTO{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
			Role:  u.Role,
		})
	}
	return technicians, nil
}
