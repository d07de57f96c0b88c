package services

import (
	"context"
	"testing"
	"time"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/lifecycle"
	"maintenance-system/pkg/contextkeys"
	apperrors "maintenance-system/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeMaintenanceRepo struct {
	byID  map[uuid.UUID]*entities.MaintenanceRequest
	order []uuid.UUID
}

func newFakeMaintenanceRepo() *fakeMaintenanceRepo {
	return &fakeMaintenanceRepo{byID: make(map[uuid.UUID]*entities.MaintenanceRequest)}
}

func (r *fakeMaintenanceRepo) GetRequests(ctx context.Context) ([]entities.MaintenanceRequest, error) {
	out := make([]entities.MaintenanceRequest, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.byID[id])
	}
	return out, nil
}

func (r *fakeMaintenanceRepo) FindRequest(ctx context.Context, id uuid.UUID) (*entities.MaintenanceRequest, error) {
	req, ok := r.byID[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	clone := *req
	return &clone, nil
}

func (r *fakeMaintenanceRepo) CreateRequest(ctx context.Context, request *entities.MaintenanceRequest) error {
	clone := *request
	clone.CreatedAt = time.Now()
	clone.UpdatedAt = clone.CreatedAt
	r.byID[request.ID] = &clone
	r.order = append(r.order, request.ID)
	return nil
}

func (r *fakeMaintenanceRepo) UpdateRequest(ctx context.Context, request *entities.MaintenanceRequest) error {
	if _, ok := r.byID[request.ID]; !ok {
		return apperrors.ErrNotFound
	}
	clone := *request
	r.byID[request.ID] = &clone
	return nil
}

func (r *fakeMaintenanceRepo) UpdateState(ctx context.Context, id uuid.UUID, state lifecycle.State) error {
	req, ok := r.byID[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	req.State = state
	return nil
}

func (r *fakeMaintenanceRepo) CountRequests(ctx context.Context) (uint64, error) {
	return uint64(len(r.order)), nil
}

type fakeEquipmentRepo struct {
	byID map[uint64]*entities.Equipment
}

func (r *fakeEquipmentRepo) GetEquipments(ctx context.Context, limit, offset uint64) ([]entities.Equipment, error) {
	return nil, nil
}

func (r *fakeEquipmentRepo) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return e, nil
}

func (r *fakeEquipmentRepo) FindEquipmentByCode(ctx context.Context, code string) (*entities.Equipment, error) {
	for _, e := range r.byID {
		if e.Code == code {
			return e, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeEquipmentRepo) CreateEquipment(ctx context.Context, equipment *entities.Equipment) (uint64, error) {
	id := uint64(len(r.byID) + 1)
	equipment.ID = id
	r.byID[id] = equipment
	return id, nil
}

func (r *fakeEquipmentRepo) UpdateEquipment(ctx context.Context, equipment *entities.Equipment) error {
	return nil
}

func (r *fakeEquipmentRepo) DeleteEquipment(ctx context.Context, id uint64) error {
	return nil
}

type fakeTeamRepo struct {
	members map[uint64]map[uint64]bool // teamID -> userID set
}

func (r *fakeTeamRepo) GetTeams(ctx context.Context) ([]entities.Team, error) { return nil, nil }
func (r *fakeTeamRepo) FindTeam(ctx context.Context, id uint64) (*entities.Team, error) {
	return nil, apperrors.ErrNotFound
}
func (r *fakeTeamRepo) FindTeamByName(ctx context.Context, name string) (*entities.Team, error) {
	return nil, apperrors.ErrNotFound
}
func (r *fakeTeamRepo) CreateTeam(ctx context.Context, team *entities.Team) (uint64, error) {
	return 0, nil
}
func (r *fakeTeamRepo) TeamHasMember(ctx context.Context, teamID, userID uint64) (bool, error) {
	return r.members[teamID][userID], nil
}
func (r *fakeTeamRepo) GetMembers(ctx context.Context, teamID uint64) ([]entities.User, error) {
	return nil, nil
}

func authedCtx(userID uint64) context.Context {
	return context.WithValue(context.Background(), contextkeys.UserIDKey, userID)
}

func newTestMaintenanceService() (*MaintenanceService, *fakeMaintenanceRepo, *fakeEquipmentRepo, *fakeTeamRepo) {
	maintenanceRepo := newFakeMaintenanceRepo()
	equipmentRepo := &fakeEquipmentRepo{byID: make(map[uint64]*entities.Equipment)}
	teamRepo := &fakeTeamRepo{members: make(map[uint64]map[uint64]bool)}
	svc := NewMaintenanceService(maintenanceRepo, equipmentRepo, teamRepo, zap.NewNop())
	return svc, maintenanceRepo, equipmentRepo, teamRepo
}

func TestCreateRequestDefaults(t *testing.T) {
	svc, _, _, _ := newTestMaintenanceService()

	created, err := svc.CreateRequest(authedCtx(1), dto.CreateMaintenanceRequestDTO{
		Name: "Belt Replacement",
	})
	require.NoError(t, err)

	assert.Equal(t, "Belt Replacement", created.Name)
	assert.Equal(t, lifecycle.PriorityMedium, created.Priority)
	assert.Equal(t, lifecycle.StateDraft, created.State)
	assert.Equal(t, uint64(1), created.CreatedBy)
	assert.NotEqual(t, uuid.Nil, created.ID)
}

func TestCreateRequestAutoName(t *testing.T) {
	svc, _, _, _ := newTestMaintenanceService()
	ctx := authedCtx(1)

	first, err := svc.CreateRequest(ctx, dto.CreateMaintenanceRequestDTO{Name: "New"})
	require.NoError(t, err)
	assert.Equal(t, "REQ-0001", first.Name)

	second, err := svc.CreateRequest(ctx, dto.CreateMaintenanceRequestDTO{Name: "New"})
	require.NoError(t, err)
	assert.Equal(t, "REQ-0002", second.Name)
}

func TestCreateRequestWithTechnicianStartsAssigned(t *testing.T) {
	svc, _, _, _ := newTestMaintenanceService()

	created, err := svc.CreateRequest(authedCtx(1), dto.CreateMaintenanceRequestDTO{
		Name:         "Pump inspection",
		TechnicianID: null.IntFrom(5),
	})
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StateAssigned, created.State)
}

func TestCreateRequestDenormalizesEquipmentName(t *testing.T) {
	svc, _, equipmentRepo, _ := newTestMaintenanceService()
	equipmentRepo.byID[3] = &entities.Equipment{ID: 3, Name: "Hydraulic Press", Code: "PRESS-001"}

	created, err := svc.CreateRequest(authedCtx(1), dto.CreateMaintenanceRequestDTO{
		Name:        "Seal change",
		EquipmentID: null.IntFrom(3),
	})
	require.NoError(t, err)
	assert.Equal(t, "Hydraulic Press", created.EquipmentName)
	require.NotNil(t, created.EquipmentID)
	assert.Equal(t, uint64(3), *created.EquipmentID)
}

func TestCreateRequestUnknownEquipmentRejected(t *testing.T) {
	svc, repo, _, _ := newTestMaintenanceService()

	_, err := svc.CreateRequest(authedCtx(1), dto.CreateMaintenanceRequestDTO{
		Name:        "Broken ref",
		EquipmentID: null.IntFrom(99),
	})
	require.Error(t, err)

	count, _ := repo.CountRequests(context.Background())
	assert.Zero(t, count, "nothing persisted on failed lookup")
}

func TestCreateRequestTechnicianMustBelongToTeam(t *testing.T) {
	svc, _, _, teamRepo := newTestMaintenanceService()
	teamRepo.members[2] = map[uint64]bool{7: true}

	_, err := svc.CreateRequest(authedCtx(1), dto.CreateMaintenanceRequestDTO{
		Name:         "Wiring check",
		TechnicianID: null.IntFrom(8),
		TeamID:       null.IntFrom(2),
	})
	require.Error(t, err)

	_, err = svc.CreateRequest(authedCtx(1), dto.CreateMaintenanceRequestDTO{
		Name:         "Wiring check",
		TechnicianID: null.IntFrom(7),
		TeamID:       null.IntFrom(2),
	})
	assert.NoError(t, err)
}

func TestCreateRequestWithoutUserIdentity(t *testing.T) {
	svc, _, _, _ := newTestMaintenanceService()

	_, err := svc.CreateRequest(context.Background(), dto.CreateMaintenanceRequestDTO{Name: "anon"})
	assert.ErrorIs(t, err, apperrors.ErrUserIDNotFoundInContext)
}

func TestChangeStateValidTransition(t *testing.T) {
	svc, _, _, _ := newTestMaintenanceService()
	created, err := svc.CreateRequest(authedCtx(1), dto.CreateMaintenanceRequestDTO{Name: "job"})
	require.NoError(t, err)

	updated, err := svc.ChangeState(context.Background(), created.ID, lifecycle.StateInProgress)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StateInProgress, updated.State)
}

func TestChangeStateRejectsSelfTransition(t *testing.T) {
	svc, _, _, _ := newTestMaintenanceService()
	created, err := svc.CreateRequest(authedCtx(1), dto.CreateMaintenanceRequestDTO{Name: "job"})
	require.NoError(t, err)

	_, err = svc.ChangeState(context.Background(), created.ID, lifecycle.StateDraft)
	require.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	// State is untouched after a rejected transition.
	current, err := svc.FindRequest(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StateDraft, current.State)
}

func TestChangeStateUnknownRequest(t *testing.T) {
	svc, _, _, _ := newTestMaintenanceService()

	_, err := svc.ChangeState(context.Background(), uuid.New(), lifecycle.StateCompleted)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateRequestMergesOnlyProvidedFields(t *testing.T) {
	svc, _, _, _ := newTestMaintenanceService()
	created, err := svc.CreateRequest(authedCtx(1), dto.CreateMaintenanceRequestDTO{
		Name:        "original",
		Description: "keep me",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateRequest(context.Background(), created.ID, dto.UpdateMaintenanceRequestDTO{
		Name: null.StringFrom("renamed"),
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, "keep me", updated.Description)
}

func TestGetCalendarSkipsUnscheduled(t *testing.T) {
	svc, repo, _, _ := newTestMaintenanceService()
	ctx := authedCtx(1)

	_, err := svc.CreateRequest(ctx, dto.CreateMaintenanceRequestDTO{Name: "unscheduled"})
	require.NoError(t, err)
	_, err = svc.CreateRequest(ctx, dto.CreateMaintenanceRequestDTO{
		Name:          "scheduled",
		ScheduledDate: null.TimeFrom(time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)

	days, err := svc.GetCalendar(ctx)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "2026-05-01", days[0].Date)

	count, _ := repo.CountRequests(ctx)
	assert.Equal(t, uint64(2), count)
}
