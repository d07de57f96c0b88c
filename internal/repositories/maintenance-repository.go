package repositories

import (
	"context"
	"errors"
	"fmt"

	"maintenance-system/internal/entities"
	"maintenance-system/internal/lifecycle"
	apperrors "maintenance-system/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const maintenanceRequestFields = `
	m.id, m.name, m.description, m.priority, m.state,
	m.equipment_id, m.equipment_name, m.scheduled_date,
	m.technician_id, m.created_by, m.created_at, m.updated_at,
	COALESCE(e.code, ''), COALESCE(e.name, ''), COALESCE(u.name, '')`

const maintenanceRequestJoins = `
	FROM maintenance_requests m
	LEFT JOIN equipments e ON m.equipment_id = e.id
	LEFT JOIN users u ON m.technician_id = u.id`

type MaintenanceRepositoryInterface interface {
	GetRequests(ctx context.Context) ([]entities.MaintenanceRequest, error)
	FindRequest(ctx context.Context, id uuid.UUID) (*entities.MaintenanceRequest, error)
	CreateRequest(ctx context.Context, request *entities.MaintenanceRequest) error
	UpdateRequest(ctx context.Context, request *entities.MaintenanceRequest) error
	UpdateState(ctx context.Context, id uuid.UUID, state lifecycle.State) error
	CountRequests(ctx context.Context) (uint64, error)
}

type MaintenanceRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewMaintenanceRepository(storage *pgxpool.Pool, logger *zap.Logger) MaintenanceRepositoryInterface {
	return &MaintenanceRepository{storage: storage, logger: logger}
}

func scanRequest(row pgx.Row) (*entities.MaintenanceRequest, error) {
	var r entities.MaintenanceRequest
	var id string
	var state string
	var priority int

	err := row.Scan(
		&id, &r.Name, &r.Description, &priority, &state,
		&r.EquipmentID, &r.EquipmentName, &r.ScheduledDate,
		&r.TechnicianID, &r.CreatedBy, &r.CreatedAt, &r.UpdatedAt,
		&r.EquipmentCode, &r.ResolvedEquipmentName, &r.TechnicianName,
	)
	if err != nil {
		return nil, err
	}

	r.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("malformed request id %q: %w", id, err)
	}
	r.Priority = lifecycle.Priority(priority)
	r.State = lifecycle.State(state)
	return &r, nil
}

// GetRequests returns the full collection, newest first. The board and
// calendar projections rely on this fetch order being stable.
func (r *MaintenanceRepository) GetRequests(ctx context.Context) ([]entities.MaintenanceRequest, error) {
	query := fmt.Sprintf(`SELECT %s %s ORDER BY m.created_at DESC`, maintenanceRequestFields, maintenanceRequestJoins)

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	defer rows.Close()

	var requests []entities.MaintenanceRequest
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *request)
	}
	return requests, rows.Err()
}

func (r *MaintenanceRepository) FindRequest(ctx context.Context, id uuid.UUID) (*entities.MaintenanceRequest, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE m.id = $1`, maintenanceRequestFields, maintenanceRequestJoins)

	request, err := scanRequest(r.storage.QueryRow(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return request, nil
}

func (r *MaintenanceRepository) CreateRequest(ctx context.Context, request *entities.MaintenanceRequest) error {
	query := `
		INSERT INTO maintenance_requests
			(id, name, description, priority, state, equipment_id, equipment_name,
			 scheduled_date, technician_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	err := r.storage.QueryRow(ctx, query,
		request.ID.String(),
		request.Name,
		request.Description,
		int(request.Priority),
		request.State.String(),
		request.EquipmentID,
		request.EquipmentName,
		request.ScheduledDate,
		request.TechnicianID,
		request.CreatedBy,
	).Scan(&request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	return nil
}

func (r *MaintenanceRepository) UpdateRequest(ctx context.Context, request *entities.MaintenanceRequest) error {
	query := `
		UPDATE maintenance_requests
		SET name = $1, description = $2, priority = $3, equipment_id = $4,
			equipment_name = $5, scheduled_date = $6, technician_id = $7,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $8`

	result, err := r.storage.Exec(ctx, query,
		request.Name,
		request.Description,
		int(request.Priority),
		request.EquipmentID,
		request.EquipmentName,
		request.ScheduledDate,
		request.TechnicianID,
		request.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateState overwrites the state field only. Table validation happens in
// the service; this write is atomic at the single-record level.
func (r *MaintenanceRepository) UpdateState(ctx context.Context, id uuid.UUID, state lifecycle.State) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE maintenance_requests SET state = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		state.String(), id.String(),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MaintenanceRepository) CountRequests(ctx context.Context) (uint64, error) {
	var count uint64
	err := r.storage.QueryRow(ctx, `SELECT COUNT(*) FROM maintenance_requests`).Scan(&count)
	return count, err
}
