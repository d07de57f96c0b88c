package repositories

import (
	"context"
	"errors"
	"fmt"

	"maintenance-system/internal/entities"
	apperrors "maintenance-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const equipmentFields = `
	e.id, e.name, e.code, e.location, e.department, e.status,
	COALESCE(e.manufacturer, ''), COALESCE(e.model, ''), COALESCE(e.category, ''),
	e.purchase_date, e.warranty_expiry,
	COALESCE(e.specifications, ''), COALESCE(e.notes, ''),
	e.team_id, e.default_technician_id, e.created_at, e.updated_at,
	COALESCE(t.name, ''), COALESCE(u.name, '')`

const equipmentJoins = `
	FROM equipments e
	LEFT JOIN teams t ON e.team_id = t.id
	LEFT JOIN users u ON e.default_technician_id = u.id`

type EquipmentRepositoryInterface interface {
	GetEquipments(ctx context.Context, limit, offset uint64) ([]entities.Equipment, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	FindEquipmentByCode(ctx context.Context, code string) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, equipment *entities.Equipment) (uint64, error)
	UpdateEquipment(ctx context.Context, equipment *entities.Equipment) error
	DeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentRepository(storage *pgxpool.Pool) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage}
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	err := row.Scan(
		&e.ID, &e.Name, &e.Code, &e.Location, &e.Department, &e.Status,
		&e.Manufacturer, &e.Model, &e.Category,
		&e.PurchaseDate, &e.WarrantyExpiry,
		&e.Specifications, &e.Notes,
		&e.TeamID, &e.DefaultTechnicianID, &e.CreatedAt, &e.UpdatedAt,
		&e.TeamName, &e.DefaultTechnician,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EquipmentRepository) GetEquipments(ctx context.Context, limit, offset uint64) ([]entities.Equipment, error) {
	query := fmt.Sprintf(`SELECT %s %s ORDER BY e.created_at DESC LIMIT $1 OFFSET $2`, equipmentFields, equipmentJoins)

	rows, err := r.storage.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	defer rows.Close()

	var equipments []entities.Equipment
	for rows.Next() {
		equipment, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		equipments = append(equipments, *equipment)
	}
	return equipments, rows.Err()
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE e.id = $1`, equipmentFields, equipmentJoins)

	equipment, err := scanEquipment(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return equipment, nil
}

func (r *EquipmentRepository) FindEquipmentByCode(ctx context.Context, code string) (*entities.Equipment, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE e.code = $1`, equipmentFields, equipmentJoins)

	equipment, err := scanEquipment(r.storage.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return equipment, nil
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, equipment *entities.Equipment) (uint64, error) {
	query := `
		INSERT INTO equipments
			(name, code, location, department, status, manufacturer, model, category,
			 purchase_date, warranty_expiry, specifications, notes, team_id, default_technician_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`

	var id uint64
	err := r.storage.QueryRow(ctx, query,
		equipment.Name, equipment.Code, equipment.Location, equipment.Department,
		equipment.Status, equipment.Manufacturer, equipment.Model, equipment.Category,
		equipment.PurchaseDate, equipment.WarrantyExpiry, equipment.Specifications,
		equipment.Notes, equipment.TeamID, equipment.DefaultTechnicianID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	return id, nil
}

func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, equipment *entities.Equipment) error {
	query := `
		UPDATE equipments
		SET name = $1, code = $2, location = $3, department = $4, status = $5,
			manufacturer = $6, model = $7, category = $8, purchase_date = $9,
			warranty_expiry = $10, specifications = $11, notes = $12,
			team_id = $13, default_technician_id = $14, updated_at = CURRENT_TIMESTAMP
		WHERE id = $15`

	result, err := r.storage.Exec(ctx, query,
		equipment.Name, equipment.Code, equipment.Location, equipment.Department,
		equipment.Status, equipment.Manufacturer, equipment.Model, equipment.Category,
		equipment.PurchaseDate, equipment.WarrantyExpiry, equipment.Specifications,
		equipment.Notes, equipment.TeamID, equipment.DefaultTechnicianID, equipment.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM equipments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
