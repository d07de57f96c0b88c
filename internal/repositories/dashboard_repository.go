package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// EquipmentCounts feed the dashboard; the request-side counters come from the
// schedule projection over the fetched collection instead.
type EquipmentCounts struct {
	Total    int `json:"total"`
	Scrapped int `json:"scrapped"`
	Down     int `json:"down"`
}

type DashboardRepositoryInterface interface {
	GetEquipmentCounts(ctx context.Context) (*EquipmentCounts, error)
	GetRequestCountsByState(ctx context.Context) (map[string]int, error)
}

type DashboardRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDashboardRepository(storage *pgxpool.Pool, logger *zap.Logger) DashboardRepositoryInterface {
	return &DashboardRepository{storage: storage, logger: logger}
}

func (r *DashboardRepository) GetEquipmentCounts(ctx context.Context) (*EquipmentCounts, error) {
	query, args, err := sq.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE status = 'scrapped')",
		"COUNT(*) FILTER (WHERE status = 'down')",
	).From("equipments").PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	counts := &EquipmentCounts{}
	err = r.storage.QueryRow(ctx, query, args...).Scan(&counts.Total, &counts.Scrapped, &counts.Down)
	return counts, err
}

func (r *DashboardRepository) GetRequestCountsByState(ctx context.Context) (map[string]int, error) {
	query, args, err := sq.Select("state", "COUNT(*)").
		From("maintenance_requests").
		GroupBy("state").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var state string
		var count int
		if err := rows.Scan(&state, &count); err != nil {
			return nil, err
		}
		counts[state] = count
	}
	return counts, rows.Err()
}
