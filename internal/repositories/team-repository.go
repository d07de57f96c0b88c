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

type TeamRepositoryInterface interface {
	GetTeams(ctx context.Context) ([]entities.Team, error)
	FindTeam(ctx context.Context, id uint64) (*entities.Team, error)
	FindTeamByName(ctx context.Context, name string) (*entities.Team, error)
	CreateTeam(ctx context.Context, team *entities.Team) (uint64, error)
	TeamHasMember(ctx context.Context, teamID, userID uint64) (bool, error)
	GetMembers(ctx context.Context, teamID uint64) ([]entities.User, error)
}

type TeamRepository struct {
	storage *pgxpool.Pool
}

func NewTeamRepository(storage *pgxpool.Pool) TeamRepositoryInterface {
	return &TeamRepository{storage: storage}
}

const teamFields = `t.id, t.name, t.department, COALESCE(t.description, ''), t.icon, t.team_leader_id, t.created_at, t.updated_at`

func scanTeam(row pgx.Row) (*entities.Team, error) {
	var t entities.Team
	err := row.Scan(&t.ID, &t.Name, &t.Department, &t.Description, &t.Icon, &t.TeamLeaderID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TeamRepository) GetTeams(ctx context.Context) ([]entities.Team, error) {
	query := fmt.Sprintf(`SELECT %s FROM teams t ORDER BY t.created_at DESC`, teamFields)

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	defer rows.Close()

	var teams []entities.Team
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, *team)
	}
	return teams, rows.Err()
}

func (r *TeamRepository) FindTeam(ctx context.Context, id uint64) (*entities.Team, error) {
	query := fmt.Sprintf(`SELECT %s FROM teams t WHERE t.id = $1`, teamFields)

	team, err := scanTeam(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return team, nil
}

func (r *TeamRepository) FindTeamByName(ctx context.Context, name string) (*entities.Team, error) {
	query := fmt.Sprintf(`SELECT %s FROM teams t WHERE t.name = $1`, teamFields)

	team, err := scanTeam(r.storage.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return team, nil
}

// CreateTeam inserts the team and auto-adds the leader as its first member.
func (r *TeamRepository) CreateTeam(ctx context.Context, team *entities.Team) (uint64, error) {
	tx, err := r.storage.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	defer tx.Rollback(ctx)

	var id uint64
	err = tx.QueryRow(ctx,
		`INSERT INTO teams (name, department, description, icon, team_leader_id)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		team.Name, team.Department, team.Description, team.Icon, team.TeamLeaderID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}

	if team.TeamLeaderID != nil {
		_, err = tx.Exec(ctx,
			`INSERT INTO team_members (team_id, user_id) VALUES ($1, $2)`,
			id, *team.TeamLeaderID,
		)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	return id, nil
}

func (r *TeamRepository) TeamHasMember(ctx context.Context, teamID, userID uint64) (bool, error) {
	var exists bool
	err := r.storage.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM team_members WHERE team_id = $1 AND user_id = $2)`,
		teamID, userID,
	).Scan(&exists)
	return exists, err
}

func (r *TeamRepository) GetMembers(ctx context.Context, teamID uint64) ([]entities.User, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT u.id, u.name, u.email, u.role, u.created_at, u.updated_at
		 FROM users u
		 JOIN team_members tm ON tm.user_id = u.id
		 WHERE tm.team_id = $1
		 ORDER BY u.name`,
		teamID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	defer rows.Close()

	var users []entities.User
	for rows.Next() {
		var u entities.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
