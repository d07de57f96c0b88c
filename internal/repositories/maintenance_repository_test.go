package repositories

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"maintenance-system/internal/entities"
	"maintenance-system/internal/lifecycle"
	"maintenance-system/pkg/database/postgresql"
	apperrors "maintenance-system/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testPool *pgxpool.Pool

// TestMain connects to the database named by TEST_DATABASE_URL and applies the
// migrations. Without the variable the integration tests are skipped.
func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn != "" {
		var err error
		testPool, err = pgxpool.New(context.Background(), dsn)
		if err != nil {
			log.Fatalf("failed to connect to test database: %v", err)
		}
		if err := postgresql.RunMigrations(dsn, "../../migrations"); err != nil {
			log.Fatalf("failed to apply migrations: %v", err)
		}
	}

	code := m.Run()
	if testPool != nil {
		testPool.Close()
	}
	os.Exit(code)
}

func requireDB(t *testing.T) {
	t.Helper()
	if testPool == nil {
		t.Skip("TEST_DATABASE_URL is not set")
	}
}

func cleanupTables(t *testing.T) {
	t.Helper()
	_, err := testPool.Exec(context.Background(),
		`TRUNCATE TABLE maintenance_requests, equipments, team_members, teams, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
}

func seedAuthor(t *testing.T) uint64 {
	t.Helper()
	var id uint64
	err := testPool.QueryRow(context.Background(),
		`INSERT INTO users (name, email, password_hash, role)
		 VALUES ('Test Author', 'author@example.com', 'x', 'manager') RETURNING id`,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func newRequest(author uint64) *entities.MaintenanceRequest {
	return &entities.MaintenanceRequest{
		ID:        uuid.New(),
		Name:      "Belt Replacement",
		Priority:  lifecycle.PriorityHigh,
		State:     lifecycle.StateDraft,
		CreatedBy: author,
	}
}

func TestMaintenanceRepositoryRoundTrip(t *testing.T) {
	requireDB(t)
	cleanupTables(t)

	repo := NewMaintenanceRepository(testPool, zap.NewNop())
	ctx := context.Background()
	author := seedAuthor(t)

	request := newRequest(author)
	scheduled := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)
	request.ScheduledDate = &scheduled

	require.NoError(t, repo.CreateRequest(ctx, request))
	assert.False(t, request.CreatedAt.IsZero(), "timestamps come back from the insert")

	found, err := repo.FindRequest(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, request.ID, found.ID)
	assert.Equal(t, "Belt Replacement", found.Name)
	assert.Equal(t, lifecycle.PriorityHigh, found.Priority)
	assert.Equal(t, lifecycle.StateDraft, found.State)
	require.NotNil(t, found.ScheduledDate)
	assert.True(t, scheduled.Equal(found.ScheduledDate.UTC()))

	count, err := repo.CountRequests(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestMaintenanceRepositoryUpdateState(t *testing.T) {
	requireDB(t)
	cleanupTables(t)

	repo := NewMaintenanceRepository(testPool, zap.NewNop())
	ctx := context.Background()
	author := seedAuthor(t)

	request := newRequest(author)
	require.NoError(t, repo.CreateRequest(ctx, request))

	require.NoError(t, repo.UpdateState(ctx, request.ID, lifecycle.StateInProgress))

	found, err := repo.FindRequest(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StateInProgress, found.State)
}

func TestMaintenanceRepositoryUpdateStateUnknownID(t *testing.T) {
	requireDB(t)
	cleanupTables(t)

	repo := NewMaintenanceRepository(testPool, zap.NewNop())
	err := repo.UpdateState(context.Background(), uuid.New(), lifecycle.StateCompleted)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMaintenanceRepositoryFindUnknown(t *testing.T) {
	requireDB(t)
	cleanupTables(t)

	repo := NewMaintenanceRepository(testPool, zap.NewNop())
	_, err := repo.FindRequest(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMaintenanceRepositoryListOrder(t *testing.T) {
	requireDB(t)
	cleanupTables(t)

	repo := NewMaintenanceRepository(testPool, zap.NewNop())
	ctx := context.Background()
	author := seedAuthor(t)

	first := newRequest(author)
	first.Name = "first"
	require.NoError(t, repo.CreateRequest(ctx, first))

	time.Sleep(20 * time.Millisecond)

	second := newRequest(author)
	second.Name = "second"
	require.NoError(t, repo.CreateRequest(ctx, second))

	requests, err := repo.GetRequests(ctx)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	// Newest first.
	assert.Equal(t, "second", requests[0].Name)
	assert.Equal(t, "first", requests[1].Name)
}
