package board

import (
	"testing"
	"time"

	"maintenance-system/internal/entities"
	"maintenance-system/internal/lifecycle"
	"maintenance-system/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func request(name string, state lifecycle.State) entities.MaintenanceRequest {
	return entities.MaintenanceRequest{
		ID:    uuid.New(),
		Name:  name,
		State: state,
	}
}

func TestColumnOf(t *testing.T) {
	assert.Equal(t, ColumnOpen, ColumnOf(lifecycle.StateDraft))
	assert.Equal(t, ColumnOpen, ColumnOf(lifecycle.StateAssigned))
	assert.Equal(t, ColumnInProgress, ColumnOf(lifecycle.StateInProgress))
	assert.Equal(t, ColumnCompleted, ColumnOf(lifecycle.StateCompleted))
	assert.Equal(t, ColumnCancelled, ColumnOf(lifecycle.StateCancelled))

	// Bad state data stays visible in open.
	assert.Equal(t, ColumnOpen, ColumnOf(lifecycle.State("garbage")))
}

func TestStateFor(t *testing.T) {
	assert.Equal(t, lifecycle.StateDraft, StateFor(ColumnOpen))
	assert.Equal(t, lifecycle.StateInProgress, StateFor(ColumnInProgress))
	assert.Equal(t, lifecycle.StateCompleted, StateFor(ColumnCompleted))
	assert.Equal(t, lifecycle.StateCancelled, StateFor(ColumnCancelled))
}

func TestParseColumn(t *testing.T) {
	for _, col := range Columns {
		parsed, err := ParseColumn(string(col))
		require.NoError(t, err)
		assert.Equal(t, col, parsed)
	}
	_, err := ParseColumn("todo")
	assert.Error(t, err)
}

func TestProjectTotality(t *testing.T) {
	requests := []entities.MaintenanceRequest{
		request("a", lifecycle.StateDraft),
		request("b", lifecycle.StateAssigned),
		request("c", lifecycle.StateInProgress),
		request("d", lifecycle.StateCompleted),
		request("e", lifecycle.StateCancelled),
		request("f", lifecycle.State("unknown")),
	}

	snapshot := Project(requests, "", time.Now())

	// Every request lands in exactly one column.
	assert.Equal(t, len(requests), snapshot.Total())
	assert.Len(t, snapshot.Open, 3) // draft, assigned, unknown
	assert.Len(t, snapshot.InProgress, 1)
	assert.Len(t, snapshot.Completed, 1)
	assert.Len(t, snapshot.Cancelled, 1)
}

func TestProjectPreservesFetchOrder(t *testing.T) {
	requests := []entities.MaintenanceRequest{
		request("first", lifecycle.StateDraft),
		request("second", lifecycle.StateAssigned),
		request("third", lifecycle.StateDraft),
	}

	snapshot := Project(requests, "", time.Now())

	require.Len(t, snapshot.Open, 3)
	assert.Equal(t, "first", snapshot.Open[0].Title)
	assert.Equal(t, "second", snapshot.Open[1].Title)
	assert.Equal(t, "third", snapshot.Open[2].Title)
}

func TestProjectEquipmentFilter(t *testing.T) {
	withEq := request("press job", lifecycle.StateDraft)
	withEq.EquipmentID = utils.ToPtr(uint64(7))
	withEq.EquipmentCode = "PRESS-001"

	other := request("other job", lifecycle.StateDraft)

	snapshot := Project([]entities.MaintenanceRequest{withEq, other}, "PRESS-001", time.Now())
	require.Equal(t, 1, snapshot.Total())
	assert.Equal(t, "press job", snapshot.Open[0].Title)

	// Numeric id matches too.
	snapshot = Project([]entities.MaintenanceRequest{withEq, other}, "7", time.Now())
	assert.Equal(t, 1, snapshot.Total())

	snapshot = Project([]entities.MaintenanceRequest{withEq, other}, "", time.Now())
	assert.Equal(t, 2, snapshot.Total())
}

func TestNewCardFallbacks(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)

	r := request("belt check", lifecycle.StateInProgress)
	r.ScheduledDate = &past

	snapshot := Project([]entities.MaintenanceRequest{r}, "", now)
	require.Len(t, snapshot.InProgress, 1)

	card := snapshot.InProgress[0]
	assert.Equal(t, "Unassigned", card.Technician)
	assert.Equal(t, "Unknown equipment", card.EquipmentName)
	assert.Equal(t, "Low", card.Priority)
	assert.True(t, card.Overdue)
}

func TestCardPrefersLiveEquipmentName(t *testing.T) {
	renamed := request("belt check", lifecycle.StateDraft)
	renamed.EquipmentName = "Old press"
	renamed.ResolvedEquipmentName = "Hydraulic press 3000"

	stale := request("oiling", lifecycle.StateDraft)
	stale.EquipmentName = "Detached press"

	snapshot := Project([]entities.MaintenanceRequest{renamed, stale}, "", time.Now())
	require.Len(t, snapshot.Open, 2)
	assert.Equal(t, "Hydraulic press 3000", snapshot.Open[0].EquipmentName)
	assert.Equal(t, "Detached press", snapshot.Open[1].EquipmentName)
}

func TestSnapshotClone(t *testing.T) {
	snapshot := Project([]entities.MaintenanceRequest{
		request("a", lifecycle.StateDraft),
		request("b", lifecycle.StateInProgress),
	}, "", time.Now())

	clone := snapshot.Clone()
	clone.Open[0].Title = "mutated"
	clone.InProgress = append(clone.InProgress, Card{Title: "extra"})

	assert.Equal(t, "a", snapshot.Open[0].Title)
	assert.Len(t, snapshot.InProgress, 1)
}
