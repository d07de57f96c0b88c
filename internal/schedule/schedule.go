// Package schedule derives the calendar view and the dashboard counters from
// the request collection. Both are recomputed fully on every refresh.
package schedule

import (
	"sort"
	"time"

	"maintenance-system/internal/entities"
	"maintenance-system/internal/lifecycle"

	"github.com/google/uuid"
)

// Entry is one scheduled request on a calendar day.
type Entry struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Priority      string    `json:"priority"`
	State         string    `json:"state"`
	EquipmentName string    `json:"equipment_name"`
}

// Day buckets the entries of one calendar day.
type Day struct {
	Date    string  `json:"date"` // YYYY-MM-DD
	Entries []Entry `json:"entries"`
}

// DayKey truncates a timestamp to its calendar day.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// ProjectToCalendar buckets scheduled requests by calendar day, ignoring the
// time-of-day component. Unscheduled requests are excluded entirely. Within a
// bucket the fetch order is preserved; buckets come out date-ascending.
func ProjectToCalendar(requests []entities.MaintenanceRequest) []Day {
	buckets := make(map[string][]Entry)
	for _, r := range requests {
		if r.ScheduledDate == nil {
			continue
		}
		key := DayKey(*r.ScheduledDate)
		buckets[key] = append(buckets[key], Entry{
			ID:            r.ID,
			Title:         r.Name,
			Priority:      r.Priority.Label(),
			State:         r.State.String(),
			EquipmentName: r.DisplayEquipment(),
		})
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	days := make([]Day, 0, len(keys))
	for _, key := range keys {
		days = append(days, Day{Date: key, Entries: buckets[key]})
	}
	return days
}

// DashboardStats are the aggregate counters on the landing page.
type DashboardStats struct {
	Open           int `json:"open"`
	Overdue        int `json:"overdue"`
	Cancelled      int `json:"cancelled"`
	EquipmentTotal int `json:"equipment_total"`
}

// ProjectToDashboard counts open, overdue and cancelled requests. The
// equipment total is supplied by the caller, not derived from requests.
func ProjectToDashboard(requests []entities.MaintenanceRequest, equipmentTotal int, now time.Time) DashboardStats {
	stats := DashboardStats{EquipmentTotal: equipmentTotal}
	for _, r := range requests {
		switch r.State {
		case lifecycle.StateDraft, lifecycle.StateAssigned, lifecycle.StateInProgress:
			stats.Open++
		case lifecycle.StateCancelled:
			stats.Cancelled++
		}
		if lifecycle.IsOverdue(r.ScheduledDate, r.State, now) {
			stats.Overdue++
		}
	}
	return stats
}
