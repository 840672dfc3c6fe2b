package scheduling

import (
	"testing"
	"time"

	"folio/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOfWeekIsMonday(t *testing.T) {
	// 2025-03-12 is a Wednesday.
	wed := time.Date(2025, time.March, 12, 15, 30, 0, 0, time.UTC)

	monday := StartOfWeek(wed)

	assert.Equal(t, time.Monday, monday.Weekday())
	assert.Equal(t, "2025-03-10", monday.Format(dayKeyLayout))
	assert.Equal(t, 0, monday.Hour())

	// A Monday is its own week start, a Sunday belongs to the prior Monday.
	assert.Equal(t, monday, StartOfWeek(monday))
	sun := time.Date(2025, time.March, 16, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-10", StartOfWeek(sun).Format(dayKeyLayout))
}

func TestWeekNavigationRoundTrip(t *testing.T) {
	anchor := StartOfWeek(time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC))

	next := NextWeek(anchor)
	assert.Equal(t, "2025-03-17", next.Format(dayKeyLayout))
	assert.Equal(t, anchor, PreviousWeek(next))
}

func TestWeekDaysAreConsecutive(t *testing.T) {
	anchor := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	days := WeekDays(anchor)
	require.Len(t, days, 7)
	for i, day := range days {
		assert.Equal(t, anchor.AddDate(0, 0, i), day)
	}
}

func TestSelectable(t *testing.T) {
	today := time.Date(2025, time.March, 12, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		day  time.Time
		want bool
	}{
		{"yesterday", today.AddDate(0, 0, -1), false},
		{"today at midnight", time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC), true},
		{"today later", today.Add(2 * time.Hour), true},
		{"tomorrow", today.AddDate(0, 0, 1), true},
		{"far past", today.AddDate(0, -1, 0), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Selectable(tc.day, today))
		})
	}
}

func TestBuildWeekView(t *testing.T) {
	today := time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC)
	anchor := StartOfWeek(today)
	events := []models.CalendarEvent{eventAt(t, "2025-03-13", 10)}

	view := BuildWeekView(anchor, today, BuildDayEventMap(events, time.UTC))

	require.Len(t, view.Days, 7)
	assert.Equal(t, "2025-03-10", view.Anchor)

	byDate := map[string]models.WeekDay{}
	for _, d := range view.Days {
		byDate[d.Date] = d
	}

	assert.True(t, byDate["2025-03-12"].Today)
	assert.True(t, byDate["2025-03-13"].HasEvents)
	assert.False(t, byDate["2025-03-12"].HasEvents)
	assert.False(t, byDate["2025-03-10"].Selectable, "Monday is already past")
	assert.True(t, byDate["2025-03-12"].Selectable)
	assert.True(t, byDate["2025-03-16"].Selectable)
}
