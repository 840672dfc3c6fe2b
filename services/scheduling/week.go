package scheduling

import (
	"time"

	"folio/models"
)

const dayKeyLayout = "2006-01-02"

// StartOfWeek returns the Monday of t's week, truncated to midnight.
func StartOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// NextWeek shifts the anchor forward by exactly 7 days.
func NextWeek(anchor time.Time) time.Time {
	return anchor.AddDate(0, 0, 7)
}

// PreviousWeek shifts the anchor back by exactly 7 days.
func PreviousWeek(anchor time.Time) time.Time {
	return anchor.AddDate(0, 0, -7)
}

// WeekDays returns the 7 consecutive days starting at the anchor.
func WeekDays(anchor time.Time) []time.Time {
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = anchor.AddDate(0, 0, i)
	}
	return days
}

// Selectable reports whether day may be picked: a day is selectable iff its
// calendar date is not strictly before today's. Time of day is ignored.
func Selectable(day, today time.Time) bool {
	d := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, today.Location())
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	return !d.Before(t)
}

// BuildDayEventMap maps calendar-day keys to a "has at least one event" flag,
// used only to annotate the week view.
func BuildDayEventMap(events []models.CalendarEvent, loc *time.Location) map[string]bool {
	m := make(map[string]bool, len(events))
	for _, ev := range events {
		m[ev.Start.In(loc).Format(dayKeyLayout)] = true
	}
	return m
}

// BuildWeekView assembles the 7-day window for the date step.
func BuildWeekView(anchor, today time.Time, eventDays map[string]bool) *models.WeekView {
	view := &models.WeekView{
		Anchor: anchor.Format(dayKeyLayout),
		Days:   make([]models.WeekDay, 0, 7),
	}
	todayKey := today.Format(dayKeyLayout)
	for _, day := range WeekDays(anchor) {
		key := day.Format(dayKeyLayout)
		view.Days = append(view.Days, models.WeekDay{
			Date:       key,
			Weekday:    day.Weekday().String(),
			Selectable: Selectable(day, today),
			HasEvents:  eventDays[key],
			Today:      key == todayKey,
		})
	}
	return view
}
