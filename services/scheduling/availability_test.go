package scheduling

import (
	"testing"
	"time"

	"folio/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventAt(t *testing.T, day string, hour int) models.CalendarEvent {
	t.Helper()
	d, err := time.ParseInLocation(dayKeyLayout, day, time.UTC)
	require.NoError(t, err)
	start := time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.UTC)
	return models.CalendarEvent{
		Summary: "busy",
		Start:   start,
		End:     start.Add(time.Hour),
	}
}

func TestComputeAvailableSlotsFreeDay(t *testing.T) {
	policy := WorkingHours{StartHour: 9, EndHour: 17}

	slots := ComputeAvailableSlots(policy, nil, time.UTC)

	assert.Equal(t, []string{
		"9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
		"1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM",
	}, slots)
}

func TestComputeAvailableSlotsMorningBooked(t *testing.T) {
	policy := WorkingHours{StartHour: 9, EndHour: 17}
	events := []models.CalendarEvent{
		eventAt(t, "2025-03-13", 9),
		eventAt(t, "2025-03-13", 10),
		eventAt(t, "2025-03-13", 11),
	}

	slots := ComputeAvailableSlots(policy, events, time.UTC)

	assert.Equal(t, []string{"12:00 PM", "1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM"}, slots)
}

func TestComputeAvailableSlotsFullyBooked(t *testing.T) {
	policy := WorkingHours{StartHour: 9, EndHour: 17}
	var events []models.CalendarEvent
	for hour := 9; hour < 17; hour++ {
		events = append(events, eventAt(t, "2025-03-13", hour))
	}

	slots := ComputeAvailableSlots(policy, events, time.UTC)
	assert.Empty(t, slots)

	// Removing one booking frees exactly that hour.
	slots = ComputeAvailableSlots(policy, events[1:], time.UTC)
	assert.Equal(t, []string{"9:00 AM"}, slots)
}

func TestComputeAvailableSlotsIgnoresEventsOutsideHours(t *testing.T) {
	policy := WorkingHours{StartHour: 9, EndHour: 17}
	events := []models.CalendarEvent{
		eventAt(t, "2025-03-13", 7),
		eventAt(t, "2025-03-13", 20),
	}

	slots := ComputeAvailableSlots(policy, events, time.UTC)
	assert.Len(t, slots, 8)
}

func TestFormatSlotLabel(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, "12:00 AM"},
		{9, "9:00 AM"},
		{11, "11:00 AM"},
		{12, "12:00 PM"},
		{13, "1:00 PM"},
		{16, "4:00 PM"},
		{23, "11:00 PM"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, FormatSlotLabel(tc.hour), "hour %d", tc.hour)
	}
}

func TestParseSlotLabelRoundTrip(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		got, minute, err := ParseSlotLabel(FormatSlotLabel(hour))
		require.NoError(t, err)
		assert.Equal(t, hour, got)
		assert.Equal(t, 0, minute)
	}
}

func TestParseSlotLabelRejectsMalformed(t *testing.T) {
	for _, label := range []string{"", "10:00", "10 AM", "25:00 PM", "10:61 AM", "ten AM", "10:00 XM"} {
		_, _, err := ParseSlotLabel(label)
		assert.Error(t, err, "label %q", label)
	}
}
