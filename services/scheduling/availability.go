package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"folio/models"
)

// WorkingHours is the fixed policy bounding bookable slots. Hours are
// inclusive-exclusive: StartHour 9 and EndHour 17 yields 9:00 AM through
// 4:00 PM slots.
type WorkingHours struct {
	StartHour int
	EndHour   int
}

// ComputeAvailableSlots returns the ordered free slot labels for one day,
// given the events already on it. An hour is blocked iff some event starts
// in it; partial-hour overlaps and multi-hour events blocking later slots
// are intentionally not modeled, so availability matches what the page has
// always shown. An empty result means "no openings", never an error.
func ComputeAvailableSlots(policy WorkingHours, events []models.CalendarEvent, loc *time.Location) []string {
	booked := make(map[int]bool, len(events))
	for _, ev := range events {
		booked[ev.Start.In(loc).Hour()] = true
	}

	slots := make([]string, 0, policy.EndHour-policy.StartHour)
	for hour := policy.StartHour; hour < policy.EndHour; hour++ {
		if booked[hour] {
			continue
		}
		slots = append(slots, FormatSlotLabel(hour))
	}
	return slots
}

// FormatSlotLabel renders an hour-of-day as a 12-hour clock label, e.g.
// 9 -> "9:00 AM", 13 -> "1:00 PM".
func FormatSlotLabel(hour int) string {
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:00 %s", display, period)
}

// ParseSlotLabel inverts FormatSlotLabel, returning the hour and minute a
// label denotes.
func ParseSlotLabel(label string) (hour, minute int, err error) {
	parts := strings.Fields(label)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed slot label %q", label)
	}
	period := strings.ToUpper(parts[1])
	if period != "AM" && period != "PM" {
		return 0, 0, fmt.Errorf("malformed slot label %q", label)
	}

	hm := strings.Split(parts[0], ":")
	if len(hm) != 2 {
		return 0, 0, fmt.Errorf("malformed slot label %q", label)
	}
	hour, err = strconv.Atoi(hm[0])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed slot label %q", label)
	}
	minute, err = strconv.Atoi(hm[1])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed slot label %q", label)
	}
	if hour < 1 || hour > 12 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("slot label %q out of range", label)
	}

	if period == "PM" && hour < 12 {
		hour += 12
	} else if period == "AM" && hour == 12 {
		hour = 0
	}
	return hour, minute, nil
}
