package models

import "time"

// EventAttendee is a single attendee on a calendar event.
type EventAttendee struct {
	Email          string `json:"email"`
	DisplayName    string `json:"displayName,omitempty"`
	ResponseStatus string `json:"responseStatus,omitempty"`
}

// CalendarEvent mirrors the external calendar's event representation.
// Invariant: Start is strictly before End.
type CalendarEvent struct {
	ID          string          `json:"id"`
	Summary     string          `json:"summary"`
	Description string          `json:"description"`
	Start       time.Time       `json:"start"`
	End         time.Time       `json:"end"`
	Timezone    string          `json:"timezone"`
	Attendees   []EventAttendee `json:"attendees,omitempty"`
}
