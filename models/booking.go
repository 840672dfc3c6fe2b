package models

import "time"

// BookingStep identifies the current stage of the scheduling flow.
type BookingStep string

const (
	StepSelectingDate   BookingStep = "date"
	StepSelectingTime   BookingStep = "time"
	StepEnteringDetails BookingStep = "details"
	StepConfirmed       BookingStep = "confirmation"
	StepFailed          BookingStep = "error"
)

// BookingDetails carries the visitor's contact information for a call.
type BookingDetails struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
}

// BookingSession holds the mutable state of one open scheduling flow.
// It lives in the session cache under its SessionID and is reset every
// time the scheduling UI opens.
type BookingSession struct {
	SessionID         string         `json:"sessionId"`
	Step              BookingStep    `json:"step"`
	WeekAnchor        string         `json:"weekAnchor"`              // Monday of the visible week, "2006-01-02"
	SelectedDate      string         `json:"selectedDate,omitempty"`  // "2006-01-02", empty until a day is picked
	SelectedSlot      string         `json:"selectedSlot,omitempty"`  // e.g. "10:00 AM"
	AvailableSlots    []string       `json:"availableSlots,omitempty"`
	AvailabilityError bool           `json:"availabilityError,omitempty"` // slot fetch failed; not the same as "fully booked"
	Details           BookingDetails `json:"details"`
	LastError         string         `json:"lastError,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
}

// WeekDay is one cell of the week view.
type WeekDay struct {
	Date       string `json:"date"` // "2006-01-02"
	Weekday    string `json:"weekday"`
	Selectable bool   `json:"selectable"`
	HasEvents  bool   `json:"hasEvents"`
	Today      bool   `json:"today"`
}

// WeekView is the 7-day window shown on the date step.
type WeekView struct {
	Anchor string    `json:"anchor"`
	Days   []WeekDay `json:"days"`
}

// BookingConfirmation echoes the booked call back to the page.
type BookingConfirmation struct {
	Date      string         `json:"date"`
	Slot      string         `json:"slot"`
	Details   BookingDetails `json:"details"`
	EventID   string         `json:"eventId,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// ReminderPayload is the asynq payload for the confirmation email task.
type ReminderPayload struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Date    string `json:"date"`
	Slot    string `json:"slot"`
	Purpose string `json:"purpose"`
}
