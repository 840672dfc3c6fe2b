package calendar

import (
	"context"
	"time"

	"folio/models"
)

// Client is the contract the scheduling core needs from an external
// event-storage service. Implementations must surface transient failures
// as typed ClientErrors so the flow can distinguish "unknown availability"
// from "no events".
type Client interface {
	// Authenticate establishes a usable session. It is invoked lazily by
	// ListEvents/InsertEvent when no session is established yet.
	Authenticate(ctx context.Context) error

	// ListEvents returns events whose start instant falls within [start, end).
	ListEvents(ctx context.Context, start, end time.Time) ([]models.CalendarEvent, error)

	// InsertEvent persists a new event and returns the stored representation
	// with its assigned identifier. This call is not idempotent: callers must
	// not blindly retry without user confirmation.
	InsertEvent(ctx context.Context, event models.CalendarEvent) (*models.CalendarEvent, error)
}
