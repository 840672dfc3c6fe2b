package scheduling

import (
	"context"
	"time"

	"folio/models"
	"folio/services/calendar"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SchedulingService defines the interface for driving a stateful call-booking
// flow: date -> time -> details -> confirmation/error.
type SchedulingService interface {
	OpenSession(ctx context.Context) (*models.BookingSession, *models.WeekView, error)
	GetSession(ctx context.Context, sessionID string) (*models.BookingSession, error)
	NavigateWeek(ctx context.Context, sessionID, direction string) (*models.WeekView, error)
	CurrentWeek(ctx context.Context, sessionID string) (*models.WeekView, error)
	SelectDate(ctx context.Context, sessionID, date string) (*models.BookingSession, error)
	SelectTime(ctx context.Context, sessionID, slot string) (*models.BookingSession, error)
	SubmitDetails(ctx context.Context, sessionID string, details models.BookingDetails) (*models.BookingSession, error)
	Retry(ctx context.Context, sessionID string) (*models.BookingSession, error)
	Back(ctx context.Context, sessionID string) (*models.BookingSession, error)
	CloseSession(ctx context.Context, sessionID string) error
}

// ScheduledCallback is invoked after a booking is confirmed, with the local
// echo of what was booked. The surrounding page uses it for the confirmation
// summary and follow-up notification.
type ScheduledCallback func(date string, slot string, details models.BookingDetails)

// DefaultSchedulingService implements SchedulingService. The calendar client,
// session cache and clock are injected so tests can substitute fakes.
type DefaultSchedulingService struct {
	Calendar     calendar.Client
	Cache        *redis.Client
	Policy       WorkingHours
	SlotDuration time.Duration
	SessionTTL   time.Duration
	Location     *time.Location
	Now          func() time.Time
	OnScheduled  ScheduledCallback
	Logger       *zap.Logger
}

func (s *DefaultSchedulingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultSchedulingService) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.Local
}

func (s *DefaultSchedulingService) slotDuration() time.Duration {
	if s.SlotDuration > 0 {
		return s.SlotDuration
	}
	return 60 * time.Minute
}

func (s *DefaultSchedulingService) sessionTTL() time.Duration {
	if s.SessionTTL > 0 {
		return s.SessionTTL
	}
	return 30 * time.Minute
}
