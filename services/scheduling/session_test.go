package scheduling

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"folio/models"
	"folio/services/calendar"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCalendar is an in-memory calendar.Client with injectable failures.
type fakeCalendar struct {
	mu        sync.Mutex
	events    []models.CalendarEvent
	listErr   error
	insertErr error
	inserted  []models.CalendarEvent
}

func (f *fakeCalendar) Authenticate(ctx context.Context) error { return nil }

func (f *fakeCalendar) ListEvents(ctx context.Context, start, end time.Time) ([]models.CalendarEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.CalendarEvent
	for _, ev := range f.events {
		if !ev.Start.Before(start) && ev.Start.Before(end) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeCalendar) InsertEvent(ctx context.Context, event models.CalendarEvent) (*models.CalendarEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	stored := event
	stored.ID = "evt-1"
	f.inserted = append(f.inserted, stored)
	return &stored, nil
}

// testNow is a Wednesday morning; the surrounding week runs 03-10 to 03-16.
var testNow = time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, cal *fakeCalendar) *DefaultSchedulingService {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return &DefaultSchedulingService{
		Calendar: cal,
		Cache:    client,
		Policy:   WorkingHours{StartHour: 9, EndHour: 17},
		Location: time.UTC,
		Now:      func() time.Time { return testNow },
		Logger:   zap.NewNop(),
	}
}

func TestOpenSessionStartsAtDateStep(t *testing.T) {
	svc := newTestService(t, &fakeCalendar{})

	session, week, err := svc.OpenSession(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.StepSelectingDate, session.Step)
	assert.NotEmpty(t, session.SessionID)
	assert.Equal(t, "2025-03-10", session.WeekAnchor)
	require.Len(t, week.Days, 7)
	assert.Equal(t, "2025-03-10", week.Anchor)
}

func TestReopeningStartsAFreshSession(t *testing.T) {
	svc := newTestService(t, &fakeCalendar{})
	ctx := context.Background()

	first, _, err := svc.OpenSession(ctx)
	require.NoError(t, err)
	_, err = svc.SelectDate(ctx, first.SessionID, "2025-03-13")
	require.NoError(t, err)

	second, _, err := svc.OpenSession(ctx)
	require.NoError(t, err)

	assert.NotEqual(t, first.SessionID, second.SessionID)
	assert.Equal(t, models.StepSelectingDate, second.Step)
	assert.Empty(t, second.SelectedDate)
}

func TestNavigateWeek(t *testing.T) {
	svc := newTestService(t, &fakeCalendar{})
	ctx := context.Background()

	session, _, err := svc.OpenSession(ctx)
	require.NoError(t, err)

	week, err := svc.NavigateWeek(ctx, session.SessionID, "next")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-17", week.Anchor)

	week, err = svc.NavigateWeek(ctx, session.SessionID, "previous")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", week.Anchor)

	_, err = svc.NavigateWeek(ctx, session.SessionID, "sideways")
	var flowErr *FlowError
	require.ErrorAs(t, err, &flowErr)
	assert.Equal(t, "invalidDirection", flowErr.Code)
}

func TestSelectDateComputesAvailability(t *testing.T) {
	cal := &fakeCalendar{events: []models.CalendarEvent{
		eventAt(t, "2025-03-13", 9),
		eventAt(t, "2025-03-13", 10),
		eventAt(t, "2025-03-13", 11),
	}}
	svc := newTestService(t, cal)
	ctx := context.Background()

	session, _, err := svc.OpenSession(ctx)
	require.NoError(t, err)

	session, err = svc.SelectDate(ctx, session.SessionID, "2025-03-13")
	require.NoError(t, err)

	assert.Equal(t, models.StepSelectingTime, session.Step)
	assert.Equal(t, "2025-03-13", session.SelectedDate)
	assert.False(t, session.AvailabilityError)
	assert.Equal(t, []string{"12:00 PM", "1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM"}, session.AvailableSlots)
}

func TestSelectDateRejectsPastDay(t *testing.T) {
	svc := newTestService(t, &fakeCalendar{})
	ctx := context.Background()

	session, _, err := svc.OpenSession(ctx)
	require.NoError(t, err)

	_, err = svc.SelectDate(ctx, session.SessionID, "2025-03-11")
	var flowErr *FlowError
	require.ErrorAs(t, err, &flowErr)
	assert.Equal(t, "dateNotSelectable", flowErr.Code)

	// Today is still bookable.
	_, err = svc.SelectDate(ctx, session.SessionID, "2025-03-12")
	assert.NoError(t, err)
}

func TestSelectDateFetchFailureSetsAvailabilityError(t *testing.T) {
	cal := &fakeCalendar{listErr: calendar.NewRetrievalError("failed to list events", errors.New("network down"))}
	svc := newTestService(t, cal)
	ctx := context.Background()

	session, _, err := svc.OpenSession(ctx)
	require.NoError(t, err)

	session, err = svc.SelectDate(ctx, session.SessionID, "2025-03-13")
	require.NoError(t, err)

	assert.True(t, session.AvailabilityError)
	assert.Empty(t, session.AvailableSlots)

	// The error state blocks the time step until the date is picked again.
	_, err = svc.SelectTime(ctx, session.SessionID, "10:00 AM")
	var flowErr *FlowError
	require.ErrorAs(t, err, &flowErr)
	assert.Equal(t, "availabilityUnknown", flowErr.Code)
}

func TestStaleAvailabilityIsDiscarded(t *testing.T) {
	svc := newTestService(t, &fakeCalendar{})
	ctx := context.Background()

	session, _, err := svc.OpenSession(ctx)
	require.NoError(t, err)
	_, err = svc.SelectDate(ctx, session.SessionID, "2025-03-13")
	require.NoError(t, err)
	current, err := svc.SelectDate(ctx, session.SessionID, "2025-03-14")
	require.NoError(t, err)

	// A late-arriving result for the first day must not clobber the second.
	stored, err := svc.storeAvailability(ctx, session.SessionID, "2025-03-13", nil,
		calendar.NewRetrievalError("failed to list events", errors.New("slow network")))
	require.NoError(t, err)

	assert.Equal(t, "2025-03-14", stored.SelectedDate)
	assert.False(t, stored.AvailabilityError)
	assert.Equal(t, current.AvailableSlots, stored.AvailableSlots)
}

func TestSelectTimeRequiresOfferedSlot(t *testing.T) {
	cal := &fakeCalendar{events: []models.CalendarEvent{eventAt(t, "2025-03-13", 10)}}
	svc := newTestService(t, cal)
	ctx := context.Background()

	session, _, err := svc.OpenSession(ctx)
	require.NoError(t, err)
	_, err = svc.SelectDate(ctx, session.SessionID, "2025-03-13")
	require.NoError(t, err)

	_, err = svc.SelectTime(ctx, session.SessionID, "10:00 AM")
	var flowErr *FlowError
	require.ErrorAs(t, err, &flowErr)
	assert.Equal(t, "slotNotAvailable", flowErr.Code)

	session, err = svc.SelectTime(ctx, session.SessionID, "11:00 AM")
	require.NoError(t, err)
	assert.Equal(t, models.StepEnteringDetails, session.Step)
	assert.Equal(t, "11:00 AM", session.SelectedSlot)
}

func TestBookingHappyPath(t *testing.T) {
	cal := &fakeCalendar{}
	svc := newTestService(t, cal)

	var scheduledDate, scheduledSlot string
	svc.OnScheduled = func(date, slot string, details models.BookingDetails) {
		scheduledDate, scheduledSlot = date, slot
	}

	ctx := context.Background()
	session, _, err := svc.OpenSession(ctx)
	require.NoError(t, err)
	_, err = svc.SelectDate(ctx, session.SessionID, "2025-03-13")
	require.NoError(t, err)
	_, err = svc.SelectTime(ctx, session.SessionID, "10:00 AM")
	require.NoError(t, err)

	details := models.BookingDetails{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Purpose: "Discuss a consulting engagement",
	}
	session, err = svc.SubmitDetails(ctx, session.SessionID, details)
	require.NoError(t, err)

	assert.Equal(t, models.StepConfirmed, session.Step)
	assert.Equal(t, details, session.Details)
	assert.Empty(t, session.LastError)
	assert.Equal(t, "2025-03-13", scheduledDate)
	assert.Equal(t, "10:00 AM", scheduledSlot)

	require.Len(t, cal.inserted, 1)
	inserted := cal.inserted[0]
	assert.Equal(t, "Meeting with Ada Lovelace", inserted.Summary)
	assert.Equal(t, details.Purpose, inserted.Description)
	assert.Equal(t, time.Date(2025, time.March, 13, 10, 0, 0, 0, time.UTC), inserted.Start)
	assert.Equal(t, time.Date(2025, time.March, 13, 11, 0, 0, 0, time.UTC), inserted.End)
	require.Len(t, inserted.Attendees, 1)
	assert.Equal(t, "ada@example.com", inserted.Attendees[0].Email)
}

func TestSubmitRejectsInvalidDetails(t *testing.T) {
	cal := &fakeCalendar{}
	svc := newTestService(t, cal)
	ctx := context.Background()

	session, _, err := svc.OpenSession(ctx)
	require.NoError(t, err)
	_, err = svc.SelectDate(ctx, session.SessionID, "2025-03-13")
	require.NoError(t, err)
	_, err = svc.SelectTime(ctx, session.SessionID, "10:00 AM")
	require.NoError(t, err)

	_, err = svc.SubmitDetails(ctx, session.SessionID, models.BookingDetails{
		Name:    "Ada Lovelace",
		Email:   "not-an-email",
		Purpose: "Chat",
	})
	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "email", fieldErr.Field)

	// Validation runs locally; nothing reaches the calendar.
	assert.Empty(t, cal.inserted)
}

func TestSubmitFailureThenRetryKeepsDetails(t *testing.T) {
	cal := &fakeCalendar{insertErr: calendar.NewInsertError("failed to create event", errors.New("quota exceeded"))}
	svc := newTestService(t, cal)
	ctx := context.Background()

	session, _, err := svc.OpenSession(ctx)
	require.NoError(t, err)
	_, err = svc.SelectDate(ctx, session.SessionID, "2025-03-13")
	require.NoError(t, err)
	_, err = svc.SelectTime(ctx, session.SessionID, "10:00 AM")
	require.NoError(t, err)

	details := models.BookingDetails{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Purpose: "Discuss a consulting engagement",
	}
	session, err = svc.SubmitDetails(ctx, session.SessionID, details)
	require.NoError(t, err)

	assert.Equal(t, models.StepFailed, session.Step)
	assert.Equal(t, "failed to create event", session.LastError)
	assert.Equal(t, details, session.Details)

	session, err = svc.Retry(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StepEnteringDetails, session.Step)
	assert.Empty(t, session.LastError)
	assert.Equal(t, details, session.Details)

	// The second attempt succeeds once the remote recovers.
	cal.insertErr = nil
	session, err = svc.SubmitDetails(ctx, session.SessionID, details)
	require.NoError(t, err)
	assert.Equal(t, models.StepConfirmed, session.Step)
}

func TestSubmitInFlightGuard(t *testing.T) {
	svc := newTestService(t, &fakeCalendar{})
	ctx := context.Background()

	session, _, err := svc.OpenSession(ctx)
	require.NoError(t, err)
	_, err = svc.SelectDate(ctx, session.SessionID, "2025-03-13")
	require.NoError(t, err)
	_, err = svc.SelectTime(ctx, session.SessionID, "10:00 AM")
	require.NoError(t, err)

	// Simulate a submission already holding the guard.
	require.NoError(t, svc.Cache.Set(ctx, submitLockKey(session.SessionID), "1", 30*time.Second).Err())

	_, err = svc.SubmitDetails(ctx, session.SessionID, models.BookingDetails{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Purpose: "Chat",
	})
	assert.ErrorIs(t, err, ErrSubmitInFlight)
}

func TestBackChain(t *testing.T) {
	svc := newTestService(t, &fakeCalendar{})
	ctx := context.Background()

	session, _, err := svc.OpenSession(ctx)
	require.NoError(t, err)
	_, err = svc.SelectDate(ctx, session.SessionID, "2025-03-13")
	require.NoError(t, err)
	_, err = svc.SelectTime(ctx, session.SessionID, "10:00 AM")
	require.NoError(t, err)

	session, err = svc.Back(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StepSelectingTime, session.Step)

	session, err = svc.Back(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StepSelectingDate, session.Step)

	// The date step is the start; back is a no-op there.
	session, err = svc.Back(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StepSelectingDate, session.Step)
}

func TestCloseSession(t *testing.T) {
	svc := newTestService(t, &fakeCalendar{})
	ctx := context.Background()

	session, _, err := svc.OpenSession(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.CloseSession(ctx, session.SessionID))

	_, err = svc.GetSession(ctx, session.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
