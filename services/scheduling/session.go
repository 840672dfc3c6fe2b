package scheduling

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"folio/models"
	"folio/services/calendar"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OpenSession creates a fresh booking session at the date step. Any previous
// session state is never carried over: the UI re-opening always starts clean.
func (s *DefaultSchedulingService) OpenSession(ctx context.Context) (*models.BookingSession, *models.WeekView, error) {
	now := s.now().In(s.location())
	anchor := StartOfWeek(now)

	session := &models.BookingSession{
		SessionID:  uuid.New().String(),
		Step:       models.StepSelectingDate,
		WeekAnchor: anchor.Format(dayKeyLayout),
		CreatedAt:  now,
	}
	if err := s.saveSession(ctx, session); err != nil {
		return nil, nil, err
	}

	view := s.buildWeekView(ctx, anchor, now)
	s.Logger.Info("scheduling: session opened", zap.String("sessionId", session.SessionID))
	return session, view, nil
}

// GetSession returns the current state of an open session.
func (s *DefaultSchedulingService) GetSession(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	return s.loadSession(ctx, sessionID)
}

// CurrentWeek rebuilds the week view for the session's stored anchor.
func (s *DefaultSchedulingService) CurrentWeek(ctx context.Context, sessionID string) (*models.WeekView, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	anchor, err := time.ParseInLocation(dayKeyLayout, session.WeekAnchor, s.location())
	if err != nil {
		return nil, fmt.Errorf("corrupt week anchor %q: %w", session.WeekAnchor, err)
	}
	return s.buildWeekView(ctx, anchor, s.now().In(s.location())), nil
}

// NavigateWeek pages the visible week forward or backward by exactly 7 days
// and rebuilds the day-event annotations for the new window.
func (s *DefaultSchedulingService) NavigateWeek(ctx context.Context, sessionID, direction string) (*models.WeekView, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	anchor, err := time.ParseInLocation(dayKeyLayout, session.WeekAnchor, s.location())
	if err != nil {
		return nil, fmt.Errorf("corrupt week anchor %q: %w", session.WeekAnchor, err)
	}
	switch direction {
	case "next":
		anchor = NextWeek(anchor)
	case "previous":
		anchor = PreviousWeek(anchor)
	default:
		return nil, NewFlowError("invalidDirection", "direction must be \"next\" or \"previous\"")
	}

	session.WeekAnchor = anchor.Format(dayKeyLayout)
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return s.buildWeekView(ctx, anchor, s.now().In(s.location())), nil
}

// SelectDate moves date -> time. Days strictly before today are rejected.
// The availability fetch runs after the selection is persisted; if the
// selected day changed while the fetch was outstanding, the stale result is
// discarded instead of overwriting the newer selection's slots.
func (s *DefaultSchedulingService) SelectDate(ctx context.Context, sessionID, date string) (*models.BookingSession, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepSelectingDate && session.Step != models.StepSelectingTime {
		return nil, NewFlowError("invalidTransition", "a date can only be picked from the date step")
	}

	day, err := time.ParseInLocation(dayKeyLayout, date, s.location())
	if err != nil {
		return nil, NewFlowError("invalidDate", "date must be formatted YYYY-MM-DD")
	}
	if !Selectable(day, s.now().In(s.location())) {
		return nil, NewFlowError("dateNotSelectable", "days in the past cannot be booked")
	}

	session.Step = models.StepSelectingTime
	session.SelectedDate = date
	session.SelectedSlot = ""
	session.AvailableSlots = nil
	session.AvailabilityError = false
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}

	slots, fetchErr := s.fetchAvailability(ctx, day)
	return s.storeAvailability(ctx, sessionID, date, slots, fetchErr)
}

// fetchAvailability lists the day's events and computes its free slots.
func (s *DefaultSchedulingService) fetchAvailability(ctx context.Context, day time.Time) ([]string, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.location())
	events, err := s.Calendar.ListEvents(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return ComputeAvailableSlots(s.Policy, events, s.location()), nil
}

// storeAvailability applies a fetch result to the session, guarding against
// staleness: the result is kept only if the session still points at the day
// it was computed for.
func (s *DefaultSchedulingService) storeAvailability(ctx context.Context, sessionID, date string, slots []string, fetchErr error) (*models.BookingSession, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.SelectedDate != date {
		s.Logger.Debug("scheduling: discarding stale availability",
			zap.String("sessionId", sessionID),
			zap.String("staleDate", date),
			zap.String("selectedDate", session.SelectedDate))
		return session, nil
	}

	if fetchErr != nil {
		// Unknown availability, not "fully booked": flag the error so the UI
		// offers a retry instead of claiming there are no openings.
		s.Logger.Error("scheduling: availability fetch failed",
			zap.String("sessionId", sessionID), zap.String("date", date), zap.Error(fetchErr))
		session.AvailableSlots = nil
		session.AvailabilityError = true
	} else {
		session.AvailableSlots = slots
		session.AvailabilityError = false
	}
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SelectTime moves time -> details. The slot must be among the offered ones.
func (s *DefaultSchedulingService) SelectTime(ctx context.Context, sessionID, slot string) (*models.BookingSession, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepSelectingTime {
		return nil, NewFlowError("invalidTransition", "a time can only be picked from the time step")
	}
	if session.AvailabilityError {
		return nil, NewFlowError("availabilityUnknown", "availability could not be loaded; pick the date again")
	}
	if !containsSlot(session.AvailableSlots, slot) {
		return nil, NewFlowError("slotNotAvailable", "the selected time is not available on this day")
	}

	session.Step = models.StepEnteringDetails
	session.SelectedSlot = slot
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SubmitDetails validates the contact details and attempts the calendar
// write. Success moves to the confirmation step; a rejected write moves to
// the error step with the reason, keeping the details for a retry. While an
// insert is in flight further submissions are refused, so a double click
// cannot double-book.
func (s *DefaultSchedulingService) SubmitDetails(ctx context.Context, sessionID string, details models.BookingDetails) (*models.BookingSession, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepEnteringDetails {
		return nil, NewFlowError("invalidTransition", "details can only be submitted from the details step")
	}
	if fieldErr := ValidateBookingDetails(details); fieldErr != nil {
		return nil, fieldErr
	}

	// In-flight guard. The lock is scoped to the session and expires on its
	// own in case the process dies mid-insert.
	lockKey := submitLockKey(sessionID)
	locked, err := s.Cache.SetNX(ctx, lockKey, "1", 30*time.Second).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire submit guard: %w", err)
	}
	if !locked {
		return nil, ErrSubmitInFlight
	}
	defer s.Cache.Del(ctx, lockKey)

	candidate, err := s.buildCandidateEvent(session, details)
	if err != nil {
		return nil, err
	}

	session.Details = details
	stored, insertErr := s.Calendar.InsertEvent(ctx, *candidate)
	if insertErr != nil {
		// The write is not idempotent; surface the failure as a state the
		// user retries explicitly rather than retrying behind their back.
		session.Step = models.StepFailed
		session.LastError = failureMessage(insertErr)
		if err := s.saveSession(ctx, session); err != nil {
			return nil, err
		}
		s.Logger.Error("scheduling: booking failed",
			zap.String("sessionId", sessionID), zap.Error(insertErr))
		return session, nil
	}

	session.Step = models.StepConfirmed
	session.LastError = ""
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}

	s.Logger.Info("scheduling: booking confirmed",
		zap.String("sessionId", sessionID),
		zap.String("date", session.SelectedDate),
		zap.String("slot", session.SelectedSlot),
		zap.String("eventId", stored.ID))
	if s.OnScheduled != nil {
		s.OnScheduled(session.SelectedDate, session.SelectedSlot, details)
	}
	return session, nil
}

// buildCandidateEvent turns the session's selection into the event to insert.
func (s *DefaultSchedulingService) buildCandidateEvent(session *models.BookingSession, details models.BookingDetails) (*models.CalendarEvent, error) {
	day, err := time.ParseInLocation(dayKeyLayout, session.SelectedDate, s.location())
	if err != nil {
		return nil, fmt.Errorf("corrupt selected date %q: %w", session.SelectedDate, err)
	}
	hour, minute, err := ParseSlotLabel(session.SelectedSlot)
	if err != nil {
		return nil, NewFlowError("invalidSlot", err.Error())
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, s.location())
	return &models.CalendarEvent{
		Summary:     fmt.Sprintf("Meeting with %s", details.Name),
		Description: details.Purpose,
		Start:       start,
		End:         start.Add(s.slotDuration()),
		Timezone:    s.location().String(),
		Attendees: []models.EventAttendee{
			{Email: details.Email, DisplayName: details.Name},
		},
	}, nil
}

// Retry moves error -> details, clearing the message but keeping the
// previously entered details so the user is not forced to retype.
func (s *DefaultSchedulingService) Retry(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepFailed {
		return nil, NewFlowError("invalidTransition", "retry is only available after a failed booking")
	}

	session.Step = models.StepEnteringDetails
	session.LastError = ""
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Back steps the flow backwards: time -> date, details -> time,
// error -> details. The date step has no back target.
func (s *DefaultSchedulingService) Back(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch session.Step {
	case models.StepSelectingTime:
		session.Step = models.StepSelectingDate
	case models.StepEnteringDetails:
		session.Step = models.StepSelectingTime
	case models.StepFailed:
		session.Step = models.StepEnteringDetails
		session.LastError = ""
	default:
		return session, nil
	}

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// CloseSession discards the session entirely. The widget can always be
// closed and reopened to reset.
func (s *DefaultSchedulingService) CloseSession(ctx context.Context, sessionID string) error {
	if err := s.Cache.Del(ctx, sessionID).Err(); err != nil {
		return fmt.Errorf("failed to close booking session: %w", err)
	}
	return nil
}

// buildWeekView annotates the week's days with booked-day markers. A listing
// failure degrades to an unannotated view; it never blocks date selection.
func (s *DefaultSchedulingService) buildWeekView(ctx context.Context, anchor, today time.Time) *models.WeekView {
	eventDays := map[string]bool{}
	events, err := s.Calendar.ListEvents(ctx, anchor, anchor.AddDate(0, 0, 7))
	if err != nil {
		s.Logger.Warn("scheduling: week event fetch failed",
			zap.String("anchor", anchor.Format(dayKeyLayout)), zap.Error(err))
	} else {
		eventDays = BuildDayEventMap(events, s.location())
	}
	return BuildWeekView(anchor, today, eventDays)
}

func (s *DefaultSchedulingService) loadSession(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}
	data, err := s.Cache.Get(ctx, sessionID).Result()
	if err != nil {
		return nil, ErrSessionNotFound
	}
	var session models.BookingSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse booking session: %w", err)
	}
	return &session, nil
}

func (s *DefaultSchedulingService) saveSession(ctx context.Context, session *models.BookingSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	if err := s.Cache.Set(ctx, session.SessionID, data, s.sessionTTL()).Err(); err != nil {
		return fmt.Errorf("failed to store booking session: %w", err)
	}
	return nil
}

func submitLockKey(sessionID string) string {
	return "submit:" + sessionID
}

func containsSlot(slots []string, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}

// failureMessage prefers the client error's human-readable message over the
// wrapped transport detail.
func failureMessage(err error) string {
	var ce *calendar.ClientError
	if errors.As(err, &ce) {
		return ce.Message
	}
	return err.Error()
}
