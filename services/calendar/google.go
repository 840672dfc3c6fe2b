package calendar

import (
	"context"
	"sync"
	"time"

	"folio/models"

	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleClient implements Client against the Google Calendar API using
// service-account credentials.
type GoogleClient struct {
	CredentialsFile string
	CalendarID      string
	Timezone        string
	Timeout         time.Duration
	Logger          *zap.Logger

	mu            sync.Mutex
	svc           *gcal.Service
	authenticated bool
}

// NewGoogleClient constructs a GoogleClient. Authentication happens lazily
// on first use.
func NewGoogleClient(credentialsFile, calendarID, timezone string, timeout time.Duration, logger *zap.Logger) *GoogleClient {
	if calendarID == "" {
		calendarID = "primary"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GoogleClient{
		CredentialsFile: credentialsFile,
		CalendarID:      calendarID,
		Timezone:        timezone,
		Timeout:         timeout,
		Logger:          logger,
	}
}

// Authenticate establishes the API session. Concurrent calls are serialized
// so only one sign-in attempt runs at a time.
func (c *GoogleClient) Authenticate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.authenticated {
		return nil
	}

	svc, err := gcal.NewService(ctx,
		option.WithCredentialsFile(c.CredentialsFile),
		option.WithScopes(gcal.CalendarScope),
	)
	if err != nil {
		c.Logger.Error("calendar: authentication failed", zap.Error(err))
		return NewAuthenticationError("failed to establish calendar session", err)
	}

	c.svc = svc
	c.authenticated = true
	c.Logger.Info("calendar: authenticated", zap.String("calendarId", c.CalendarID))
	return nil
}

// ensureAuthenticated re-authenticates lazily before any read or write.
func (c *GoogleClient) ensureAuthenticated(ctx context.Context) error {
	c.mu.Lock()
	authed := c.authenticated
	c.mu.Unlock()
	if authed {
		return nil
	}
	return c.Authenticate(ctx)
}

// ListEvents returns events starting within [start, end). The remote query
// matches on overlap, so the half-open start filter is applied here.
func (c *GoogleClient) ListEvents(ctx context.Context, start, end time.Time) ([]models.CalendarEvent, error) {
	if err := c.ensureAuthenticated(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	res, err := c.svc.Events.List(c.CalendarID).
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		c.Logger.Error("calendar: event listing failed", zap.Error(err))
		return nil, NewRetrievalError("failed to retrieve calendar events", err)
	}

	events := make([]models.CalendarEvent, 0, len(res.Items))
	for _, item := range res.Items {
		ev, err := fromGoogleEvent(item)
		if err != nil {
			c.Logger.Warn("calendar: skipping unparsable event", zap.String("eventId", item.Id), zap.Error(err))
			continue
		}
		if ev.Start.Before(start) || !ev.Start.Before(end) {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

// InsertEvent persists one event and returns the stored representation.
func (c *GoogleClient) InsertEvent(ctx context.Context, event models.CalendarEvent) (*models.CalendarEvent, error) {
	if err := c.ensureAuthenticated(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	tz := event.Timezone
	if tz == "" {
		tz = c.Timezone
	}

	attendees := make([]*gcal.EventAttendee, 0, len(event.Attendees))
	for _, a := range event.Attendees {
		attendees = append(attendees, &gcal.EventAttendee{
			Email:       a.Email,
			DisplayName: a.DisplayName,
		})
	}

	req := &gcal.Event{
		Summary:     event.Summary,
		Description: event.Description,
		Start:       &gcal.EventDateTime{DateTime: event.Start.Format(time.RFC3339), TimeZone: tz},
		End:         &gcal.EventDateTime{DateTime: event.End.Format(time.RFC3339), TimeZone: tz},
		Attendees:   attendees,
	}

	res, err := c.svc.Events.Insert(c.CalendarID, req).Context(ctx).Do()
	if err != nil {
		c.Logger.Error("calendar: event insert failed", zap.Error(err))
		return nil, NewInsertError("failed to create calendar event", err)
	}

	stored, err := fromGoogleEvent(res)
	if err != nil {
		return nil, NewInsertError("remote returned unparsable event", err)
	}
	for i := range stored.Attendees {
		if stored.Attendees[i].ResponseStatus == "" {
			stored.Attendees[i].ResponseStatus = "needsAction"
		}
	}
	return &stored, nil
}

// fromGoogleEvent maps an API event onto the local model. All-day events
// carry only a date; they are anchored at midnight UTC.
func fromGoogleEvent(item *gcal.Event) (models.CalendarEvent, error) {
	start, tz, err := parseEventTime(item.Start)
	if err != nil {
		return models.CalendarEvent{}, err
	}
	end, _, err := parseEventTime(item.End)
	if err != nil {
		return models.CalendarEvent{}, err
	}

	attendees := make([]models.EventAttendee, 0, len(item.Attendees))
	for _, a := range item.Attendees {
		attendees = append(attendees, models.EventAttendee{
			Email:          a.Email,
			DisplayName:    a.DisplayName,
			ResponseStatus: a.ResponseStatus,
		})
	}

	return models.CalendarEvent{
		ID:          item.Id,
		Summary:     item.Summary,
		Description: item.Description,
		Start:       start,
		End:         end,
		Timezone:    tz,
		Attendees:   attendees,
	}, nil
}

func parseEventTime(edt *gcal.EventDateTime) (time.Time, string, error) {
	if edt == nil {
		return time.Time{}, "", nil
	}
	if edt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, edt.DateTime)
		return t, edt.TimeZone, err
	}
	t, err := time.Parse("2006-01-02", edt.Date)
	return t, edt.TimeZone, err
}
