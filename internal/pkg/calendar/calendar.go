// Package calendar pushes class instances to an external calendar.
package calendar

import (
	"context"
	"fmt"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Event describes one calendar entry
type Event struct {
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	Attendees   []string
	Location    string
}

// Client is the external calendar collaborator. Event ids are opaque.
type Client interface {
	CreateEvent(ctx context.Context, ev Event) (string, error)
	UpdateEvent(ctx context.Context, eventID string, ev Event) error
	DeleteEvent(ctx context.Context, eventID string) error
}

// Noop is used when calendar sync is disabled. It never returns an event id.
type Noop struct{}

func (Noop) CreateEvent(context.Context, Event) (string, error) { return "", nil }
func (Noop) UpdateEvent(context.Context, string, Event) error { return nil }
func (Noop) DeleteEvent(context.Context, string) error { return nil }

// GoogleClient writes events to a Google calendar
type GoogleClient struct {
	svc        *gcal.Service
	calendarID string
}

// NewGoogleClient authenticates with a service account credentials file
func NewGoogleClient(ctx context.Context, credentialsFile, calendarID string) (*GoogleClient, error) {
	svc, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gcal.CalendarEventsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create calendar client: %w", err)
	}
	return &GoogleClient{svc: svc, calendarID: calendarID}, nil
}

func toGoogleEvent(ev Event) *gcal.Event {
	out := &gcal.Event{
		Summary:     ev.Title,
		Description: ev.Description,
		Location:    ev.Location,
		Start:       &gcal.EventDateTime{DateTime: ev.Start.Format(time.RFC3339), TimeZone: ev.Start.Location().String()},
		End:         &gcal.EventDateTime{DateTime: ev.End.Format(time.RFC3339), TimeZone: ev.End.Location().String()},
	}
	for _, email := range ev.Attendees {
		out.Attendees = append(out.Attendees, &gcal.EventAttendee{Email: email})
	}
	return out
}

// CreateEvent inserts the event and returns its id
func (c *GoogleClient) CreateEvent(ctx context.Context, ev Event) (string, error) {
	created, err := c.svc.Events.Insert(c.calendarID, toGoogleEvent(ev)).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("calendar insert failed: %w", err)
	}
	return created.Id, nil
}

// UpdateEvent patches an existing event
func (c *GoogleClient) UpdateEvent(ctx context.Context, eventID string, ev Event) error {
	if _, err := c.svc.Events.Patch(c.calendarID, eventID, toGoogleEvent(ev)).Context(ctx).Do(); err != nil {
		return fmt.Errorf("calendar update failed: %w", err)
	}
	return nil
}

// DeleteEvent removes an event
func (c *GoogleClient) DeleteEvent(ctx context.Context, eventID string) error {
	if err := c.svc.Events.Delete(c.calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("calendar delete failed: %w", err)
	}
	return nil
}
