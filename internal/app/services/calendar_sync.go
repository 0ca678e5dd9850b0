package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/repositories"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/calendar"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/logger"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

const defaultSyncTimeout = 30 * time.Second

// CalendarSync mirrors committed classes to the external calendar. It never fails the
// caller: every error is logged and counted, and each class is synced independently.
type CalendarSync struct {
	client      calendar.Client
	repos       *repositories.Repositories
	concurrency int
	timeout     time.Duration
}

// NewCalendarSync creates a syncer that runs at most concurrency calls at once
func NewCalendarSync(client calendar.Client, repos *repositories.Repositories, concurrency int) *CalendarSync {
	if concurrency < 1 {
		concurrency = 1
	}
	return &CalendarSync{
		client:      client,
		repos:       repos,
		concurrency: concurrency,
		timeout:     defaultSyncTimeout,
	}
}

// SyncResult counts per-class outcomes of one sync call
type SyncResult struct {
	Synced int
	Failed int
}

// detach keeps the sync alive after the HTTP request that triggered it has returned
func (s *CalendarSync) detach(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
}

func (s *CalendarSync) event(ctx context.Context, subject *models.Subject, room *models.Room, c *models.Class) calendar.Event {
	ev := calendar.Event{
		Title:       fmt.Sprintf("%s (%s) - Lecture %d", subject.Name, subject.Code, c.LectureNumber),
		Description: fmt.Sprintf("Lecture %d of %s", c.LectureNumber, subject.Name),
		Start:       c.StartAt,
		End:         c.EndAt,
	}
	if room != nil {
		ev.Location = room.Name
	}
	teacher, err := s.repos.Teachers.GetByID(ctx, c.TeacherID)
	if err != nil {
		logger.Warn().Err(err).Int64("teacherID", c.TeacherID).Msg("Calendar event created without teacher attendee")
	} else if teacher.Email != "" {
		ev.Attendees = []string{teacher.Email}
	}
	return ev
}

// Created pushes newly committed classes and stores the returned event ids
func (s *CalendarSync) Created(ctx context.Context, subject *models.Subject, room *models.Room, classes []*models.Class) SyncResult {
	ctx, cancel := s.detach(ctx)
	defer cancel()

	var synced, failed atomic.Int64
	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for _, c := range classes {
		g.Go(func() error {
			id, err := s.client.CreateEvent(ctx, s.event(ctx, subject, room, c))
			if err != nil {
				failed.Add(1)
				metrics.CalendarSync.WithLabelValues("create", "error").Inc()
				logger.Warn().Err(err).Int64("classID", c.ID).Msg("Calendar event creation failed")
				return nil
			}
			metrics.CalendarSync.WithLabelValues("create", "ok").Inc()
			if id == "" {
				return nil
			}
			if err := s.repos.Classes.SetCalendarEventID(ctx, c.ID, &id); err != nil {
				failed.Add(1)
				logger.Warn().Err(err).Int64("classID", c.ID).Str("eventID", id).Msg("Failed to store calendar event id")
				return nil
			}
			c.CalendarEventID = &id
			synced.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	res := SyncResult{Synced: int(synced.Load()), Failed: int(failed.Load())}
	if res.Failed > 0 {
		logger.Warn().Int64("subjectID", subject.ID).Int("failed", res.Failed).Int("synced", res.Synced).Msg("Calendar sync finished with failures")
	}
	return res
}

// Updated patches the event of a class that already has one
func (s *CalendarSync) Updated(ctx context.Context, subject *models.Subject, room *models.Room, c *models.Class) SyncResult {
	if c.CalendarEventID == nil {
		return SyncResult{}
	}
	ctx, cancel := s.detach(ctx)
	defer cancel()

	if err := s.client.UpdateEvent(ctx, *c.CalendarEventID, s.event(ctx, subject, room, c)); err != nil {
		metrics.CalendarSync.WithLabelValues("update", "error").Inc()
		logger.Warn().Err(err).Int64("classID", c.ID).Str("eventID", *c.CalendarEventID).Msg("Calendar event update failed")
		return SyncResult{Failed: 1}
	}
	metrics.CalendarSync.WithLabelValues("update", "ok").Inc()
	return SyncResult{Synced: 1}
}

// Deleted removes the event of a deleted class
func (s *CalendarSync) Deleted(ctx context.Context, c *models.Class) SyncResult {
	if c.CalendarEventID == nil {
		return SyncResult{}
	}
	ctx, cancel := s.detach(ctx)
	defer cancel()

	if err := s.client.DeleteEvent(ctx, *c.CalendarEventID); err != nil {
		metrics.CalendarSync.WithLabelValues("delete", "error").Inc()
		logger.Warn().Err(err).Int64("classID", c.ID).Str("eventID", *c.CalendarEventID).Msg("Calendar event deletion failed")
		return SyncResult{Failed: 1}
	}
	metrics.CalendarSync.WithLabelValues("delete", "ok").Inc()
	return SyncResult{Synced: 1}
}
