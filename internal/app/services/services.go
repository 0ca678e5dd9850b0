package services

import (
	"time"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/repositories"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/cache"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/calendar"
)

// Dependencies are the collaborators shared by the services
type Dependencies struct {
	Repos           *repositories.Repositories
	Tx              repositories.TxManager
	Calendar        calendar.Client
	Cache           cache.Cache
	ProgressTTL     time.Duration
	Location        *time.Location
	SyncConcurrency int
}

// Services holds every service instance
type Services struct {
	Schedule *ScheduleService
	CPR      *CPRService
	Recalc   *ProgressRecalculator
}

// NewServices wires the services. Nil collaborators fall back to no-op implementations.
func NewServices(d Dependencies) *Services {
	if d.Calendar == nil {
		d.Calendar = calendar.Noop{}
	}
	if d.Location == nil {
		d.Location = time.UTC
	}

	recalc := NewProgressRecalculator()
	progress := NewProgressCache(d.Cache, d.ProgressTTL)
	sync := NewCalendarSync(d.Calendar, d.Repos, d.SyncConcurrency)

	return &Services{
		Schedule: NewScheduleService(d.Repos, d.Tx, recalc, sync, progress, d.Location),
		CPR:      NewCPRService(d.Repos, d.Tx, recalc, progress),
		Recalc:   recalc,
	}
}
