package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models/dto"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/cache"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/logger"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/metrics"
)

// ProgressCache keeps rendered progress reports until the subject's curriculum or
// timetable changes. Cache failures only cost a recomputation.
type ProgressCache struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewProgressCache wraps c. A nil c disables caching.
func NewProgressCache(c cache.Cache, ttl time.Duration) *ProgressCache {
	if c == nil {
		c = cache.Nop{}
	}
	return &ProgressCache{cache: c, ttl: ttl}
}

func progressKey(subjectID int64) string {
	return fmt.Sprintf("cpr:progress:%d", subjectID)
}

// Get returns the cached report of the subject, if any
func (p *ProgressCache) Get(ctx context.Context, subjectID int64) (*dto.ProgressReport, bool) {
	var report dto.ProgressReport
	ok, err := p.cache.Get(ctx, progressKey(subjectID), &report)
	switch {
	case err != nil:
		metrics.ProgressCache.WithLabelValues("error").Inc()
		logger.Warn().Err(err).Int64("subjectID", subjectID).Msg("Progress cache read failed")
		return nil, false
	case !ok:
		metrics.ProgressCache.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.ProgressCache.WithLabelValues("hit").Inc()
	return &report, true
}

// Put stores a report
func (p *ProgressCache) Put(ctx context.Context, report *dto.ProgressReport) {
	if err := p.cache.Set(ctx, progressKey(report.SubjectID), report, p.ttl); err != nil {
		logger.Warn().Err(err).Int64("subjectID", report.SubjectID).Msg("Progress cache write failed")
	}
}

// Invalidate drops the subject's report
func (p *ProgressCache) Invalidate(ctx context.Context, subjectID int64) {
	if err := p.cache.Delete(ctx, progressKey(subjectID)); err != nil {
		logger.Warn().Err(err).Int64("subjectID", subjectID).Msg("Progress cache invalidation failed")
	}
}
