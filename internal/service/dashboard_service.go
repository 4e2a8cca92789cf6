package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/persistence"
	"github.com/spec-kit/helpdesk-service/internal/report"
)

// DashboardService serves the date-bounded attendance summary behind the
// dashboard. The client "live" mode is a plain poll loop, so summaries are
// cached in Redis for a short TTL to keep repeated polls off Postgres.
type DashboardService struct {
	engine *TicketEngine[*domain.GeneralTicket]
	cache  *persistence.Redis
	ttl    time.Duration
	loc    *time.Location
	logger *zap.Logger
}

// NewDashboardService constructs the service.
func NewDashboardService(engine *TicketEngine[*domain.GeneralTicket], cache *persistence.Redis, ttl time.Duration, loc *time.Location, logger *zap.Logger) *DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardService{engine: engine, cache: cache, ttl: ttl, loc: loc, logger: logger}
}

// Summary computes (or serves from cache) the aggregation over the caller's
// visible general tickets inside the inclusive date window.
func (s *DashboardService) Summary(ctx context.Context, actor domain.Identity, from, to *time.Time) (report.Summary[*domain.GeneralTicket], error) {
	key := s.cacheKey(actor, from, to)
	if cached, ok := s.cachedSummary(ctx, key); ok {
		return cached, nil
	}

	rows, err := s.engine.ListVisible(ctx, actor)
	if err != nil {
		return report.Summary[*domain.GeneralTicket]{}, err
	}
	summary := report.Summarize(domain.GeneralLifecycle, rows, from, to, s.loc)

	s.storeSummary(ctx, key, summary)
	return summary, nil
}

func (s *DashboardService) cacheKey(actor domain.Identity, from, to *time.Time) string {
	scope := actor.UserID
	if actor.Admin {
		scope = "all"
	}
	return fmt.Sprintf("dashboard:general:%s:%s:%s", scope, dayKey(from, s.loc), dayKey(to, s.loc))
}

func dayKey(ts *time.Time, loc *time.Location) string {
	if ts == nil {
		return "open"
	}
	return ts.In(loc).Format("20060102")
}

func (s *DashboardService) cachedSummary(ctx context.Context, key string) (report.Summary[*domain.GeneralTicket], bool) {
	var summary report.Summary[*domain.GeneralTicket]
	if s.cache == nil || s.cache.Client == nil || s.ttl <= 0 {
		return summary, false
	}
	raw, err := s.cache.Client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Debug("dashboard cache read failed", zap.Error(err))
		}
		return summary, false
	}
	if err := json.Unmarshal(raw, &summary); err != nil {
		s.logger.Debug("dashboard cache entry corrupt", zap.Error(err))
		return summary, false
	}
	return summary, true
}

func (s *DashboardService) storeSummary(ctx context.Context, key string, summary report.Summary[*domain.GeneralTicket]) {
	if s.cache == nil || s.cache.Client == nil || s.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.logger.Debug("dashboard cache write failed", zap.Error(err))
	}
}
