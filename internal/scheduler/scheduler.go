package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"MarketCache/internal/model"
	"MarketCache/internal/query"
	"MarketCache/internal/table"
)

// Target is the database the jobs run against. *query.Synchronized implements it.
type Target interface {
	GetInfo(ctx context.Context, req query.Request) (*table.Frame, error)
	Reset()
}

// Watchlist is what the refresh job keeps warm.
type Watchlist struct {
	Tickers      []string
	Interval     model.Interval
	Field        string
	LookbackDays int
}

// Scheduler manages the cron jobs that refresh and reset the cache.
type Scheduler struct {
	Cron      *cron.Cron
	Target    Target
	Watchlist Watchlist
	Ctx       context.Context
	log       *zap.Logger
	now       func() time.Time
}

// NewScheduler creates a new Scheduler. Cron specs accept an optional seconds field.
func NewScheduler(ctx context.Context, target Target, wl Watchlist, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		Cron:      cron.New(cron.WithParser(cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor))),
		Target:    target,
		Watchlist: wl,
		Ctx:       ctx,
		log:       log.Named("scheduler"),
		now:       time.Now,
	}
}

// RegisterAll registers the refresh and reset jobs. An empty spec skips its job.
func (s *Scheduler) RegisterAll(refreshCron, resetCron string) error {
	if refreshCron != "" {
		if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
			return fmt.Errorf("register refresh task: %w", err)
		}
	}
	if resetCron != "" {
		if _, err := s.Cron.AddFunc(resetCron, s.resetTask); err != nil {
			return fmt.Errorf("register reset task: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info("scheduler started", zap.Int("jobs", len(s.Cron.Entries())))
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// RefreshNow runs the refresh job immediately.
func (s *Scheduler) RefreshNow() error {
	return s.refresh()
}

func (s *Scheduler) refreshTask() {
	if err := s.refresh(); err != nil {
		s.log.Error("refresh failed", zap.Error(err))
	}
}

func (s *Scheduler) refresh() error {
	if len(s.Watchlist.Tickers) == 0 {
		return nil
	}
	end := model.Day(s.now())
	req := query.Request{
		Tickers:  s.Watchlist.Tickers,
		Close:    end,
		Interval: s.Watchlist.Interval,
		Field:    s.Watchlist.Field,
	}
	if s.Watchlist.LookbackDays > 0 {
		req.Open = end.AddDate(0, 0, -s.Watchlist.LookbackDays)
	}

	start := time.Now()
	s.log.Info("refreshing watchlist", zap.Strings("tickers", req.Tickers))
	frame, err := s.Target.GetInfo(s.Ctx, req)
	if err != nil {
		return fmt.Errorf("refresh watchlist: %w", err)
	}
	s.log.Info("watchlist refreshed",
		zap.Int("rows", frame.Len()),
		zap.Int("columns", len(frame.Columns)),
		zap.Duration("took", time.Since(start)))
	return nil
}

func (s *Scheduler) resetTask() {
	s.Target.Reset()
	s.log.Info("cache reset by schedule")
}
