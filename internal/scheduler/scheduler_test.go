package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketCache/internal/model"
	"MarketCache/internal/query"
	"MarketCache/internal/table"
)

type fakeTarget struct {
	requests []query.Request
	resets   int
	err      error
}

func (f *fakeTarget) GetInfo(_ context.Context, req query.Request) (*table.Frame, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &table.Frame{Columns: []string{"PETR4_close"}}, nil
}

func (f *fakeTarget) Reset() { f.resets++ }

func newTestScheduler(target Target, wl Watchlist) *Scheduler {
	s := NewScheduler(context.Background(), target, wl, nil)
	s.now = func() time.Time { return time.Date(2023, 3, 1, 18, 30, 0, 0, time.UTC) }
	return s
}

func TestRefreshNow_BuildsRequest(t *testing.T) {
	target := &fakeTarget{}
	s := newTestScheduler(target, Watchlist{
		Tickers:      []string{"PETR4", "RET_VALE3"},
		Interval:     model.Daily,
		Field:        "close",
		LookbackDays: 30,
	})

	require.NoError(t, s.RefreshNow())
	require.Len(t, target.requests, 1)
	req := target.requests[0]
	assert.Equal(t, []string{"PETR4", "RET_VALE3"}, req.Tickers)
	assert.Equal(t, time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC), req.Close)
	assert.Equal(t, time.Date(2023, 1, 30, 0, 0, 0, 0, time.UTC), req.Open)
	assert.Equal(t, model.Daily, req.Interval)
}

func TestRefreshNow_EmptyWatchlist(t *testing.T) {
	target := &fakeTarget{}
	s := newTestScheduler(target, Watchlist{})
	require.NoError(t, s.RefreshNow())
	assert.Empty(t, target.requests)
}

func TestRefreshNow_PropagatesError(t *testing.T) {
	target := &fakeTarget{err: model.NoDataFound("XXXX3")}
	s := newTestScheduler(target, Watchlist{Tickers: []string{"XXXX3"}})

	err := s.RefreshNow()
	assert.True(t, errors.Is(err, model.ErrNoDataFound))
	s.refreshTask() // logs, never panics
}

func TestRegisterAll(t *testing.T) {
	target := &fakeTarget{}
	s := newTestScheduler(target, Watchlist{Tickers: []string{"PETR4"}})

	require.NoError(t, s.RegisterAll("0 30 18 * * 1-5", "@weekly"))
	assert.Len(t, s.Cron.Entries(), 2)

	s.resetTask()
	assert.Equal(t, 1, target.resets)

	other := newTestScheduler(target, Watchlist{})
	require.NoError(t, other.RegisterAll("", ""))
	assert.Empty(t, other.Cron.Entries())
	assert.Error(t, other.RegisterAll("bogus", ""))
}
