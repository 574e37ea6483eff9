// Package cache decides, per base instrument, whether previously fetched
// series already cover a request, and keeps derived columns consistent with
// the raw columns they are computed from.
package cache

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"MarketCache/internal/calculator"
	"MarketCache/internal/classifier"
	"MarketCache/internal/model"
	"MarketCache/internal/table"
)

// Source fetches raw data for a base instrument. *collector.Adapter implements it.
type Source interface {
	FetchPrices(ctx context.Context, base string, r model.DateRange, interval model.Interval) ([]model.OHLCV, error)
	FetchCurrency(ctx context.Context, pair string, r model.DateRange, interval model.Interval) ([]model.OHLCV, error)
	FetchSeries(ctx context.Context, req model.SymbolRequest, r model.DateRange) ([]model.Point, error)
}

// Coverage is the window (and interval) already fetched for a base instrument.
type Coverage struct {
	Range    model.DateRange
	Interval model.Interval
}

// derivation remembers the windows a derived column was computed over.
type derivation struct {
	input  model.DateRange
	output model.DateRange
}

// Controller owns the merged table and the coverage records. It is not safe
// for concurrent use; see query.Synchronized.
type Controller struct {
	source        Source
	table         *table.Table
	coverage      map[string]Coverage
	derived       map[model.Column]derivation
	settings      model.Settings
	trackInterval bool
	log           *zap.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithSettings overrides the padding constants.
func WithSettings(s model.Settings) Option {
	return func(c *Controller) { c.settings = s }
}

// WithIntervalTracking makes a change of interval invalidate a base instrument.
func WithIntervalTracking() Option {
	return func(c *Controller) { c.trackInterval = true }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates an empty controller.
func New(source Source, opts ...Option) *Controller {
	c := &Controller{
		source:   source,
		table:    table.New(),
		coverage: make(map[string]Coverage),
		derived:  make(map[model.Column]derivation),
		settings: model.DefaultSettings(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ensure makes sure the table holds symbol over [from, to] at interval,
// fetching and deriving only what is missing. Transforms are recomputed on
// every call.
func (c *Controller) Ensure(ctx context.Context, symbol string, from, to time.Time, interval model.Interval) (model.SymbolRequest, error) {
	req := classifier.ClassifyWith(symbol, c.settings.VolatilityPaddingDays)
	want := model.DateRange{From: from, To: to}
	padded := want
	if req.PaddingDays > 0 {
		padded.From = from.AddDate(0, 0, -req.PaddingDays)
	}

	prev, covered := c.coverage[req.Base]
	intervalChanged := covered && c.trackInterval && prev.Interval != interval
	fetch, refetch := c.plan(req.Base, padded, interval)
	log := c.log.With(zap.String("symbol", symbol), zap.String("base", req.Base))

	if refetch {
		log.Debug("fetching",
			zap.Time("from", fetch.From), zap.Time("to", fetch.To), zap.String("interval", string(interval)))
		stale := c.table.DropBase(req.Base)
		c.coverage[req.Base] = Coverage{Range: fetch, Interval: interval}
		if err := c.fetch(ctx, req, fetch, interval); err != nil {
			log.Warn("fetch failed, dropping coverage", zap.Error(err))
			c.forget(req.Base)
			return req, err
		}
		if intervalChanged {
			c.discard(stale)
		} else {
			c.rederive(stale, fetch, req.Output())
		}
	} else if req.Transform == model.TransformNone {
		log.Debug("cache hit")
		return req, nil
	}

	if req.Transform != model.TransformNone {
		if err := c.derive(req.Output(), padded, want); err != nil {
			return req, err
		}
	}
	return req, nil
}

// plan returns the window to fetch and whether raw data must be (re)fetched.
func (c *Controller) plan(base string, want model.DateRange, interval model.Interval) (model.DateRange, bool) {
	cov, ok := c.coverage[base]
	switch {
	case !ok:
		return want, true
	case c.trackInterval && cov.Interval != interval:
		return cov.Range.Union(want), true
	case cov.Range.Covers(want):
		return cov.Range, false
	default:
		return cov.Range.Union(want), true
	}
}

func (c *Controller) fetch(ctx context.Context, req model.SymbolRequest, r model.DateRange, interval model.Interval) error {
	if req.NeedsPriceFetch {
		bars, err := c.source.FetchPrices(ctx, req.Base, r, interval)
		if err != nil {
			return err
		}
		c.table.PutBars(req.Base, bars)
	}

	switch req.Kind {
	case model.KindCurrency:
		bars, err := c.source.FetchCurrency(ctx, req.Base, r, interval)
		if err != nil {
			return err
		}
		c.table.PutBars(req.Base, bars)
	case model.KindOvernightRate, model.KindGDP, model.KindMacroSeries:
		points, err := c.source.FetchSeries(ctx, req, r)
		if err != nil {
			return err
		}
		c.table.Put(model.RawColumn(req.Base, model.FieldClose), points)
	}
	return nil
}

// derive computes col from its base close over input and stores the part inside output.
func (c *Controller) derive(col model.Column, input, output model.DateRange) error {
	closes := c.table.Series(model.RawColumn(col.Base, model.FieldClose))
	points, err := calculator.Apply(col.Transform, col.Window, closes, input, output)
	if err != nil {
		return fmt.Errorf("derive %s: %w", col.Name(), err)
	}
	c.table.Put(col, points)
	c.derived[col] = derivation{input: input, output: output}
	return nil
}

// rederive recomputes derived columns dropped by a refetch over their
// previous windows when the new coverage still spans their input. skip is
// about to be derived by the caller anyway.
func (c *Controller) rederive(stale []model.Column, coverage model.DateRange, skip model.Column) {
	for _, col := range stale {
		d, ok := c.derived[col]
		if !ok || col == skip {
			continue
		}
		if !coverage.Covers(d.input) {
			delete(c.derived, col)
			continue
		}
		if err := c.derive(col, d.input, d.output); err != nil {
			c.log.Warn("re-derive failed", zap.String("column", col.Name()), zap.Error(err))
			delete(c.derived, col)
		}
	}
}

// discard forgets the derivations of columns dropped by a refetch at another
// interval. Their values were computed from bars that no longer exist.
func (c *Controller) discard(stale []model.Column) {
	for _, col := range stale {
		delete(c.derived, col)
	}
}

// Invalidate drops every raw and derived column of base along with its
// coverage record. Absent bases are ignored.
func (c *Controller) Invalidate(base string) {
	c.table.DropBase(base)
	c.forget(base)
}

func (c *Controller) forget(base string) {
	delete(c.coverage, base)
	for col := range c.derived {
		if col.Base == base {
			delete(c.derived, col)
		}
	}
}

// Coverage returns the record for base.
func (c *Controller) Coverage(base string) (Coverage, bool) {
	cov, ok := c.coverage[base]
	return cov, ok
}

// Table exposes the merged table for reading.
func (c *Controller) Table() *table.Table { return c.table }

// Settings returns the active padding constants.
func (c *Controller) Settings() model.Settings { return c.settings }

// Reset clears every column and coverage record.
func (c *Controller) Reset() {
	c.table.Reset()
	c.coverage = make(map[string]Coverage)
	c.derived = make(map[model.Column]derivation)
}
