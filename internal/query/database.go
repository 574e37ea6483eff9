// Package query is the public entry point: it resolves requested symbols
// through the cache controller and slices the merged table.
package query

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"MarketCache/internal/cache"
	"MarketCache/internal/collector"
	"MarketCache/internal/model"
	"MarketCache/internal/recorder"
	"MarketCache/internal/table"
)

// Backend serves raw data and ticker discovery. *collector.Adapter implements it.
type Backend interface {
	cache.Source
	AvailableTickers(ctx context.Context) ([]string, error)
	Sectors(ctx context.Context) (map[string][]string, error)
	MostTraded(ctx context.Context, opts collector.MostTradedOptions) ([]string, error)
}

// Mode selects between daily-only and multi-interval behaviour.
type Mode int

const (
	ModeDaily Mode = iota
	ModeMultiFrame
)

// FieldOHLCV selects the five raw fields of every symbol.
const FieldOHLCV = "ohlcv"

// Request is one GetInfo call. Zero dates and empty strings take the mode's defaults.
type Request struct {
	Tickers  []string
	Open     time.Time
	Close    time.Time
	Interval model.Interval
	Field    string // close, open, high, low, volume or ohlcv
}

// Database resolves requests against one cache controller. Like the
// controller it is not safe for concurrent use; wrap it in Synchronized.
type Database struct {
	backend  Backend
	ctrl     *cache.Controller
	mode     Mode
	settings model.Settings
	rec      recorder.Recorder
	log      *zap.Logger
	now      func() time.Time
}

// Option configures a Database.
type Option func(*Database)

// WithSettings overrides the padding and lookback constants.
func WithSettings(s model.Settings) Option { return func(d *Database) { d.settings = s } }

// WithRecorder records every query. A nil recorder is ignored.
func WithRecorder(r recorder.Recorder) Option {
	return func(d *Database) {
		if r != nil {
			d.rec = r
		}
	}
}

// WithLogger sets the logger shared with the cache controller.
func WithLogger(l *zap.Logger) Option {
	return func(d *Database) {
		if l != nil {
			d.log = l
		}
	}
}

// WithClock replaces time.Now for default dates.
func WithClock(now func() time.Time) Option { return func(d *Database) { d.now = now } }

// NewDaily builds a database serving daily bars only.
func NewDaily(backend Backend, opts ...Option) *Database {
	return newDatabase(backend, ModeDaily, opts)
}

// NewMultiFrame builds a database serving every interval in model.AvailableIntervals.
// A change of interval for a symbol refetches it.
func NewMultiFrame(backend Backend, opts ...Option) *Database {
	return newDatabase(backend, ModeMultiFrame, opts)
}

func newDatabase(backend Backend, mode Mode, opts []Option) *Database {
	d := &Database{
		backend:  backend,
		mode:     mode,
		settings: model.DefaultSettings(),
		rec:      recorder.NewNoopRecorder(),
		log:      zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	ctrlOpts := []cache.Option{cache.WithSettings(d.settings), cache.WithLogger(d.log)}
	if mode == ModeMultiFrame {
		ctrlOpts = append(ctrlOpts, cache.WithIntervalTracking())
	}
	d.ctrl = cache.New(backend, ctrlOpts...)
	return d
}

// GetInfo ensures every ticker is cached and returns the selected field(s)
// over the request window.
func (d *Database) GetInfo(ctx context.Context, req Request) (*table.Frame, error) {
	interval, window, err := d.resolve(req)
	if err != nil {
		return nil, err
	}
	field := strings.ToLower(req.Field)
	if field == "" {
		field = string(model.FieldClose)
	}

	frame, err := d.getInfo(ctx, req.Tickers, window, interval, field)
	evt := &recorder.QueryEvent{
		Tickers:  req.Tickers,
		Field:    field,
		Interval: string(interval),
		Start:    window.From,
		End:      window.To,
	}
	if err != nil {
		evt.Err = err.Error()
	} else {
		evt.Rows = frame.Len()
	}
	if recErr := d.rec.RecordQuery(evt); recErr != nil {
		d.log.Warn("record query", zap.Error(recErr))
	}
	return frame, err
}

func (d *Database) getInfo(ctx context.Context, tickers []string, window model.DateRange, interval model.Interval, field string) (*table.Frame, error) {
	var cols []model.Column
	for _, ticker := range tickers {
		symbol := strings.ToUpper(strings.TrimSpace(ticker))
		sr, err := d.ctrl.Ensure(ctx, symbol, window.From, window.To, interval)
		if err != nil {
			return nil, err
		}
		selected, err := columnsFor(sr, field)
		if err != nil {
			return nil, err
		}
		for _, c := range selected {
			if d.ctrl.Table().Count(c, window) == 0 {
				return nil, model.NoDataFound(symbol)
			}
		}
		cols = append(cols, selected...)
	}
	if len(cols) == 0 {
		return nil, model.NoDataFound(strings.Join(tickers, ","))
	}

	all := d.ctrl.Table().Select(cols, window)
	if f := all.DropIncomplete(); f.Len() > 0 {
		return f, nil
	}
	if f := all.DropEmpty(); f.Len() > 0 {
		return f, nil
	}
	return nil, model.NoDataFound(strings.Join(tickers, ","))
}

// resolve applies the mode's defaults and limits to the request.
func (d *Database) resolve(req Request) (model.Interval, model.DateRange, error) {
	today := model.Day(d.now())
	window := model.DateRange{From: req.Open, To: req.Close}
	if window.To.IsZero() {
		window.To = today
	}

	interval := req.Interval
	switch d.mode {
	case ModeDaily:
		if interval == "" {
			interval = model.Daily
		}
		if interval != model.Daily {
			return "", window, &model.UnsupportedIntervalError{Interval: string(interval)}
		}
		if window.From.IsZero() {
			window.From = d.settings.DefaultHistoryStart
		}
	case ModeMultiFrame:
		if interval == "" {
			interval = model.Interval1m
		}
		if _, err := model.ParseInterval(string(interval)); err != nil {
			return "", window, err
		}
		if window.From.IsZero() {
			window.From = today.AddDate(0, 0, -d.settings.IntradayLookbackDays)
		}
		if days, ok := d.settings.IntradayWindowDays[interval]; ok {
			if earliest := today.AddDate(0, 0, -days); window.From.Before(earliest) {
				window.From = earliest
			}
		}
	}
	return interval, window, nil
}

// columnsFor maps a field selector onto the columns of one resolved symbol.
func columnsFor(sr model.SymbolRequest, field string) ([]model.Column, error) {
	if field == FieldOHLCV {
		if sr.Transform != model.TransformNone {
			return nil, fmt.Errorf("%w: ohlcv of derived series %s", model.ErrUnsupportedField, sr.Symbol)
		}
		cols := make([]model.Column, len(model.OHLCVFields))
		for i, f := range model.OHLCVFields {
			cols[i] = model.RawColumn(sr.Base, f)
		}
		return cols, nil
	}

	f, ok := model.ParseField(field)
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrUnsupportedField, field)
	}
	if sr.Transform != model.TransformNone {
		if f != model.FieldClose {
			return nil, fmt.Errorf("%w: %s of derived series %s", model.ErrUnsupportedField, f, sr.Symbol)
		}
		return []model.Column{sr.Output()}, nil
	}
	return []model.Column{model.RawColumn(sr.Base, f)}, nil
}

// Reset clears every cached column and coverage record.
func (d *Database) Reset() {
	d.ctrl.Reset()
	d.log.Info("cache reset")
}

// Data returns the whole merged table.
func (d *Database) Data() *table.Frame {
	tbl := d.ctrl.Table()
	return tbl.Select(tbl.Columns(), model.DateRange{From: time.Time{}, To: model.Day(d.now()).AddDate(100, 0, 0)})
}

// Mode reports which flavour the database was built as.
func (d *Database) Mode() Mode { return d.mode }
