package collector

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"MarketCache/internal/model"
	"MarketCache/internal/recorder"
)

// DefaultSymbolMap maps index aliases to their Yahoo tickers.
func DefaultSymbolMap() map[string]string {
	return map[string]string{
		"IBOV":   "^BVSP",
		"DJI":    "^DJI",
		"SPX":    "^GSPC",
		"NASDAQ": "^IXIC",
	}
}

// DefaultSuffix is appended to plain tickers for the primary provider.
const DefaultSuffix = ".SA"

// Adapter picks the upstream source for each instrument kind and normalises
// what comes back.
type Adapter struct {
	Primary   PriceFetcher
	Secondary PriceFetcher // optional
	FX        FXFetcher
	Macro     MacroFetcher
	Directory Directory // optional, ticker discovery
	SymbolMap map[string]string
	Suffix    string
	Recorder  recorder.Recorder
	log       *zap.Logger
}

// NewAdapter wires the providers together. A nil recorder records nothing.
func NewAdapter(primary, secondary PriceFetcher, fx FXFetcher, macro MacroFetcher, rec recorder.Recorder, log *zap.Logger) *Adapter {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{
		Primary:   primary,
		Secondary: secondary,
		FX:        fx,
		Macro:     macro,
		SymbolMap: DefaultSymbolMap(),
		Suffix:    DefaultSuffix,
		Recorder:  rec,
		log:       log,
	}
}

// PrimarySymbol is the ticker the primary provider is asked for first.
func (a *Adapter) PrimarySymbol(base string) string {
	if mapped, ok := a.SymbolMap[base]; ok {
		return mapped
	}
	return base + a.Suffix
}

// FetchPrices walks the fallback chain: primary with the mapped symbol,
// primary with the raw symbol, then the secondary provider. Exhausting it
// yields NoDataFound.
func (a *Adapter) FetchPrices(ctx context.Context, base string, r model.DateRange, interval model.Interval) ([]model.OHLCV, error) {
	type attempt struct {
		fetcher PriceFetcher
		symbol  string
	}
	chain := []attempt{{a.Primary, a.PrimarySymbol(base)}}
	if chain[0].symbol != base {
		chain = append(chain, attempt{a.Primary, base})
	}
	if a.Secondary != nil {
		chain = append(chain, attempt{a.Secondary, base})
	}

	for _, at := range chain {
		if at.fetcher == nil {
			continue
		}
		bars, err := at.fetcher.FetchPriceSeries(ctx, at.symbol, r.From, r.To, interval)
		bars = trimBars(bars, r)
		a.record(at.fetcher.Name(), at.symbol, r, interval, len(bars), err)
		if err == nil && len(bars) > 0 {
			return bars, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		a.log.Debug("price provider returned nothing, trying next",
			zap.String("provider", at.fetcher.Name()),
			zap.String("symbol", at.symbol),
			zap.Error(err))
	}
	a.log.Warn("all price providers exhausted", zap.String("ticker", base))
	return nil, model.NoDataFound(base)
}

// FxSymbol turns "USD/BRL" into "USDBRL=X".
func FxSymbol(pair string) (string, error) {
	legs := strings.Split(pair, "/")
	if len(legs) != 2 || legs[0] == "" || legs[1] == "" {
		return "", fmt.Errorf("malformed currency pair %q", pair)
	}
	return legs[0] + legs[1] + "=X", nil
}

// FetchCurrency fetches a currency pair directly; there is no fallback.
func (a *Adapter) FetchCurrency(ctx context.Context, pair string, r model.DateRange, interval model.Interval) ([]model.OHLCV, error) {
	if a.FX == nil {
		return nil, errors.New("no currency provider configured")
	}
	symbol, err := FxSymbol(pair)
	if err != nil {
		return nil, err
	}
	bars, err := a.FX.FetchFXSeries(ctx, symbol, r.From, r.To, interval)
	bars = trimBars(bars, r)
	a.record(a.FX.Name(), symbol, r, interval, len(bars), err)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pair, err)
	}
	return bars, nil
}

// FetchSeries fetches a rate, GDP or named macro series and forward-fills it
// onto the weekdays of r. Rate and GDP series are extended to r.To with their
// last published value first.
func (a *Adapter) FetchSeries(ctx context.Context, req model.SymbolRequest, r model.DateRange) ([]model.Point, error) {
	if a.Macro == nil {
		return nil, errors.New("no macro provider configured")
	}
	points, err := a.Macro.FetchMacroSeries(ctx, req.SeriesCode, model.Day(r.From), model.Day(r.To))
	a.record(a.Macro.Name(), fmt.Sprintf("sgs.%d", req.SeriesCode), r, model.Daily, len(points), err)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", req.Base, err)
	}

	if n := len(points); n > 0 && (req.Kind == model.KindOvernightRate || req.Kind == model.KindGDP) {
		last := points[n-1]
		if end := model.Day(r.To); last.Time.Before(end) {
			points = append(points, model.Point{Time: end, Value: last.Value})
		}
	}
	return ForwardFillWeekdays(points, r), nil
}

func (a *Adapter) record(provider, symbol string, r model.DateRange, interval model.Interval, rows int, err error) {
	evt := &recorder.FetchEvent{
		Provider: provider,
		Symbol:   symbol,
		Interval: string(interval),
		Start:    r.From,
		End:      r.To,
		Rows:     rows,
	}
	if err != nil {
		evt.Err = err.Error()
	}
	if recErr := a.Recorder.RecordFetch(evt); recErr != nil {
		a.log.Warn("record fetch", zap.Error(recErr))
	}
}

func trimBars(bars []model.OHLCV, r model.DateRange) []model.OHLCV {
	out := bars[:0:0]
	for _, b := range bars {
		if r.Contains(b.Time) {
			out = append(out, b)
		}
	}
	return out
}

// AvailableTickers lists the tickers known to the directory provider.
func (a *Adapter) AvailableTickers(ctx context.Context) ([]string, error) {
	if a.Directory == nil {
		return nil, errors.New("no ticker directory configured")
	}
	return a.Directory.AvailableTickers(ctx)
}

// Sectors groups listed tickers by sector.
func (a *Adapter) Sectors(ctx context.Context) (map[string][]string, error) {
	if a.Directory == nil {
		return nil, errors.New("no ticker directory configured")
	}
	return a.Directory.Sectors(ctx)
}
