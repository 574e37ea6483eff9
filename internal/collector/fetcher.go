package collector

import (
	"context"
	"time"

	"MarketCache/internal/model"
)

// PriceFetcher fetches OHLCV bars for an exchange-listed symbol.
type PriceFetcher interface {
	FetchPriceSeries(ctx context.Context, symbol string, start, end time.Time, interval model.Interval) ([]model.OHLCV, error)
	Name() string
}

// FXFetcher fetches OHLCV bars for a provider-specific currency symbol.
type FXFetcher interface {
	FetchFXSeries(ctx context.Context, pair string, start, end time.Time, interval model.Interval) ([]model.OHLCV, error)
	Name() string
}

// MacroFetcher fetches a sparse, irregular series identified by a numeric code.
type MacroFetcher interface {
	FetchMacroSeries(ctx context.Context, seriesID int, start, end time.Time) ([]model.Point, error)
	Name() string
}

// Directory lists tradable tickers and their sectors.
type Directory interface {
	AvailableTickers(ctx context.Context) ([]string, error)
	Sectors(ctx context.Context) (map[string][]string, error)
}
