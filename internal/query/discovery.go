package query

import (
	"context"

	"MarketCache/internal/collector"
	"MarketCache/internal/model"
)

// BrazilianTickers lists every ticker known to the directory provider.
func (d *Database) BrazilianTickers(ctx context.Context) ([]string, error) {
	return d.backend.AvailableTickers(ctx)
}

// Sectors maps each sector to its tickers.
func (d *Database) Sectors(ctx context.Context) (map[string][]string, error) {
	return d.backend.Sectors(ctx)
}

// SectorTickers lists the tickers of one sector.
func (d *Database) SectorTickers(ctx context.Context, sector string) ([]string, error) {
	sectors, err := d.backend.Sectors(ctx)
	if err != nil {
		return nil, err
	}
	tickers, ok := sectors[sector]
	if !ok {
		return nil, &model.UnknownSectorOrSeriesError{Name: sector}
	}
	return tickers, nil
}

// MostTraded ranks tickers by recent traded volume.
func (d *Database) MostTraded(ctx context.Context, opts collector.MostTradedOptions) ([]string, error) {
	return d.backend.MostTraded(ctx, opts)
}
