package collector

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"MarketCache/internal/model"
)

// MostTradedOptions controls MostTraded. Zero values take the defaults noted per field.
type MostTradedOptions struct {
	Tickers       []string  // candidates; empty asks the Directory
	MaximumDate   time.Time // default today
	LookbackDays  int       // default 30
	Count         int       // default 100
	MinVolume     float64   // 0 disables the filter
	KeepETFAndBDR bool      // units such as BOVA11 are dropped unless set
}

// MostTraded ranks tickers by total traded volume over the lookback window,
// most traded first.
func (a *Adapter) MostTraded(ctx context.Context, opts MostTradedOptions) ([]string, error) {
	if opts.MaximumDate.IsZero() {
		opts.MaximumDate = model.Day(time.Now())
	}
	if opts.LookbackDays <= 0 {
		opts.LookbackDays = 30
	}
	if opts.Count <= 0 {
		opts.Count = 100
	}

	candidates := opts.Tickers
	if len(candidates) == 0 {
		if a.Directory == nil {
			return nil, errors.New("no ticker directory configured")
		}
		listed, err := a.Directory.AvailableTickers(ctx)
		if err != nil {
			return nil, err
		}
		candidates = listed
	}
	if !opts.KeepETFAndBDR {
		candidates = FilterCommonShares(candidates)
	}

	window := model.DateRange{From: opts.MaximumDate.AddDate(0, 0, -opts.LookbackDays), To: opts.MaximumDate}
	volumes := make(map[string]float64, len(candidates))
	for _, ticker := range candidates {
		symbol := a.PrimarySymbol(ticker)
		bars, err := a.Primary.FetchPriceSeries(ctx, symbol, window.From, window.To, model.Daily)
		bars = trimBars(bars, window)
		a.record(a.Primary.Name(), symbol, window, model.Daily, len(bars), err)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			a.log.Debug("volume fetch failed", zap.String("ticker", ticker), zap.Error(err))
			continue
		}
		total := 0.0
		for _, b := range bars {
			total += b.Volume
		}
		if total < opts.MinVolume {
			continue
		}
		volumes[ticker] = total
	}

	ranked := make([]string, 0, len(volumes))
	for t := range volumes {
		ranked = append(ranked, t)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if volumes[ranked[i]] != volumes[ranked[j]] {
			return volumes[ranked[i]] > volumes[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	if len(ranked) > opts.Count {
		ranked = ranked[:opts.Count]
	}
	return ranked, nil
}

// FilterCommonShares keeps tickers ending in exactly one digit, dropping
// fund and receipt units (two trailing digits) and symbols without a share class.
func FilterCommonShares(tickers []string) []string {
	var out []string
	for _, t := range tickers {
		t = strings.TrimSpace(t)
		n := len(t)
		if n == 0 || !isDigit(t[n-1]) {
			continue
		}
		if n >= 2 && isDigit(t[n-2]) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
