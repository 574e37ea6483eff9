package collector

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"MarketCache/internal/model"
)

const brapiBaseURL = "https://brapi.dev"

// BrapiFetcher implements PriceFetcher and Directory using the brapi REST API.
// It only serves daily bars.
type BrapiFetcher struct {
	requester
}

// NewBrapiFetcher creates a new brapi fetcher. Pass WithToken for authenticated plans.
func NewBrapiFetcher(opts ...Option) *BrapiFetcher {
	return &BrapiFetcher{requester: newRequester("brapi", brapiBaseURL, opts)}
}

func (f *BrapiFetcher) Name() string { return "brapi" }

// brapiBar is one entry of historicalDataPrice.
type brapiBar struct {
	Date          int64    `json:"date"`
	Open          float64  `json:"open"`
	High          float64  `json:"high"`
	Low           float64  `json:"low"`
	Close         float64  `json:"close"`
	Volume        float64  `json:"volume"`
	AdjustedClose *float64 `json:"adjustedClose"`
}

type brapiQuote struct {
	Results []struct {
		Symbol              string     `json:"symbol"`
		HistoricalDataPrice []brapiBar `json:"historicalDataPrice"`
	} `json:"results"`
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// FetchPriceSeries downloads the full daily history and trims it to [start, end].
func (f *BrapiFetcher) FetchPriceSeries(ctx context.Context, symbol string, start, end time.Time, interval model.Interval) ([]model.OHLCV, error) {
	if interval != model.Daily {
		return nil, fmt.Errorf("brapi: interval %s not served", interval)
	}
	q := url.Values{}
	q.Set("range", "max")
	q.Set("interval", "1d")
	q.Set("fundamental", "false")
	path := "/api/quote/" + url.PathEscape(symbol) + "?" + q.Encode()

	var quote brapiQuote
	if err := f.getJSON(ctx, path, &quote); err != nil {
		return nil, err
	}
	if quote.Error {
		return nil, fmt.Errorf("brapi api error: %s", quote.Message)
	}
	if len(quote.Results) == 0 {
		return nil, nil
	}

	window := model.DateRange{From: start, To: end}
	var bars []model.OHLCV
	for _, b := range quote.Results[0].HistoricalDataPrice {
		t := model.Day(time.Unix(b.Date, 0).UTC())
		if !window.Contains(t) {
			continue
		}
		c := b.Close
		if b.AdjustedClose != nil {
			c = *b.AdjustedClose
		}
		bars = append(bars, model.OHLCV{Time: t, Open: b.Open, High: b.High, Low: b.Low, Close: c, Volume: b.Volume})
	}
	// Ensure chronological order
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

// AvailableTickers lists every stock ticker brapi knows about.
func (f *BrapiFetcher) AvailableTickers(ctx context.Context) ([]string, error) {
	var resp struct {
		Stocks  []string `json:"stocks"`
		Error   bool     `json:"error"`
		Message string   `json:"message"`
	}
	if err := f.getJSON(ctx, "/api/available", &resp); err != nil {
		return nil, err
	}
	if resp.Error {
		return nil, fmt.Errorf("brapi api error: %s", resp.Message)
	}
	return resp.Stocks, nil
}

// Sectors groups listed tickers by sector. Tickers without a sector are skipped.
func (f *BrapiFetcher) Sectors(ctx context.Context) (map[string][]string, error) {
	var resp struct {
		Stocks []struct {
			Stock  string  `json:"stock"`
			Sector *string `json:"sector"`
		} `json:"stocks"`
	}
	if err := f.getJSON(ctx, "/api/quote/list?sortBy=close&sortOrder=desc", &resp); err != nil {
		return nil, err
	}
	sectors := make(map[string][]string)
	for _, s := range resp.Stocks {
		if s.Sector == nil {
			continue
		}
		sectors[*s.Sector] = append(sectors[*s.Sector], s.Stock)
	}
	return sectors, nil
}
