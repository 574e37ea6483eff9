package collector

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"MarketCache/internal/model"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements PriceFetcher and FXFetcher using the Yahoo Finance chart API.
type YahooFetcher struct {
	requester
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(opts ...Option) *YahooFetcher {
	return &YahooFetcher{requester: newRequester("yahoo", yahooBaseURL, opts)}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol    string `json:"symbol"`
				GMTOffset int64  `json:"gmtoffset"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func valueAt(values []*float64, i int) (float64, bool) {
	if i >= len(values) || values[i] == nil {
		return 0, false
	}
	return *values[i], true
}

// FetchPriceSeries returns bars between start and end, both days included.
// Daily closes are dividend and split adjusted when Yahoo provides adjclose.
func (f *YahooFetcher) FetchPriceSeries(ctx context.Context, symbol string, start, end time.Time, interval model.Interval) ([]model.OHLCV, error) {
	return f.fetchChart(ctx, symbol, start, end, interval, true)
}

// FetchFXSeries returns bars for a Yahoo currency symbol such as "USDBRL=X".
func (f *YahooFetcher) FetchFXSeries(ctx context.Context, pair string, start, end time.Time, interval model.Interval) ([]model.OHLCV, error) {
	return f.fetchChart(ctx, pair, start, end, interval, false)
}

func (f *YahooFetcher) fetchChart(ctx context.Context, symbol string, start, end time.Time, interval model.Interval, adjusted bool) ([]model.OHLCV, error) {
	q := url.Values{}
	q.Set("period1", fmt.Sprint(model.Day(start).Unix()))
	q.Set("period2", fmt.Sprint(model.Day(end).AddDate(0, 0, 1).Unix()))
	q.Set("interval", string(interval))
	q.Set("events", "div,split")
	path := "/v8/finance/chart/" + url.PathEscape(symbol) + "?" + q.Encode()

	var chart yahooChart
	if err := f.getJSON(ctx, path, &chart); err != nil {
		return nil, err
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, nil
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no quote block for %s", symbol)
	}
	quote := result.Indicators.Quote[0]
	var adj []*float64
	if adjusted && len(result.Indicators.AdjClose) > 0 {
		adj = result.Indicators.AdjClose[0].AdjClose
	}

	bars := make([]model.OHLCV, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		c, ok := valueAt(quote.Close, i)
		if !ok {
			continue // null bar (holiday, halted session)
		}
		if a, ok := valueAt(adj, i); ok {
			c = a
		}
		o, _ := valueAt(quote.Open, i)
		h, _ := valueAt(quote.High, i)
		l, _ := valueAt(quote.Low, i)
		v, _ := valueAt(quote.Volume, i)

		t := time.Unix(ts+result.Meta.GMTOffset, 0).UTC()
		if !interval.Intraday() {
			t = model.Day(t)
		}
		bars = append(bars, model.OHLCV{Time: t, Open: o, High: h, Low: l, Close: c, Volume: v})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}
