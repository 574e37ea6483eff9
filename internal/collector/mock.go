package collector

import (
	"context"
	"time"

	"MarketCache/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Symbols without canned data get synthetic weekday bars around Price.
type MockFetcher struct {
	Price  float64
	Bars   map[string][]model.OHLCV
	Series map[int][]model.Point
	Empty  map[string]bool // symbols that return no rows
	Calls  []string
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchPriceSeries(_ context.Context, symbol string, start, end time.Time, _ model.Interval) ([]model.OHLCV, error) {
	m.Calls = append(m.Calls, "price:"+symbol)
	return m.bars(symbol, start, end), nil
}

func (m *MockFetcher) FetchFXSeries(_ context.Context, pair string, start, end time.Time, _ model.Interval) ([]model.OHLCV, error) {
	m.Calls = append(m.Calls, "fx:"+pair)
	return m.bars(pair, start, end), nil
}

func (m *MockFetcher) FetchMacroSeries(_ context.Context, seriesID int, start, end time.Time) ([]model.Point, error) {
	m.Calls = append(m.Calls, "macro")
	if s, ok := m.Series[seriesID]; ok {
		return s, nil
	}
	var points []model.Point
	for _, b := range generateMockBars(m.Price, start, end) {
		points = append(points, model.Point{Time: b.Time, Value: b.Close})
	}
	return points, nil
}

func (m *MockFetcher) bars(symbol string, start, end time.Time) []model.OHLCV {
	if m.Empty[symbol] {
		return nil
	}
	if b, ok := m.Bars[symbol]; ok {
		return b
	}
	return generateMockBars(m.Price, start, end)
}

func generateMockBars(basePrice float64, start, end time.Time) []model.OHLCV {
	if basePrice == 0 {
		basePrice = 100
	}
	var bars []model.OHLCV
	i := 0
	for d := model.Day(start); !d.After(model.Day(end)); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		p := basePrice * (1 + float64(i%20-10)*0.001)
		bars = append(bars, model.OHLCV{
			Time:   d,
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		})
		i++
	}
	return bars
}
