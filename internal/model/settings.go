package model

import "time"

// DefaultVolatilityPaddingDays is added to the rolling window when padding a volatility fetch.
const DefaultVolatilityPaddingDays = 150

// Settings groups the lookback and padding constants used by the cache and the query layer.
type Settings struct {
	VolatilityPaddingDays int
	// IntradayWindowDays caps how far back an interval can be fetched, in days before today.
	IntradayWindowDays   map[Interval]int
	IntradayLookbackDays int
	DefaultHistoryStart  time.Time
}

// DefaultSettings mirrors the provider limits of the public Yahoo chart API.
func DefaultSettings() Settings {
	return Settings{
		VolatilityPaddingDays: DefaultVolatilityPaddingDays,
		IntradayWindowDays: map[Interval]int{
			Interval1m: 6,
			Interval5m: 59,
		},
		IntradayLookbackDays: 59,
		DefaultHistoryStart:  time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}
