package model

// Interval is a bar granularity as understood by the price providers.
type Interval string

const (
	Interval1m  Interval = "1m"
	Interval2m  Interval = "2m"
	Interval5m  Interval = "5m"
	Interval15m Interval = "15m"
	Interval30m Interval = "30m"
	Interval60m Interval = "60m"
	Interval90m Interval = "90m"
	Interval1h  Interval = "1h"
	Daily       Interval = "1d"
	Interval5d  Interval = "5d"
	Weekly      Interval = "1wk"
	Monthly     Interval = "1mo"
	Quarterly   Interval = "3mo"
)

// AvailableIntervals is the set of granularities accepted by the multi-frame database.
var AvailableIntervals = map[Interval]bool{
	Interval1m: true, Interval2m: true, Interval5m: true, Interval15m: true,
	Interval30m: true, Interval60m: true, Interval90m: true, Interval1h: true,
	Daily: true, Interval5d: true, Weekly: true, Monthly: true, Quarterly: true,
}

// ParseInterval validates s against AvailableIntervals.
func ParseInterval(s string) (Interval, error) {
	iv := Interval(s)
	if !AvailableIntervals[iv] {
		return "", &UnsupportedIntervalError{Interval: s}
	}
	return iv, nil
}

// Intraday reports whether bars of this interval are finer than one day.
func (i Interval) Intraday() bool {
	switch i {
	case Daily, Interval5d, Weekly, Monthly, Quarterly:
		return false
	}
	return true
}
