package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNoDataFound is matched by every NoDataFoundError.
	ErrNoDataFound = errors.New("no data found")
	// ErrUnsupportedInterval is matched by every UnsupportedIntervalError.
	ErrUnsupportedInterval = errors.New("unsupported interval")
	// ErrUnknownSectorOrSeries is matched by every UnknownSectorOrSeriesError.
	ErrUnknownSectorOrSeries = errors.New("unknown sector or series")
	// ErrUnsupportedField is returned for a field selector that cannot be served.
	ErrUnsupportedField = errors.New("unsupported field")
)

// NoDataFoundError reports that no provider returned data for Ticker.
type NoDataFoundError struct {
	Ticker string
}

func (e *NoDataFoundError) Error() string {
	return fmt.Sprintf("no data found for %s", e.Ticker)
}

func (e *NoDataFoundError) Is(target error) bool { return target == ErrNoDataFound }

// NoDataFound builds a NoDataFoundError.
func NoDataFound(ticker string) error { return &NoDataFoundError{Ticker: ticker} }

// UnsupportedIntervalError reports an interval outside AvailableIntervals.
type UnsupportedIntervalError struct {
	Interval string
}

func (e *UnsupportedIntervalError) Error() string {
	return fmt.Sprintf("the interval %s is not available", e.Interval)
}

func (e *UnsupportedIntervalError) Is(target error) bool { return target == ErrUnsupportedInterval }

// UnknownSectorOrSeriesError reports a lookup miss for a named sector or macro series.
type UnknownSectorOrSeriesError struct {
	Name string
}

func (e *UnknownSectorOrSeriesError) Error() string {
	return fmt.Sprintf("unknown sector or series %q", e.Name)
}

func (e *UnknownSectorOrSeriesError) Is(target error) bool {
	return target == ErrUnknownSectorOrSeries
}
