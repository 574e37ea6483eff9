package model

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestColumn_Name(t *testing.T) {
	assert.Equal(t, "PETR4_close", RawColumn("PETR4", FieldClose).Name())
	assert.Equal(t, "USD/BRL_volume", RawColumn("USD/BRL", FieldVolume).Name())
	assert.Equal(t, "RET_PETR4_close", DerivedColumn(TransformReturn, 0, "PETR4").Name())
	assert.Equal(t, "CLRET_CDI_close", DerivedColumn(TransformCumulativeLogReturn, 7, "CDI").Name())
	assert.Equal(t, "VOL20_PETR4_close", DerivedColumn(TransformVolatility, 20, "PETR4").Name())
}

func TestColumn_DerivedIgnoresWindowExceptVolatility(t *testing.T) {
	assert.Equal(t, DerivedColumn(TransformReturn, 0, "X"), DerivedColumn(TransformReturn, 9, "X"))
	assert.True(t, DerivedColumn(TransformReturn, 0, "X").Derived())
	assert.False(t, RawColumn("X", FieldOpen).Derived())
}

func TestDateRange(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2023, 1, d, 0, 0, 0, 0, time.UTC) }
	r := DateRange{From: day(2), To: day(5)}

	assert.True(t, r.Contains(day(2)))
	assert.True(t, r.Contains(day(5).Add(23*time.Hour)))
	assert.False(t, r.Contains(day(6)))
	assert.False(t, r.Contains(day(1)))

	assert.True(t, r.Covers(DateRange{From: day(3), To: day(5)}))
	assert.False(t, r.Covers(DateRange{From: day(1), To: day(5)}))
	assert.Equal(t, DateRange{From: day(1), To: day(5)}, r.Union(DateRange{From: day(1), To: day(3)}))
	assert.True(t, DateRange{From: day(3), To: day(2)}.Empty())
}

func TestParseInterval(t *testing.T) {
	iv, err := ParseInterval("5m")
	assert.NoError(t, err)
	assert.True(t, iv.Intraday())
	assert.False(t, Daily.Intraday())

	_, err = ParseInterval("7m")
	assert.ErrorIs(t, err, ErrUnsupportedInterval)
}

func TestErrors_Is(t *testing.T) {
	err := fmt.Errorf("ensure: %w", NoDataFound("PETR4"))
	assert.ErrorIs(t, err, ErrNoDataFound)

	var nd *NoDataFoundError
	assert.True(t, errors.As(err, &nd))
	assert.Equal(t, "PETR4", nd.Ticker)
	assert.NotErrorIs(t, err, ErrUnsupportedInterval)
}
