package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketCache/internal/model"
)

var day0 = time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)

func series(values ...float64) []model.Point {
	points := make([]model.Point, len(values))
	for i, v := range values {
		points[i] = model.Point{Time: day0.AddDate(0, 0, i), Value: v}
	}
	return points
}

func TestReturns_FirstValueIsZero(t *testing.T) {
	for _, prices := range [][]model.Point{
		series(10),
		series(10, 11),
		series(5, 4, 3, 9),
	} {
		r := Returns(prices)
		require.Len(t, r, len(prices))
		assert.Equal(t, 0.0, r[0].Value)
	}
	assert.Empty(t, Returns(nil))
}

func TestReturns(t *testing.T) {
	r := Returns(series(100, 110, 99))
	assert.InDelta(t, 0.10, r[1].Value, 1e-12)
	assert.InDelta(t, -0.10, r[2].Value, 1e-12)
	assert.Equal(t, day0.AddDate(0, 0, 2), r[2].Time)
}

func TestLogReturns(t *testing.T) {
	r := LogReturns(series(100, 200, 100))
	assert.Equal(t, 0.0, r[0].Value)
	assert.InDelta(t, math.Ln2, r[1].Value, 1e-12)
	assert.InDelta(t, -math.Ln2, r[2].Value, 1e-12)

	c := CumulativeLogReturns(series(100, 200, 100))
	assert.InDelta(t, 0.0, c[2].Value, 1e-12)
	assert.InDelta(t, math.Ln2, c[1].Value, 1e-12)
}

func TestCumulativeReturns_MatchesCompoundedReturns(t *testing.T) {
	prices := series(10, 10.5, 10.2, 11, 10.8, 11.4, 12, 11.7, 12.3, 12.9)
	direct := CumulativeReturns(prices)
	simple := Returns(prices)

	acc := 1.0
	for i := range simple {
		acc *= 1 + simple[i].Value
		assert.InDelta(t, acc-1, direct[i].Value, 1e-12, "point %d", i)
	}
	assert.InDelta(t, 0.29, direct[9].Value, 1e-12)
}

func TestVolatility_ConstantPrices(t *testing.T) {
	const w = 5
	prices := series(7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7)
	vol, err := Volatility(prices, w)
	require.NoError(t, err)
	require.Len(t, vol, len(prices)-(w-1))
	assert.Equal(t, prices[w-1].Time, vol[0].Time)
	for _, p := range vol {
		assert.Equal(t, 0.0, p.Value)
	}
}

func TestVolatility_KnownValue(t *testing.T) {
	// returns: 0, 0.1, -0.1 -> sample std 0.1, scaled by sqrt(3)
	vol, err := Volatility(series(100, 110, 99), 3)
	require.NoError(t, err)
	require.Len(t, vol, 1)
	assert.InDelta(t, 0.1*math.Sqrt(3), vol[0].Value, 1e-12)
}

func TestVolatility_Errors(t *testing.T) {
	_, err := Volatility(series(1, 2, 3), 1)
	assert.Error(t, err)

	vol, err := Volatility(series(1, 2), 5)
	assert.NoError(t, err)
	assert.Empty(t, vol)
}

func TestApply_RestrictsWindows(t *testing.T) {
	prices := series(100, 101, math.NaN(), 103, 104, 105)
	input := model.DateRange{From: day0.AddDate(0, 0, 1), To: day0.AddDate(0, 0, 5)}
	output := model.DateRange{From: day0.AddDate(0, 0, 3), To: day0.AddDate(0, 0, 4)}

	out, err := Apply(model.TransformReturn, 0, prices, input, output)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, day0.AddDate(0, 0, 3), out[0].Time)
	assert.InDelta(t, 103.0/101-1, out[0].Value, 1e-12)

	cum, err := Apply(model.TransformCumulativeReturn, 0, prices, output, output)
	require.NoError(t, err)
	require.Len(t, cum, 2)
	assert.Equal(t, 0.0, cum[0].Value)

	_, err = Apply(model.TransformNone, 0, prices, input, output)
	assert.Error(t, err)
}
