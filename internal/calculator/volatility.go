package calculator

import (
	"errors"
	"math"

	"MarketCache/internal/model"
)

// Volatility is the rolling sample standard deviation of simple returns over
// window observations, scaled by sqrt(window). The first window-1 points have
// no value and are omitted.
func Volatility(prices []model.Point, window int) ([]model.Point, error) {
	if window < 2 {
		return nil, errors.New("volatility window must be at least 2")
	}
	if len(prices) < window {
		return nil, nil
	}

	returns := Returns(prices)
	scale := math.Sqrt(float64(window))
	out := make([]model.Point, 0, len(returns)-window+1)
	for i := window - 1; i < len(returns); i++ {
		out = append(out, model.Point{
			Time:  returns[i].Time,
			Value: stddev(returns[i-window+1:i+1]) * scale,
		})
	}
	return out, nil
}

// stddev uses the n-1 denominator.
func stddev(points []model.Point) float64 {
	values := pointValues(points)
	mean, _ := SMA(values, len(values))

	ss := 0.0
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}
