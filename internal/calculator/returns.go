package calculator

import (
	"errors"
	"math"

	"MarketCache/internal/model"
)

// Returns computes simple returns (p[t]-p[t-1])/p[t-1]. The first point is 0.
func Returns(prices []model.Point) []model.Point {
	out := make([]model.Point, len(prices))
	for i, p := range prices {
		out[i].Time = p.Time
		if i > 0 {
			prev := prices[i-1].Value
			out[i].Value = (p.Value - prev) / prev
		}
	}
	return out
}

// LogReturns computes ln(p[t]/p[t-1]). The first point is 0.
func LogReturns(prices []model.Point) []model.Point {
	out := make([]model.Point, len(prices))
	for i, p := range prices {
		out[i].Time = p.Time
		if i > 0 {
			out[i].Value = math.Log(p.Value / prices[i-1].Value)
		}
	}
	return out
}

// CumulativeReturns compounds simple returns from the first point, which is 0.
func CumulativeReturns(prices []model.Point) []model.Point {
	out := Returns(prices)
	acc := 1.0
	for i := range out {
		acc *= 1 + out[i].Value
		out[i].Value = acc - 1
	}
	return out
}

// CumulativeLogReturns is the running sum of log returns.
func CumulativeLogReturns(prices []model.Point) []model.Point {
	out := LogReturns(prices)
	sum := 0.0
	for i := range out {
		sum += out[i].Value
		out[i].Value = sum
	}
	return out
}

// Apply runs the transform over the prices inside input, skipping missing
// values, and keeps only the points inside output.
func Apply(kind model.TransformKind, window int, prices []model.Point, input, output model.DateRange) ([]model.Point, error) {
	clean := make([]model.Point, 0, len(prices))
	for _, p := range prices {
		if math.IsNaN(p.Value) || !input.Contains(p.Time) {
			continue
		}
		clean = append(clean, p)
	}

	var derived []model.Point
	switch kind {
	case model.TransformReturn:
		derived = Returns(clean)
	case model.TransformLogReturn:
		derived = LogReturns(clean)
	case model.TransformCumulativeReturn:
		derived = CumulativeReturns(clean)
	case model.TransformCumulativeLogReturn:
		derived = CumulativeLogReturns(clean)
	case model.TransformVolatility:
		v, err := Volatility(clean, window)
		if err != nil {
			return nil, err
		}
		derived = v
	default:
		return nil, errors.New("no transform requested")
	}

	out := derived[:0]
	for _, p := range derived {
		if output.Contains(p.Time) {
			out = append(out, p)
		}
	}
	return out, nil
}
