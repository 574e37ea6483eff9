package collector

import (
	"sort"
	"time"

	"MarketCache/internal/model"
)

// ForwardFillWeekdays projects a sparse series onto every weekday of r. Each
// weekday takes the last value published on or before it; weekdays before the
// first observation are left out.
func ForwardFillWeekdays(points []model.Point, r model.DateRange) []model.Point {
	sorted := make([]model.Point, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })

	var (
		out  []model.Point
		last float64
		have bool
		j    int
	)
	for d := model.Day(r.From); !d.After(model.Day(r.To)); d = d.AddDate(0, 0, 1) {
		for j < len(sorted) && !model.Day(sorted[j].Time).After(d) {
			last = sorted[j].Value
			have = true
			j++
		}
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		if have {
			out = append(out, model.Point{Time: d, Value: last})
		}
	}
	return out
}
