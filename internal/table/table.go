// Package table holds the merged, date-indexed store of every fetched and
// derived series.
package table

import (
	"math"
	"sort"
	"time"

	"MarketCache/internal/model"
)

// Table is a sparse set of columns sharing one date axis. It is not safe for
// concurrent use.
type Table struct {
	columns map[model.Column]map[time.Time]float64
}

// New returns an empty table.
func New() *Table {
	return &Table{columns: make(map[model.Column]map[time.Time]float64)}
}

// Put replaces col with points. Other columns are never touched.
func (t *Table) Put(col model.Column, points []model.Point) {
	values := make(map[time.Time]float64, len(points))
	for _, p := range points {
		if math.IsNaN(p.Value) {
			continue
		}
		values[p.Time] = p.Value
	}
	t.columns[col] = values
}

// PutBars stores the five raw OHLCV columns of base.
func (t *Table) PutBars(base string, bars []model.OHLCV) {
	for _, f := range model.OHLCVFields {
		points := make([]model.Point, len(bars))
		for i, b := range bars {
			points[i] = model.Point{Time: b.Time, Value: b.Field(f)}
		}
		t.Put(model.RawColumn(base, f), points)
	}
}

// Has reports whether col is present.
func (t *Table) Has(col model.Column) bool {
	_, ok := t.columns[col]
	return ok
}

// Series returns col in chronological order, nil when absent.
func (t *Table) Series(col model.Column) []model.Point {
	values, ok := t.columns[col]
	if !ok {
		return nil
	}
	points := make([]model.Point, 0, len(values))
	for ts, v := range values {
		points = append(points, model.Point{Time: ts, Value: v})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })
	return points
}

// DropIfPresent removes the given columns; absent ones are skipped.
func (t *Table) DropIfPresent(cols ...model.Column) {
	for _, c := range cols {
		delete(t.columns, c)
	}
}

// DropBase removes every raw and derived column of base and returns the
// derived ones that were present.
func (t *Table) DropBase(base string) []model.Column {
	var derived []model.Column
	for c := range t.columns {
		if c.Base != base {
			continue
		}
		if c.Derived() {
			derived = append(derived, c)
		}
		delete(t.columns, c)
	}
	sortColumns(derived)
	return derived
}

// Columns lists the stored columns ordered by name.
func (t *Table) Columns() []model.Column {
	cols := make([]model.Column, 0, len(t.columns))
	for c := range t.columns {
		cols = append(cols, c)
	}
	sortColumns(cols)
	return cols
}

// Reset drops everything.
func (t *Table) Reset() {
	t.columns = make(map[model.Column]map[time.Time]float64)
}

// Index is the shared date axis: every timestamp present in any column.
func (t *Table) Index() []time.Time {
	seen := make(map[time.Time]struct{})
	for _, values := range t.columns {
		for ts := range values {
			seen[ts] = struct{}{}
		}
	}
	index := make([]time.Time, 0, len(seen))
	for ts := range seen {
		index = append(index, ts)
	}
	sort.Slice(index, func(i, j int) bool { return index[i].Before(index[j]) })
	return index
}

// Count is the number of values col holds inside r.
func (t *Table) Count(col model.Column, r model.DateRange) int {
	n := 0
	for ts := range t.columns[col] {
		if r.Contains(ts) {
			n++
		}
	}
	return n
}

// Select builds a frame of cols over every index row inside r. Missing
// values are NaN.
func (t *Table) Select(cols []model.Column, r model.DateRange) *Frame {
	f := &Frame{Columns: make([]string, len(cols))}
	for i, c := range cols {
		f.Columns[i] = c.Name()
	}
	for _, ts := range t.Index() {
		if !r.Contains(ts) {
			continue
		}
		row := make([]float64, len(cols))
		for i, c := range cols {
			v, ok := t.columns[c][ts]
			if !ok {
				v = math.NaN()
			}
			row[i] = v
		}
		f.Index = append(f.Index, ts)
		f.Rows = append(f.Rows, row)
	}
	return f
}

func sortColumns(cols []model.Column) {
	sort.Slice(cols, func(i, j int) bool { return cols[i].Name() < cols[j].Name() })
}
