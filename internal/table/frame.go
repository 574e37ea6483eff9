package table

import (
	"math"
	"time"
)

// Frame is a dense, row-major slice of the table handed back to callers.
type Frame struct {
	Columns []string
	Index   []time.Time
	Rows    [][]float64
}

// Len is the number of rows.
func (f *Frame) Len() int { return len(f.Index) }

// Column returns the values of the named column, row aligned with Index.
func (f *Frame) Column(name string) ([]float64, bool) {
	for i, c := range f.Columns {
		if c != name {
			continue
		}
		values := make([]float64, len(f.Rows))
		for r, row := range f.Rows {
			values[r] = row[i]
		}
		return values, true
	}
	return nil, false
}

// DropIncomplete keeps the rows without any missing value.
func (f *Frame) DropIncomplete() *Frame {
	return f.filter(func(row []float64) bool {
		for _, v := range row {
			if math.IsNaN(v) {
				return false
			}
		}
		return true
	})
}

// DropEmpty keeps the rows with at least one value.
func (f *Frame) DropEmpty() *Frame {
	return f.filter(func(row []float64) bool {
		for _, v := range row {
			if !math.IsNaN(v) {
				return true
			}
		}
		return false
	})
}

func (f *Frame) filter(keep func([]float64) bool) *Frame {
	out := &Frame{Columns: f.Columns}
	for i, row := range f.Rows {
		if keep(row) {
			out.Index = append(out.Index, f.Index[i])
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}
