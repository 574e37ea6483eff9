// Package report renders query frames for the command line.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"MarketCache/internal/calculator"
	"MarketCache/internal/table"
)

// WriteCSV writes the frame with a leading date column. Missing values are empty cells.
func WriteCSV(w io.Writer, f *table.Frame) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"date"}, f.Columns...)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(f.Columns)+1)
	for i, ts := range f.Index {
		record[0] = formatTime(ts)
		for j, v := range f.Rows[i] {
			record[j+1] = formatValue(v)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Summary is a short per-column overview: first and last value, min and max.
func Summary(f *table.Frame) string {
	var b strings.Builder
	if f.Len() == 0 {
		b.WriteString("no rows\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("%d rows | %s -> %s\n", f.Len(), formatTime(f.Index[0]), formatTime(f.Index[f.Len()-1])))
	for _, name := range f.Columns {
		values, _ := f.Column(name)
		lo, hi, n := calculator.Range(values)
		if n == 0 {
			b.WriteString(fmt.Sprintf("  %s: empty\n", name))
			continue
		}
		first, last := math.NaN(), math.NaN()
		for _, v := range values {
			if math.IsNaN(v) {
				continue
			}
			if math.IsNaN(first) {
				first = v
			}
			last = v
		}
		b.WriteString(fmt.Sprintf("  %s: first %s last %s min %s max %s (%d values)\n",
			name, formatValue(first), formatValue(last), formatValue(lo), formatValue(hi), n))
	}
	return b.String()
}

func formatTime(ts time.Time) string {
	if ts.Equal(ts.Truncate(24 * time.Hour)) {
		return ts.Format("2006-01-02")
	}
	return ts.Format("2006-01-02 15:04")
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
