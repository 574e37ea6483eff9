package model

import "time"

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateRange is a day-inclusive window: both From's and To's calendar days belong to it.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the window.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && t.Before(Day(r.To).AddDate(0, 0, 1))
}

// Covers reports whether r spans all of o.
func (r DateRange) Covers(o DateRange) bool {
	return !r.From.After(o.From) && !r.To.Before(o.To)
}

// Union returns the smallest window spanning both r and o.
func (r DateRange) Union(o DateRange) DateRange {
	u := r
	if o.From.Before(u.From) {
		u.From = o.From
	}
	if o.To.After(u.To) {
		u.To = o.To
	}
	return u
}

// Empty reports whether the window contains no day at all.
func (r DateRange) Empty() bool {
	return Day(r.To).Before(Day(r.From))
}
