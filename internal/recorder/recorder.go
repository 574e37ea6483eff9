package recorder

import "time"

// FetchEvent is one call to an upstream provider.
type FetchEvent struct {
	Provider string
	Symbol   string
	Interval string
	Start    time.Time
	End      time.Time
	Rows     int
	Err      string // empty on success
}

// QueryEvent is one resolved GetInfo call.
type QueryEvent struct {
	Tickers  []string
	Field    string
	Interval string
	Start    time.Time
	End      time.Time
	Rows     int
	Err      string
}

// Recorder keeps an audit trail of provider traffic and queries. Nothing
// recorded here is read back by the cache.
type Recorder interface {
	RecordFetch(evt *FetchEvent) error
	RecordQuery(evt *QueryEvent) error
	Close() error
}
