package recorder

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists the audit trail to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log *zap.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log *zap.Logger) (*SQLiteRecorder, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS fetch_events (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			provider   TEXT NOT NULL,
			symbol     TEXT NOT NULL,
			bar_interval TEXT,
			start_date INTEGER,
			end_date   INTEGER,
			row_count  INTEGER,
			error      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fetch_symbol ON fetch_events(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS query_events (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			tickers    TEXT NOT NULL,
			field      TEXT,
			bar_interval TEXT,
			start_date INTEGER,
			end_date   INTEGER,
			row_count  INTEGER,
			error      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_query_ts ON query_events(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordFetch(evt *FetchEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO fetch_events
		(timestamp, provider, symbol, bar_interval, start_date, end_date, row_count, error)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.Provider, evt.Symbol, evt.Interval,
		evt.Start.Unix(), evt.End.Unix(), evt.Rows, evt.Err,
	)
	return err
}

func (r *SQLiteRecorder) RecordQuery(evt *QueryEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO query_events
		(timestamp, tickers, field, bar_interval, start_date, end_date, row_count, error)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), strings.Join(evt.Tickers, ","), evt.Field, evt.Interval,
		evt.Start.Unix(), evt.End.Unix(), evt.Rows, evt.Err,
	)
	return err
}

// FetchCount returns how many fetch events were recorded for symbol.
func (r *SQLiteRecorder) FetchCount(symbol string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM fetch_events WHERE symbol = ?`, symbol).Scan(&n)
	return n, err
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info("closing sqlite recorder")
	return r.db.Close()
}
