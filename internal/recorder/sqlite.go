package recorder

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists rate limits and render history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so history can be read while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS rate_limits (
			user_id         INTEGER PRIMARY KEY,
			last_success_ms INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS render_history (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			request_id     TEXT NOT NULL,
			user_id        INTEGER,
			gift           TEXT,
			price_ton      REAL,
			percent_change REAL,
			points         INTEGER,
			outcome        TEXT,
			duration_ms    INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_render_ts ON render_history(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_render_gift ON render_history(gift)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordSuccess(userID int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT OR REPLACE INTO rate_limits (user_id, last_success_ms) VALUES (?, ?)`,
		userID, at.UnixMilli())
	return err
}

func (r *SQLiteRecorder) LastSuccess(userID int64) (time.Time, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ms int64
	err := r.db.QueryRow(`SELECT last_success_ms FROM rate_limits WHERE user_id = ?`, userID).Scan(&ms)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return time.UnixMilli(ms), true, nil
}

func (r *SQLiteRecorder) RecordRender(evt *RenderEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO render_history
		(timestamp, request_id, user_id, gift, price_ton, percent_change, points, outcome, duration_ms)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.RequestID, evt.UserID, evt.Gift,
		evt.PriceTON, evt.PercentChange, evt.Points, evt.Outcome, evt.Duration.Milliseconds(),
	)
	return err
}

func (r *SQLiteRecorder) PruneRateLimits(before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.Exec(`DELETE FROM rate_limits WHERE last_success_ms < ?`, before.UnixMilli())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// RenderCount returns how many render rows carry outcome.
func (r *SQLiteRecorder) RenderCount(outcome string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM render_history WHERE outcome = ?`, outcome).Scan(&n)
	return n, err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
