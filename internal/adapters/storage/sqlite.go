// Package storage persists the agent audit trail to SQLite.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dmarban/solagent/internal/domain"
)

const schema = `
-- One row per activity, append-only. The in-memory log caps at 100 per
-- agent; this table is the full history.
CREATE TABLE IF NOT EXISTS activities (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    agent_id  TEXT     NOT NULL,
    ts        DATETIME NOT NULL,
    action    TEXT     NOT NULL,
    reason    TEXT     NOT NULL DEFAULT '',
    signature TEXT     NOT NULL DEFAULT '',
    result    TEXT     NOT NULL
);

-- One row per settled (simulated) trade.
CREATE TABLE IF NOT EXISTS trades (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    agent_id    TEXT     NOT NULL,
    side        TEXT     NOT NULL,
    amount      REAL     NOT NULL,
    price       REAL     NOT NULL,
    signature   TEXT     NOT NULL,
    executed_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_act_agent_ts   ON activities(agent_id, ts DESC);
CREATE INDEX IF NOT EXISTS idx_trade_agent_ts ON trades(agent_id, executed_at DESC);
`

const retention = 30 * 24 * time.Hour

// SQLiteRecorder implements ports.ActivityRecorder on a pure-Go SQLite
// database (no CGo).
type SQLiteRecorder struct {
	db *sql.DB
}

// NewSQLiteRecorder opens (or creates) the database at path, applies the
// schema, and prunes rows older than the retention window.
func NewSQLiteRecorder(path string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteRecorder: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteRecorder: apply schema: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	r.pruneOld(context.Background())
	return r, nil
}

// Close closes the underlying database.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}

// RecordActivity appends one activity row.
func (r *SQLiteRecorder) RecordActivity(ctx context.Context, agentID string, act domain.Activity) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO activities (agent_id, ts, action, reason, signature, result) VALUES (?, ?, ?, ?, ?, ?)`,
		agentID, act.Timestamp.UTC(), act.Action, act.Reason, act.Signature, string(act.Result),
	)
	if err != nil {
		return fmt.Errorf("storage.RecordActivity: %w", err)
	}
	return nil
}

// RecordTrade appends one trade row.
func (r *SQLiteRecorder) RecordTrade(ctx context.Context, t domain.Trade) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO trades (agent_id, side, amount, price, signature, executed_at) VALUES (?, ?, ?, ?, ?, ?)`,
		t.AgentID, string(t.Side), t.Amount, t.Price, t.Signature, t.ExecutedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("storage.RecordTrade: %w", err)
	}
	return nil
}

// GetActivities returns up to limit activities for the agent, newest first.
func (r *SQLiteRecorder) GetActivities(ctx context.Context, agentID string, limit int) ([]domain.Activity, error) {
	if limit <= 0 {
		limit = domain.ActivityLogCap
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT ts, action, reason, signature, result FROM activities
		 WHERE agent_id = ? ORDER BY ts DESC, id DESC LIMIT ?`,
		agentID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage.GetActivities: %w", err)
	}
	defer rows.Close()

	var out []domain.Activity
	for rows.Next() {
		var act domain.Activity
		var result string
		if err := rows.Scan(&act.Timestamp, &act.Action, &act.Reason, &act.Signature, &result); err != nil {
			return nil, fmt.Errorf("storage.GetActivities: scan: %w", err)
		}
		act.Result = domain.ActivityResult(result)
		out = append(out, act)
	}
	return out, rows.Err()
}

// GetTrades returns all trades for the agent, newest first.
func (r *SQLiteRecorder) GetTrades(ctx context.Context, agentID string) ([]domain.Trade, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT agent_id, side, amount, price, signature, executed_at FROM trades
		 WHERE agent_id = ? ORDER BY executed_at DESC, id DESC`,
		agentID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage.GetTrades: %w", err)
	}
	defer rows.Close()

	var out []domain.Trade
	for rows.Next() {
		var t domain.Trade
		var side string
		if err := rows.Scan(&t.AgentID, &side, &t.Amount, &t.Price, &t.Signature, &t.ExecutedAt); err != nil {
			return nil, fmt.Errorf("storage.GetTrades: scan: %w", err)
		}
		t.Side = domain.TradeAction(side)
		out = append(out, t)
	}
	return out, rows.Err()
}

// pruneOld deletes rows outside the retention window. Best effort.
func (r *SQLiteRecorder) pruneOld(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-retention)
	r.db.ExecContext(ctx, `DELETE FROM activities WHERE ts < ?`, cutoff)
	r.db.ExecContext(ctx, `DELETE FROM trades WHERE executed_at < ?`, cutoff)
}
