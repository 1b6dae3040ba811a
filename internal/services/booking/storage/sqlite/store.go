// Package sqlite provides a SQLite-backed booking storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/heelturn.club/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/heelturn.club/internal/services/booking/domain/rivalry"
	"github.com/louisbranch/heelturn.club/internal/services/booking/storage"
	"github.com/louisbranch/heelturn.club/internal/services/booking/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists booking state in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

func toNullMillis(value *time.Time) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: toMillis(*value), Valid: true}
}

func fromNullMillis(value sql.NullInt64) *time.Time {
	if !value.Valid {
		return nil
	}
	t := fromMillis(value.Int64)
	return &t
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

// pairKey returns the order-independent lookup key for a two-party ledger.
func pairKey(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return strings.Join(ids, "|")
}

// Open opens a SQLite booking store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// replaceHeatEvents rewrites a ledger's event history inside the caller's
// transaction. Ledger saves persist the whole aggregate, so the history is
// replaced rather than diffed.
func replaceHeatEvents(ctx context.Context, tx *sql.Tx, ledgerID string, events []rivalry.HeatEvent) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM heat_events WHERE ledger_id = ?`, ledgerID); err != nil {
		return fmt.Errorf("clear heat events: %w", err)
	}
	for seq, evt := range events {
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO heat_events (ledger_id, seq, delta, reason, heat_after, occurred_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			ledgerID,
			seq,
			evt.Delta,
			evt.Reason,
			evt.HeatAfter,
			toMillis(evt.At),
		)
		if err != nil {
			return fmt.Errorf("insert heat event: %w", err)
		}
	}
	return nil
}

func (s *Store) loadHeatEvents(ctx context.Context, ledgerID string) ([]rivalry.HeatEvent, error) {
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT delta, reason, heat_after, occurred_at
		 FROM heat_events
		 WHERE ledger_id = ?
		 ORDER BY seq ASC`,
		ledgerID,
	)
	if err != nil {
		return nil, fmt.Errorf("load heat events: %w", err)
	}
	defer rows.Close()

	var events []rivalry.HeatEvent
	for rows.Next() {
		var (
			evt        rivalry.HeatEvent
			occurredAt int64
		)
		if err := rows.Scan(&evt.Delta, &evt.Reason, &evt.HeatAfter, &occurredAt); err != nil {
			return nil, fmt.Errorf("scan heat event: %w", err)
		}
		evt.At = fromMillis(occurredAt)
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load heat events: %w", err)
	}
	return events, nil
}

var (
	_ storage.RivalryStore        = (*Store)(nil)
	_ storage.FactionRivalryStore = (*Store)(nil)
	_ storage.FeudStore           = (*Store)(nil)
	_ storage.BranchStore         = (*Store)(nil)
	_ storage.RosterStore         = (*Store)(nil)
	_ storage.NotificationStore   = (*Store)(nil)
)
