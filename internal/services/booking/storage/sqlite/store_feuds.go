package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/heelturn.club/internal/services/booking/domain/rivalry"
	"github.com/louisbranch/heelturn.club/internal/services/booking/storage"
)

// PutFeud saves the whole feud aggregate: track, event history, and the full
// membership history in member order.
func (s *Store) PutFeud(ctx context.Context, f rivalry.Feud) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(f.ID) == "" {
		return fmt.Errorf("feud id is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put feud: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO feuds (id, name, description, heat, active, started_at, ended_at, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   description = excluded.description,
		   heat = excluded.heat,
		   active = excluded.active,
		   ended_at = excluded.ended_at,
		   notes = excluded.notes`,
		f.ID,
		f.Name,
		f.Description,
		f.Heat,
		boolToInt(f.Active),
		toMillis(f.StartedAt),
		toNullMillis(f.EndedAt),
		f.Notes,
	)
	if err != nil {
		return fmt.Errorf("put feud: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM feud_members WHERE feud_id = ?`, f.ID); err != nil {
		return fmt.Errorf("clear feud members: %w", err)
	}
	for seq, m := range f.Members {
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO feud_members (feud_id, seq, wrestler_id, role, active, joined_at, left_at, left_reason)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			f.ID,
			seq,
			m.WrestlerID,
			int(m.Role),
			boolToInt(m.Active),
			toMillis(m.JoinedAt),
			toNullMillis(m.LeftAt),
			m.LeftReason,
		)
		if err != nil {
			return fmt.Errorf("insert feud member: %w", err)
		}
	}

	if err := replaceHeatEvents(ctx, tx, f.ID, f.Events); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put feud: %w", err)
	}
	return nil
}

func (s *Store) loadFeudMembers(ctx context.Context, feudID string) ([]rivalry.Member, error) {
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT wrestler_id, role, active, joined_at, left_at, left_reason
		 FROM feud_members
		 WHERE feud_id = ?
		 ORDER BY seq ASC`,
		feudID,
	)
	if err != nil {
		return nil, fmt.Errorf("load feud members: %w", err)
	}
	defer rows.Close()

	var members []rivalry.Member
	for rows.Next() {
		var (
			m      rivalry.Member
			role   int
			active int
			joined int64
			left   sql.NullInt64
		)
		if err := rows.Scan(&m.WrestlerID, &role, &active, &joined, &left, &m.LeftReason); err != nil {
			return nil, fmt.Errorf("scan feud member: %w", err)
		}
		m.Role = rivalry.Role(role)
		m.Active = active != 0
		m.JoinedAt = fromMillis(joined)
		m.LeftAt = fromNullMillis(left)
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load feud members: %w", err)
	}
	return members, nil
}

func (s *Store) scanFeud(ctx context.Context, row interface{ Scan(...any) error }) (rivalry.Feud, error) {
	var (
		f       rivalry.Feud
		active  int
		started int64
		ended   sql.NullInt64
	)
	err := row.Scan(&f.ID, &f.Name, &f.Description, &f.Heat, &active, &started, &ended, &f.Notes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rivalry.Feud{}, storage.ErrNotFound
		}
		return rivalry.Feud{}, fmt.Errorf("scan feud: %w", err)
	}
	f.Active = active != 0
	f.StartedAt = fromMillis(started)
	f.EndedAt = fromNullMillis(ended)
	f.Members, err = s.loadFeudMembers(ctx, f.ID)
	if err != nil {
		return rivalry.Feud{}, err
	}
	f.Events, err = s.loadHeatEvents(ctx, f.ID)
	if err != nil {
		return rivalry.Feud{}, err
	}
	return f, nil
}

// GetFeud returns one feud by id.
func (s *Store) GetFeud(ctx context.Context, id string) (rivalry.Feud, error) {
	if err := s.ready(ctx); err != nil {
		return rivalry.Feud{}, err
	}
	if strings.TrimSpace(id) == "" {
		return rivalry.Feud{}, fmt.Errorf("feud id is required")
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, name, description, heat, active, started_at, ended_at, notes
		 FROM feuds WHERE id = ?`,
		id,
	)
	return s.scanFeud(ctx, row)
}

func (s *Store) listFeuds(ctx context.Context, query string, args ...any) ([]rivalry.Feud, error) {
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list feuds: %w", err)
	}
	defer rows.Close()

	var feuds []rivalry.Feud
	for rows.Next() {
		f, err := s.scanFeud(ctx, rows)
		if err != nil {
			return nil, err
		}
		feuds = append(feuds, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list feuds: %w", err)
	}
	return feuds, nil
}

// ListActiveFeudsForWrestler returns active feuds where the wrestler holds an
// active membership.
func (s *Store) ListActiveFeudsForWrestler(ctx context.Context, wrestlerID string) ([]rivalry.Feud, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	wrestlerID = strings.TrimSpace(wrestlerID)
	if wrestlerID == "" {
		return nil, fmt.Errorf("wrestler id is required")
	}
	return s.listFeuds(
		ctx,
		`SELECT f.id, f.name, f.description, f.heat, f.active, f.started_at, f.ended_at, f.notes
		 FROM feuds f
		 JOIN feud_members m ON m.feud_id = f.id
		 WHERE f.active = 1 AND m.wrestler_id = ? AND m.active = 1
		 ORDER BY f.heat DESC, f.id ASC`,
		wrestlerID,
	)
}

// ListActiveFeuds returns every active feud.
func (s *Store) ListActiveFeuds(ctx context.Context) ([]rivalry.Feud, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	return s.listFeuds(
		ctx,
		`SELECT id, name, description, heat, active, started_at, ended_at, notes
		 FROM feuds
		 WHERE active = 1
		 ORDER BY heat DESC, id ASC`,
	)
}
