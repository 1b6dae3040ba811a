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

// PutRivalry saves the whole rivalry aggregate, event history included.
func (s *Store) PutRivalry(ctx context.Context, r rivalry.Rivalry) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("rivalry id is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put rivalry: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO rivalries (id, wrestler_a, wrestler_b, pair_key, heat, active, started_at, ended_at, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   heat = excluded.heat,
		   active = excluded.active,
		   ended_at = excluded.ended_at,
		   notes = excluded.notes`,
		r.ID,
		r.WrestlerA,
		r.WrestlerB,
		pairKey(r.WrestlerA, r.WrestlerB),
		r.Heat,
		boolToInt(r.Active),
		toMillis(r.StartedAt),
		toNullMillis(r.EndedAt),
		r.Notes,
	)
	if err != nil {
		return fmt.Errorf("put rivalry: %w", err)
	}
	if err := replaceHeatEvents(ctx, tx, r.ID, r.Events); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put rivalry: %w", err)
	}
	return nil
}

func (s *Store) scanRivalry(ctx context.Context, row interface{ Scan(...any) error }) (rivalry.Rivalry, error) {
	var (
		r       rivalry.Rivalry
		active  int
		started int64
		ended   sql.NullInt64
	)
	err := row.Scan(&r.ID, &r.WrestlerA, &r.WrestlerB, &r.Heat, &active, &started, &ended, &r.Notes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rivalry.Rivalry{}, storage.ErrNotFound
		}
		return rivalry.Rivalry{}, fmt.Errorf("scan rivalry: %w", err)
	}
	r.Active = active != 0
	r.StartedAt = fromMillis(started)
	r.EndedAt = fromNullMillis(ended)
	r.Events, err = s.loadHeatEvents(ctx, r.ID)
	if err != nil {
		return rivalry.Rivalry{}, err
	}
	return r, nil
}

// GetRivalry returns one rivalry by id.
func (s *Store) GetRivalry(ctx context.Context, id string) (rivalry.Rivalry, error) {
	if err := s.ready(ctx); err != nil {
		return rivalry.Rivalry{}, err
	}
	if strings.TrimSpace(id) == "" {
		return rivalry.Rivalry{}, fmt.Errorf("rivalry id is required")
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, wrestler_a, wrestler_b, heat, active, started_at, ended_at, notes
		 FROM rivalries WHERE id = ?`,
		id,
	)
	return s.scanRivalry(ctx, row)
}

// FindActiveRivalryBetween returns the active rivalry for the unordered pair.
func (s *Store) FindActiveRivalryBetween(ctx context.Context, wrestlerA, wrestlerB string) (rivalry.Rivalry, error) {
	if err := s.ready(ctx); err != nil {
		return rivalry.Rivalry{}, err
	}
	wrestlerA = strings.TrimSpace(wrestlerA)
	wrestlerB = strings.TrimSpace(wrestlerB)
	if wrestlerA == "" || wrestlerB == "" {
		return rivalry.Rivalry{}, fmt.Errorf("both wrestler ids are required")
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, wrestler_a, wrestler_b, heat, active, started_at, ended_at, notes
		 FROM rivalries WHERE pair_key = ? AND active = 1`,
		pairKey(wrestlerA, wrestlerB),
	)
	return s.scanRivalry(ctx, row)
}

func (s *Store) listRivalries(ctx context.Context, query string, args ...any) ([]rivalry.Rivalry, error) {
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rivalries: %w", err)
	}
	defer rows.Close()

	var rivalries []rivalry.Rivalry
	for rows.Next() {
		r, err := s.scanRivalry(ctx, rows)
		if err != nil {
			return nil, err
		}
		rivalries = append(rivalries, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rivalries: %w", err)
	}
	return rivalries, nil
}

// ListActiveRivalriesForWrestler returns the wrestler's active rivalries.
func (s *Store) ListActiveRivalriesForWrestler(ctx context.Context, wrestlerID string) ([]rivalry.Rivalry, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	wrestlerID = strings.TrimSpace(wrestlerID)
	if wrestlerID == "" {
		return nil, fmt.Errorf("wrestler id is required")
	}
	return s.listRivalries(
		ctx,
		`SELECT id, wrestler_a, wrestler_b, heat, active, started_at, ended_at, notes
		 FROM rivalries
		 WHERE active = 1 AND (wrestler_a = ? OR wrestler_b = ?)
		 ORDER BY heat DESC, id ASC`,
		wrestlerID,
		wrestlerID,
	)
}

// ListRivalriesByHeatRange returns active rivalries with heat inside the
// inclusive range. A negative maxHeat leaves the range unbounded above.
func (s *Store) ListRivalriesByHeatRange(ctx context.Context, minHeat, maxHeat int) ([]rivalry.Rivalry, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if maxHeat < 0 {
		return s.listRivalries(
			ctx,
			`SELECT id, wrestler_a, wrestler_b, heat, active, started_at, ended_at, notes
			 FROM rivalries
			 WHERE active = 1 AND heat >= ?
			 ORDER BY heat DESC, id ASC`,
			minHeat,
		)
	}
	return s.listRivalries(
		ctx,
		`SELECT id, wrestler_a, wrestler_b, heat, active, started_at, ended_at, notes
		 FROM rivalries
		 WHERE active = 1 AND heat >= ? AND heat <= ?
		 ORDER BY heat DESC, id ASC`,
		minHeat,
		maxHeat,
	)
}

// ListHottestRivalries returns active rivalries ordered by heat descending.
func (s *Store) ListHottestRivalries(ctx context.Context, limit int) ([]rivalry.Rivalry, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}
	return s.listRivalries(
		ctx,
		`SELECT id, wrestler_a, wrestler_b, heat, active, started_at, ended_at, notes
		 FROM rivalries
		 WHERE active = 1
		 ORDER BY heat DESC, id ASC
		 LIMIT ?`,
		limit,
	)
}

// PutFactionRivalry saves the whole faction rivalry aggregate.
func (s *Store) PutFactionRivalry(ctx context.Context, r rivalry.FactionRivalry) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("faction rivalry id is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put faction rivalry: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO faction_rivalries (id, faction_a, faction_b, pair_key, heat, active, started_at, ended_at, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   heat = excluded.heat,
		   active = excluded.active,
		   ended_at = excluded.ended_at,
		   notes = excluded.notes`,
		r.ID,
		r.FactionA,
		r.FactionB,
		pairKey(r.FactionA, r.FactionB),
		r.Heat,
		boolToInt(r.Active),
		toMillis(r.StartedAt),
		toNullMillis(r.EndedAt),
		r.Notes,
	)
	if err != nil {
		return fmt.Errorf("put faction rivalry: %w", err)
	}
	if err := replaceHeatEvents(ctx, tx, r.ID, r.Events); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put faction rivalry: %w", err)
	}
	return nil
}

func (s *Store) scanFactionRivalry(ctx context.Context, row interface{ Scan(...any) error }) (rivalry.FactionRivalry, error) {
	var (
		r       rivalry.FactionRivalry
		active  int
		started int64
		ended   sql.NullInt64
	)
	err := row.Scan(&r.ID, &r.FactionA, &r.FactionB, &r.Heat, &active, &started, &ended, &r.Notes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rivalry.FactionRivalry{}, storage.ErrNotFound
		}
		return rivalry.FactionRivalry{}, fmt.Errorf("scan faction rivalry: %w", err)
	}
	r.Active = active != 0
	r.StartedAt = fromMillis(started)
	r.EndedAt = fromNullMillis(ended)
	r.Events, err = s.loadHeatEvents(ctx, r.ID)
	if err != nil {
		return rivalry.FactionRivalry{}, err
	}
	return r, nil
}

// GetFactionRivalry returns one faction rivalry by id.
func (s *Store) GetFactionRivalry(ctx context.Context, id string) (rivalry.FactionRivalry, error) {
	if err := s.ready(ctx); err != nil {
		return rivalry.FactionRivalry{}, err
	}
	if strings.TrimSpace(id) == "" {
		return rivalry.FactionRivalry{}, fmt.Errorf("faction rivalry id is required")
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, faction_a, faction_b, heat, active, started_at, ended_at, notes
		 FROM faction_rivalries WHERE id = ?`,
		id,
	)
	return s.scanFactionRivalry(ctx, row)
}

// FindActiveFactionRivalryBetween returns the active faction rivalry for the
// unordered pair.
func (s *Store) FindActiveFactionRivalryBetween(ctx context.Context, factionA, factionB string) (rivalry.FactionRivalry, error) {
	if err := s.ready(ctx); err != nil {
		return rivalry.FactionRivalry{}, err
	}
	factionA = strings.TrimSpace(factionA)
	factionB = strings.TrimSpace(factionB)
	if factionA == "" || factionB == "" {
		return rivalry.FactionRivalry{}, fmt.Errorf("both faction ids are required")
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, faction_a, faction_b, heat, active, started_at, ended_at, notes
		 FROM faction_rivalries WHERE pair_key = ? AND active = 1`,
		pairKey(factionA, factionB),
	)
	return s.scanFactionRivalry(ctx, row)
}

// ListActiveFactionRivalriesForFaction returns the faction's active rivalries.
func (s *Store) ListActiveFactionRivalriesForFaction(ctx context.Context, factionID string) ([]rivalry.FactionRivalry, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	factionID = strings.TrimSpace(factionID)
	if factionID == "" {
		return nil, fmt.Errorf("faction id is required")
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, faction_a, faction_b, heat, active, started_at, ended_at, notes
		 FROM faction_rivalries
		 WHERE active = 1 AND (faction_a = ? OR faction_b = ?)
		 ORDER BY heat DESC, id ASC`,
		factionID,
		factionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list faction rivalries: %w", err)
	}
	defer rows.Close()

	var rivalries []rivalry.FactionRivalry
	for rows.Next() {
		r, err := s.scanFactionRivalry(ctx, rows)
		if err != nil {
			return nil, err
		}
		rivalries = append(rivalries, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list faction rivalries: %w", err)
	}
	return rivalries, nil
}
