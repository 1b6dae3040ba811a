package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/heelturn.club/internal/services/booking/domain/roster"
	"github.com/louisbranch/heelturn.club/internal/services/booking/storage"
)

// PutWrestler upserts one roster wrestler.
func (s *Store) PutWrestler(ctx context.Context, w roster.Wrestler) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(w.ID) == "" {
		return fmt.Errorf("wrestler id is required")
	}
	if strings.TrimSpace(w.Name) == "" {
		return fmt.Errorf("wrestler name is required")
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO wrestlers (id, name) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
		w.ID,
		w.Name,
	)
	if err != nil {
		return fmt.Errorf("put wrestler: %w", err)
	}
	return nil
}

// GetWrestler returns one wrestler by id.
func (s *Store) GetWrestler(ctx context.Context, id string) (roster.Wrestler, error) {
	if err := s.ready(ctx); err != nil {
		return roster.Wrestler{}, err
	}
	if strings.TrimSpace(id) == "" {
		return roster.Wrestler{}, fmt.Errorf("wrestler id is required")
	}
	var w roster.Wrestler
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, name FROM wrestlers WHERE id = ?`,
		id,
	).Scan(&w.ID, &w.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return roster.Wrestler{}, storage.ErrNotFound
		}
		return roster.Wrestler{}, fmt.Errorf("get wrestler: %w", err)
	}
	return w, nil
}

// PutFaction upserts one roster faction.
func (s *Store) PutFaction(ctx context.Context, f roster.Faction) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(f.ID) == "" {
		return fmt.Errorf("faction id is required")
	}
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("faction name is required")
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO factions (id, name, alignment, active) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   alignment = excluded.alignment,
		   active = excluded.active`,
		f.ID,
		f.Name,
		int(f.Alignment),
		boolToInt(f.Active),
	)
	if err != nil {
		return fmt.Errorf("put faction: %w", err)
	}
	return nil
}

// GetFaction returns one faction by id.
func (s *Store) GetFaction(ctx context.Context, id string) (roster.Faction, error) {
	if err := s.ready(ctx); err != nil {
		return roster.Faction{}, err
	}
	if strings.TrimSpace(id) == "" {
		return roster.Faction{}, fmt.Errorf("faction id is required")
	}
	var (
		f         roster.Faction
		alignment int
		active    int
	)
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, name, alignment, active FROM factions WHERE id = ?`,
		id,
	).Scan(&f.ID, &f.Name, &alignment, &active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return roster.Faction{}, storage.ErrNotFound
		}
		return roster.Faction{}, fmt.Errorf("get faction: %w", err)
	}
	f.Alignment = roster.Alignment(alignment)
	f.Active = active != 0
	return f, nil
}

// AssignWrestlerToFaction replaces the wrestler's faction membership.
func (s *Store) AssignWrestlerToFaction(ctx context.Context, wrestlerID, factionID string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	wrestlerID = strings.TrimSpace(wrestlerID)
	factionID = strings.TrimSpace(factionID)
	if wrestlerID == "" {
		return fmt.Errorf("wrestler id is required")
	}
	if factionID == "" {
		return fmt.Errorf("faction id is required")
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO faction_members (wrestler_id, faction_id) VALUES (?, ?)
		 ON CONFLICT(wrestler_id) DO UPDATE SET faction_id = excluded.faction_id`,
		wrestlerID,
		factionID,
	)
	if err != nil {
		return fmt.Errorf("assign wrestler to faction: %w", err)
	}
	return nil
}

// FactionForWrestler returns the wrestler's faction, or ErrNotFound when the
// wrestler is unaffiliated.
func (s *Store) FactionForWrestler(ctx context.Context, wrestlerID string) (roster.Faction, error) {
	if err := s.ready(ctx); err != nil {
		return roster.Faction{}, err
	}
	wrestlerID = strings.TrimSpace(wrestlerID)
	if wrestlerID == "" {
		return roster.Faction{}, fmt.Errorf("wrestler id is required")
	}
	var (
		f         roster.Faction
		alignment int
		active    int
	)
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT f.id, f.name, f.alignment, f.active
		 FROM factions f
		 JOIN faction_members m ON m.faction_id = f.id
		 WHERE m.wrestler_id = ?`,
		wrestlerID,
	).Scan(&f.ID, &f.Name, &alignment, &active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return roster.Faction{}, storage.ErrNotFound
		}
		return roster.Faction{}, fmt.Errorf("faction for wrestler: %w", err)
	}
	f.Alignment = roster.Alignment(alignment)
	f.Active = active != 0
	return f, nil
}

// ListFactionMembers returns the wrestlers assigned to a faction.
func (s *Store) ListFactionMembers(ctx context.Context, factionID string) ([]roster.Wrestler, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	factionID = strings.TrimSpace(factionID)
	if factionID == "" {
		return nil, fmt.Errorf("faction id is required")
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT w.id, w.name
		 FROM wrestlers w
		 JOIN faction_members m ON m.wrestler_id = w.id
		 WHERE m.faction_id = ?
		 ORDER BY w.id ASC`,
		factionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list faction members: %w", err)
	}
	defer rows.Close()

	var members []roster.Wrestler
	for rows.Next() {
		var w roster.Wrestler
		if err := rows.Scan(&w.ID, &w.Name); err != nil {
			return nil, fmt.Errorf("scan faction member: %w", err)
		}
		members = append(members, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list faction members: %w", err)
	}
	return members, nil
}
