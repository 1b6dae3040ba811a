package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/heelturn.club/internal/platform/errors"
	"github.com/louisbranch/heelturn.club/internal/services/booking/domain/rivalry"
	"github.com/louisbranch/heelturn.club/internal/services/booking/storage"
)

func (e *Engine) findOrCreateFactionRivalry(ctx context.Context, factionA, factionB, notes string) (rivalry.FactionRivalry, error) {
	factionA = strings.TrimSpace(factionA)
	factionB = strings.TrimSpace(factionB)
	for _, factionID := range []string{factionA, factionB} {
		faction, err := e.stores.Roster.GetFaction(ctx, factionID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return rivalry.FactionRivalry{}, apperrors.WithMetadata(apperrors.CodeFactionNotFound,
					"faction not found", map[string]string{"faction_id": factionID})
			}
			return rivalry.FactionRivalry{}, fmt.Errorf("look up faction: %w", err)
		}
		if !faction.Active {
			return rivalry.FactionRivalry{}, apperrors.WithMetadata(apperrors.CodeFactionInactive,
				"faction is not active", map[string]string{"faction_id": factionID})
		}
	}

	existing, err := e.stores.FactionRivalries.FindActiveFactionRivalryBetween(ctx, factionA, factionB)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return rivalry.FactionRivalry{}, fmt.Errorf("find active faction rivalry: %w", err)
	}

	rivalryID, err := e.idGenerator()
	if err != nil {
		return rivalry.FactionRivalry{}, fmt.Errorf("generate faction rivalry id: %w", err)
	}
	created, err := rivalry.NewFactionRivalry(rivalryID, factionA, factionB, notes, e.now())
	if err != nil {
		return rivalry.FactionRivalry{}, err
	}
	if err := e.stores.FactionRivalries.PutFactionRivalry(ctx, created); err != nil {
		return rivalry.FactionRivalry{}, fmt.Errorf("save faction rivalry: %w", err)
	}
	return created, nil
}

// CreateFactionRivalry returns the active faction rivalry for the unordered
// pair, creating a zero-heat one if none exists.
func (e *Engine) CreateFactionRivalry(ctx context.Context, factionA, factionB, notes string) (rivalry.FactionRivalry, error) {
	ctx, span := e.tracer.Start(ctx, "engine.CreateFactionRivalry")
	defer span.End()
	return e.findOrCreateFactionRivalry(ctx, factionA, factionB, notes)
}

// AddHeatBetweenFactions accumulates heat on the pair's active faction
// rivalry, creating the rivalry on first contact.
func (e *Engine) AddHeatBetweenFactions(ctx context.Context, factionA, factionB string, delta int, reason string) (rivalry.FactionRivalry, error) {
	ctx, span := e.tracer.Start(ctx, "engine.AddHeatBetweenFactions")
	defer span.End()

	r, err := e.findOrCreateFactionRivalry(ctx, factionA, factionB, "")
	if err != nil {
		return rivalry.FactionRivalry{}, err
	}
	now := e.now()
	if err := r.AddHeat(delta, reason, now); err != nil {
		return rivalry.FactionRivalry{}, err
	}
	if err := e.stores.FactionRivalries.PutFactionRivalry(ctx, r); err != nil {
		return rivalry.FactionRivalry{}, fmt.Errorf("save faction rivalry: %w", err)
	}
	e.emitHeatChanged(ctx, &r, delta, reason, now)
	return r, nil
}

// EndFactionRivalry manually closes a faction rivalry. The boolean reports
// whether this call performed the transition.
func (e *Engine) EndFactionRivalry(ctx context.Context, rivalryID, reason string) (rivalry.FactionRivalry, bool, error) {
	ctx, span := e.tracer.Start(ctx, "engine.EndFactionRivalry")
	defer span.End()

	r, err := e.stores.FactionRivalries.GetFactionRivalry(ctx, rivalryID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return rivalry.FactionRivalry{}, false, apperrors.WithMetadata(apperrors.CodeFactionRivalryNotFound,
				"faction rivalry not found", map[string]string{"rivalry_id": rivalryID})
		}
		return rivalry.FactionRivalry{}, false, fmt.Errorf("load faction rivalry: %w", err)
	}
	if !r.End(reason, e.now()) {
		return r, false, nil
	}
	if err := e.stores.FactionRivalries.PutFactionRivalry(ctx, r); err != nil {
		return rivalry.FactionRivalry{}, false, fmt.Errorf("save faction rivalry: %w", err)
	}
	return r, true, nil
}
