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

// CreateRivalry returns the active rivalry for the unordered pair, creating
// a zero-heat one if none exists. Repeated calls while one is active return
// the same ledger.
func (e *Engine) CreateRivalry(ctx context.Context, wrestlerA, wrestlerB, notes string) (rivalry.Rivalry, error) {
	ctx, span := e.tracer.Start(ctx, "engine.CreateRivalry")
	defer span.End()
	return e.findOrCreateRivalry(ctx, wrestlerA, wrestlerB, notes)
}

func (e *Engine) findOrCreateRivalry(ctx context.Context, wrestlerA, wrestlerB, notes string) (rivalry.Rivalry, error) {
	wrestlerA = strings.TrimSpace(wrestlerA)
	wrestlerB = strings.TrimSpace(wrestlerB)
	for _, wrestlerID := range []string{wrestlerA, wrestlerB} {
		if _, err := e.stores.Roster.GetWrestler(ctx, wrestlerID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return rivalry.Rivalry{}, apperrors.WithMetadata(apperrors.CodeWrestlerNotFound,
					"wrestler not found", map[string]string{"wrestler_id": wrestlerID})
			}
			return rivalry.Rivalry{}, fmt.Errorf("look up wrestler: %w", err)
		}
	}

	existing, err := e.stores.Rivalries.FindActiveRivalryBetween(ctx, wrestlerA, wrestlerB)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return rivalry.Rivalry{}, fmt.Errorf("find active rivalry: %w", err)
	}

	rivalryID, err := e.idGenerator()
	if err != nil {
		return rivalry.Rivalry{}, fmt.Errorf("generate rivalry id: %w", err)
	}
	created, err := rivalry.NewRivalry(rivalryID, wrestlerA, wrestlerB, notes, e.now())
	if err != nil {
		return rivalry.Rivalry{}, err
	}
	if err := e.stores.Rivalries.PutRivalry(ctx, created); err != nil {
		return rivalry.Rivalry{}, fmt.Errorf("save rivalry: %w", err)
	}
	return created, nil
}

// AddHeatBetweenWrestlers accumulates heat on the pair's active rivalry,
// creating the rivalry on first contact.
func (e *Engine) AddHeatBetweenWrestlers(ctx context.Context, wrestlerA, wrestlerB string, delta int, reason string) (rivalry.Rivalry, error) {
	ctx, span := e.tracer.Start(ctx, "engine.AddHeatBetweenWrestlers")
	defer span.End()

	r, err := e.findOrCreateRivalry(ctx, wrestlerA, wrestlerB, "")
	if err != nil {
		return rivalry.Rivalry{}, err
	}
	now := e.now()
	if err := r.AddHeat(delta, reason, now); err != nil {
		return rivalry.Rivalry{}, err
	}
	if err := e.stores.Rivalries.PutRivalry(ctx, r); err != nil {
		return rivalry.Rivalry{}, fmt.Errorf("save rivalry: %w", err)
	}
	e.emitHeatChanged(ctx, &r, delta, reason, now)
	return r, nil
}

// EndRivalry manually closes a rivalry. The boolean reports whether this
// call performed the transition; ending an ended rivalry is a no-op.
func (e *Engine) EndRivalry(ctx context.Context, rivalryID, reason string) (rivalry.Rivalry, bool, error) {
	ctx, span := e.tracer.Start(ctx, "engine.EndRivalry")
	defer span.End()

	r, err := e.stores.Rivalries.GetRivalry(ctx, rivalryID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return rivalry.Rivalry{}, false, apperrors.WithMetadata(apperrors.CodeRivalryNotFound,
				"rivalry not found", map[string]string{"rivalry_id": rivalryID})
		}
		return rivalry.Rivalry{}, false, fmt.Errorf("load rivalry: %w", err)
	}
	if !r.End(reason, e.now()) {
		return r, false, nil
	}
	if err := e.stores.Rivalries.PutRivalry(ctx, r); err != nil {
		return rivalry.Rivalry{}, false, fmt.Errorf("save rivalry: %w", err)
	}
	return r, true, nil
}

// RivalryStats summarizes one rivalry against the configured intensity bands.
func (e *Engine) RivalryStats(ctx context.Context, rivalryID string) (rivalry.Stats, error) {
	ctx, span := e.tracer.Start(ctx, "engine.RivalryStats")
	defer span.End()

	r, err := e.stores.Rivalries.GetRivalry(ctx, rivalryID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return rivalry.Stats{}, apperrors.WithMetadata(apperrors.CodeRivalryNotFound,
				"rivalry not found", map[string]string{"rivalry_id": rivalryID})
		}
		return rivalry.Stats{}, fmt.Errorf("load rivalry: %w", err)
	}
	return r.Stats(e.intensity, e.now()), nil
}

// HottestRivalries returns the top active rivalries by heat with their stats.
func (e *Engine) HottestRivalries(ctx context.Context, limit int) ([]rivalry.Stats, error) {
	ctx, span := e.tracer.Start(ctx, "engine.HottestRivalries")
	defer span.End()

	rivalries, err := e.stores.Rivalries.ListHottestRivalries(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list hottest rivalries: %w", err)
	}
	now := e.now()
	stats := make([]rivalry.Stats, 0, len(rivalries))
	for _, r := range rivalries {
		stats = append(stats, r.Stats(e.intensity, now))
	}
	return stats, nil
}

// RivalriesWithHeatAtLeast returns active rivalries at or above the given
// heat, used by scheduling consumers to find forced matches and stipulations.
func (e *Engine) RivalriesWithHeatAtLeast(ctx context.Context, minHeat int) ([]rivalry.Rivalry, error) {
	ctx, span := e.tracer.Start(ctx, "engine.RivalriesWithHeatAtLeast")
	defer span.End()
	return e.stores.Rivalries.ListRivalriesByHeatRange(ctx, minHeat, -1)
}
