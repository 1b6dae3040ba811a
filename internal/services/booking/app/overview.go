package app

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/louisbranch/heelturn.club/internal/platform/errors"
	"github.com/louisbranch/heelturn.club/internal/services/booking/domain/rivalry"
	"github.com/louisbranch/heelturn.club/internal/services/booking/domain/roster"
	"github.com/louisbranch/heelturn.club/internal/services/booking/domain/storyline"
	"github.com/louisbranch/heelturn.club/internal/services/booking/storage"
)

// Overview aggregates a wrestler's active storylines for display.
type Overview struct {
	Wrestler         roster.Wrestler
	Rivalries        []rivalry.Rivalry
	Faction          *roster.Faction
	FactionRivalries []rivalry.FactionRivalry
	Feuds            []rivalry.Feud
	Branches         []storyline.BranchHook
}

// WrestlerOverview collects the wrestler's active rivalries, their faction
// and its rivalries, active feuds, and pending branch hooks.
func (e *Engine) WrestlerOverview(ctx context.Context, wrestlerID string) (Overview, error) {
	ctx, span := e.tracer.Start(ctx, "engine.WrestlerOverview")
	defer span.End()

	wrestler, err := e.stores.Roster.GetWrestler(ctx, wrestlerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Overview{}, apperrors.WithMetadata(apperrors.CodeWrestlerNotFound,
				"wrestler not found", map[string]string{"wrestler_id": wrestlerID})
		}
		return Overview{}, fmt.Errorf("look up wrestler: %w", err)
	}
	overview := Overview{Wrestler: wrestler}

	overview.Rivalries, err = e.stores.Rivalries.ListActiveRivalriesForWrestler(ctx, wrestlerID)
	if err != nil {
		return Overview{}, fmt.Errorf("list rivalries: %w", err)
	}

	faction, err := e.lookupFaction(ctx, wrestlerID)
	if err != nil {
		return Overview{}, err
	}
	if faction != nil {
		overview.Faction = faction
		overview.FactionRivalries, err = e.stores.FactionRivalries.ListActiveFactionRivalriesForFaction(ctx, faction.ID)
		if err != nil {
			return Overview{}, fmt.Errorf("list faction rivalries: %w", err)
		}
	}

	overview.Feuds, err = e.stores.Feuds.ListActiveFeudsForWrestler(ctx, wrestlerID)
	if err != nil {
		return Overview{}, fmt.Errorf("list feuds: %w", err)
	}

	overview.Branches, err = e.stores.Branches.ListActiveBranchHooks(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("list branch hooks: %w", err)
	}
	return overview, nil
}
