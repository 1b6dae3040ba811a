package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/heelturn.club/internal/platform/errors"
	"github.com/louisbranch/heelturn.club/internal/services/booking/domain/rivalry"
	"github.com/louisbranch/heelturn.club/internal/services/booking/domain/storyline"
	"github.com/louisbranch/heelturn.club/internal/services/booking/storage"
)

// EscalationKind labels which higher-order ledger an escalation produced.
type EscalationKind int

const (
	// EscalationNone means the rivalry stayed as it was.
	EscalationNone EscalationKind = iota
	// EscalationFactionRivalry means heat moved into a faction rivalry.
	EscalationFactionRivalry
	// EscalationFeud means the rivalry grew into a multi-wrestler feud.
	EscalationFeud
)

func (k EscalationKind) String() string {
	switch k {
	case EscalationFactionRivalry:
		return "faction_rivalry"
	case EscalationFeud:
		return "multi_wrestler_feud"
	default:
		return "none"
	}
}

// EscalationResult reports one escalation decision and what it created.
type EscalationResult struct {
	Escalated      bool
	Kind           EscalationKind
	Message        string
	Rivalry        rivalry.Rivalry
	FactionRivalry *rivalry.FactionRivalry
	Feud           *rivalry.Feud
}

// EscalateRivalry promotes an individual rivalry to the next storyline
// level. Faction involvement wins over raw heat: when both wrestlers sit in
// distinct active factions, half the rivalry's heat transfers into the
// faction rivalry; otherwise heat at the stipulation threshold spawns a feud
// with the pair as antagonist and protagonist. The branches are mutually
// exclusive.
func (e *Engine) EscalateRivalry(ctx context.Context, rivalryID, reason string) (EscalationResult, error) {
	ctx, span := e.tracer.Start(ctx, "engine.EscalateRivalry")
	defer span.End()

	r, err := e.stores.Rivalries.GetRivalry(ctx, rivalryID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return EscalationResult{}, apperrors.WithMetadata(apperrors.CodeRivalryNotFound,
				"rivalry not found", map[string]string{"rivalry_id": rivalryID})
		}
		return EscalationResult{}, fmt.Errorf("load rivalry: %w", err)
	}
	result := EscalationResult{Rivalry: r}

	factionA, err := e.lookupFaction(ctx, r.WrestlerA)
	if err != nil {
		return EscalationResult{}, err
	}
	factionB, err := e.lookupFaction(ctx, r.WrestlerB)
	if err != nil {
		return EscalationResult{}, err
	}

	switch {
	case factionA != nil && factionB != nil && factionA.ID != factionB.ID && factionA.Active && factionB.Active:
		factionRivalry, err := e.AddHeatBetweenFactions(ctx, factionA.ID, factionB.ID,
			r.Heat/2, "escalated from individual rivalry: "+reason)
		if err != nil {
			return EscalationResult{}, err
		}
		result.Escalated = true
		result.Kind = EscalationFactionRivalry
		result.FactionRivalry = &factionRivalry
	case r.Heat >= rivalry.HeatRequiresStipulation:
		feud, err := e.escalateToFeud(ctx, r, reason)
		if err != nil {
			return EscalationResult{}, err
		}
		result.Escalated = true
		result.Kind = EscalationFeud
		result.Feud = &feud
	}

	if result.Escalated {
		result.Message = "rivalry escalated to " + result.Kind.String()
	} else {
		result.Message = "rivalry conditions not met for escalation"
	}
	return result, nil
}

func (e *Engine) escalateToFeud(ctx context.Context, r rivalry.Rivalry, reason string) (rivalry.Feud, error) {
	wrestlerA, err := e.stores.Roster.GetWrestler(ctx, r.WrestlerA)
	if err != nil {
		return rivalry.Feud{}, fmt.Errorf("look up wrestler %s: %w", r.WrestlerA, err)
	}
	wrestlerB, err := e.stores.Roster.GetWrestler(ctx, r.WrestlerB)
	if err != nil {
		return rivalry.Feud{}, fmt.Errorf("look up wrestler %s: %w", r.WrestlerB, err)
	}

	feudID, err := e.idGenerator()
	if err != nil {
		return rivalry.Feud{}, fmt.Errorf("generate feud id: %w", err)
	}
	now := e.now()
	feud, err := rivalry.NewFeud(feudID,
		wrestlerA.Name+" vs "+wrestlerB.Name+" Feud",
		"escalated from high-heat rivalry", reason, now)
	if err != nil {
		return rivalry.Feud{}, err
	}
	if err := feud.AddMember(r.WrestlerA, rivalry.RoleAntagonist, now); err != nil {
		return rivalry.Feud{}, err
	}
	if err := feud.AddMember(r.WrestlerB, rivalry.RoleProtagonist, now); err != nil {
		return rivalry.Feud{}, err
	}
	if err := e.stores.Feuds.PutFeud(ctx, feud); err != nil {
		return rivalry.Feud{}, fmt.Errorf("save feud: %w", err)
	}
	return feud, nil
}

// ComplexStorylineResult reports what a storyline construction created.
type ComplexStorylineResult struct {
	Rivalry        *rivalry.Rivalry
	FactionRivalry *rivalry.FactionRivalry
	Feud           *rivalry.Feud
	Branches       []storyline.BranchHook
}

// CreateComplexStoryline builds a storyline over the given cast. Two
// wrestlers produce an individual rivalry; three or more produce a feud with
// roles drawn from input order. The first cross-faction pair, and only the
// first, also produces a faction rivalry. Branch hooks are handed to the
// narrative-branching subsystem for each aggregate created.
func (e *Engine) CreateComplexStoryline(ctx context.Context, name string, wrestlerIDs []string, description string) (ComplexStorylineResult, error) {
	ctx, span := e.tracer.Start(ctx, "engine.CreateComplexStoryline")
	defer span.End()

	if strings.TrimSpace(name) == "" {
		return ComplexStorylineResult{}, apperrors.New(apperrors.CodeStorylineEmptyName, "storyline name is required")
	}
	if len(wrestlerIDs) < 2 {
		return ComplexStorylineResult{}, apperrors.New(apperrors.CodeStorylineTooFewMembers,
			"a storyline needs at least two wrestlers")
	}

	var result ComplexStorylineResult
	if len(wrestlerIDs) == 2 {
		r, err := e.findOrCreateRivalry(ctx, wrestlerIDs[0], wrestlerIDs[1], description)
		if err != nil {
			return ComplexStorylineResult{}, err
		}
		result.Rivalry = &r
	} else {
		feud, err := e.buildStorylineFeud(ctx, name, wrestlerIDs, description)
		if err != nil {
			return ComplexStorylineResult{}, err
		}
		result.Feud = &feud
	}

	if err := e.attachFactionRivalry(ctx, wrestlerIDs, &result); err != nil {
		return ComplexStorylineResult{}, err
	}
	if err := e.attachBranchHooks(ctx, name, &result); err != nil {
		return ComplexStorylineResult{}, err
	}
	return result, nil
}

func (e *Engine) buildStorylineFeud(ctx context.Context, name string, wrestlerIDs []string, description string) (rivalry.Feud, error) {
	for _, wrestlerID := range wrestlerIDs {
		if _, err := e.stores.Roster.GetWrestler(ctx, wrestlerID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return rivalry.Feud{}, apperrors.WithMetadata(apperrors.CodeWrestlerNotFound,
					"wrestler not found", map[string]string{"wrestler_id": wrestlerID})
			}
			return rivalry.Feud{}, fmt.Errorf("look up wrestler: %w", err)
		}
	}

	feudID, err := e.idGenerator()
	if err != nil {
		return rivalry.Feud{}, fmt.Errorf("generate feud id: %w", err)
	}
	now := e.now()
	feud, err := rivalry.NewFeud(feudID, name, description, "complex storyline", now)
	if err != nil {
		return rivalry.Feud{}, err
	}
	for i, wrestlerID := range wrestlerIDs {
		if err := feud.AddMember(wrestlerID, rivalry.RoleFor(i, len(wrestlerIDs)), now); err != nil {
			return rivalry.Feud{}, err
		}
	}
	if err := e.stores.Feuds.PutFeud(ctx, feud); err != nil {
		return rivalry.Feud{}, fmt.Errorf("save feud: %w", err)
	}
	return feud, nil
}

// attachFactionRivalry creates one faction rivalry for the first pair of
// wrestlers sitting in distinct active factions. Later cross-faction pairs
// are ignored: one faction rivalry per storyline.
func (e *Engine) attachFactionRivalry(ctx context.Context, wrestlerIDs []string, result *ComplexStorylineResult) error {
	for i := 0; i < len(wrestlerIDs); i++ {
		for j := i + 1; j < len(wrestlerIDs); j++ {
			factionA, err := e.lookupFaction(ctx, wrestlerIDs[i])
			if err != nil {
				return err
			}
			factionB, err := e.lookupFaction(ctx, wrestlerIDs[j])
			if err != nil {
				return err
			}
			if factionA == nil || factionB == nil || factionA.ID == factionB.ID {
				continue
			}
			if !factionA.Active || !factionB.Active {
				continue
			}
			factionRivalry, err := e.findOrCreateFactionRivalry(ctx, factionA.ID, factionB.ID,
				"created from complex storyline involving faction members")
			if err != nil {
				return err
			}
			result.FactionRivalry = &factionRivalry
			return nil
		}
	}
	return nil
}

func (e *Engine) attachBranchHooks(ctx context.Context, name string, result *ComplexStorylineResult) error {
	if result.Rivalry != nil {
		hook, err := e.createBranchHook(ctx, name+" - Escalation Branch",
			"branch for escalating the rivalry based on future outcomes",
			storyline.CategoryRivalryEscalation)
		if err != nil {
			return err
		}
		result.Branches = append(result.Branches, hook)
	}
	if result.FactionRivalry != nil {
		hook, err := e.createBranchHook(ctx, name+" - Faction War Branch",
			"branch for escalating the faction rivalry to war games",
			storyline.CategoryFactionDynamics)
		if err != nil {
			return err
		}
		result.Branches = append(result.Branches, hook)
	}
	return nil
}

func (e *Engine) createBranchHook(ctx context.Context, name, description string, category storyline.BranchCategory) (storyline.BranchHook, error) {
	hookID, err := e.idGenerator()
	if err != nil {
		return storyline.BranchHook{}, fmt.Errorf("generate branch hook id: %w", err)
	}
	hook, err := storyline.NewBranchHook(hookID, name, description, category, 0, e.now())
	if err != nil {
		return storyline.BranchHook{}, err
	}
	if err := e.stores.Branches.PutBranchHook(ctx, hook); err != nil {
		return storyline.BranchHook{}, fmt.Errorf("save branch hook: %w", err)
	}
	return hook, nil
}
