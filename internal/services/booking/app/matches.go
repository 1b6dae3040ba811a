package app

import (
	"context"
	"fmt"

	"github.com/louisbranch/heelturn.club/internal/services/booking/domain/match"
	"github.com/louisbranch/heelturn.club/internal/services/booking/domain/roster"
)

// MatchReport lists the ledgers a match outcome touched, one entry per
// applied heat delta.
type MatchReport struct {
	RivalryIDs        []string
	FactionRivalryIDs []string
	FeudIDs           []string
}

// ProcessMatchOutcome converts one completed match into heat across all
// three ledger variants: pairwise individual heat, cross-faction heat, and
// feud heat for overlapping casts. The passes are independent; the engine
// does not de-duplicate repeated invocations for the same match, so callers
// must deliver each match at most once.
func (e *Engine) ProcessMatchOutcome(ctx context.Context, outcome match.Outcome) (MatchReport, error) {
	ctx, span := e.tracer.Start(ctx, "engine.ProcessMatchOutcome")
	defer span.End()

	if err := outcome.Validate(); err != nil {
		return MatchReport{}, err
	}

	var report MatchReport
	if err := e.processIndividualHeat(ctx, outcome, &report); err != nil {
		return MatchReport{}, err
	}
	if err := e.processFactionHeat(ctx, outcome, &report); err != nil {
		return MatchReport{}, err
	}
	if err := e.processFeudHeat(ctx, outcome, &report); err != nil {
		return MatchReport{}, err
	}
	return report, nil
}

func (e *Engine) processIndividualHeat(ctx context.Context, outcome match.Outcome, report *MatchReport) error {
	reason := "match outcome: " + outcome.RulesSummary()
	for _, pair := range outcome.Pairs() {
		gain := outcome.PairHeatGain(pair[0], pair[1])
		if gain <= 0 {
			continue
		}
		r, err := e.AddHeatBetweenWrestlers(ctx, pair[0], pair[1], gain, reason)
		if err != nil {
			return fmt.Errorf("individual heat for %s vs %s: %w", pair[0], pair[1], err)
		}
		report.RivalryIDs = append(report.RivalryIDs, r.ID)
	}
	return nil
}

func (e *Engine) processFactionHeat(ctx context.Context, outcome match.Outcome, report *MatchReport) error {
	reason := "faction members competed: " + outcome.RulesSummary()
	for _, pair := range outcome.Pairs() {
		factionA, err := e.lookupFaction(ctx, pair[0])
		if err != nil {
			return err
		}
		factionB, err := e.lookupFaction(ctx, pair[1])
		if err != nil {
			return err
		}
		if factionA == nil || factionB == nil || factionA.ID == factionB.ID {
			continue
		}
		if !factionA.Active || !factionB.Active {
			continue
		}
		gain := roster.FactionHeatGain(1, factionA.Alignment, factionB.Alignment)
		r, err := e.AddHeatBetweenFactions(ctx, factionA.ID, factionB.ID, gain, reason)
		if err != nil {
			return fmt.Errorf("faction heat for %s vs %s: %w", factionA.ID, factionB.ID, err)
		}
		report.FactionRivalryIDs = append(report.FactionRivalryIDs, r.ID)
	}
	return nil
}

func (e *Engine) processFeudHeat(ctx context.Context, outcome match.Outcome, report *MatchReport) error {
	reason := "multiple feud participants in match: " + outcome.RulesSummary()
	seen := make(map[string]struct{})
	for _, wrestlerID := range outcome.Participants {
		feuds, err := e.stores.Feuds.ListActiveFeudsForWrestler(ctx, wrestlerID)
		if err != nil {
			return fmt.Errorf("feuds for wrestler %s: %w", wrestlerID, err)
		}
		for _, feud := range feuds {
			if _, applied := seen[feud.ID]; applied {
				continue
			}
			seen[feud.ID] = struct{}{}
			gain := match.FeudOverlapGain(feud.Overlap(outcome.Participants))
			if gain <= 0 {
				continue
			}
			if _, err := e.AddFeudHeat(ctx, feud.ID, gain, reason); err != nil {
				return fmt.Errorf("feud heat for %s: %w", feud.ID, err)
			}
			report.FeudIDs = append(report.FeudIDs, feud.ID)
		}
	}
	return nil
}
