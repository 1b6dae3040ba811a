package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	apperrors "github.com/louisbranch/heelturn.club/internal/platform/errors"
	"github.com/louisbranch/heelturn.club/internal/services/booking/domain/dice"
	"github.com/louisbranch/heelturn.club/internal/services/booking/domain/rivalry"
	"github.com/louisbranch/heelturn.club/internal/services/booking/storage"
)

// ResolutionResult reports one resolution attempt made through the engine.
type ResolutionResult struct {
	LedgerID string
	Kind     rivalry.Kind
	Outcome  rivalry.ResolutionOutcome
}

// AttemptResolution tries to conclude a ledger's storyline with dice.
// Two-party ledgers take up to two caller-supplied rolls; feuds take one.
// Missing rolls are drawn from the engine's roller. Ineligible ledgers
// (below the resolution threshold) return a failure outcome without
// mutation. Successful attempts end the ledger; failed attempts record the
// rolls as a zero-delta heat event.
func (e *Engine) AttemptResolution(ctx context.Context, kind rivalry.Kind, ledgerID string, rolls ...int) (ResolutionResult, error) {
	ctx, span := e.tracer.Start(ctx, "engine.AttemptResolution")
	defer span.End()

	for _, roll := range rolls {
		if roll < 1 || roll > dice.D20 {
			return ResolutionResult{}, apperrors.WithMetadata(apperrors.CodeResolutionInvalidRoll,
				"rolls must be between 1 and 20", map[string]string{"roll": strconv.Itoa(roll)})
		}
	}

	ledger, err := e.loadLedger(ctx, kind, ledgerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ResolutionResult{}, apperrors.WithMetadata(apperrors.CodeNotFound,
				"ledger not found", map[string]string{"ledger_id": ledgerID})
		}
		return ResolutionResult{}, fmt.Errorf("load ledger: %w", err)
	}

	result := ResolutionResult{LedgerID: ledger.LedgerID(), Kind: ledger.LedgerKind()}
	now := e.now()
	switch l := ledger.(type) {
	case *rivalry.Feud:
		wanted := 1
		if len(rolls) > wanted {
			return ResolutionResult{}, apperrors.New(apperrors.CodeResolutionInvalidRoll,
				"feud resolution takes a single roll")
		}
		rolls, err = e.fillRolls(rolls, wanted)
		if err != nil {
			return ResolutionResult{}, err
		}
		result.Outcome = rivalry.ResolveFeud(l, rolls[0], e.feudThreshold, now)
	default:
		wanted := 2
		if len(rolls) > wanted {
			return ResolutionResult{}, apperrors.New(apperrors.CodeResolutionInvalidRoll,
				"two-party resolution takes two rolls")
		}
		rolls, err = e.fillRolls(rolls, wanted)
		if err != nil {
			return ResolutionResult{}, err
		}
		result.Outcome = rivalry.ResolvePair(ledger.HeatTrack(), rolls[0], rolls[1], now)
	}

	if !result.Outcome.Eligible {
		return result, nil
	}
	if err := e.saveLedger(ctx, ledger); err != nil {
		return ResolutionResult{}, fmt.Errorf("save ledger: %w", err)
	}
	_ = e.sink.ResolutionAttempted(ctx, rivalry.ResolutionEvent{
		LedgerID:    ledger.LedgerID(),
		Kind:        ledger.LedgerKind(),
		Resolved:    result.Outcome.Resolved,
		Roll1:       result.Outcome.Roll1,
		Roll2:       result.Outcome.Roll2,
		Total:       result.Outcome.Total,
		Heat:        ledger.HeatTrack().Heat,
		WrestlerIDs: e.affectedWrestlerIDs(ctx, ledger),
		At:          now,
	})
	return result, nil
}

func (e *Engine) fillRolls(rolls []int, wanted int) ([]int, error) {
	for len(rolls) < wanted {
		roll, err := e.roller.Roll(dice.D20)
		if err != nil {
			return nil, fmt.Errorf("roll d20: %w", err)
		}
		rolls = append(rolls, roll)
	}
	return rolls, nil
}
