package rivalry

import (
	"fmt"
	"time"
)

// ResolutionOutcome reports one resolution attempt against a ledger. Failed
// attempts leave the heat untouched; the rolls and total are always reported
// for audit and display.
type ResolutionOutcome struct {
	Resolved bool
	Eligible bool
	Message  string
	Roll1    int
	Roll2    int
	Total    int
}

// ResolvePair judges a two-party resolution attempt: the combined roll must
// strictly exceed the accumulated heat. Meeting the heat exactly fails.
// A successful attempt ends the track; a failed one appends a zero-delta
// heat event recording the rolls.
func ResolvePair(t *Track, roll1, roll2 int, now time.Time) ResolutionOutcome {
	if !t.EligibleForResolution() {
		return ResolutionOutcome{
			Message: fmt.Sprintf("needs at least %d heat to attempt resolution (current: %d)",
				HeatEligibleForResolution, t.Heat),
		}
	}

	total := roll1 + roll2
	outcome := ResolutionOutcome{
		Eligible: true,
		Roll1:    roll1,
		Roll2:    roll2,
		Total:    total,
	}
	if total > t.Heat {
		outcome.Resolved = true
		outcome.Message = fmt.Sprintf("resolved by dice roll: %d + %d = %d", roll1, roll2, total)
		t.End(outcome.Message, now)
		return outcome
	}
	outcome.Message = fmt.Sprintf("failed resolution attempt: %d + %d = %d does not exceed %d heat",
		roll1, roll2, total, t.Heat)
	_ = t.AddHeat(0, outcome.Message, now)
	return outcome
}

// FeudThresholdPolicy scales a feud's heat into the value a single die must
// exceed. The exact scaling is a tunable storyline rule, so it is injected
// rather than hard-coded.
type FeudThresholdPolicy func(heat, activeParticipants int) int

// DefaultFeudThreshold spreads twice the heat across the cast: larger casts
// lower the bar per roll, hotter feuds raise it.
func DefaultFeudThreshold(heat, activeParticipants int) int {
	if activeParticipants < 1 {
		activeParticipants = 1
	}
	return (2 * heat) / activeParticipants
}

// ResolveFeud judges a feud resolution attempt: a single roll must strictly
// exceed the policy's scaled threshold. Success ends the feud and its
// memberships; failure appends a zero-delta heat event.
func ResolveFeud(f *Feud, roll int, policy FeudThresholdPolicy, now time.Time) ResolutionOutcome {
	if !f.EligibleForResolution() {
		return ResolutionOutcome{
			Message: fmt.Sprintf("needs at least %d heat to attempt resolution (current: %d)",
				HeatEligibleForResolution, f.Heat),
		}
	}
	if policy == nil {
		policy = DefaultFeudThreshold
	}

	threshold := policy(f.Heat, len(f.ActiveMembers()))
	outcome := ResolutionOutcome{
		Eligible: true,
		Roll1:    roll,
		Total:    roll,
	}
	if roll > threshold {
		outcome.Resolved = true
		outcome.Message = fmt.Sprintf("resolved by dice roll: %d exceeds threshold %d", roll, threshold)
		f.EndFeud(outcome.Message, now)
		return outcome
	}
	outcome.Message = fmt.Sprintf("failed resolution attempt: %d does not exceed threshold %d", roll, threshold)
	_ = f.AddHeat(0, outcome.Message, now)
	return outcome
}
