// Package rivalry implements the storyline heat ledger: the shared heat
// track, its three ledger variants (individual rivalry, faction rivalry,
// multi-wrestler feud), threshold queries, role assignment, and dice-based
// resolution.
package rivalry

import (
	"strconv"
	"time"

	apperrors "github.com/louisbranch/heelturn.club/internal/platform/errors"
)

// Heat thresholds shared by every ledger variant.
const (
	// HeatRequiresMatch forces the participants onto the next card.
	HeatRequiresMatch = 10
	// HeatEligibleForResolution allows a dice-based resolution attempt.
	HeatEligibleForResolution = 20
	// HeatRequiresStipulation forces a stipulation match.
	HeatRequiresStipulation = 30
)

// Kind discriminates the ledger variants.
type Kind int

const (
	// KindUnspecified represents an invalid ledger kind.
	KindUnspecified Kind = iota
	// KindIndividual is a rivalry between two wrestlers.
	KindIndividual
	// KindFaction is a rivalry between two factions.
	KindFaction
	// KindFeud is a feud between three or more wrestlers.
	KindFeud
)

func (k Kind) String() string {
	switch k {
	case KindIndividual:
		return "individual_rivalry"
	case KindFaction:
		return "faction_rivalry"
	case KindFeud:
		return "multi_wrestler_feud"
	default:
		return "unspecified"
	}
}

// HeatEvent is one append-only entry in a ledger's heat history.
type HeatEvent struct {
	Delta     int
	Reason    string
	HeatAfter int
	At        time.Time
}

// Track is the heat state shared by all ledger variants: the accumulated
// heat, the active flag, narrative metadata, and the full event history.
type Track struct {
	Heat      int
	Active    bool
	StartedAt time.Time
	EndedAt   *time.Time
	Notes     string
	Events    []HeatEvent
}

// NewTrack returns an active zero-heat track started at now.
func NewTrack(notes string, now time.Time) Track {
	return Track{
		Active:    true,
		StartedAt: now.UTC(),
		Notes:     notes,
	}
}

// AddHeat appends a heat event and adjusts the accumulated heat. Heat never
// drops below zero: a negative delta that would cross the floor clamps at 0.
// Adding heat to an inactive track is an error, not a silent no-op.
func (t *Track) AddHeat(delta int, reason string, now time.Time) error {
	if !t.Active {
		return apperrors.WithMetadata(apperrors.CodeLedgerInactive,
			"cannot add heat to an inactive ledger",
			map[string]string{"delta": strconv.Itoa(delta)})
	}
	t.Heat += delta
	if t.Heat < 0 {
		t.Heat = 0
	}
	t.Events = append(t.Events, HeatEvent{
		Delta:     delta,
		Reason:    reason,
		HeatAfter: t.Heat,
		At:        now.UTC(),
	})
	return nil
}

// End deactivates the track, records the end time, and appends a terminal
// zero-delta event. Ending an already-inactive track has no effect; the
// return value reports whether this call performed the transition.
func (t *Track) End(reason string, now time.Time) bool {
	if !t.Active {
		return false
	}
	t.Active = false
	ended := now.UTC()
	t.EndedAt = &ended
	t.Events = append(t.Events, HeatEvent{
		Reason:    "ended: " + reason,
		HeatAfter: t.Heat,
		At:        ended,
	})
	return true
}

// RequiresMatch reports whether the participants must wrestle on the next show.
func (t Track) RequiresMatch() bool {
	return t.Active && t.Heat >= HeatRequiresMatch
}

// EligibleForResolution reports whether a resolution attempt may be made.
func (t Track) EligibleForResolution() bool {
	return t.Active && t.Heat >= HeatEligibleForResolution
}

// RequiresStipulationMatch reports whether the storyline demands a stipulation match.
func (t Track) RequiresStipulationMatch() bool {
	return t.Active && t.Heat >= HeatRequiresStipulation
}

// DurationDays returns whole days between the track start and either its end
// or now.
func (t Track) DurationDays(now time.Time) int {
	end := now.UTC()
	if t.EndedAt != nil {
		end = *t.EndedAt
	}
	days := int(end.Sub(t.StartedAt).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// Ledger is the capability shared by all variants. The orchestrator
// dispatches through it instead of switching on concrete types.
type Ledger interface {
	LedgerID() string
	LedgerKind() Kind
	// AffectedWrestlerIDs lists the wrestlers a heat change touches, used
	// for change notifications. Faction rivalries report none: membership
	// is resolved by the directory, not stored on the ledger.
	AffectedWrestlerIDs() []string
	// HeatTrack exposes the shared mutable heat state.
	HeatTrack() *Track
}
