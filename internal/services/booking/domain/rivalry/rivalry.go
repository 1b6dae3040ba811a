package rivalry

import (
	"strings"
	"time"

	apperrors "github.com/louisbranch/heelturn.club/internal/platform/errors"
)

// Rivalry is the individual ledger variant: heat between exactly two
// wrestlers. The pair is unordered; storage lookups must match either order.
type Rivalry struct {
	ID         string
	WrestlerA  string
	WrestlerB  string
	Track
}

// NewRivalry creates an active zero-heat rivalry between two wrestlers.
func NewRivalry(id, wrestlerA, wrestlerB, notes string, now time.Time) (Rivalry, error) {
	wrestlerA = strings.TrimSpace(wrestlerA)
	wrestlerB = strings.TrimSpace(wrestlerB)
	if wrestlerA == "" || wrestlerB == "" {
		return Rivalry{}, apperrors.New(apperrors.CodeRivalryEmptyWrestler, "both wrestler ids are required")
	}
	if wrestlerA == wrestlerB {
		return Rivalry{}, apperrors.New(apperrors.CodeRivalrySelfPair, "a rivalry needs two distinct wrestlers")
	}
	return Rivalry{
		ID:        id,
		WrestlerA: wrestlerA,
		WrestlerB: wrestlerB,
		Track:     NewTrack(notes, now),
	}, nil
}

// Involves reports whether the wrestler is one of the two participants.
func (r Rivalry) Involves(wrestlerID string) bool {
	return wrestlerID == r.WrestlerA || wrestlerID == r.WrestlerB
}

// SamePair reports whether the unordered pair (a, b) matches this rivalry.
func (r Rivalry) SamePair(a, b string) bool {
	return (r.WrestlerA == a && r.WrestlerB == b) || (r.WrestlerA == b && r.WrestlerB == a)
}

// LedgerID implements Ledger.
func (r *Rivalry) LedgerID() string { return r.ID }

// LedgerKind implements Ledger.
func (r *Rivalry) LedgerKind() Kind { return KindIndividual }

// AffectedWrestlerIDs implements Ledger.
func (r *Rivalry) AffectedWrestlerIDs() []string {
	return []string{r.WrestlerA, r.WrestlerB}
}

// HeatTrack implements Ledger.
func (r *Rivalry) HeatTrack() *Track { return &r.Track }

// Stats is a read-only summary of one rivalry, used by dashboards.
type Stats struct {
	RivalryID                string
	Heat                     int
	Intensity                string
	RequiresMatch            bool
	EligibleForResolution    bool
	RequiresStipulationMatch bool
	DurationDays             int
	Active                   bool
	HeatEventCount           int
}

// Stats summarizes the rivalry against the provided intensity table.
func (r Rivalry) Stats(table IntensityTable, now time.Time) Stats {
	return Stats{
		RivalryID:                r.ID,
		Heat:                     r.Heat,
		Intensity:                table.Classify(r.Heat).Name,
		RequiresMatch:            r.RequiresMatch(),
		EligibleForResolution:    r.EligibleForResolution(),
		RequiresStipulationMatch: r.RequiresStipulationMatch(),
		DurationDays:             r.DurationDays(now),
		Active:                   r.Active,
		HeatEventCount:           len(r.Events),
	}
}
