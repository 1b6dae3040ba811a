package rivalry

import (
	"strings"
	"time"

	apperrors "github.com/louisbranch/heelturn.club/internal/platform/errors"
)

// FactionRivalry is the faction-level ledger variant: heat between exactly
// two stables. Like Rivalry, the pair is unordered.
type FactionRivalry struct {
	ID       string
	FactionA string
	FactionB string
	Track
}

// NewFactionRivalry creates an active zero-heat rivalry between two factions.
func NewFactionRivalry(id, factionA, factionB, notes string, now time.Time) (FactionRivalry, error) {
	factionA = strings.TrimSpace(factionA)
	factionB = strings.TrimSpace(factionB)
	if factionA == "" || factionB == "" {
		return FactionRivalry{}, apperrors.New(apperrors.CodeFactionNotFound, "both faction ids are required")
	}
	if factionA == factionB {
		return FactionRivalry{}, apperrors.New(apperrors.CodeFactionRivalrySelfPair, "a faction rivalry needs two distinct factions")
	}
	return FactionRivalry{
		ID:       id,
		FactionA: factionA,
		FactionB: factionB,
		Track:    NewTrack(notes, now),
	}, nil
}

// Involves reports whether the faction is one of the two participants.
func (f FactionRivalry) Involves(factionID string) bool {
	return factionID == f.FactionA || factionID == f.FactionB
}

// SamePair reports whether the unordered pair (a, b) matches this rivalry.
func (f FactionRivalry) SamePair(a, b string) bool {
	return (f.FactionA == a && f.FactionB == b) || (f.FactionA == b && f.FactionB == a)
}

// Opponent returns the other faction in the rivalry.
func (f FactionRivalry) Opponent(factionID string) (string, error) {
	switch factionID {
	case f.FactionA:
		return f.FactionB, nil
	case f.FactionB:
		return f.FactionA, nil
	default:
		return "", apperrors.New(apperrors.CodeFactionRivalryNotFound, "faction is not part of this rivalry")
	}
}

// LedgerID implements Ledger.
func (f *FactionRivalry) LedgerID() string { return f.ID }

// LedgerKind implements Ledger.
func (f *FactionRivalry) LedgerKind() Kind { return KindFaction }

// AffectedWrestlerIDs implements Ledger. Faction membership lives in the
// directory, so a faction ledger reports no wrestlers of its own.
func (f *FactionRivalry) AffectedWrestlerIDs() []string { return nil }

// HeatTrack implements Ledger.
func (f *FactionRivalry) HeatTrack() *Track { return &f.Track }
