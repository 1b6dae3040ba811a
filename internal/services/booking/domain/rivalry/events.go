package rivalry

import (
	"context"
	"time"
)

// HeatChanged notifies observers that a ledger's heat moved. WrestlerIDs
// carries the affected wrestlers so consumers can display cross-cutting
// effects without re-deriving participant lists.
type HeatChanged struct {
	LedgerID    string
	Kind        Kind
	Delta       int
	Heat        int
	Reason      string
	WrestlerIDs []string
	At          time.Time
}

// ResolutionEvent notifies observers of a resolution attempt and its rolls.
type ResolutionEvent struct {
	LedgerID    string
	Kind        Kind
	Resolved    bool
	Roll1       int
	Roll2       int
	Total       int
	Heat        int
	WrestlerIDs []string
	At          time.Time
}

// Sink receives change notifications from the engine. Delivery guarantees
// are the sink's concern; the engine emits and moves on.
type Sink interface {
	HeatChanged(ctx context.Context, event HeatChanged) error
	ResolutionAttempted(ctx context.Context, event ResolutionEvent) error
}

type nopSink struct{}

func (nopSink) HeatChanged(context.Context, HeatChanged) error { return nil }

func (nopSink) ResolutionAttempted(context.Context, ResolutionEvent) error { return nil }

// NopSink returns a Sink that discards every event.
func NopSink() Sink { return nopSink{} }
