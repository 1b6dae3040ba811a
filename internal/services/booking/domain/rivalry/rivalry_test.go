package rivalry

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/louisbranch/heelturn.club/internal/platform/errors"
)

func TestNewRivalry(t *testing.T) {
	r, err := NewRivalry("riv-1", "w-apex", "w-brick", "contract dispute", testStart)
	if err != nil {
		t.Fatalf("new rivalry: %v", err)
	}
	if !r.Active || r.Heat != 0 {
		t.Fatalf("expected active zero-heat rivalry, got active=%v heat=%d", r.Active, r.Heat)
	}
	if !r.SamePair("w-brick", "w-apex") {
		t.Fatal("expected pair match to be order-insensitive")
	}
	if !r.Involves("w-apex") || r.Involves("w-ghost") {
		t.Fatal("unexpected Involves result")
	}
}

func TestNewRivalryRejectsSelfPair(t *testing.T) {
	_, err := NewRivalry("riv-1", "w-apex", "w-apex", "", testStart)
	if !errors.Is(err, apperrors.New(apperrors.CodeRivalrySelfPair, "")) {
		t.Fatalf("expected RIVALRY_SELF_PAIR, got %v", err)
	}
}

func TestNewRivalryRequiresBothWrestlers(t *testing.T) {
	_, err := NewRivalry("riv-1", "w-apex", "  ", "", testStart)
	if !errors.Is(err, apperrors.New(apperrors.CodeRivalryEmptyWrestler, "")) {
		t.Fatalf("expected RIVALRY_EMPTY_WRESTLER_ID, got %v", err)
	}
}

func TestRivalryLedgerCapability(t *testing.T) {
	r, err := NewRivalry("riv-1", "w-apex", "w-brick", "", testStart)
	if err != nil {
		t.Fatalf("new rivalry: %v", err)
	}
	var ledger Ledger = &r
	if ledger.LedgerKind() != KindIndividual {
		t.Fatalf("expected individual kind, got %v", ledger.LedgerKind())
	}
	ids := ledger.AffectedWrestlerIDs()
	if len(ids) != 2 || ids[0] != "w-apex" || ids[1] != "w-brick" {
		t.Fatalf("unexpected affected wrestlers %v", ids)
	}
	if err := ledger.HeatTrack().AddHeat(4, "opener", testStart); err != nil {
		t.Fatalf("add heat through capability: %v", err)
	}
	if r.Heat != 4 {
		t.Fatalf("expected mutation through capability, heat = %d", r.Heat)
	}
}

func TestRivalryStats(t *testing.T) {
	r, err := NewRivalry("riv-1", "w-apex", "w-brick", "", testStart)
	if err != nil {
		t.Fatalf("new rivalry: %v", err)
	}
	for i := 0; i < 5; i++ {
		if err := r.AddHeat(5, "match", testStart); err != nil {
			t.Fatalf("add heat: %v", err)
		}
	}
	stats := r.Stats(DefaultIntensityTable(), testStart.Add(48*time.Hour))
	if stats.Heat != 25 || stats.Intensity != "intense" {
		t.Fatalf("expected 25 intense, got %d %q", stats.Heat, stats.Intensity)
	}
	if !stats.RequiresMatch || !stats.EligibleForResolution || stats.RequiresStipulationMatch {
		t.Fatalf("unexpected threshold flags: %+v", stats)
	}
	if stats.HeatEventCount != 5 || stats.DurationDays != 2 {
		t.Fatalf("expected 5 events over 2 days, got %d over %d", stats.HeatEventCount, stats.DurationDays)
	}
}
