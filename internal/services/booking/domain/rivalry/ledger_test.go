package rivalry

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/louisbranch/heelturn.club/internal/platform/errors"
)

var testStart = time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)

func TestAddHeatAccumulatesAndRecordsEvents(t *testing.T) {
	track := NewTrack("house show grudge", testStart)

	if err := track.AddHeat(8, "title match", testStart); err != nil {
		t.Fatalf("add heat: %v", err)
	}
	if err := track.AddHeat(2, "post-match brawl", testStart.Add(time.Hour)); err != nil {
		t.Fatalf("add heat: %v", err)
	}

	if track.Heat != 10 {
		t.Fatalf("expected heat 10, got %d", track.Heat)
	}
	if len(track.Events) != 2 {
		t.Fatalf("expected 2 heat events, got %d", len(track.Events))
	}
	if track.Events[0].HeatAfter != 8 || track.Events[1].HeatAfter != 10 {
		t.Fatalf("expected running totals 8 and 10, got %d and %d",
			track.Events[0].HeatAfter, track.Events[1].HeatAfter)
	}
	if track.Events[1].Reason != "post-match brawl" {
		t.Fatalf("unexpected reason %q", track.Events[1].Reason)
	}
}

func TestAddHeatClampsAtZero(t *testing.T) {
	track := NewTrack("", testStart)
	if err := track.AddHeat(3, "opener", testStart); err != nil {
		t.Fatalf("add heat: %v", err)
	}
	if err := track.AddHeat(-10, "apology segment", testStart); err != nil {
		t.Fatalf("add heat: %v", err)
	}
	if track.Heat != 0 {
		t.Fatalf("expected heat clamped at 0, got %d", track.Heat)
	}
	if track.Events[1].HeatAfter != 0 {
		t.Fatalf("expected event to record clamped total, got %d", track.Events[1].HeatAfter)
	}
}

func TestAddHeatMonotonicNonNegative(t *testing.T) {
	track := NewTrack("", testStart)
	previous := 0
	deltas := []int{0, 1, 5, 0, 12, 3}
	for _, delta := range deltas {
		if err := track.AddHeat(delta, "event", testStart); err != nil {
			t.Fatalf("add heat: %v", err)
		}
		if track.Heat < previous {
			t.Fatalf("heat decreased from %d to %d with non-negative delta", previous, track.Heat)
		}
		previous = track.Heat
	}
}

func TestAddHeatInactiveTrack(t *testing.T) {
	track := NewTrack("", testStart)
	track.End("storyline dropped", testStart)

	err := track.AddHeat(5, "late event", testStart)
	if err == nil {
		t.Fatal("expected error adding heat to inactive track")
	}
	if !errors.Is(err, apperrors.New(apperrors.CodeLedgerInactive, "")) {
		t.Fatalf("expected LEDGER_INACTIVE, got %v", err)
	}
	if track.Heat != 0 {
		t.Fatalf("expected heat unchanged, got %d", track.Heat)
	}
}

func TestEndIsIdempotent(t *testing.T) {
	track := NewTrack("", testStart)
	if !track.End("blowoff match", testStart) {
		t.Fatal("expected first End to transition")
	}
	eventsAfterFirst := len(track.Events)
	if track.End("again", testStart.Add(time.Hour)) {
		t.Fatal("expected second End to be a no-op")
	}
	if len(track.Events) != eventsAfterFirst {
		t.Fatalf("expected no extra events, got %d", len(track.Events))
	}
	if track.EndedAt == nil || !track.EndedAt.Equal(testStart) {
		t.Fatalf("expected ended at %v, got %v", testStart, track.EndedAt)
	}
}

func TestThresholdQueries(t *testing.T) {
	tests := []struct {
		heat                  int
		requiresMatch         bool
		eligibleForResolution bool
		requiresStipulation   bool
	}{
		{0, false, false, false},
		{9, false, false, false},
		{10, true, false, false},
		{19, true, false, false},
		{20, true, true, false},
		{29, true, true, false},
		{30, true, true, true},
	}
	for _, tc := range tests {
		track := Track{Heat: tc.heat, Active: true}
		if got := track.RequiresMatch(); got != tc.requiresMatch {
			t.Fatalf("heat %d: RequiresMatch = %v", tc.heat, got)
		}
		if got := track.EligibleForResolution(); got != tc.eligibleForResolution {
			t.Fatalf("heat %d: EligibleForResolution = %v", tc.heat, got)
		}
		if got := track.RequiresStipulationMatch(); got != tc.requiresStipulation {
			t.Fatalf("heat %d: RequiresStipulationMatch = %v", tc.heat, got)
		}
	}
}

func TestThresholdQueriesInactive(t *testing.T) {
	track := Track{Heat: 35, Active: false}
	if track.RequiresMatch() || track.EligibleForResolution() || track.RequiresStipulationMatch() {
		t.Fatal("inactive tracks must not report threshold flags")
	}
}

func TestDurationDays(t *testing.T) {
	track := NewTrack("", testStart)
	if got := track.DurationDays(testStart.Add(49 * time.Hour)); got != 2 {
		t.Fatalf("expected 2 days, got %d", got)
	}
	track.End("done", testStart.Add(72*time.Hour))
	if got := track.DurationDays(testStart.Add(1000 * time.Hour)); got != 3 {
		t.Fatalf("expected duration fixed at end time, got %d", got)
	}
}
