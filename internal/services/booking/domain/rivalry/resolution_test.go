package rivalry

import (
	"testing"
	"time"
)

func trackWithHeat(heat int) Track {
	track := NewTrack("", testStart)
	if err := track.AddHeat(heat, "setup", testStart); err != nil {
		panic(err)
	}
	return track
}

func TestResolvePairStrictInequality(t *testing.T) {
	// total 31 > heat 25: resolves.
	track := trackWithHeat(25)
	outcome := ResolvePair(&track, 16, 15, testStart)
	if !outcome.Resolved {
		t.Fatalf("expected resolution, got %+v", outcome)
	}
	if outcome.Total != 31 {
		t.Fatalf("expected total 31, got %d", outcome.Total)
	}
	if track.Active {
		t.Fatal("expected track ended on success")
	}

	// total 25 == heat 25: equality must fail.
	track = trackWithHeat(25)
	outcome = ResolvePair(&track, 10, 15, testStart)
	if outcome.Resolved {
		t.Fatal("expected equality to fail")
	}
	if !track.Active {
		t.Fatal("expected track still active after failure")
	}
	if track.Heat != 25 {
		t.Fatalf("expected heat untouched, got %d", track.Heat)
	}
}

func TestResolvePairFailureRecordsAttempt(t *testing.T) {
	track := trackWithHeat(30)
	before := len(track.Events)
	outcome := ResolvePair(&track, 5, 6, testStart)
	if outcome.Resolved || !outcome.Eligible {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if len(track.Events) != before+1 {
		t.Fatalf("expected a zero-delta attempt event, got %d events", len(track.Events))
	}
	last := track.Events[len(track.Events)-1]
	if last.Delta != 0 || last.HeatAfter != 30 {
		t.Fatalf("unexpected attempt event %+v", last)
	}
}

func TestResolvePairBelowThreshold(t *testing.T) {
	track := trackWithHeat(15)
	before := len(track.Events)
	outcome := ResolvePair(&track, 20, 20, testStart)
	if outcome.Resolved || outcome.Eligible {
		t.Fatalf("expected ineligible failure, got %+v", outcome)
	}
	if outcome.Message == "" {
		t.Fatal("expected an eligibility message")
	}
	if track.Heat != 15 || !track.Active || len(track.Events) != before {
		t.Fatal("expected no mutation below the eligibility threshold")
	}
}

func TestResolveFeudExceedsScaledThreshold(t *testing.T) {
	feud := seedFeud(t)
	if err := feud.AddHeat(24, "setup", testStart); err != nil {
		t.Fatalf("add heat: %v", err)
	}
	// threshold = 2*24/3 = 16

	outcome := ResolveFeud(&feud, 16, DefaultFeudThreshold, testStart)
	if outcome.Resolved {
		t.Fatal("expected roll equal to threshold to fail")
	}
	if !feud.Active {
		t.Fatal("expected feud still active")
	}

	outcome = ResolveFeud(&feud, 17, DefaultFeudThreshold, testStart.Add(time.Hour))
	if !outcome.Resolved {
		t.Fatalf("expected roll 17 to beat threshold 16, got %+v", outcome)
	}
	if feud.Active {
		t.Fatal("expected feud ended")
	}
}

func TestResolveFeudIneligible(t *testing.T) {
	feud := seedFeud(t)
	if err := feud.AddHeat(10, "setup", testStart); err != nil {
		t.Fatalf("add heat: %v", err)
	}
	outcome := ResolveFeud(&feud, 20, nil, testStart)
	if outcome.Eligible || outcome.Resolved {
		t.Fatalf("expected ineligible outcome, got %+v", outcome)
	}
	if feud.Heat != 10 || !feud.Active {
		t.Fatal("expected no mutation")
	}
}

func TestResolveFeudCustomPolicy(t *testing.T) {
	feud := seedFeud(t)
	if err := feud.AddHeat(40, "setup", testStart); err != nil {
		t.Fatalf("add heat: %v", err)
	}
	flat := func(heat, participants int) int { return 10 }
	outcome := ResolveFeud(&feud, 11, flat, testStart)
	if !outcome.Resolved {
		t.Fatalf("expected custom policy threshold 10 beaten by 11, got %+v", outcome)
	}
}

func TestDefaultFeudThreshold(t *testing.T) {
	if got := DefaultFeudThreshold(30, 3); got != 20 {
		t.Fatalf("expected 20, got %d", got)
	}
	if got := DefaultFeudThreshold(30, 0); got != 60 {
		t.Fatalf("expected participant floor of 1, got %d", got)
	}
}
