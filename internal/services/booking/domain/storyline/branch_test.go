package storyline

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/louisbranch/heelturn.club/internal/platform/errors"
)

var testNow = time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)

func TestNewBranchHook(t *testing.T) {
	hook, err := NewBranchHook("branch-1", "Invasion Escalates", "heat spike", CategoryRivalryEscalation, 0, testNow)
	if err != nil {
		t.Fatalf("new branch hook: %v", err)
	}
	if !hook.Active {
		t.Fatal("expected new hook to be active")
	}
	if hook.Priority != 7 {
		t.Fatalf("expected default priority 7, got %d", hook.Priority)
	}
	if !hook.CreatedAt.Equal(testNow) {
		t.Fatalf("expected created at %v, got %v", testNow, hook.CreatedAt)
	}
}

func TestNewBranchHookExplicitPriority(t *testing.T) {
	hook, err := NewBranchHook("branch-2", "Faction War", "", CategoryFactionDynamics, 3, testNow)
	if err != nil {
		t.Fatalf("new branch hook: %v", err)
	}
	if hook.Priority != 3 {
		t.Fatalf("expected explicit priority 3, got %d", hook.Priority)
	}
}

func TestNewBranchHookRequiresName(t *testing.T) {
	_, err := NewBranchHook("branch-3", "  ", "", CategoryFactionDynamics, 0, testNow)
	if !errors.Is(err, apperrors.New(apperrors.CodeStorylineEmptyName, "")) {
		t.Fatalf("expected empty-name error, got %v", err)
	}
}

func TestDefaultPriority(t *testing.T) {
	tests := []struct {
		category BranchCategory
		want     int
	}{
		{CategoryRivalryEscalation, 7},
		{CategoryFactionDynamics, 8},
		{CategoryUnspecified, 5},
	}
	for _, tc := range tests {
		if got := tc.category.DefaultPriority(); got != tc.want {
			t.Fatalf("%s: expected priority %d, got %d", tc.category, tc.want, got)
		}
	}
}
