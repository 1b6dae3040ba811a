package rivalry

import "testing"

func TestRoleForDraftOrder(t *testing.T) {
	tests := []struct {
		index, total int
		want         Role
	}{
		{0, 5, RoleAntagonist},
		{1, 5, RoleProtagonist},
		{2, 5, RoleSecondaryAntagonist},
		{3, 5, RoleSecondaryProtagonist},
		{4, 5, RoleNeutral},
		{2, 3, RoleNeutral},
		{3, 4, RoleNeutral},
		{0, 2, RoleAntagonist},
		{1, 2, RoleProtagonist},
		{7, 10, RoleNeutral},
	}
	for _, tc := range tests {
		if got := RoleFor(tc.index, tc.total); got != tc.want {
			t.Fatalf("RoleFor(%d, %d) = %v, want %v", tc.index, tc.total, got, tc.want)
		}
	}
}

func TestRoleForDeterministic(t *testing.T) {
	for i := 0; i < 6; i++ {
		first := RoleFor(i, 6)
		second := RoleFor(i, 6)
		if first != second {
			t.Fatalf("RoleFor(%d, 6) not deterministic: %v vs %v", i, first, second)
		}
	}
}

func TestRoleStrings(t *testing.T) {
	if RoleAntagonist.String() != "antagonist" || RoleNeutral.String() != "neutral" {
		t.Fatal("unexpected role strings")
	}
}
