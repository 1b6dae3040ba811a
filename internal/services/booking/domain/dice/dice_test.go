package dice

import "testing"

func TestSeededRollerDeterminism(t *testing.T) {
	first := NewSeeded(42)
	second := NewSeeded(42)
	for i := 0; i < 20; i++ {
		a, err := first.Roll(D20)
		if err != nil {
			t.Fatalf("roll: %v", err)
		}
		b, err := second.Roll(D20)
		if err != nil {
			t.Fatalf("roll: %v", err)
		}
		if a != b {
			t.Fatalf("roll %d: expected identical sequences, got %d and %d", i, a, b)
		}
	}
}

func TestSeededRollerRange(t *testing.T) {
	roller := NewSeeded(7)
	for i := 0; i < 200; i++ {
		value, err := roller.Roll(D20)
		if err != nil {
			t.Fatalf("roll: %v", err)
		}
		if value < 1 || value > D20 {
			t.Fatalf("expected value in [1, %d], got %d", D20, value)
		}
	}
}

func TestRollInvalidSides(t *testing.T) {
	roller := NewSeeded(1)
	if _, err := roller.Roll(0); err != ErrInvalidSides {
		t.Fatalf("expected ErrInvalidSides, got %v", err)
	}
}
