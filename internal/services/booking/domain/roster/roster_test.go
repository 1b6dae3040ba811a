package roster

import "testing"

func TestHeatMultiplier(t *testing.T) {
	tests := []struct {
		name string
		a, b Alignment
		want float64
	}{
		{"face vs heel", AlignmentFace, AlignmentHeel, 2.0},
		{"heel vs face", AlignmentHeel, AlignmentFace, 2.0},
		{"tweener vs face", AlignmentTweener, AlignmentFace, 1.5},
		{"heel vs tweener", AlignmentHeel, AlignmentTweener, 1.5},
		{"face vs face", AlignmentFace, AlignmentFace, 1.0},
		{"tweener vs tweener", AlignmentTweener, AlignmentTweener, 1.0},
		{"unspecified vs heel", AlignmentUnspecified, AlignmentHeel, 1.0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := HeatMultiplier(tc.a, tc.b); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestFactionHeatGainRounds(t *testing.T) {
	if got := FactionHeatGain(1, AlignmentFace, AlignmentHeel); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if got := FactionHeatGain(1, AlignmentTweener, AlignmentFace); got != 2 {
		t.Fatalf("expected 2 (1.5 rounds up), got %d", got)
	}
	if got := FactionHeatGain(1, AlignmentFace, AlignmentFace); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}
