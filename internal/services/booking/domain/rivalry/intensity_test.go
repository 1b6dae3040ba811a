package rivalry

import (
	"strings"
	"testing"
)

func TestDefaultIntensityTableBands(t *testing.T) {
	table := DefaultIntensityTable()
	if err := table.Validate(); err != nil {
		t.Fatalf("default table invalid: %v", err)
	}
	tests := []struct {
		heat int
		want string
	}{
		{0, "simmering"},
		{9, "simmering"},
		{10, "heated"},
		{19, "heated"},
		{20, "intense"},
		{29, "intense"},
		{30, "explosive"},
		{120, "explosive"},
	}
	for _, tc := range tests {
		if got := table.Classify(tc.heat).Name; got != tc.want {
			t.Fatalf("heat %d: expected %q, got %q", tc.heat, tc.want, got)
		}
	}
}

func TestLoadIntensityTable(t *testing.T) {
	input := `
bands:
  - name: cold
    min_heat: 0
    max_heat: 14
    multiplier: 1.0
  - name: molten
    min_heat: 15
    max_heat: -1
    multiplier: 3.0
`
	table, err := LoadIntensityTable(strings.NewReader(input))
	if err != nil {
		t.Fatalf("load table: %v", err)
	}
	if got := table.Classify(14).Name; got != "cold" {
		t.Fatalf("expected cold, got %q", got)
	}
	if got := table.Multiplier(15); got != 3.0 {
		t.Fatalf("expected multiplier 3.0, got %v", got)
	}
}

func TestLoadIntensityTableRejectsGaps(t *testing.T) {
	input := `
bands:
  - name: cold
    min_heat: 0
    max_heat: 9
    multiplier: 1.0
  - name: molten
    min_heat: 11
    max_heat: -1
    multiplier: 2.0
`
	if _, err := LoadIntensityTable(strings.NewReader(input)); err == nil {
		t.Fatal("expected error for non-contiguous bands")
	}
}

func TestLoadIntensityTableRejectsBoundedTail(t *testing.T) {
	input := `
bands:
  - name: only
    min_heat: 0
    max_heat: 50
    multiplier: 1.0
`
	if _, err := LoadIntensityTable(strings.NewReader(input)); err == nil {
		t.Fatal("expected error for bounded final band")
	}
}

func TestMultiplierFallback(t *testing.T) {
	table := IntensityTable{Bands: []IntensityBand{{Name: "flat", MinHeat: 0, MaxHeat: -1}}}
	if got := table.Multiplier(10); got != 1.0 {
		t.Fatalf("expected fallback multiplier 1.0, got %v", got)
	}
}
