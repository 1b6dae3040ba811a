package rivalry

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// IntensityBand is one display tier of accumulated heat. MaxHeat < 0 leaves
// the band unbounded above.
type IntensityBand struct {
	Name       string  `yaml:"name"`
	MinHeat    int     `yaml:"min_heat"`
	MaxHeat    int     `yaml:"max_heat"`
	Multiplier float64 `yaml:"multiplier"`
}

// Contains reports whether the band covers the given heat.
func (b IntensityBand) Contains(heat int) bool {
	if heat < b.MinHeat {
		return false
	}
	return b.MaxHeat < 0 || heat <= b.MaxHeat
}

// IntensityTable is the ordered configuration of intensity bands. The bands
// drive display and filtering only; escalation decisions read the heat
// thresholds directly.
type IntensityTable struct {
	Bands []IntensityBand `yaml:"bands"`
}

// DefaultIntensityTable returns the built-in band configuration.
func DefaultIntensityTable() IntensityTable {
	return IntensityTable{Bands: []IntensityBand{
		{Name: "simmering", MinHeat: 0, MaxHeat: 9, Multiplier: 1.0},
		{Name: "heated", MinHeat: 10, MaxHeat: 19, Multiplier: 1.25},
		{Name: "intense", MinHeat: 20, MaxHeat: 29, Multiplier: 1.5},
		{Name: "explosive", MinHeat: 30, MaxHeat: -1, Multiplier: 2.0},
	}}
}

// LoadIntensityTable reads a YAML band configuration and validates it.
func LoadIntensityTable(r io.Reader) (IntensityTable, error) {
	var table IntensityTable
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&table); err != nil {
		return IntensityTable{}, fmt.Errorf("decode intensity table: %w", err)
	}
	if err := table.Validate(); err != nil {
		return IntensityTable{}, err
	}
	return table, nil
}

// Validate checks that the bands cover [0, ∞) contiguously in order.
func (t IntensityTable) Validate() error {
	if len(t.Bands) == 0 {
		return fmt.Errorf("intensity table needs at least one band")
	}
	next := 0
	for i, band := range t.Bands {
		if band.Name == "" {
			return fmt.Errorf("band %d: name is required", i)
		}
		if band.MinHeat != next {
			return fmt.Errorf("band %q: expected min_heat %d, got %d", band.Name, next, band.MinHeat)
		}
		last := i == len(t.Bands)-1
		if last {
			if band.MaxHeat >= 0 {
				return fmt.Errorf("band %q: the last band must be unbounded (max_heat -1)", band.Name)
			}
			continue
		}
		if band.MaxHeat < band.MinHeat {
			return fmt.Errorf("band %q: max_heat %d is below min_heat %d", band.Name, band.MaxHeat, band.MinHeat)
		}
		next = band.MaxHeat + 1
	}
	return nil
}

// Classify returns the band covering the given heat. Heat below the first
// band maps to the first band.
func (t IntensityTable) Classify(heat int) IntensityBand {
	for _, band := range t.Bands {
		if band.Contains(heat) {
			return band
		}
	}
	if len(t.Bands) == 0 {
		return IntensityBand{}
	}
	return t.Bands[0]
}

// Multiplier returns the heat multiplier of the covering band.
func (t IntensityTable) Multiplier(heat int) float64 {
	band := t.Classify(heat)
	if band.Multiplier <= 0 {
		return 1.0
	}
	return band.Multiplier
}
