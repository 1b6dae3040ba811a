// Package roster holds the wrestler and faction directory types consumed by
// the heat engine. The directory itself is an external collaborator; the
// engine only reads identity, faction membership, and alignment.
package roster

import "math"

// Alignment describes how a crowd reads a faction.
type Alignment int

const (
	// AlignmentUnspecified represents an unknown alignment value.
	AlignmentUnspecified Alignment = iota
	// AlignmentFace marks a crowd-favorite faction.
	AlignmentFace
	// AlignmentHeel marks a villain faction.
	AlignmentHeel
	// AlignmentTweener marks a faction playing both sides.
	AlignmentTweener
)

func (a Alignment) String() string {
	switch a {
	case AlignmentFace:
		return "face"
	case AlignmentHeel:
		return "heel"
	case AlignmentTweener:
		return "tweener"
	default:
		return "unspecified"
	}
}

// Wrestler is a directory entry for one performer.
type Wrestler struct {
	ID   string
	Name string
}

// Faction is a directory entry for one stable.
type Faction struct {
	ID        string
	Name      string
	Alignment Alignment
	Active    bool
}

// HeatMultiplier scales faction heat by how opposed the two alignments read.
// A face/heel collision draws the most heat; a tweener against either side
// draws some; everything else is neutral.
func HeatMultiplier(a, b Alignment) float64 {
	switch {
	case (a == AlignmentFace && b == AlignmentHeel) || (a == AlignmentHeel && b == AlignmentFace):
		return 2.0
	case a == AlignmentTweener && (b == AlignmentFace || b == AlignmentHeel):
		return 1.5
	case b == AlignmentTweener && (a == AlignmentFace || a == AlignmentHeel):
		return 1.5
	default:
		return 1.0
	}
}

// FactionHeatGain applies the alignment multiplier to a base heat amount,
// rounding to the nearest integer.
func FactionHeatGain(base int, a, b Alignment) int {
	return int(math.Round(float64(base) * HeatMultiplier(a, b)))
}
