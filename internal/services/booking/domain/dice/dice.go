// Package dice implements the dice-rolling logic for storyline resolution.
package dice

import (
	"errors"
	"math/rand"
	"sync"
	"time"
)

// D20 is the die used for resolution attempts.
const D20 = 20

// ErrInvalidSides indicates a die specification with a non-positive side count.
var ErrInvalidSides = errors.New("dice must have positive sides")

// Roller produces die results. Implementations must return values in [1, sides].
type Roller interface {
	Roll(sides int) (int, error)
}

// SeededRoller is a deterministic Roller backed by a seeded source.
//
// Rolls drawn from the same seed in the same order always produce the same
// sequence, which keeps resolution outcomes reproducible in tests. The
// roller serializes access to its source, so a single instance may be shared
// across goroutines.
type SeededRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeeded returns a Roller producing the deterministic sequence for seed.
func NewSeeded(seed int64) *SeededRoller {
	return &SeededRoller{rng: rand.New(rand.NewSource(seed))}
}

// NewRandom returns a Roller seeded from the current time.
func NewRandom() *SeededRoller {
	return NewSeeded(time.Now().UnixNano())
}

// Roll returns a uniform value in [1, sides].
func (r *SeededRoller) Roll(sides int) (int, error) {
	if sides <= 0 {
		return 0, ErrInvalidSides
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(sides) + 1, nil
}
