// Package storyline defines the branch hooks the heat engine hands to the
// narrative-branching subsystem. The engine creates hooks; it never
// interprets branch content.
package storyline

import (
	"strings"
	"time"

	apperrors "github.com/louisbranch/heelturn.club/internal/platform/errors"
)

// BranchCategory classifies a branch hook for the branching subsystem.
type BranchCategory int

const (
	// CategoryUnspecified represents an invalid category value.
	CategoryUnspecified BranchCategory = iota
	// CategoryRivalryEscalation marks branches escalating an individual rivalry.
	CategoryRivalryEscalation
	// CategoryFactionDynamics marks branches driving faction-war storylines.
	CategoryFactionDynamics
)

func (c BranchCategory) String() string {
	switch c {
	case CategoryRivalryEscalation:
		return "rivalry_escalation"
	case CategoryFactionDynamics:
		return "faction_dynamics"
	default:
		return "unspecified"
	}
}

// DefaultPriority returns the category's booking priority, used when the
// caller does not supply one.
func (c BranchCategory) DefaultPriority() int {
	switch c {
	case CategoryRivalryEscalation:
		return 7
	case CategoryFactionDynamics:
		return 8
	default:
		return 5
	}
}

// BranchHook is one pending narrative branch handed to the branching
// subsystem.
type BranchHook struct {
	ID          string
	Name        string
	Description string
	Category    BranchCategory
	Priority    int
	Active      bool
	CreatedAt   time.Time
}

// NewBranchHook creates an active branch hook. A non-positive priority
// falls back to the category default.
func NewBranchHook(id, name, description string, category BranchCategory, priority int, now time.Time) (BranchHook, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return BranchHook{}, apperrors.New(apperrors.CodeStorylineEmptyName, "branch hook name is required")
	}
	if priority <= 0 {
		priority = category.DefaultPriority()
	}
	return BranchHook{
		ID:          id,
		Name:        name,
		Description: description,
		Category:    category,
		Priority:    priority,
		Active:      true,
		CreatedAt:   now.UTC(),
	}, nil
}
