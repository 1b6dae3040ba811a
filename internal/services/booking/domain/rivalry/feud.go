package rivalry

import (
	"strings"
	"time"

	apperrors "github.com/louisbranch/heelturn.club/internal/platform/errors"
)

// Member is one wrestler's participation in a feud. Removal keeps the row
// with a leave timestamp instead of deleting it, preserving the feud's cast
// history.
type Member struct {
	WrestlerID string
	Role       Role
	Active     bool
	JoinedAt   time.Time
	LeftAt     *time.Time
	LeftReason string
}

// Feud is the multi-wrestler ledger variant: three or more wrestlers with
// narrative roles drawn from their draft order. Membership may change over
// the feud's life; the heat track is shared by the whole cast.
type Feud struct {
	ID          string
	Name        string
	Description string
	Members     []Member
	Track
}

// NewFeud creates an active zero-heat feud with no members yet.
func NewFeud(id, name, description, notes string, now time.Time) (Feud, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Feud{}, apperrors.New(apperrors.CodeFeudEmptyName, "feud name is required")
	}
	return Feud{
		ID:          id,
		Name:        name,
		Description: description,
		Track:       NewTrack(notes, now),
	}, nil
}

// AddMember enrolls a wrestler with the given role. A wrestler may rejoin a
// feud they previously left, but not hold two active memberships at once.
func (f *Feud) AddMember(wrestlerID string, role Role, now time.Time) error {
	wrestlerID = strings.TrimSpace(wrestlerID)
	if wrestlerID == "" {
		return apperrors.New(apperrors.CodeRivalryEmptyWrestler, "wrestler id is required")
	}
	if f.HasMember(wrestlerID) {
		return apperrors.WithMetadata(apperrors.CodeFeudDuplicateMember,
			"wrestler is already in the feud",
			map[string]string{"wrestler_id": wrestlerID})
	}
	f.Members = append(f.Members, Member{
		WrestlerID: wrestlerID,
		Role:       role,
		Active:     true,
		JoinedAt:   now.UTC(),
	})
	return nil
}

// RemoveMember marks a wrestler's membership as left with a reason.
func (f *Feud) RemoveMember(wrestlerID, reason string, now time.Time) error {
	for i := range f.Members {
		if f.Members[i].WrestlerID == wrestlerID && f.Members[i].Active {
			left := now.UTC()
			f.Members[i].Active = false
			f.Members[i].LeftAt = &left
			f.Members[i].LeftReason = reason
			return nil
		}
	}
	return apperrors.WithMetadata(apperrors.CodeFeudMemberNotFound,
		"wrestler is not an active feud member",
		map[string]string{"wrestler_id": wrestlerID})
}

// HasMember reports whether the wrestler holds an active membership.
func (f Feud) HasMember(wrestlerID string) bool {
	for _, m := range f.Members {
		if m.WrestlerID == wrestlerID && m.Active {
			return true
		}
	}
	return false
}

// ActiveMembers returns the current cast.
func (f Feud) ActiveMembers() []Member {
	var active []Member
	for _, m := range f.Members {
		if m.Active {
			active = append(active, m)
		}
	}
	return active
}

// ActiveWrestlerIDs returns the ids of the current cast.
func (f Feud) ActiveWrestlerIDs() []string {
	var ids []string
	for _, m := range f.Members {
		if m.Active {
			ids = append(ids, m.WrestlerID)
		}
	}
	return ids
}

// MembersByRole returns active members holding the given role. Roles are not
// unique; several members may share RoleNeutral.
func (f Feud) MembersByRole(role Role) []Member {
	var matched []Member
	for _, m := range f.Members {
		if m.Active && m.Role == role {
			matched = append(matched, m)
		}
	}
	return matched
}

// Overlap counts how many of the given wrestlers are active feud members.
func (f Feud) Overlap(wrestlerIDs []string) int {
	count := 0
	for _, id := range wrestlerIDs {
		if f.HasMember(id) {
			count++
		}
	}
	return count
}

// EndFeud deactivates the track and every active membership.
func (f *Feud) EndFeud(reason string, now time.Time) bool {
	if !f.Track.End(reason, now) {
		return false
	}
	left := now.UTC()
	for i := range f.Members {
		if f.Members[i].Active {
			f.Members[i].Active = false
			f.Members[i].LeftAt = &left
			f.Members[i].LeftReason = "feud ended: " + reason
		}
	}
	return true
}

// LedgerID implements Ledger.
func (f *Feud) LedgerID() string { return f.ID }

// LedgerKind implements Ledger.
func (f *Feud) LedgerKind() Kind { return KindFeud }

// AffectedWrestlerIDs implements Ledger.
func (f *Feud) AffectedWrestlerIDs() []string { return f.ActiveWrestlerIDs() }

// HeatTrack implements Ledger.
func (f *Feud) HeatTrack() *Track { return &f.Track }
