package rivalry

// Role is the narrative label assigned to a feud participant.
type Role int

const (
	// RoleUnspecified represents an invalid role value.
	RoleUnspecified Role = iota
	// RoleAntagonist is the lead villain of a feud.
	RoleAntagonist
	// RoleProtagonist is the lead hero of a feud.
	RoleProtagonist
	// RoleSecondaryAntagonist backs up the lead villain in larger casts.
	RoleSecondaryAntagonist
	// RoleSecondaryProtagonist backs up the lead hero in larger casts.
	RoleSecondaryProtagonist
	// RoleNeutral is every participant without a lead role.
	RoleNeutral
)

func (r Role) String() string {
	switch r {
	case RoleAntagonist:
		return "antagonist"
	case RoleProtagonist:
		return "protagonist"
	case RoleSecondaryAntagonist:
		return "secondary_antagonist"
	case RoleSecondaryProtagonist:
		return "secondary_protagonist"
	case RoleNeutral:
		return "neutral"
	default:
		return "unspecified"
	}
}

// RoleFor maps a participant's draft order into a narrative role. Leads are
// always the first two entrants; secondary leads only exist once the cast is
// large enough to support them.
func RoleFor(index, total int) Role {
	switch {
	case index == 0:
		return RoleAntagonist
	case index == 1:
		return RoleProtagonist
	case index == 2 && total > 3:
		return RoleSecondaryAntagonist
	case index == 3 && total > 4:
		return RoleSecondaryProtagonist
	default:
		return RoleNeutral
	}
}
