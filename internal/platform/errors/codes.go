// Package errors provides structured error handling for the booking service.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Roster errors
	CodeWrestlerNotFound Code = "WRESTLER_NOT_FOUND"
	CodeFactionNotFound  Code = "FACTION_NOT_FOUND"
	CodeFactionInactive  Code = "FACTION_INACTIVE"

	// Ledger errors
	CodeLedgerInactive Code = "LEDGER_INACTIVE"

	// Rivalry errors
	CodeRivalryNotFound      Code = "RIVALRY_NOT_FOUND"
	CodeRivalrySelfPair      Code = "RIVALRY_SELF_PAIR"
	CodeRivalryEmptyWrestler Code = "RIVALRY_EMPTY_WRESTLER_ID"

	// Faction rivalry errors
	CodeFactionRivalryNotFound Code = "FACTION_RIVALRY_NOT_FOUND"
	CodeFactionRivalrySelfPair Code = "FACTION_RIVALRY_SELF_PAIR"

	// Feud errors
	CodeFeudNotFound        Code = "FEUD_NOT_FOUND"
	CodeFeudEmptyName       Code = "FEUD_EMPTY_NAME"
	CodeFeudDuplicateMember Code = "FEUD_DUPLICATE_MEMBER"
	CodeFeudMemberNotFound  Code = "FEUD_MEMBER_NOT_FOUND"

	// Storyline errors
	CodeStorylineTooFewMembers Code = "STORYLINE_TOO_FEW_MEMBERS"
	CodeStorylineEmptyName     Code = "STORYLINE_EMPTY_NAME"

	// Resolution errors
	CodeResolutionInvalidRoll Code = "RESOLUTION_INVALID_ROLL"

	// Match errors
	CodeMatchTooFewParticipants Code = "MATCH_TOO_FEW_PARTICIPANTS"
	CodeMatchDuplicateEntry     Code = "MATCH_DUPLICATE_ENTRY"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)
