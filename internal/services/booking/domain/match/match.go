// Package match defines the completed-match record consumed by the heat
// engine and the pure heat-gain math derived from it.
package match

import (
	"strings"

	apperrors "github.com/louisbranch/heelturn.club/internal/platform/errors"
)

// Heat contributions for one wrestler pair sharing a match.
const (
	baseHeatGain        = 2
	titleMatchHeatGain  = 3
	stipulationHeatGain = 2
	winnerHeatGain      = 1
)

// feudOverlapHeatPerMember scales feud heat by how much of the cast was in
// the match.
const feudOverlapHeatPerMember = 2

// Outcome is a completed match as reported by match adjudication. WinnerID
// is empty for draws and no-contests.
type Outcome struct {
	Participants []string
	TitleMatch   bool
	Stipulations bool
	WinnerID     string
	// Rules is the human-readable rules summary used in heat event reasons.
	Rules string
}

// Validate checks the outcome is well-formed: at least two distinct
// participants, and a winner (when declared) drawn from them.
func (o Outcome) Validate() error {
	if len(o.Participants) < 2 {
		return apperrors.New(apperrors.CodeMatchTooFewParticipants, "a match needs at least two participants")
	}
	seen := make(map[string]struct{}, len(o.Participants))
	for _, p := range o.Participants {
		if strings.TrimSpace(p) == "" {
			return apperrors.New(apperrors.CodeMatchTooFewParticipants, "participant ids must not be empty")
		}
		if _, dup := seen[p]; dup {
			return apperrors.WithMetadata(apperrors.CodeMatchDuplicateEntry,
				"participant listed twice", map[string]string{"wrestler_id": p})
		}
		seen[p] = struct{}{}
	}
	if o.WinnerID != "" {
		if _, ok := seen[o.WinnerID]; !ok {
			return apperrors.WithMetadata(apperrors.CodeMatchDuplicateEntry,
				"winner is not a match participant", map[string]string{"wrestler_id": o.WinnerID})
		}
	}
	return nil
}

// Pairs returns every unordered participant pair in input order.
func (o Outcome) Pairs() [][2]string {
	var pairs [][2]string
	for i := 0; i < len(o.Participants); i++ {
		for j := i + 1; j < len(o.Participants); j++ {
			pairs = append(pairs, [2]string{o.Participants[i], o.Participants[j]})
		}
	}
	return pairs
}

// PairHeatGain computes the heat one pair accumulates from this match:
// a base for sharing the ring, more for title stakes and stipulations, and
// a little more when one of the pair won.
func (o Outcome) PairHeatGain(a, b string) int {
	gain := baseHeatGain
	if o.TitleMatch {
		gain += titleMatchHeatGain
	}
	if o.Stipulations {
		gain += stipulationHeatGain
	}
	if o.WinnerID != "" && (o.WinnerID == a || o.WinnerID == b) {
		gain += winnerHeatGain
	}
	return gain
}

// FeudOverlapGain computes the heat a feud accumulates when overlap of its
// cast shared this match. Fewer than two members together produces nothing.
func FeudOverlapGain(overlap int) int {
	if overlap < 2 {
		return 0
	}
	return overlap * feudOverlapHeatPerMember
}

// RulesSummary returns the rules text for heat event reasons, falling back
// to a standard-match label.
func (o Outcome) RulesSummary() string {
	if strings.TrimSpace(o.Rules) != "" {
		return o.Rules
	}
	return "standard match"
}
