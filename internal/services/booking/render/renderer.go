// Package render turns booking events into localized, human-readable copy
// for the booking-desk inbox.
package render

import (
	"encoding/json"
	"strings"

	"golang.org/x/text/message"
)

const (
	// TopicHeatChanged is the template id for ledger heat movements.
	TopicHeatChanged = "booking.heat.changed"
	// TopicResolutionAttempted is the template id for resolution rolls.
	TopicResolutionAttempted = "booking.resolution.attempted"

	defaultGenericTitle = "Booking update"
	defaultGenericBody  = "Something moved on the booking sheet."
)

// Input is one render request for a stored booking event.
type Input struct {
	Topic       string
	PayloadJSON string
}

// Output is localized copy derived from one booking event.
type Output struct {
	Title    string
	BodyText string
}

// Localizer is the minimal message-printer contract required by the renderer.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// HeatPayload is the wire shape for TopicHeatChanged events.
type HeatPayload struct {
	Kind   string `json:"kind"`
	Delta  int    `json:"delta"`
	Heat   int    `json:"heat"`
	Reason string `json:"reason"`
}

// ResolutionPayload is the wire shape for TopicResolutionAttempted events.
type ResolutionPayload struct {
	Kind     string `json:"kind"`
	Resolved bool   `json:"resolved"`
	Total    int    `json:"total"`
	Heat     int    `json:"heat"`
}

// Render returns localized copy for one booking event.
func Render(loc Localizer, input Input) Output {
	switch normalizeToken(input.Topic) {
	case TopicHeatChanged:
		return renderHeatChanged(loc, input)
	case TopicResolutionAttempted:
		return renderResolution(loc, input)
	default:
		return genericOutput(loc)
	}
}

func renderHeatChanged(loc Localizer, input Input) Output {
	payload := HeatPayload{}
	if !decodePayload(input.PayloadJSON, &payload) {
		return genericOutput(loc)
	}

	title := localize(loc, "booking.heat_changed.title")
	body := localize(loc, "booking.heat_changed.body",
		localizedKind(loc, payload.Kind), payload.Delta, payload.Heat, payload.Reason)
	if title == "booking.heat_changed.title" || strings.HasPrefix(body, "booking.heat_changed.body") {
		return genericOutput(loc)
	}
	return Output{Title: title, BodyText: body}
}

func renderResolution(loc Localizer, input Input) Output {
	payload := ResolutionPayload{}
	if !decodePayload(input.PayloadJSON, &payload) {
		return genericOutput(loc)
	}

	title := localize(loc, "booking.resolution.title")
	bodyKey := "booking.resolution_failed.body"
	if payload.Resolved {
		bodyKey = "booking.resolution_success.body"
	}
	body := localize(loc, bodyKey, localizedKind(loc, payload.Kind), payload.Total, payload.Heat)
	if title == "booking.resolution.title" || strings.HasPrefix(body, bodyKey) {
		return genericOutput(loc)
	}
	return Output{Title: title, BodyText: body}
}

func genericOutput(loc Localizer) Output {
	return Output{
		Title:    localizeWithFallback(loc, "booking.generic.title", defaultGenericTitle),
		BodyText: localizeWithFallback(loc, "booking.generic.body", defaultGenericBody),
	}
}

func localizedKind(loc Localizer, raw string) string {
	key := "booking.kind.unknown"
	fallback := "storyline"
	switch normalizeToken(raw) {
	case "individual_rivalry":
		key = "booking.kind.individual_rivalry"
		fallback = "rivalry"
	case "faction_rivalry":
		key = "booking.kind.faction_rivalry"
		fallback = "faction rivalry"
	case "multi_wrestler_feud":
		key = "booking.kind.multi_wrestler_feud"
		fallback = "feud"
	}
	return localizeWithFallback(loc, key, fallback)
}

func decodePayload(raw string, target any) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return true
	}
	return json.Unmarshal([]byte(raw), target) == nil
}

func localize(loc Localizer, key message.Reference, args ...any) string {
	if loc == nil {
		if asString, ok := key.(string); ok {
			return asString
		}
		return ""
	}
	return loc.Sprintf(key, args...)
}

func localizeWithFallback(loc Localizer, key string, fallback string) string {
	value := strings.TrimSpace(localize(loc, key))
	if value == "" || value == key {
		return fallback
	}
	return value
}

func normalizeToken(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
