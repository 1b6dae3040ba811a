package render

import (
	"fmt"
	"testing"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestRenderHeatChangedLocalized(t *testing.T) {
	t.Parallel()

	loc := fakeLocalizer{values: map[string]string{
		"booking.generic.title":           "Booking update",
		"booking.generic.body":            "Something moved on the booking sheet.",
		"booking.kind.individual_rivalry": "rivalry",
		"booking.heat_changed.title":      "Heat update",
		"booking.heat_changed.body":       "The %s moved %d heat (now %d): %s",
		"booking.resolution.title":        "Resolution attempt",
		"booking.resolution_success.body": "The %s is settled: the dice came up %d against %d heat.",
		"booking.resolution_failed.body":  "The %s burns on: %d could not top %d heat.",
	}}

	out := Render(loc, Input{
		Topic:       "booking.heat.changed",
		PayloadJSON: `{"kind":"individual_rivalry","delta":5,"heat":12,"reason":"promo ambush"}`,
	})

	if out.Title != "Heat update" {
		t.Fatalf("title = %q, want %q", out.Title, "Heat update")
	}
	if out.BodyText != "The rivalry moved 5 heat (now 12): promo ambush" {
		t.Fatalf("body = %q, want rendered heat body", out.BodyText)
	}
}

func TestRenderResolutionSuccessLocalized(t *testing.T) {
	t.Parallel()

	loc := fakeLocalizer{values: map[string]string{
		"booking.kind.multi_wrestler_feud": "feud",
		"booking.resolution.title":         "Resolution attempt",
		"booking.resolution_success.body":  "The %s is settled: the dice came up %d against %d heat.",
	}}

	out := Render(loc, Input{
		Topic:       TopicResolutionAttempted,
		PayloadJSON: `{"kind":"multi_wrestler_feud","resolved":true,"total":17,"heat":24}`,
	})

	if out.BodyText != "The feud is settled: the dice came up 17 against 24 heat." {
		t.Fatalf("body = %q, want rendered resolution body", out.BodyText)
	}
}

func TestRenderMalformedPayloadFallsBack(t *testing.T) {
	t.Parallel()

	loc := fakeLocalizer{values: map[string]string{
		"booking.generic.title": "Booking update",
		"booking.generic.body":  "Something moved on the booking sheet.",
	}}

	out := Render(loc, Input{
		Topic:       TopicHeatChanged,
		PayloadJSON: `{"kind":`,
	})

	if out.Title != "Booking update" {
		t.Fatalf("title = %q, want generic fallback", out.Title)
	}
}

func TestRenderUnknownKindUsesSafeLabel(t *testing.T) {
	t.Parallel()

	loc := fakeLocalizer{values: map[string]string{
		"booking.heat_changed.title": "Heat update",
		"booking.heat_changed.body":  "The %s moved %d heat (now %d): %s",
	}}

	out := Render(loc, Input{
		Topic:       TopicHeatChanged,
		PayloadJSON: `{"kind":"tag_team_grudge","delta":1,"heat":1,"reason":"spillover"}`,
	})

	if out.BodyText != "The storyline moved 1 heat (now 1): spillover" {
		t.Fatalf("body = %q, want safe unknown-kind label", out.BodyText)
	}
}

func TestRenderWithNilLocalizerReturnsHumanReadableDefaults(t *testing.T) {
	t.Parallel()

	out := Render(nil, Input{Topic: "unknown.topic"})

	if out.Title != "Booking update" {
		t.Fatalf("title = %q, want %q", out.Title, "Booking update")
	}
	if out.BodyText != "Something moved on the booking sheet." {
		t.Fatalf("body = %q, want %q", out.BodyText, "Something moved on the booking sheet.")
	}
}

func TestRenderWithRealPrinterUsesRegisteredCatalog(t *testing.T) {
	t.Parallel()

	printer := message.NewPrinter(language.AmericanEnglish)
	out := Render(printer, Input{
		Topic:       TopicHeatChanged,
		PayloadJSON: `{"kind":"faction_rivalry","delta":2,"heat":6,"reason":"rematch"}`,
	})

	if out.Title != "Heat update" {
		t.Fatalf("title = %q, want %q", out.Title, "Heat update")
	}
	if out.BodyText != "The faction rivalry moved 2 heat (now 6): rematch" {
		t.Fatalf("body = %q, want %q", out.BodyText, "The faction rivalry moved 2 heat (now 6): rematch")
	}
}

type fakeLocalizer struct {
	values map[string]string
}

func (f fakeLocalizer) Sprintf(key message.Reference, args ...any) string {
	asString, ok := key.(string)
	if !ok {
		return ""
	}
	template := f.values[asString]
	if template == "" {
		return asString
	}
	if len(args) == 0 {
		return template
	}
	return fmt.Sprintf(template, args...)
}
