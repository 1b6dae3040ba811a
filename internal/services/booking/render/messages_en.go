package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	message.SetString(lang, "booking.generic.title", defaultGenericTitle)
	message.SetString(lang, "booking.generic.body", defaultGenericBody)
	message.SetString(lang, "booking.kind.individual_rivalry", "rivalry")
	message.SetString(lang, "booking.kind.faction_rivalry", "faction rivalry")
	message.SetString(lang, "booking.kind.multi_wrestler_feud", "feud")
	message.SetString(lang, "booking.kind.unknown", "storyline")
	message.SetString(lang, "booking.heat_changed.title", "Heat update")
	message.SetString(lang, "booking.heat_changed.body", "The %s moved %d heat (now %d): %s")
	message.SetString(lang, "booking.resolution.title", "Resolution attempt")
	message.SetString(lang, "booking.resolution_success.body", "The %s is settled: the dice came up %d against %d heat.")
	message.SetString(lang, "booking.resolution_failed.body", "The %s burns on: %d could not top %d heat.")
}
