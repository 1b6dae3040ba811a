package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.MustParse("pt-BR")

	message.SetString(lang, "booking.generic.title", "Atualização de booking")
	message.SetString(lang, "booking.generic.body", "Algo mudou na folha de booking.")
	message.SetString(lang, "booking.kind.individual_rivalry", "rivalidade")
	message.SetString(lang, "booking.kind.faction_rivalry", "rivalidade de facções")
	message.SetString(lang, "booking.kind.multi_wrestler_feud", "feud")
	message.SetString(lang, "booking.kind.unknown", "enredo")
	message.SetString(lang, "booking.heat_changed.title", "Atualização de heat")
	message.SetString(lang, "booking.heat_changed.body", "A %s moveu %d de heat (agora %d): %s")
	message.SetString(lang, "booking.resolution.title", "Tentativa de resolução")
	message.SetString(lang, "booking.resolution_success.body", "A %s foi encerrada: os dados somaram %d contra %d de heat.")
	message.SetString(lang, "booking.resolution_failed.body", "A %s continua: %d não superou %d de heat.")
}
