package levels

import "github.com/sendagame/progress/internal/model"

func choice(s string) model.Choice { return model.Choice(s) }

func relic(s string) *model.RelicID {
	r := model.RelicID(s)
	return &r
}

// Default returns the game's level sequence: the sanctuary hub, three
// decision paths each yielding a relic, and the confluence finale.
func Default() *Catalog {
	return NewCatalog([]Level{
		{ID: "santuario"},
		{
			ID:       "senda_ebano",
			Decision: &Decision{Good: choice("sanar"), Bad: choice("forzar")},
			Relic:    relic("lirio"),
		},
		{
			ID:       "senda_ceniza",
			Decision: &Decision{Good: choice("perdonar"), Bad: choice("castigar")},
			Relic:    relic("espejo"),
		},
		{
			ID:       "senda_bruma",
			Decision: &Decision{Good: choice("revelar"), Bad: choice("ocultar")},
			Relic:    relic("brujula"),
		},
		{ID: "confluencia"},
	})
}
