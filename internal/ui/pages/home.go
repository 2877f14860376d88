package pages

import (
	"github.com/a-h/templ"

	"github.com/flavorconnect/flavorconnect/internal/ctxkeys"
	"github.com/flavorconnect/flavorconnect/internal/model"
	"github.com/flavorconnect/flavorconnect/internal/ui"
	"github.com/flavorconnect/flavorconnect/internal/ui/components"
)

type HomeProps struct {
	Featured  []*model.Recipe
	Latest    []*model.Recipe
	Favorited map[string]bool
	Images    components.ImageURLs
}

func Home(p HomeProps) templ.Component {
	body := ui.Component(func(h *ui.Writer) {
		ctx := h.Ctx()
		cfg := ctxkeys.Config(ctx)

		h.S(`<section class="mb-12 rounded-xl bg-orange-100 px-8 py-12 text-center">`)
		if cfg != nil {
			h.F(`<h1 class="text-4xl font-bold">%s</h1><p class="mt-2 text-lg text-stone-600">%s</p>`, cfg.AppName, cfg.AppTagline)
		}
		h.F(`<a href="%s" class="mt-6 inline-block rounded-md bg-orange-600 px-6 py-3 font-medium text-white">Browse recipes</a>`, ctxkeys.URL(ctx, "recipes.index"))
		h.S(`</section>`)

		if len(p.Featured) > 0 {
			h.S(`<section class="mb-12"><h2 class="mb-4 text-2xl font-semibold">Featured</h2>`)
			h.C(components.RecipeGrid(p.Featured, p.Favorited, p.Images, ""))
			h.S(`</section>`)
		}

		h.S(`<section><h2 class="mb-4 text-2xl font-semibold">Latest recipes</h2>`)
		h.C(components.RecipeGrid(p.Latest, p.Favorited, p.Images, "No recipes yet. Be the first to share one!"))
		h.S(`</section>`)
	})
	return components.Layout(components.LayoutProps{}, body)
}
