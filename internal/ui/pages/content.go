package pages

import (
	"github.com/a-h/templ"

	"github.com/flavorconnect/flavorconnect/internal/service"
	"github.com/flavorconnect/flavorconnect/internal/ui"
	"github.com/flavorconnect/flavorconnect/internal/ui/components"
)

// Content renders a markdown page such as about, privacy or terms
func Content(page *service.Page) templ.Component {
	body := ui.Component(func(h *ui.Writer) {
		h.S(`<article class="prose mx-auto max-w-3xl">`)
		h.F(`<h1>%s</h1><p class="text-sm text-stone-500">Last updated %s</p>`, page.Title, page.LastUpdated)
		h.S(page.Content)
		h.S(`</article>`)
	})
	return components.Layout(components.LayoutProps{Title: page.Title, Description: page.Description}, body)
}
