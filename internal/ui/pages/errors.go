package pages

import (
	"github.com/a-h/templ"

	"github.com/flavorconnect/flavorconnect/internal/ctxkeys"
	"github.com/flavorconnect/flavorconnect/internal/ui"
	"github.com/flavorconnect/flavorconnect/internal/ui/components"
)

func errorPage(code, title, message string) templ.Component {
	body := ui.Component(func(h *ui.Writer) {
		h.S(`<div class="py-24 text-center">`)
		h.F(`<p class="text-6xl font-bold text-orange-600">%s</p>`, code)
		h.F(`<h1 class="mt-4 text-2xl font-semibold">%s</h1><p class="mt-2 text-stone-500">%s</p>`, title, message)
		h.F(`<a href="%s" class="mt-8 inline-block text-orange-600 underline">Back to the kitchen</a>`, ctxkeys.URL(h.Ctx(), "home"))
		h.S(`</div>`)
	})
	return components.Layout(components.LayoutProps{Title: title}, body)
}

func NotFound() templ.Component {
	return errorPage("404", "Page not found", "We couldn't find what you were looking for.")
}

func Forbidden() templ.Component {
	return errorPage("403", "Not allowed", "You don't have permission to do that.")
}

func MethodNotAllowed() templ.Component {
	return errorPage("405", "Method not allowed", "That action isn't supported here.")
}

func ServerError() templ.Component {
	return errorPage("500", "Something went wrong", "We hit a snag. Please try again in a moment.")
}
