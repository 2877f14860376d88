package pages

import (
	"net/url"

	"github.com/a-h/templ"

	"github.com/flavorconnect/flavorconnect/internal/ctxkeys"
	"github.com/flavorconnect/flavorconnect/internal/model"
	"github.com/flavorconnect/flavorconnect/internal/repository"
	"github.com/flavorconnect/flavorconnect/internal/service"
	"github.com/flavorconnect/flavorconnect/internal/ui"
	"github.com/flavorconnect/flavorconnect/internal/ui/components"
)

// GalleryProps drives the recipe listing, favorites and "my recipes" pages
type GalleryProps struct {
	Title     string
	RouteName string
	Filter    repository.RecipeFilter
	Query     url.Values
	Page      *service.RecipePage
	Options   service.AttributeOptions
	Images    components.ImageURLs
	ShowForm  bool
	Empty     string
}

var sortOptions = []components.Option{
	{Value: repository.SortNewest, Label: "Newest"},
	{Value: repository.SortOldest, Label: "Oldest"},
	{Value: repository.SortRating, Label: "Top rated"},
}

func Gallery(p GalleryProps) templ.Component {
	body := ui.Component(func(h *ui.Writer) {
		h.F(`<h1 class="mb-6 text-3xl font-bold">%s</h1>`, p.Title)
		if p.ShowForm {
			h.C(filterForm(p))
		}
		h.C(GalleryFragment(p))
	})
	return components.Layout(components.LayoutProps{Title: p.Title}, body)
}

// GalleryFragment is the part swapped by htmx when paging or filtering
func GalleryFragment(p GalleryProps) templ.Component {
	return ui.Component(func(h *ui.Writer) {
		ctx := h.Ctx()
		h.S(`<section id="gallery">`)
		if p.Page.Pagination.TotalCount > 0 {
			h.F(`<p class="mb-4 text-sm text-stone-500">%d recipes</p>`, p.Page.Pagination.TotalCount)
		}
		h.C(components.RecipeGrid(p.Page.Recipes, p.Page.Favorited, p.Images, p.Empty))

		links := p.Page.Pagination.RouteLinks(ctxkeys.Routes(ctx), p.RouteName, nil, p.Query)
		h.S(`<div hx-boost="true" hx-target="#gallery" hx-swap="outerHTML" hx-push-url="true">`)
		h.C(components.Pagination(links))
		h.S(`</div></section>`)
	})
}

func filterForm(p GalleryProps) templ.Component {
	return ui.Component(func(h *ui.Writer) {
		ctx := h.Ctx()
		action := ctxkeys.URL(ctx, p.RouteName)

		h.F(`<form method="get" action="%s" hx-get="%s" hx-target="#gallery" hx-swap="outerHTML" hx-push-url="true" class="mb-8 grid grid-cols-1 gap-3 md:grid-cols-6">`, action, action)
		if p.Query.Get("mine") != "" {
			h.S(`<input type="hidden" name="mine" value="1">`)
		}
		h.F(`<input type="search" name="search" value="%s" placeholder="Search recipes" class="md:col-span-2 rounded-md border border-stone-300 px-3 py-2 text-sm">`, p.Filter.Search)

		for _, kind := range model.AttributeKinds {
			h.C(components.Select(components.FieldProps{
				Name:        string(kind),
				Value:       deref(p.Filter, kind),
				Placeholder: "All " + kind.PluralLabel(),
			}, attributeOptions(p.Options.ByKind(kind))))
		}
		h.C(components.Select(components.FieldProps{Name: "sort", Value: p.Filter.NormalizedSort()}, sortOptions))
		h.C(components.Button(components.ButtonProps{Label: "Filter", Type: "submit", Class: "md:col-start-6"}))
		h.S(`</form>`)
	})
}

func deref(f repository.RecipeFilter, kind model.AttributeKind) string {
	switch kind {
	case model.AttributeStyle:
		return f.StyleID
	case model.AttributeDiet:
		return f.DietID
	case model.AttributeType:
		return f.TypeID
	}
	return ""
}

func attributeOptions(attrs []*model.Attribute) []components.Option {
	opts := make([]components.Option, 0, len(attrs))
	for _, a := range attrs {
		opts = append(opts, components.Option{Value: a.ID, Label: a.Name})
	}
	return opts
}

func measurementOptions(ms []*model.Measurement) []components.Option {
	opts := make([]components.Option, 0, len(ms))
	for _, m := range ms {
		opts = append(opts, components.Option{Value: m.ID, Label: m.Name})
	}
	return opts
}
