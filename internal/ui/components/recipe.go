package components

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/flavorconnect/flavorconnect/internal/ctxkeys"
	"github.com/flavorconnect/flavorconnect/internal/imaging"
	"github.com/flavorconnect/flavorconnect/internal/model"
	"github.com/flavorconnect/flavorconnect/internal/session"
	"github.com/flavorconnect/flavorconnect/internal/ui"
)

// ImageURLs resolves stored recipe images to public URLs
type ImageURLs interface {
	URL(path, variant string) string
}

const placeholderImage = "/assets/img/recipe-placeholder.svg"

func imageSrc(images ImageURLs, path, variant string) string {
	if images == nil || path == "" {
		return placeholderImage
	}
	return images.URL(path, variant)
}

// Stars renders a rating rounded to half stars; a negative count hides the count
func Stars(rating float64, count int) templ.Component {
	return ui.Component(func(h *ui.Writer) {
		rounded := model.RoundToHalf(rating)
		var b strings.Builder
		for i := 1; i <= 5; i++ {
			switch {
			case float64(i) <= rounded:
				b.WriteString("★")
			case float64(i)-0.5 == rounded:
				b.WriteString("⯪")
			default:
				b.WriteString("☆")
			}
		}
		label := fmt.Sprintf("%.1f out of 5", rating)
		h.F(`<span class="text-amber-500" aria-label="%s">%s</span>`, label, b.String())
		switch {
		case count > 0:
			h.F(` <span class="text-xs text-stone-500">(%d)</span>`, count)
		case count == 0:
			h.S(` <span class="text-xs text-stone-500">No ratings yet</span>`)
		}
	})
}

// FavoriteButton toggles the favorite through the JSON endpoint
func FavoriteButton(recipeID string, favorited bool) templ.Component {
	return ui.Component(func(h *ui.Writer) {
		if !session.FromContext(h.Ctx()).IsLoggedIn() {
			return
		}
		label := "Save"
		pressed := "false"
		if favorited {
			label = "Saved"
			pressed = "true"
		}
		url := ctxkeys.URL(h.Ctx(), "recipes.favorite", "id", recipeID)
		h.F(`<button type="button" data-favorite-url="%s" aria-pressed="%s" class="%s">♥ <span data-favorite-label>%s</span></button>`,
			url, pressed, buttonClass(ButtonGhost, "px-2 py-1 text-rose-600 aria-pressed:font-bold"), label)
	})
}

// RecipeCard is a gallery tile
func RecipeCard(recipe *model.Recipe, favorited bool, images ImageURLs) templ.Component {
	return ui.Component(func(h *ui.Writer) {
		ctx := h.Ctx()
		href := ctxkeys.URL(ctx, "recipes.show", "id", recipe.ID)

		h.S(`<article class="overflow-hidden rounded-lg border border-stone-200 bg-white shadow-sm">`)
		h.F(`<a href="%s"><img src="%s" alt="%s" loading="lazy" class="aspect-square w-full object-cover"></a>`,
			href, imageSrc(images, recipe.ImagePath, imaging.VariantThumb), recipe.Title)
		h.S(`<div class="p-4">`)
		h.F(`<h3 class="font-semibold"><a href="%s" class="hover:text-orange-600">%s</a></h3>`, href, recipe.Title)
		h.F(`<p class="text-sm text-stone-500">by %s</p>`, recipe.AuthorUsername)
		h.S(`<div class="mt-2 flex items-center justify-between">`)
		h.C(Stars(recipe.AverageRating, recipe.RatingCount))
		h.C(FavoriteButton(recipe.ID, favorited))
		h.S(`</div>`)
		h.C(AttributeTags(recipe))
		h.S(`</div></article>`)
	})
}

func AttributeTags(recipe *model.Recipe) templ.Component {
	return ui.Component(func(h *ui.Writer) {
		tags := []string{recipe.StyleName, recipe.DietName, recipe.TypeName}
		h.S(`<ul class="mt-2 flex flex-wrap gap-1">`)
		for _, tag := range tags {
			if tag != "" {
				h.F(`<li class="rounded-full bg-stone-100 px-2 py-0.5 text-xs text-stone-600">%s</li>`, tag)
			}
		}
		if total := recipe.TotalTime(); total > 0 {
			h.F(`<li class="rounded-full bg-stone-100 px-2 py-0.5 text-xs text-stone-600">%s</li>`, model.FormatDuration(total))
		}
		h.S(`</ul>`)
	})
}

// RecipeGrid lays out cards with an empty state
func RecipeGrid(recipes []*model.Recipe, favorited map[string]bool, images ImageURLs, empty string) templ.Component {
	return ui.Component(func(h *ui.Writer) {
		if len(recipes) == 0 {
			h.F(`<p class="py-12 text-center text-stone-500">%s</p>`, empty)
			return
		}
		h.S(`<div class="grid grid-cols-1 gap-6 sm:grid-cols-2 lg:grid-cols-3">`)
		for _, recipe := range recipes {
			h.C(RecipeCard(recipe, favorited[recipe.ID], images))
		}
		h.S(`</div>`)
	})
}

// Pagination renders navigation markup produced by the pagination package
func Pagination(markup string) templ.Component {
	return ui.Component(func(h *ui.Writer) {
		if markup == "" {
			return
		}
		h.F(`<div class="mt-8 flex justify-center">%s</div>`, ui.Raw(markup))
	})
}
