package pages

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/flavorconnect/flavorconnect/internal/ctxkeys"
	"github.com/flavorconnect/flavorconnect/internal/imaging"
	"github.com/flavorconnect/flavorconnect/internal/model"
	"github.com/flavorconnect/flavorconnect/internal/service"
	"github.com/flavorconnect/flavorconnect/internal/session"
	"github.com/flavorconnect/flavorconnect/internal/ui"
	"github.com/flavorconnect/flavorconnect/internal/ui/components"
	"github.com/flavorconnect/flavorconnect/internal/validation"
)

type RecipeShowProps struct {
	Detail       *service.RecipeDetail
	Images       components.ImageURLs
	ReviewErrors validation.Errors
	Review       model.ReviewInput
}

func RecipeShow(p RecipeShowProps) templ.Component {
	recipe := p.Detail.Recipe

	body := ui.Component(func(h *ui.Writer) {
		ctx := h.Ctx()
		sess := session.FromContext(ctx)

		if recipe.ImagePath != "" && p.Images != nil {
			h.F(`<img src="%s" alt="%s" class="mb-6 h-64 w-full rounded-xl object-cover">`,
				p.Images.URL(recipe.ImagePath, imaging.VariantBanner), recipe.Title)
		}

		h.S(`<div class="flex flex-wrap items-start justify-between gap-4">`)
		h.F(`<div><h1 class="text-3xl font-bold">%s</h1>`, recipe.Title)
		h.F(`<p class="mt-1 text-stone-500">by %s · %s</p>`, recipe.AuthorUsername, recipe.CreatedAt.Format("January 2, 2006"))
		h.S(`<div class="mt-2">`)
		h.C(components.Stars(recipe.AverageRating, recipe.RatingCount))
		if n := p.Detail.FavoriteCount; n > 0 {
			h.F(` <span class="text-sm text-rose-600">♥ saved by %d</span>`, n)
		}
		h.S(`</div>`)
		h.C(components.AttributeTags(recipe))
		h.S(`</div><div class="flex items-center gap-2">`)
		h.C(components.FavoriteButton(recipe.ID, p.Detail.IsFavorited))

		if sess.CanEdit(recipe.UserID) {
			h.F(`<a href="%s" class="%s">Edit</a>`, ctxkeys.URL(ctx, "recipes.edit", "id", recipe.ID), "rounded-md border border-stone-300 px-3 py-2 text-sm")
			h.F(`<form method="post" action="%s" data-confirm="Delete this recipe?">`, ctxkeys.URL(ctx, "recipes.delete", "id", recipe.ID))
			h.C(components.CSRFField())
			h.C(components.Button(components.ButtonProps{Label: "Delete", Type: "submit", Variant: components.ButtonDanger}))
			h.S(`</form>`)
		}
		if sess.IsAdmin() {
			label := "Feature"
			if recipe.IsFeatured {
				label = "Unfeature"
			}
			h.F(`<form method="post" action="%s">`, ctxkeys.URL(ctx, "recipes.feature", "id", recipe.ID))
			h.C(components.CSRFField())
			h.C(components.Button(components.ButtonProps{Label: label, Type: "submit", Variant: components.ButtonGhost}))
			h.S(`</form>`)
		}
		h.S(`</div></div>`)

		h.S(`<dl class="my-6 grid grid-cols-3 gap-4 rounded-lg bg-white p-4 text-center shadow-sm">`)
		h.F(`<div><dt class="text-xs uppercase text-stone-500">Prep</dt><dd>%s</dd></div>`, model.FormatDuration(recipe.PrepTime))
		h.F(`<div><dt class="text-xs uppercase text-stone-500">Cook</dt><dd>%s</dd></div>`, model.FormatDuration(recipe.CookTime))
		h.F(`<div><dt class="text-xs uppercase text-stone-500">Total</dt><dd>%s</dd></div>`, model.FormatDuration(recipe.TotalTime()))
		h.S(`</dl>`)

		if p.Detail.DescriptionHTML != "" {
			h.F(`<div class="prose mb-8 max-w-none">%s</div>`, ui.Raw(p.Detail.DescriptionHTML))
		}

		h.S(`<div class="grid grid-cols-1 gap-8 md:grid-cols-3">`)
		h.S(`<section><h2 class="mb-3 text-xl font-semibold">Ingredients</h2><ul class="list-disc space-y-1 pl-5">`)
		for _, ing := range p.Detail.Ingredients {
			h.F(`<li>%s</li>`, ing.Display())
		}
		h.S(`</ul></section>`)

		h.S(`<section class="md:col-span-2"><h2 class="mb-3 text-xl font-semibold">Steps</h2><ol class="space-y-3">`)
		for _, step := range p.Detail.Steps {
			h.F(`<li class="flex gap-3"><span class="font-bold text-orange-600">%d.</span><span>%s</span></li>`, step.StepNumber, step.Instruction)
		}
		h.S(`</ol></section></div>`)

		if recipe.VideoURL != "" {
			h.F(`<p class="mt-8"><a href="%s" rel="noopener nofollow" target="_blank" class="text-orange-600 underline">Watch the video</a></p>`, ui.URL(recipe.VideoURL))
		}

		h.C(reviews(p))
	})

	return components.Layout(components.LayoutProps{Title: recipe.Title, Description: truncate(recipe.Description, 160)}, body)
}

func reviews(p RecipeShowProps) templ.Component {
	return ui.Component(func(h *ui.Writer) {
		ctx := h.Ctx()
		sess := session.FromContext(ctx)
		recipe := p.Detail.Recipe

		h.S(`<section id="reviews" class="mt-12"><h2 class="mb-4 text-xl font-semibold">Reviews</h2>`)

		if sess.IsLoggedIn() {
			rating := p.Review.Rating
			if rating == 0 {
				rating = p.Detail.UserRating
			}
			h.F(`<form method="post" action="%s" class="mb-8 rounded-lg bg-white p-4 shadow-sm">`, ctxkeys.URL(ctx, "recipes.reviews", "id", recipe.ID))
			h.C(components.CSRFField())
			h.S(`<fieldset class="mb-3"><legend class="text-sm font-medium">Your rating</legend><div class="flex gap-3">`)
			for i := 1; i <= 5; i++ {
				checked := ""
				if i == rating {
					checked = " checked"
				}
				h.F(`<label><input type="radio" name="rating" value="%d"%s> %d★</label>`, i, ui.Raw(checked), i)
			}
			h.S(`</div></fieldset>`)
			h.C(components.FieldError(p.ReviewErrors, "rating"))
			h.C(components.Textarea(components.FieldProps{
				Name:        "comment",
				Label:       "Comment (optional)",
				Value:       p.Review.Comment,
				Placeholder: "How did it turn out?",
				Errors:      p.ReviewErrors,
			}))
			h.C(components.Button(components.ButtonProps{Label: "Submit review", Type: "submit"}))
			h.S(`</form>`)
		} else {
			h.F(`<p class="mb-6 text-sm"><a href="%s" class="text-orange-600 underline">Log in</a> to rate this recipe.</p>`, ctxkeys.URL(ctx, "login"))
		}

		if len(p.Detail.Reviews) == 0 {
			h.S(`<p class="text-stone-500">No reviews yet.</p>`)
		}
		h.S(`<ul class="space-y-4">`)
		for _, r := range p.Detail.Reviews {
			h.S(`<li class="rounded-lg bg-white p-4 shadow-sm">`)
			h.F(`<div class="flex items-center justify-between"><strong>%s</strong><span class="text-xs text-stone-500">%s</span></div>`, r.Username, r.CreatedAt.Format("Jan 2, 2006"))
			h.C(components.Stars(float64(r.RatingValue), -1))
			if r.CommentText != "" {
				h.F(`<p class="mt-2 whitespace-pre-line">%s</p>`, r.CommentText)
			}
			h.S(`</li>`)
		}
		h.S(`</ul></section>`)
	})
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func itoa(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
