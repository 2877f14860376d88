package components

import (
	"github.com/a-h/templ"

	"github.com/flavorconnect/flavorconnect/internal/ctxkeys"
	"github.com/flavorconnect/flavorconnect/internal/session"
	"github.com/flavorconnect/flavorconnect/internal/ui"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// LayoutProps describes the document around a page body
type LayoutProps struct {
	Title       string
	Description string
}

// Layout wraps body with the document head, navigation, flash message and footer
func Layout(props LayoutProps, body templ.Component) templ.Component {
	return ui.Component(func(h *ui.Writer) {
		ctx := h.Ctx()
		cfg := ctxkeys.Config(ctx)

		appName := "FlavorConnect"
		tagline := ""
		if cfg != nil {
			appName = cfg.AppName
			tagline = cfg.AppTagline
		}

		title := appName
		if props.Title != "" {
			title = props.Title + " · " + appName
		}
		description := props.Description
		if description == "" {
			description = tagline
		}
		nonce := templ.GetNonce(ctx)

		h.S(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.S(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.F(`<title>%s</title><meta name="description" content="%s">`, title, description)
		h.F(`<meta name="csrf-token" content="%s">`, ctxkeys.CSRFToken(ctx))
		h.S(`<link rel="stylesheet" href="/assets/css/app.css">`)
		h.F(`<script src="%s" nonce="%s" defer></script>`, htmxSrc, nonce)
		h.S(`</head><body class="min-h-screen bg-stone-50 text-stone-900 flex flex-col">`)

		h.C(Nav(appName))

		h.S(`<main class="container mx-auto max-w-6xl flex-1 px-4 py-8">`)
		h.C(FlashMessage(ui.Flash(ctx)))
		h.C(body)
		h.S(`</main>`)

		h.C(Footer(appName))
		h.F(`<script nonce="%s">%s</script>`, nonce, ui.Raw(clientScript))
		h.S(`</body></html>`)
	})
}

func Nav(appName string) templ.Component {
	return ui.Component(func(h *ui.Writer) {
		ctx := h.Ctx()
		sess := session.FromContext(ctx)
		current := ctxkeys.URLPath(ctx)

		h.S(`<header class="border-b border-stone-200 bg-white"><nav class="container mx-auto max-w-6xl flex items-center gap-6 px-4 py-3">`)
		h.F(`<a href="%s" class="text-xl font-bold text-orange-600">%s</a>`, ctxkeys.URL(ctx, "home"), appName)
		h.C(navLink(ctxkeys.URL(ctx, "recipes.index"), "Recipes", current))

		if sess.IsLoggedIn() {
			h.C(navLink(ctxkeys.URL(ctx, "recipes.new"), "Share a recipe", current))
			h.C(navLink(ctxkeys.URL(ctx, "favorites"), "Favorites", current))
			h.C(navLink(ctxkeys.URL(ctx, "recipes.index")+"?mine=1", "My recipes", current))
			if sess.IsAdmin() {
				h.C(navLink(ctxkeys.URL(ctx, "admin.dashboard"), "Admin", current))
			}
			h.S(`<div class="ml-auto flex items-center gap-3">`)
			h.F(`<span class="text-sm text-stone-500">%s</span>`, sess.Username)
			h.F(`<form method="post" action="%s">`, ctxkeys.URL(ctx, "logout"))
			h.C(CSRFField())
			h.C(Button(ButtonProps{Label: "Log out", Type: "submit", Variant: ButtonGhost}))
			h.S(`</form></div>`)
		} else {
			h.S(`<div class="ml-auto flex items-center gap-3">`)
			h.C(navLink(ctxkeys.URL(ctx, "login"), "Log in", current))
			h.F(`<a href="%s" class="%s">Sign up</a>`, ctxkeys.URL(ctx, "register"), buttonClass(ButtonPrimary, ""))
			h.S(`</div>`)
		}
		h.S(`</nav></header>`)
	})
}

func navLink(href, label, current string) templ.Component {
	return ui.Component(func(h *ui.Writer) {
		class := "text-sm font-medium text-stone-600 hover:text-orange-600"
		if href == current {
			class = ui.Class(class, "text-orange-600")
		}
		h.F(`<a href="%s" class="%s">%s</a>`, href, class, label)
	})
}

func Footer(appName string) templ.Component {
	return ui.Component(func(h *ui.Writer) {
		ctx := h.Ctx()
		h.S(`<footer class="border-t border-stone-200 bg-white"><div class="container mx-auto max-w-6xl flex gap-6 px-4 py-6 text-sm text-stone-500">`)
		h.F(`<span>&copy; %s</span>`, appName)
		for _, slug := range []string{"about", "privacy", "terms"} {
			h.F(`<a href="%s" class="hover:text-orange-600">%s</a>`, ctxkeys.URL(ctx, "pages.show", "slug", slug), pageLabel(slug))
		}
		h.S(`</div></footer>`)
	})
}

func pageLabel(slug string) string {
	switch slug {
	case "about":
		return "About"
	case "privacy":
		return "Privacy"
	case "terms":
		return "Terms"
	}
	return slug
}

// clientScript wires htmx to the CSRF token and toggles favorites without a reload
const clientScript = `
document.addEventListener("htmx:configRequest", function (e) {
  var meta = document.querySelector('meta[name="csrf-token"]');
  if (meta) { e.detail.headers["X-CSRF-Token"] = meta.content; }
});
document.addEventListener("submit", function (e) {
  var msg = (e.submitter && e.submitter.dataset.confirm) || (e.target.dataset && e.target.dataset.confirm);
  if (msg && !window.confirm(msg)) { e.preventDefault(); }
});
document.addEventListener("click", function (e) {
  var btn = e.target.closest("[data-favorite-url]");
  if (!btn) { return; }
  e.preventDefault();
  var meta = document.querySelector('meta[name="csrf-token"]');
  fetch(btn.dataset.favoriteUrl, {
    method: "POST",
    headers: { "X-CSRF-Token": meta ? meta.content : "", "Accept": "application/json" }
  }).then(function (r) { return r.json(); }).then(function (data) {
    if (!data.success) { return; }
    btn.setAttribute("aria-pressed", data.is_favorited ? "true" : "false");
    btn.querySelector("[data-favorite-label]").textContent = data.is_favorited ? "Saved" : "Save";
  });
});
`
