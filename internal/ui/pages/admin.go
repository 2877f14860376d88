package pages

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/flavorconnect/flavorconnect/internal/ctxkeys"
	"github.com/flavorconnect/flavorconnect/internal/model"
	"github.com/flavorconnect/flavorconnect/internal/service"
	"github.com/flavorconnect/flavorconnect/internal/session"
	"github.com/flavorconnect/flavorconnect/internal/ui"
	"github.com/flavorconnect/flavorconnect/internal/ui/components"
	"github.com/flavorconnect/flavorconnect/internal/validation"
)

// MeasurementKind is the category path segment for measurements, which
// live beside the recipe attribute kinds on the categories page
const MeasurementKind = "measurement"

type DashboardProps struct {
	Users    int
	Recipes  int
	Featured int
	Options  service.AttributeOptions
}

func adminLayout(title, active string, body templ.Component) templ.Component {
	return components.Layout(components.LayoutProps{Title: title}, ui.Component(func(h *ui.Writer) {
		ctx := h.Ctx()
		h.S(`<div class="mb-6 flex gap-4 border-b border-stone-200 pb-3 text-sm">`)
		for _, tab := range []struct{ route, label string }{
			{"admin.dashboard", "Overview"},
			{"admin.categories", "Categories"},
			{"admin.users", "Users"},
		} {
			class := "text-stone-600 hover:text-orange-600"
			if tab.route == active {
				class = "font-semibold text-orange-600"
			}
			h.F(`<a href="%s" class="%s">%s</a>`, ctxkeys.URL(ctx, tab.route), class, tab.label)
		}
		h.S(`</div>`)
		h.C(body)
	}))
}

func Dashboard(p DashboardProps) templ.Component {
	return adminLayout("Admin", "admin.dashboard", ui.Component(func(h *ui.Writer) {
		h.S(`<h1 class="mb-6 text-2xl font-bold">Overview</h1><div class="grid gap-4 sm:grid-cols-3">`)
		stat := func(label string, n int) {
			h.F(`<div class="rounded-lg bg-white p-6 shadow-sm"><p class="text-sm text-stone-500">%s</p><p class="text-3xl font-bold">%s</p></div>`, label, strconv.Itoa(n))
		}
		stat("Users", p.Users)
		stat("Recipes", p.Recipes)
		stat("Featured recipes", p.Featured)
		h.S(`</div><div class="mt-8 grid gap-4 sm:grid-cols-4">`)
		for _, kind := range model.AttributeKinds {
			stat(kind.PluralLabel(), len(p.Options.ByKind(kind)))
		}
		stat("Measurements", len(p.Options.Measurements))
		h.S(`</div>`)
	}))
}

// CategoriesProps carries the lookup lists plus the errors of the last
// submitted form, scoped to the kind it belonged to
type CategoriesProps struct {
	Options   service.AttributeOptions
	ErrorKind string
	Name      string
	Errors    validation.Errors
}

type categoryRow struct {
	ID   string
	Name string
}

func Categories(p CategoriesProps) templ.Component {
	return adminLayout("Categories", "admin.categories", ui.Component(func(h *ui.Writer) {
		h.S(`<h1 class="mb-6 text-2xl font-bold">Categories</h1><div class="grid gap-6 md:grid-cols-2">`)
		for _, kind := range model.AttributeKinds {
			var rows []categoryRow
			for _, a := range p.Options.ByKind(kind) {
				rows = append(rows, categoryRow{ID: a.ID, Name: a.Name})
			}
			h.C(categorySection(string(kind), kind.PluralLabel(), rows, p))
		}
		var rows []categoryRow
		for _, m := range p.Options.Measurements {
			rows = append(rows, categoryRow{ID: m.ID, Name: m.Name})
		}
		h.C(categorySection(MeasurementKind, "Measurements", rows, p))
		h.S(`</div>`)
	}))
}

func categorySection(kind, label string, rows []categoryRow, p CategoriesProps) templ.Component {
	return ui.Component(func(h *ui.Writer) {
		ctx := h.Ctx()
		h.F(`<section id="%s" class="rounded-lg bg-white p-6 shadow-sm"><h2 class="mb-4 text-lg font-semibold">%s</h2>`, kind, label)

		if len(rows) == 0 {
			h.S(`<p class="mb-4 text-sm text-stone-500">Nothing here yet.</p>`)
		}
		h.S(`<ul class="mb-4 divide-y divide-stone-100">`)
		for _, row := range rows {
			h.S(`<li class="flex items-center gap-2 py-2">`)
			h.F(`<form method="post" action="%s" class="flex flex-1 gap-2">`, ctxkeys.URL(ctx, "admin.categories.update", "kind", kind, "id", row.ID))
			h.C(components.CSRFField())
			h.F(`<input name="name" value="%s" aria-label="Name" class="flex-1 rounded-md border border-stone-300 px-2 py-1 text-sm">`, row.Name)
			h.C(components.Button(components.ButtonProps{Label: "Save", Type: "submit", Variant: components.ButtonGhost}))
			h.S(`</form>`)
			h.F(`<form method="post" action="%s">`, ctxkeys.URL(ctx, "admin.categories.delete", "kind", kind, "id", row.ID))
			h.C(components.CSRFField())
			h.C(components.Button(components.ButtonProps{Label: "Delete", Type: "submit", Variant: components.ButtonDanger, Confirm: "Delete " + row.Name + "?"}))
			h.S(`</form></li>`)
		}
		h.S(`</ul>`)

		var errs validation.Errors
		name := ""
		if p.ErrorKind == kind {
			errs = p.Errors
			name = p.Name
		}
		if msg := errs.Get("form"); msg != "" {
			h.F(`<p role="alert" class="mb-2 text-sm text-red-600">%s</p>`, msg)
		}
		h.F(`<form method="post" action="%s" class="flex items-end gap-2">`, ctxkeys.URL(ctx, "admin.categories.create", "kind", kind))
		h.C(components.CSRFField())
		h.C(components.Input(components.FieldProps{Name: "name", Label: "New " + label[:len(label)-1], Value: name, Required: true, Errors: errs, Class: "w-full"}))
		h.C(components.Button(components.ButtonProps{Label: "Add", Type: "submit", Class: "mb-4"}))
		h.S(`</form></section>`)
	})
}

type UsersProps struct {
	Users []*model.User
}

var userLevels = []model.UserLevel{model.UserLevelUser, model.UserLevelAdmin, model.UserLevelSuperAdmin}

func Users(p UsersProps) templ.Component {
	return adminLayout("Users", "admin.users", ui.Component(func(h *ui.Writer) {
		ctx := h.Ctx()
		sess := session.FromContext(ctx)

		h.S(`<h1 class="mb-6 text-2xl font-bold">Users</h1>`)
		h.S(`<table class="w-full rounded-lg bg-white text-left text-sm shadow-sm"><thead class="border-b border-stone-200 text-stone-500"><tr>`)
		h.S(`<th class="p-3">Username</th><th class="p-3">Email</th><th class="p-3">Role</th><th class="p-3">Status</th><th class="p-3">Joined</th><th class="p-3"></th></tr></thead><tbody>`)
		for _, u := range p.Users {
			status := "Active"
			if !u.IsActive {
				status = "Inactive"
			}
			h.F(`<tr class="border-b border-stone-100"><td class="p-3 font-medium">%s</td><td class="p-3">%s</td><td class="p-3">%s</td><td class="p-3">%s</td><td class="p-3">%s</td><td class="p-3">`,
				u.Username, u.Email, u.Level.Label(), status, u.CreatedAt.Format("Jan 2, 2006"))
			if u.ID != sess.UserID && (sess.IsSuperAdmin() || !u.IsAdmin()) {
				h.C(userActions(u, sess.IsSuperAdmin()))
			}
			h.S(`</td></tr>`)
		}
		h.S(`</tbody></table>`)
	}))
}

func userActions(u *model.User, superAdmin bool) templ.Component {
	return ui.Component(func(h *ui.Writer) {
		ctx := h.Ctx()
		h.S(`<div class="flex flex-wrap items-center justify-end gap-2">`)

		if superAdmin {
			h.F(`<form method="post" action="%s" class="flex gap-1">`, ctxkeys.URL(ctx, "admin.users.level", "id", u.ID))
			h.C(components.CSRFField())
			h.S(`<select name="level" aria-label="Role" class="rounded-md border border-stone-300 px-2 py-1 text-sm">`)
			for _, level := range userLevels {
				h.F(`<option value="%s"%s>%s</option>`, string(level), ui.Raw(selectedAttr(level == u.Level)), level.Label())
			}
			h.S(`</select>`)
			h.C(components.Button(components.ButtonProps{Label: "Set role", Type: "submit", Variant: components.ButtonGhost}))
			h.S(`</form>`)
		}

		label := "Deactivate"
		if !u.IsActive {
			label = "Activate"
		}
		h.F(`<form method="post" action="%s">`, ctxkeys.URL(ctx, "admin.users.toggle", "id", u.ID))
		h.C(components.CSRFField())
		h.C(components.Button(components.ButtonProps{Label: label, Type: "submit", Variant: components.ButtonGhost}))
		h.S(`</form>`)

		h.F(`<form method="post" action="%s">`, ctxkeys.URL(ctx, "admin.users.delete", "id", u.ID))
		h.C(components.CSRFField())
		h.C(components.Button(components.ButtonProps{Label: "Delete", Type: "submit", Variant: components.ButtonDanger, Confirm: "Delete " + u.Username + " and all of their recipes?"}))
		h.S(`</form></div>`)
	})
}

func selectedAttr(on bool) string {
	if on {
		return " selected"
	}
	return ""
}
