package pages

import (
	"github.com/a-h/templ"

	"github.com/flavorconnect/flavorconnect/internal/ctxkeys"
	"github.com/flavorconnect/flavorconnect/internal/service"
	"github.com/flavorconnect/flavorconnect/internal/ui"
	"github.com/flavorconnect/flavorconnect/internal/ui/components"
	"github.com/flavorconnect/flavorconnect/internal/validation"
)

type LoginProps struct {
	Identifier string
	Next       string
	Errors     validation.Errors
}

func Login(p LoginProps) templ.Component {
	body := ui.Component(func(h *ui.Writer) {
		ctx := h.Ctx()
		h.S(`<div class="mx-auto max-w-md rounded-lg bg-white p-8 shadow-sm"><h1 class="mb-6 text-2xl font-bold">Log in</h1>`)
		if msg := p.Errors.Get("form"); msg != "" {
			h.F(`<p role="alert" class="mb-4 rounded-md bg-red-50 px-3 py-2 text-sm text-red-800">%s</p>`, msg)
		}
		h.F(`<form method="post" action="%s">`, ctxkeys.URL(ctx, "login"))
		h.C(components.CSRFField())
		if p.Next != "" {
			h.F(`<input type="hidden" name="next" value="%s">`, p.Next)
		}
		h.C(components.Input(components.FieldProps{Name: "identifier", Label: "Username or email", Value: p.Identifier, Required: true, Errors: p.Errors}))
		h.C(components.Input(components.FieldProps{Name: "password", Label: "Password", Type: "password", Required: true, Errors: p.Errors}))
		h.C(components.Button(components.ButtonProps{Label: "Log in", Type: "submit", Class: "w-full justify-center"}))
		h.S(`</form>`)
		h.F(`<p class="mt-4 text-sm text-stone-500">New here? <a href="%s" class="text-orange-600 underline">Create an account</a></p>`, ctxkeys.URL(ctx, "register"))
		h.S(`</div>`)
	})
	return components.Layout(components.LayoutProps{Title: "Log in"}, body)
}

type RegisterProps struct {
	Input  service.RegisterInput
	Errors validation.Errors
}

func Register(p RegisterProps) templ.Component {
	body := ui.Component(func(h *ui.Writer) {
		ctx := h.Ctx()
		h.S(`<div class="mx-auto max-w-md rounded-lg bg-white p-8 shadow-sm"><h1 class="mb-6 text-2xl font-bold">Create an account</h1>`)
		h.F(`<form method="post" action="%s">`, ctxkeys.URL(ctx, "register"))
		h.C(components.CSRFField())
		h.C(components.Input(components.FieldProps{Name: "username", Label: "Username", Value: p.Input.Username, Required: true, Errors: p.Errors}))
		h.C(components.Input(components.FieldProps{Name: "email", Label: "Email", Type: "email", Value: p.Input.Email, Required: true, Errors: p.Errors}))
		h.C(components.Input(components.FieldProps{Name: "password", Label: "Password", Type: "password", Required: true, Errors: p.Errors}))
		h.C(components.Input(components.FieldProps{Name: "confirm_password", Label: "Confirm password", Type: "password", Required: true, Errors: p.Errors}))
		h.C(components.Button(components.ButtonProps{Label: "Sign up", Type: "submit", Class: "w-full justify-center"}))
		h.S(`</form>`)
		h.F(`<p class="mt-4 text-sm text-stone-500">Already registered? <a href="%s" class="text-orange-600 underline">Log in</a></p>`, ctxkeys.URL(ctx, "login"))
		h.S(`</div>`)
	})
	return components.Layout(components.LayoutProps{Title: "Sign up"}, body)
}
