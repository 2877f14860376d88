package components

import (
	"github.com/a-h/templ"

	"github.com/flavorconnect/flavorconnect/internal/ui"
	"github.com/flavorconnect/flavorconnect/internal/validation"
)

type ButtonVariant string

const (
	ButtonPrimary ButtonVariant = "primary"
	ButtonGhost   ButtonVariant = "ghost"
	ButtonDanger  ButtonVariant = "danger"
)

type ButtonProps struct {
	Label   string
	Type    string
	Variant ButtonVariant
	Class   string
	Confirm string
}

func buttonClass(variant ButtonVariant, extra string) string {
	base := "inline-flex items-center rounded-md px-4 py-2 text-sm font-medium"
	switch variant {
	case ButtonGhost:
		return ui.Class(base, "bg-transparent text-stone-700 hover:bg-stone-100", extra)
	case ButtonDanger:
		return ui.Class(base, "bg-red-600 text-white hover:bg-red-700", extra)
	default:
		return ui.Class(base, "bg-orange-600 text-white hover:bg-orange-700", extra)
	}
}

func Button(p ButtonProps) templ.Component {
	return ui.Component(func(h *ui.Writer) {
		typ := p.Type
		if typ == "" {
			typ = "button"
		}
		if p.Confirm != "" {
			h.F(`<button type="%s" class="%s" data-confirm="%s">%s</button>`, typ, buttonClass(p.Variant, p.Class), p.Confirm, p.Label)
			return
		}
		h.F(`<button type="%s" class="%s">%s</button>`, typ, buttonClass(p.Variant, p.Class), p.Label)
	})
}

const inputClass = "mt-1 block w-full rounded-md border border-stone-300 px-3 py-2 text-sm focus:border-orange-500 focus:outline-none"

// FieldProps describes a labelled form control with its validation message
type FieldProps struct {
	Name        string
	Label       string
	Type        string
	Value       string
	Placeholder string
	Required    bool
	Errors      validation.Errors
	Class       string
}

func (p FieldProps) control() string {
	if p.Errors.Has(p.Name) {
		return ui.Class(inputClass, "border-red-500", p.Class)
	}
	return ui.Class(inputClass, p.Class)
}

func Input(p FieldProps) templ.Component {
	return ui.Component(func(h *ui.Writer) {
		typ := p.Type
		if typ == "" {
			typ = "text"
		}
		h.F(`<div class="mb-4"><label for="%s" class="block text-sm font-medium">%s</label>`, p.Name, p.Label)
		h.F(`<input id="%s" name="%s" type="%s" value="%s" placeholder="%s" class="%s"%s>`,
			p.Name, p.Name, typ, p.Value, p.Placeholder, p.control(), ui.Raw(required(p.Required)))
		h.C(FieldError(p.Errors, p.Name))
		h.S(`</div>`)
	})
}

func Textarea(p FieldProps) templ.Component {
	return ui.Component(func(h *ui.Writer) {
		h.F(`<div class="mb-4"><label for="%s" class="block text-sm font-medium">%s</label>`, p.Name, p.Label)
		h.F(`<textarea id="%s" name="%s" rows="5" placeholder="%s" class="%s"%s>%s</textarea>`,
			p.Name, p.Name, p.Placeholder, p.control(), ui.Raw(required(p.Required)), p.Value)
		h.C(FieldError(p.Errors, p.Name))
		h.S(`</div>`)
	})
}

// Option is one entry of a select
type Option struct {
	Value string
	Label string
}

// Select renders a dropdown; Placeholder adds an empty first option
func Select(p FieldProps, options []Option) templ.Component {
	return ui.Component(func(h *ui.Writer) {
		if p.Label != "" {
			h.F(`<div class="mb-4"><label for="%s" class="block text-sm font-medium">%s</label>`, p.Name, p.Label)
		} else {
			h.S(`<div>`)
		}
		h.F(`<select id="%s" name="%s" class="%s">`, p.Name, p.Name, p.control())
		if p.Placeholder != "" {
			h.F(`<option value="">%s</option>`, p.Placeholder)
		}
		for _, o := range options {
			h.F(`<option value="%s"%s>%s</option>`, o.Value, ui.Raw(selected(o.Value == p.Value)), o.Label)
		}
		h.S(`</select>`)
		h.C(FieldError(p.Errors, p.Name))
		h.S(`</div>`)
	})
}

func required(on bool) string {
	if on {
		return " required"
	}
	return ""
}

func selected(on bool) string {
	if on {
		return " selected"
	}
	return ""
}
