package pages

import (
	"fmt"

	"github.com/a-h/templ"

	"github.com/flavorconnect/flavorconnect/internal/ctxkeys"
	"github.com/flavorconnect/flavorconnect/internal/model"
	"github.com/flavorconnect/flavorconnect/internal/service"
	"github.com/flavorconnect/flavorconnect/internal/ui"
	"github.com/flavorconnect/flavorconnect/internal/ui/components"
	"github.com/flavorconnect/flavorconnect/internal/validation"
)

// spare blank rows offered below the filled ones
const (
	spareIngredientRows = 3
	spareStepRows       = 2
)

type RecipeFormProps struct {
	// Recipe is nil when creating
	Recipe  *model.Recipe
	Input   service.RecipeInput
	Errors  validation.Errors
	Options service.AttributeOptions
}

func RecipeForm(p RecipeFormProps) templ.Component {
	title := "Share a recipe"
	if p.Recipe != nil {
		title = "Edit " + p.Recipe.Title
	}

	body := ui.Component(func(h *ui.Writer) {
		ctx := h.Ctx()
		action := ctxkeys.URL(ctx, "recipes.create")
		if p.Recipe != nil {
			action = ctxkeys.URL(ctx, "recipes.update", "id", p.Recipe.ID)
		}
		in := p.Input

		h.F(`<h1 class="mb-6 text-3xl font-bold">%s</h1>`, title)
		h.C(components.ErrorSummary(p.Errors))
		h.F(`<form method="post" action="%s" enctype="multipart/form-data" class="max-w-3xl">`, action)
		h.C(components.CSRFField())

		h.C(components.Input(components.FieldProps{Name: "title", Label: "Title", Value: in.Title, Required: true, Errors: p.Errors}))
		h.C(components.Textarea(components.FieldProps{Name: "description", Label: "Description (markdown)", Value: in.Description, Errors: p.Errors}))

		h.S(`<div class="grid grid-cols-1 gap-4 md:grid-cols-3">`)
		for _, kind := range model.AttributeKinds {
			value := in.StyleID
			switch kind {
			case model.AttributeDiet:
				value = in.DietID
			case model.AttributeType:
				value = in.TypeID
			}
			h.C(components.Select(components.FieldProps{
				Name:        kind.Table().RecipeColumn,
				Label:       kind.Label(),
				Value:       value,
				Placeholder: "None",
				Errors:      p.Errors,
			}, attributeOptions(p.Options.ByKind(kind))))
		}
		h.S(`</div>`)

		h.S(`<div class="grid grid-cols-2 gap-4 md:grid-cols-4">`)
		h.C(components.Input(components.FieldProps{Name: "prep_hours", Label: "Prep hours", Type: "number", Value: itoa(in.PrepHours), Errors: p.Errors}))
		h.C(components.Input(components.FieldProps{Name: "prep_minutes", Label: "Prep minutes", Type: "number", Value: itoa(in.PrepMinutes), Errors: p.Errors}))
		h.C(components.Input(components.FieldProps{Name: "cook_hours", Label: "Cook hours", Type: "number", Value: itoa(in.CookHours), Errors: p.Errors}))
		h.C(components.Input(components.FieldProps{Name: "cook_minutes", Label: "Cook minutes", Type: "number", Value: itoa(in.CookMinutes), Errors: p.Errors}))
		h.S(`</div>`)

		h.C(ingredientRows(p))
		h.C(stepRows(p))

		h.C(components.Input(components.FieldProps{Name: "video_url", Label: "Video link", Type: "url", Value: in.VideoURL, Placeholder: "https://", Errors: p.Errors}))

		h.S(`<div class="mb-6"><label for="image" class="block text-sm font-medium">Photo (JPEG, PNG or WebP, up to 10 MB)</label>`)
		h.S(`<input id="image" name="image" type="file" accept="image/jpeg,image/png,image/webp" class="mt-1 block text-sm">`)
		h.C(components.FieldError(p.Errors, "image"))
		h.S(`</div>`)

		h.C(components.Button(components.ButtonProps{Label: "Save recipe", Type: "submit"}))
		h.S(`</form>`)
	})

	return components.Layout(components.LayoutProps{Title: title}, body)
}

func ingredientRows(p RecipeFormProps) templ.Component {
	return ui.Component(func(h *ui.Writer) {
		rows := append([]service.IngredientInput(nil), p.Input.Ingredients...)
		for range spareIngredientRows {
			rows = append(rows, service.IngredientInput{})
		}
		options := measurementOptions(p.Options.Measurements)

		h.S(`<fieldset class="mb-6"><legend class="mb-2 text-lg font-semibold">Ingredients</legend>`)
		h.C(components.FieldError(p.Errors, "ingredients"))
		for i, row := range rows {
			field := fmt.Sprintf("ingredients.%d", i)
			h.S(`<div class="mb-2 grid grid-cols-6 gap-2">`)
			h.F(`<input name="ingredient_quantity" value="%s" placeholder="1 1/2" aria-label="Quantity" class="col-span-1 rounded-md border border-stone-300 px-2 py-1 text-sm">`, row.Quantity)
			h.S(`<select name="ingredient_measurement" aria-label="Measurement" class="col-span-2 rounded-md border border-stone-300 px-2 py-1 text-sm"><option value="">-</option>`)
			for _, o := range options {
				sel := ""
				if o.Value == row.MeasurementID {
					sel = " selected"
				}
				h.F(`<option value="%s"%s>%s</option>`, o.Value, ui.Raw(sel), o.Label)
			}
			h.S(`</select>`)
			h.F(`<input name="ingredient_name" value="%s" placeholder="Ingredient" aria-label="Ingredient" class="col-span-3 rounded-md border border-stone-300 px-2 py-1 text-sm">`, row.Name)
			h.S(`</div>`)
			for _, suffix := range []string{".quantity", ".measurement_id", ".name"} {
				h.C(components.FieldError(p.Errors, field+suffix))
			}
		}
		h.S(`</fieldset>`)
	})
}

func stepRows(p RecipeFormProps) templ.Component {
	return ui.Component(func(h *ui.Writer) {
		steps := append([]string(nil), p.Input.Steps...)
		for range spareStepRows {
			steps = append(steps, "")
		}

		h.S(`<fieldset class="mb-6"><legend class="mb-2 text-lg font-semibold">Steps</legend>`)
		h.C(components.FieldError(p.Errors, "steps"))
		for i, step := range steps {
			h.F(`<label class="mb-2 flex gap-2"><span class="pt-2 font-bold text-orange-600">%d.</span>`, i+1)
			h.F(`<textarea name="step" rows="2" class="w-full rounded-md border border-stone-300 px-2 py-1 text-sm">%s</textarea></label>`, step)
		}
		h.S(`</fieldset>`)
	})
}
