package components

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flavorconnect/flavorconnect/internal/ctxkeys"
	"github.com/flavorconnect/flavorconnect/internal/validation"
)

func render(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, c.Render(ctx, &buf))
	return buf.String()
}

func TestFlashMessage(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, render(t, ctx, FlashMessage("")))

	html := render(t, ctx, FlashMessage("Saved <b>Ragu</b>"))
	assert.Contains(t, html, `role="status"`)
	assert.Contains(t, html, "Saved &lt;b&gt;Ragu&lt;/b&gt;")
}

func TestCSRFField(t *testing.T) {
	ctx := ctxkeys.WithCSRFToken(context.Background(), `tok"en`)

	html := render(t, ctx, CSRFField())
	assert.Contains(t, html, `name="csrf_token"`)
	assert.Contains(t, html, `value="tok&#34;en"`)
}

func TestFieldErrorAndSummary(t *testing.T) {
	ctx := context.Background()

	var errs validation.Errors
	assert.Empty(t, render(t, ctx, FieldError(errs, "title")))
	assert.Empty(t, render(t, ctx, ErrorSummary(errs)))

	errs.Add("title", "title is required")
	errs.Add("form", "Something went wrong")

	assert.Contains(t, render(t, ctx, FieldError(errs, "title")), "title is required")
	assert.Empty(t, render(t, ctx, FieldError(errs, "steps")))

	summary := render(t, ctx, ErrorSummary(errs))
	assert.Contains(t, summary, "Please fix the highlighted fields.")
	assert.Contains(t, summary, "Something went wrong")
}
