package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

// Raw marks trusted markup that must not be escaped
type Raw string

// Writer builds markup for a component. String arguments are HTML-escaped,
// templ.SafeURL values are escaped as attributes and Raw values pass through.
// The first write error sticks and later writes are skipped.
type Writer struct {
	ctx context.Context
	w   io.Writer
	err error
}

func NewWriter(ctx context.Context, w io.Writer) *Writer {
	return &Writer{ctx: ctx, w: w}
}

func (h *Writer) Ctx() context.Context {
	return h.ctx
}

// F writes format with escaped args
func (h *Writer) F(format string, args ...any) {
	if h.err != nil {
		return
	}
	for i, arg := range args {
		switch v := arg.(type) {
		case string:
			args[i] = templ.EscapeString(v)
		case templ.SafeURL:
			args[i] = templ.EscapeString(string(v))
		case Raw:
			args[i] = string(v)
		}
	}
	_, h.err = fmt.Fprintf(h.w, format, args...)
}

// S writes trusted markup as is
func (h *Writer) S(markup string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, markup)
}

// T writes escaped text
func (h *Writer) T(text string) {
	h.S(templ.EscapeString(text))
}

// C renders a child component
func (h *Writer) C(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

func (h *Writer) Err() error {
	return h.err
}

// Component adapts a Writer based render function to templ.Component
func Component(fn func(h *Writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := NewWriter(ctx, w)
		fn(h)
		return h.Err()
	})
}

// Class merges tailwind classes, later ones winning over conflicting earlier ones
func Class(classes ...string) string {
	return twmerge.Merge(strings.Join(classes, " "))
}

// URL sanitizes a user supplied link
func URL(s string) templ.SafeURL {
	return templ.URL(s)
}
