package html

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Page writes markup and keeps the first write error.
type Page struct {
	ctx context.Context
	w   io.Writer
	err error
}

func NewPage(ctx context.Context, w io.Writer) *Page {
	return &Page{ctx: ctx, w: w}
}

// Raw writes trusted markup as is.
func (p *Page) Raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

// Text writes escaped text.
func (p *Page) Text(s string) {
	p.Raw(templ.EscapeString(s))
}

// Rawf formats markup. Every argument is escaped, so use %s verbs only.
func (p *Page) Rawf(format string, args ...any) {
	escaped := make([]any, len(args))
	for i, a := range args {
		escaped[i] = templ.EscapeString(fmt.Sprint(a))
	}
	p.Raw(fmt.Sprintf(format, escaped...))
}

func (p *Page) Component(c templ.Component) {
	if p.err != nil || c == nil {
		return
	}
	p.err = c.Render(p.ctx, p.w)
}

func (p *Page) Err() error {
	return p.err
}

// Component adapts a page-writing func into a templ.Component.
func Component(fn func(p *Page)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := NewPage(ctx, w)
		fn(p)
		return p.Err()
	})
}
