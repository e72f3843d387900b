package component

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/a-h/templ"
)

// Printer writes HTML to a response. Text and attribute values are escaped;
// the first write error sticks and later writes are skipped.
type Printer struct {
	ctx context.Context
	w   io.Writer
	err error
}

// Build turns fn into a component.
func Build(fn func(p *Printer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &Printer{ctx: ctx, w: w}
		fn(p)
		return p.err
	})
}

func (p *Printer) Raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *Printer) Text(s string) {
	p.Raw(templ.EscapeString(s))
}

func (p *Printer) Textf(format string, args ...any) {
	p.Text(fmt.Sprintf(format, args...))
}

// Open writes a start tag. Boolean attributes are written bare when true
// and dropped when false.
func (p *Printer) Open(tag string, attrs ...templ.Attributes) {
	p.Raw("<" + tag)
	for _, set := range attrs {
		keys := make([]string, 0, len(set))
		for k := range set {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			switch v := set[k].(type) {
			case bool:
				if v {
					p.Raw(" " + templ.EscapeString(k))
				}
			default:
				p.Raw(fmt.Sprintf(` %s="%s"`, templ.EscapeString(k), templ.EscapeString(fmt.Sprint(v))))
			}
		}
	}
	p.Raw(">")
}

func (p *Printer) Close(tag string) {
	p.Raw("</" + tag + ">")
}

// Elem writes a whole element holding escaped text.
func (p *Printer) Elem(tag string, text string, attrs ...templ.Attributes) {
	p.Open(tag, attrs...)
	p.Text(text)
	p.Close(tag)
}

// Render writes a nested component.
func (p *Printer) Render(c templ.Component) {
	if p.err != nil || c == nil {
		return
	}
	p.err = c.Render(p.ctx, p.w)
}
