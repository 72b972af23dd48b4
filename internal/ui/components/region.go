// Package components renders dashboard regions as HTML templ components.
package components

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/signalboard/internal/render"
)

// Region renders r as one element whose id is the region id, so a datastar
// patch of the output replaces the container in the page.
func Region(r render.Region) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		writeRegion(&b, r)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// ActionURL returns the endpoint that performs a.
func ActionURL(a render.Action) string {
	switch a.Kind {
	case render.ActionSelectTab:
		return "/tabs/" + url.PathEscape(a.Value)
	case render.ActionSelectScenario:
		return "/scenarios/" + url.PathEscape(a.Value)
	default:
		return ""
	}
}

func writeRegion(b *strings.Builder, r render.Region) {
	tag := r.Tag
	if tag == "" {
		tag = "div"
	}
	b.WriteString("<" + tag)
	writeAttr(b, "id", r.ID)
	if r.Class != "" {
		writeAttr(b, "class", r.Class)
	}
	b.WriteString(">")
	for _, n := range r.Children {
		writeNode(b, n)
	}
	b.WriteString("</" + tag + ">")
}

func writeNode(b *strings.Builder, n render.Node) {
	if n.Tag == "" {
		b.WriteString(templ.EscapeString(n.Text))
		return
	}
	b.WriteString("<" + n.Tag)
	if n.Class != "" {
		writeAttr(b, "class", n.Class)
	}
	for _, a := range n.Attrs {
		writeAttr(b, a.Key, a.Value)
	}
	if n.Action != nil {
		if u := ActionURL(*n.Action); u != "" {
			if n.Tag == "button" {
				writeAttr(b, "type", "button")
			}
			writeAttr(b, "data-on:click", "@get('"+u+"')")
		}
	}
	b.WriteString(">")
	b.WriteString(templ.EscapeString(n.Text))
	for _, c := range n.Children {
		writeNode(b, c)
	}
	b.WriteString("</" + n.Tag + ">")
}

func writeAttr(b *strings.Builder, key, value string) {
	b.WriteString(" " + key + `="` + templ.EscapeString(value) + `"`)
}
