package views

import (
	"context"
	"io"
	"math"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
)

// Component adapts a node to templ.Component so it can go through the same
// render path as any templ template.
func Component(n g.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return n.Render(w)
	})
}

// Viewport reports the height of the client's viewport, when known.
type Viewport interface {
	Height() (float64, bool)
}

// ViewportFunc adapts a function to Viewport.
type ViewportFunc func() (float64, bool)

// Height calls f.
func (f ViewportFunc) Height() (float64, bool) { return f() }

// FixedViewport is a viewport of known height.
type FixedViewport float64

// Height returns v.
func (v FixedViewport) Height() (float64, bool) {
	f := float64(v)
	return f, f > 0 && !math.IsInf(f, 1)
}

// HeaderBreakpoint derives the header breakpoint hint from the viewport: a
// third of its height. It is nil without a viewport.
func HeaderBreakpoint(v Viewport) *float64 {
	if v == nil {
		return nil
	}
	h, ok := v.Height()
	if !ok {
		return nil
	}
	bp := h / 3
	return &bp
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// withQuery appends encoded values to p.
func withQuery(p string, v url.Values) string {
	if len(v) == 0 {
		return p
	}
	return p + "?" + v.Encode()
}

func styleAttr(s Style) g.Node {
	if len(s) == 0 {
		return nil
	}
	return g.Attr("style", s.String())
}

// compact drops nil nodes so the group can be rendered on its own.
func compact(nodes ...g.Node) g.Group {
	out := make(g.Group, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}
