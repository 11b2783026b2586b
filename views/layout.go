package views

import (
	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/eringen/worksite/content"
)

// LayoutProps is what the page hands to the site chrome. The CMS values are
// passed through unmodified.
type LayoutProps struct {
	SiteTitle        string
	SiteLogo         content.Image
	Contact          content.Contact
	Connect          []content.Link
	HeaderBreakpoint *float64
}

// Layout renders the document shell around body: site header, main content
// and footer. head is placed inside <head>.
func Layout(p LayoutProps, head g.Node, body ...g.Node) g.Node {
	return h.Doctype(
		h.HTML(h.Lang("en"),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				head,
			),
			h.Body(
				siteHeader(p),
				h.Main(g.Group(body)),
				siteFooter(p),
			),
		),
	)
}

func siteHeader(p LayoutProps) g.Node {
	var bp g.Node
	if p.HeaderBreakpoint != nil {
		bp = h.Data("header-breakpoint", formatFloat(*p.HeaderBreakpoint))
	}
	return h.Header(h.Class("site-header"), bp,
		h.A(h.Class("site-brand"), h.Href("/"),
			g.If(p.SiteLogo.URL != "", h.Img(h.Class("site-logo"), h.Src(p.SiteLogo.URL), h.Alt(p.SiteTitle))),
			h.Span(h.Class("site-title"), g.Text(p.SiteTitle)),
		),
	)
}

func siteFooter(p LayoutProps) g.Node {
	c := p.Contact
	var connect []g.Node
	for _, l := range p.Connect {
		connect = append(connect, h.Li(h.A(h.Href(string(templ.URL(l.URL))), h.Rel("noopener"), g.Text(l.Name))))
	}
	return h.Footer(h.Class("site-footer"),
		h.Address(h.Class("site-contact"),
			lineIf(c.Address1),
			lineIf(c.Address2),
			lineIf(joinNonEmpty(" ", c.PostalCode, c.City)),
			lineIf(joinNonEmpty(", ", c.Region, c.CC)),
			g.If(c.Phone != "", h.Div(h.A(h.Href("tel:"+c.Phone), g.Text(c.Phone)))),
			g.If(c.Email != "", h.Div(h.A(h.Href("mailto:"+c.Email), g.Text(c.Email)))),
		),
		g.If(len(connect) > 0, h.Ul(h.Class("site-connect"), g.Group(connect))),
		h.P(h.Class("site-copyright"), g.Text("© "+p.SiteTitle)),
	)
}

func lineIf(s string) g.Node {
	if s == "" {
		return nil
	}
	return h.Div(g.Text(s))
}

func joinNonEmpty(sep string, parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += sep
		}
		out += p
	}
	return out
}
