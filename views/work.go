package views

import (
	"net/url"

	"github.com/eringen/worksite/content"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// WorkPath is where the Work page is served.
const WorkPath = "/work/"

// ServicesSectionID is the element id htmx swaps when a disclosure toggles.
const ServicesSectionID = "work-services"

// WorkOptions are the render-time inputs besides the content bundle.
type WorkOptions struct {
	Site SiteInfo
	// Viewport is nil in non-interactive renders; the header breakpoint hint
	// is then omitted.
	Viewport Viewport
	// Disclosures is the open/closed state of the service popovers. Nil
	// renders every popover closed.
	Disclosures DisclosureState
	Key         DisclosureKey
	// BasePath is the page path disclosure links point at. Defaults to
	// WorkPath.
	BasePath string
	// Static renders links for a static build: one path per open
	// disclosure instead of query parameters, and no htmx attributes.
	Static bool
}

func (o WorkOptions) basePath() string {
	if o.BasePath == "" {
		return WorkPath
	}
	return o.BasePath
}

// stateHref is the link to the page rendered in state d.
func (o WorkOptions) stateHref(d DisclosureState) string {
	base := o.basePath()
	if !o.Static {
		return withQuery(base, disclosureValues(d))
	}
	ids := d.Open()
	if len(ids) == 0 {
		return base
	}
	return base + "services/" + url.PathEscape(ids[0]) + "/"
}

func (o WorkOptions) hx(d DisclosureState) g.Node {
	if o.Static {
		return nil
	}
	return hxSwap(disclosureValues(d), o.basePath())
}

// WorkPage renders the complete Work document.
func WorkPage(b content.Bundle, opts WorkOptions) g.Node {
	layout := LayoutProps{
		SiteTitle:        b.Settings.SiteTitle,
		SiteLogo:         b.Settings.SiteLogo,
		Contact:          b.Settings.Contact,
		Connect:          b.Settings.Connect,
		HeaderBreakpoint: HeaderBreakpoint(opts.Viewport),
	}
	head := compact(
		SEO(SEOProps{
			Title:       "Work",
			SiteTitle:   seoSiteTitle(b.Settings, opts.Site),
			Description: opts.Site.Description,
			URL:         canonicalURL(opts.Site.URL),
			Image:       b.Page.SplashURL(),
		}),
		g.If(opts.Site.Stylesheet != "", h.Link(h.Rel("stylesheet"), h.Href(opts.Site.Stylesheet))),
		g.If(opts.Site.HtmxSrc != "", h.Script(h.Src(opts.Site.HtmxSrc), h.Defer())),
	)
	return Layout(layout, head, WorkContent(b, opts))
}

// seoSiteTitle is the title suffix of the document. Only the head falls
// back to the configured name; the layout shows the CMS value as given.
func seoSiteTitle(settings content.SiteSettings, site SiteInfo) string {
	if settings.SiteTitle != "" {
		return settings.SiteTitle
	}
	return site.Name
}

func canonicalURL(base string) string {
	if base == "" {
		return ""
	}
	return buildURL(base, "work")
}

// WorkContent renders the four page sections in order: hero header, intro,
// services and clients.
func WorkContent(b content.Bundle, opts WorkOptions) g.Node {
	styles := ResolveStyles(b.Page)
	return h.Section(h.Class("page-container work"),
		pageHeader(b.Page, styles),
		intro(b.Page, styles),
		ServicesSection(b.Services, styles, opts),
		clientsSection(b.Page.Clients, styles),
	)
}

func pageHeader(p content.PageMetadata, s Styles) g.Node {
	return h.Header(h.Class("page-header work"), styleAttr(s[StylePageHeader]),
		h.Div(h.Class("header-filter"),
			h.H3(g.Text("What We Do")),
			g.If(p.SplashPhrase != "", h.P(h.Class("page-header-description"), g.Text(p.SplashPhrase))),
		),
	)
}

func intro(p content.PageMetadata, s Styles) g.Node {
	return h.Section(h.Class("section-container short row"),
		h.H4(h.Class("intro-summary"), styleAttr(s[StyleSummary]), g.Text(p.IntroSummary)),
		h.P(h.Class("intro-description"), styleAttr(s[StyleDescription]), g.Text(p.IntroDescription)),
	)
}

// ServicesSection renders the service cards with their disclosures. It is
// also served alone as the htmx partial.
func ServicesSection(services []content.Service, s Styles, opts WorkOptions) g.Node {
	state := opts.Disclosures
	if state == nil {
		state = &Disclosures{}
	}
	cards := make([]g.Node, 0, len(services))
	anyOpen := false
	for i, svc := range services {
		id := ServiceID(opts.Key, i, svc)
		open := state.IsOpen(id)
		anyOpen = anyOpen || open
		next := toggled(state, id)
		cards = append(cards, serviceCard(svc, id, open, opts.stateHref(next), opts.hx(next), s))
	}

	var backdrop g.Node
	if anyOpen {
		none := allClosed(state)
		backdrop = h.A(h.Class("popover-backdrop"), h.Href(opts.stateHref(none)), h.Aria("label", "Close"),
			opts.hx(none),
		)
	}
	return h.Section(h.ID(ServicesSectionID), h.Class("section-container services medium"), styleAttr(s[StyleServiceList]),
		backdrop,
		g.Group(cards),
	)
}

func serviceCard(svc content.Service, id string, open bool, href string, hx g.Node, s Styles) g.Node {
	state := "closed"
	if open {
		state = "open"
	}
	return h.Div(h.Class("service-container"), styleAttr(s[StyleServiceContainer]),
		h.Data("service-id", id),
		h.Data("disclosure", state),
		h.A(h.Class("service-trigger"), h.Href(href),
			h.Aria("expanded", boolString(open)),
			h.Aria("controls", "popover-"+domID(id)),
			hx,
			h.Div(styleAttr(s[StyleServiceDetails]),
				g.If(svc.Metadata.Icon != "", icon(svc.Metadata.Icon)),
				h.H5(styleAttr(s[StyleDetailsName]), g.Text(svc.Title)),
				h.P(styleAttr(s[StyleDetailsDesc]), g.Text(svc.Metadata.Summary)),
			),
		),
		g.If(open, popover(id, svc.Title, svc.Metadata.Description)),
	)
}

func popover(id, title, description string) g.Node {
	return h.Div(h.ID("popover-"+domID(id)), h.Class("popover"), h.Role("dialog"),
		h.H3(h.Class("popover-title"), g.Text(title)),
		h.Div(h.Class("popover-content"), h.P(g.Text(description))),
	)
}

func icon(name string) g.Node {
	return h.I(h.Class("rs-icon rs-icon-"+name+" rs-icon-size-3x"), h.Aria("hidden", "true"))
}

// hxSwap makes a disclosure link swap only the services section when htmx
// is loaded. Without htmx the plain href navigates to the same state.
func hxSwap(next url.Values, base string) g.Node {
	partial := url.Values{}
	for k, v := range next {
		partial[k] = v
	}
	partial.Set("partial", "services")
	return g.Group{
		g.Attr("hx-get", withQuery(base, partial)),
		g.Attr("hx-target", "#"+ServicesSectionID),
		g.Attr("hx-swap", "outerHTML"),
		g.Attr("hx-push-url", withQuery(base, next)),
	}
}

func clientsSection(clients []content.Client, s Styles) g.Node {
	items := make([]g.Node, 0, len(clients))
	for _, c := range clients {
		items = append(items, ClientLink(c, s))
	}
	return h.Section(h.Class("section-container medium"),
		h.Div(styleAttr(s[StyleHeader]),
			h.H2(styleAttr(s[StyleHeaderText]), g.Text("Our Clients")),
		),
		h.Div(h.Class("client-list"), styleAttr(s[StyleClientList]), g.Group(items)),
	)
}

// ClientLink renders one client card linking to https://{url}. The url is
// used as given.
func ClientLink(c content.Client, s Styles) g.Node {
	return h.A(h.Class("client-item"), styleAttr(s[StyleClientItem]), h.Href("https://"+c.URL),
		h.P(g.Text(c.Name)),
		h.Img(h.Src(c.Image), h.Alt(c.Name), styleAttr(s[StyleClientImage])),
	)
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
