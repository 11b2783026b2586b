package views

import (
	"strconv"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

func simplePage(site SiteInfo, title string, body ...g.Node) g.Node {
	head := compact(
		SEO(SEOProps{Title: title, SiteTitle: site.Name}),
		h.Meta(h.Name("robots"), h.Content("noindex")),
		g.If(site.Stylesheet != "", h.Link(h.Rel("stylesheet"), h.Href(site.Stylesheet))),
	)
	return Layout(LayoutProps{SiteTitle: site.Name}, head,
		h.Section(h.Class("page-container"), g.Group(body)),
	)
}

// NotFound is the 404 page.
func NotFound(site SiteInfo) g.Node {
	return simplePage(site, "Not found",
		h.H2(g.Text("Page not found")),
		h.P(h.A(h.Href(WorkPath), g.Text("See our work"))),
	)
}

// ServerError is the 5xx page.
func ServerError(site SiteInfo) g.Node {
	return simplePage(site, "Error",
		h.H2(g.Text("Something went wrong")),
		h.P(g.Text("Please try again in a moment.")),
	)
}

// AdminLogin renders the password form guarding content refresh.
func AdminLogin(site SiteInfo, showError bool, csrfToken string) g.Node {
	return simplePage(site, "Admin",
		h.H2(g.Text("Sign in")),
		g.If(showError, h.P(h.Class("form-error"), h.Role("alert"), g.Text("Invalid password."))),
		h.Form(h.Class("admin-login"), h.Method("post"), h.Action("/admin/login/"),
			csrfField(csrfToken),
			h.Label(h.For("password"), g.Text("Password")),
			h.Input(h.ID("password"), h.Type("password"), h.Name("password"), h.Required()),
			h.Button(h.Type("submit"), g.Text("Sign in")),
		),
	)
}

// AdminDashboard lists stored content snapshots and offers a refresh.
func AdminDashboard(site SiteInfo, rows []SnapshotRow, message, csrfToken string) g.Node {
	items := make([]g.Node, 0, len(rows))
	for _, r := range rows {
		items = append(items, h.Tr(h.Data("snapshot-id", strconv.FormatInt(r.ID, 10)),
			h.Td(g.Text(r.FetchedAt)),
			h.Td(g.Text(r.Source)),
			h.Td(g.Text(strconv.Itoa(r.Size))),
		))
	}
	return simplePage(site, "Admin",
		h.H2(g.Text("Content")),
		g.If(message != "", h.P(h.Class("admin-message"), h.Role("status"), g.Text(message))),
		h.Form(h.Class("admin-refresh"), h.Method("post"), h.Action("/admin/refresh/"),
			csrfField(csrfToken),
			h.Button(h.Type("submit"), g.Text("Refresh from CMS")),
		),
		g.If(len(items) > 0, h.Table(h.Class("admin-snapshots"),
			h.THead(h.Tr(h.Th(g.Text("Fetched")), h.Th(g.Text("Source")), h.Th(g.Text("Bytes")))),
			h.TBody(g.Group(items)),
		)),
		g.If(len(items) == 0, h.P(g.Text("No snapshots stored yet."))),
		h.Form(h.Method("post"), h.Action("/admin/logout/"),
			csrfField(csrfToken),
			h.Button(h.Type("submit"), g.Text("Sign out")),
		),
	)
}

func csrfField(token string) g.Node {
	return h.Input(h.Type("hidden"), h.Name("_csrf"), h.Value(token))
}
