package views

import (
	"encoding/json"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// SEOProps is the page metadata injected into <head>.
type SEOProps struct {
	Title       string
	SiteTitle   string
	Description string
	URL         string // canonical + og:url
	Image       string // og:image
}

// FullTitle is the document title, "Work | Studio".
func (p SEOProps) FullTitle() string {
	if p.SiteTitle == "" || p.SiteTitle == p.Title {
		return p.Title
	}
	if p.Title == "" {
		return p.SiteTitle
	}
	return p.Title + " | " + p.SiteTitle
}

// SEO renders the title, description, canonical link, OpenGraph tags and a
// WebPage JSON-LD block.
func SEO(p SEOProps) g.Node {
	return compact(
		h.TitleEl(g.Text(p.FullTitle())),
		g.If(p.Description != "", h.Meta(h.Name("description"), h.Content(p.Description))),
		g.If(p.URL != "", h.Link(h.Rel("canonical"), h.Href(p.URL))),
		ogMeta("og:title", p.FullTitle()),
		ogMeta("og:type", "website"),
		ogMeta("og:site_name", p.SiteTitle),
		ogMeta("og:description", p.Description),
		ogMeta("og:url", p.URL),
		ogMeta("og:image", p.Image),
		h.Script(h.Type("application/ld+json"), g.Raw(webPageJsonLD(p))),
	)
}

func ogMeta(property, value string) g.Node {
	if value == "" {
		return nil
	}
	return h.Meta(g.Attr("property", property), h.Content(value))
}

// webPageJsonLD produces a Schema.org WebPage block. json.Marshal escapes
// <, > and & so the result is safe inside a script element.
func webPageJsonLD(p SEOProps) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebPage",
		"name":     p.FullTitle(),
	}
	if p.URL != "" {
		data["url"] = p.URL
	}
	if p.Description != "" {
		data["description"] = p.Description
	}
	if p.SiteTitle != "" {
		data["isPartOf"] = map[string]string{
			"@type": "WebSite",
			"name":  p.SiteTitle,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
