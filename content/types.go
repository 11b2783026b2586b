// Package content declares the shape of the CMS content rendered on the Work
// page and the sources that resolve it: the headless CMS GraphQL endpoint, a
// local YAML fixture, and any chain of the two.
package content

// Image is a CMS media reference.
type Image struct {
	URL string `json:"url" yaml:"url"`
}

// Client is a customer shown in the client grid, in CMS order.
type Client struct {
	Name  string `json:"name" yaml:"name"`
	URL   string `json:"url" yaml:"url"`
	Image string `json:"image" yaml:"image"`
}

// PageMetadata holds the metadata fields of the "work" page object.
type PageMetadata struct {
	SplashImage      *Image   `json:"splash_image" yaml:"splash_image"`
	SplashPhrase     string   `json:"splash_phrase" yaml:"splash_phrase"`
	IntroSummary     string   `json:"intro_summary" yaml:"intro_summary"`
	IntroDescription string   `json:"intro_description" yaml:"intro_description"`
	Clients          []Client `json:"clients" yaml:"clients"`
}

// SplashURL returns the splash image url, or "" when the page has none.
func (p PageMetadata) SplashURL() string {
	if p.SplashImage == nil {
		return ""
	}
	return p.SplashImage.URL
}

// ServiceMetadata holds the metadata fields of a service object.
type ServiceMetadata struct {
	Icon        string `json:"icon" yaml:"icon"`
	Summary     string `json:"summary" yaml:"summary"`
	Description string `json:"description" yaml:"description"`
}

// Service is one entry of the services collection.
type Service struct {
	Title    string          `json:"title" yaml:"title"`
	Metadata ServiceMetadata `json:"metadata" yaml:"metadata"`
}

// Contact is the postal and direct contact block of the site settings.
type Contact struct {
	Address1   string `json:"address1" yaml:"address1"`
	Address2   string `json:"address2" yaml:"address2"`
	PostalCode string `json:"postalCode" yaml:"postalCode"`
	City       string `json:"city" yaml:"city"`
	Region     string `json:"region" yaml:"region"`
	CC         string `json:"cc" yaml:"cc"`
	Phone      string `json:"phone" yaml:"phone"`
	Email      string `json:"email" yaml:"email"`
}

// Link is a named external link, e.g. a social profile.
type Link struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// SiteSettings holds the metadata of the "site-data" settings object. It is
// handed to the layout chrome unmodified.
type SiteSettings struct {
	SiteTitle string  `json:"site_title" yaml:"site_title"`
	SiteLogo  Image   `json:"site_logo" yaml:"site_logo"`
	Contact   Contact `json:"contact" yaml:"contact"`
	Connect   []Link  `json:"connect" yaml:"connect"`
}

// Bundle is the fully resolved content tree for one render of the Work page.
type Bundle struct {
	Page     PageMetadata `json:"page" yaml:"page"`
	Services []Service    `json:"services" yaml:"services"`
	Settings SiteSettings `json:"settings" yaml:"settings"`
}
