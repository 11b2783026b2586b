package views

import (
	"strings"

	"github.com/eringen/worksite/content"
)

// Section names of the Work page style map.
const (
	StylePageHeader       = "pageHeader"
	StyleHeader           = "header"
	StyleHeaderText       = "headerText"
	StyleServiceList      = "serviceList"
	StyleClientList       = "clientList"
	StyleClientItem       = "clientItem"
	StyleClientImage      = "clientImage"
	StyleServiceContainer = "serviceContainer"
	StyleServiceDetails   = "serviceDetails"
	StyleSummary          = "summary"
	StyleDescription      = "description"
	StyleDetailsName      = "detailsName"
	StyleDetailsDesc      = "detailsDesc"
)

// Decl is a single CSS declaration.
type Decl struct {
	Prop  string
	Value string
}

// Style is an ordered list of declarations rendered as an inline style.
type Style []Decl

// String renders the declarations as a style attribute value.
func (s Style) String() string {
	var b strings.Builder
	for i, d := range s {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(d.Prop)
		b.WriteByte(':')
		b.WriteString(d.Value)
	}
	return b.String()
}

// Get returns the value of prop and whether it is declared.
func (s Style) Get(prop string) (string, bool) {
	for _, d := range s {
		if d.Prop == prop {
			return d.Value, true
		}
	}
	return "", false
}

// Styles maps a section name to its inline style.
type Styles map[string]Style

// ResolveStyles computes the style map for one render. The page header gets
// a cover background only when the page has a splash image.
func ResolveStyles(page content.PageMetadata) Styles {
	s := Styles{
		StylePageHeader: {
			{"padding", "0"},
		},
		StyleHeader: {
			{"display", "flex"},
			{"flex-direction", "row"},
			{"justify-content", "center"},
			{"align-items", "center"},
		},
		StyleHeaderText: {
			{"font-size", "2.5rem"},
			{"padding", "20px"},
			{"border-bottom", "thin solid black"},
		},
		StyleServiceList: {
			{"width", "80vw"},
			{"flex-direction", "row"},
			{"justify-content", "center"},
			{"flex-wrap", "wrap"},
		},
		StyleClientList: {
			{"width", "70%"},
			{"margin", "0 auto"},
			{"display", "flex"},
			{"flex-direction", "row"},
			{"justify-content", "center"},
			{"align-items", "center"},
			{"flex-wrap", "wrap"},
		},
		StyleClientItem: {
			{"width", "150px"},
			{"height", "150px"},
			{"margin", "20px"},
			{"display", "flex"},
			{"flex-direction", "column"},
			{"align-items", "center"},
			{"text-decoration", "none"},
			{"color", "black"},
		},
		StyleClientImage: {
			{"width", "75%"},
			{"margin", "10px auto"},
		},
		StyleServiceContainer: {
			{"height", "200px"},
			{"width", "25%"},
			{"display", "flex"},
			{"flex-direction", "row"},
			{"justify-content", "center"},
			{"cursor", "pointer"},
		},
		StyleServiceDetails: {
			{"padding", "15px"},
			{"display", "flex"},
			{"flex-direction", "column"},
			{"justify-content", "flex-start"},
			{"align-items", "flex-start"},
		},
		StyleSummary: {
			{"width", "20%"},
			{"max-width", "300px"},
			{"padding-right", "50px"},
			{"margin", "0 20px"},
			{"text-align", "right"},
			{"font-size", "1.5rem"},
			{"border-right", "thin solid black"},
		},
		StyleDescription: {
			{"width", "40%"},
			{"margin-right", "30px"},
			{"font-size", "1.0rem"},
		},
		StyleDetailsName: {
			{"font-size", "1.3rem"},
		},
		StyleDetailsDesc: {
			{"font-size", "0.9rem"},
		},
	}
	if u := page.SplashURL(); u != "" {
		s[StylePageHeader] = append(s[StylePageHeader],
			Decl{"background", cssURL(u)},
			Decl{"background-size", "cover"},
			Decl{"background-position", "center"},
		)
	}
	return s
}

// cssURL quotes u for use inside url(). Double quotes and line breaks would
// end the string early, so they are percent-encoded.
func cssURL(u string) string {
	r := strings.NewReplacer(`"`, "%22", "\n", "%0A", "\r", "%0D", `\`, "%5C")
	return `url("` + r.Replace(u) + `")`
}
