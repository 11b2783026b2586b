package worksite

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	g "maragu.dev/gomponents"

	"github.com/eringen/worksite/views"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
// The component is rendered into a buffer first, so a failed render writes
// nothing and its error reaches the HTTP error handler.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	var renderErr error
	templ.Handler(cmp,
		templ.WithStatus(code),
		templ.WithContentType(echo.MIMETextHTMLCharsetUTF8),
		templ.WithErrorHandler(func(_ *http.Request, err error) http.Handler {
			renderErr = err
			return http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
		}),
	).ServeHTTP(c.Response(), c.Request())
	return renderErr
}

// RenderNode writes a view node as an HTTP 200 HTML response.
func RenderNode(c echo.Context, n g.Node) error {
	return Render(c, views.Component(n))
}

// RenderNodeStatus writes a view node with a specific HTTP status code.
func RenderNodeStatus(c echo.Context, code int, n g.Node) error {
	return RenderStatus(c, code, views.Component(n))
}
