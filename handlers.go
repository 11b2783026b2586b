package worksite

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/worksite/content"
	"github.com/eringen/worksite/views"
)

// viewportHint is the client hint carrying the layout viewport height.
const viewportHint = "Sec-CH-Viewport-Height"

func (a *App) setupRoutes() {
	e := a.Echo

	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET(stylesheetPath, echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/healthz", handleHealth)

	e.GET("/", handleHomeRedirect)
	e.GET(views.WorkPath, a.handleWork)

	if a.adminEnabled() {
		e.GET("/admin/", a.handleAdmin)
		e.POST("/admin/login/", a.handleAdminLogin)
		e.POST("/admin/logout/", handleAdminLogout)
		e.POST("/admin/refresh/", a.handleAdminRefresh)
	}
}

// handleWork serves the Work page, or only its services section for htmx
// disclosure swaps.
func (a *App) handleWork(c echo.Context) error {
	b, err := a.Cache.Get(c.Request().Context())
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return RenderNodeStatus(c, http.StatusNotFound, views.NotFound(a.Config.siteInfo()))
		}
		return err
	}

	h := c.Response().Header()
	h.Set("Accept-CH", viewportHint)
	h.Add(echo.HeaderVary, viewportHint)
	h.Add(echo.HeaderVary, "HX-Request")

	opts := views.WorkOptions{
		Site:        a.Config.siteInfo(),
		Viewport:    requestViewport(c.Request()),
		Disclosures: views.ParseDisclosures(c.QueryParams(), a.Config.SingleOpen),
		Key:         a.Config.disclosureKey(),
	}
	if c.Request().Header.Get("HX-Request") == "true" && c.QueryParam("partial") == "services" {
		return RenderNode(c, views.ServicesSection(b.Services, views.ResolveStyles(b.Page), opts))
	}
	return RenderNode(c, views.WorkPage(b, opts))
}

// requestViewport reads the viewport height client hint. It is absent on a
// first visit and for clients that do not send hints.
func requestViewport(r *http.Request) views.Viewport {
	v := strings.TrimSpace(r.Header.Get(viewportHint))
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return nil
	}
	return views.FixedViewport(f)
}

func handleHomeRedirect(c echo.Context) error {
	return c.Redirect(http.StatusFound, views.WorkPath)
}

func handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c)
}

// handleRobots generates robots.txt from the configured site URL.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", strings.TrimRight(a.Config.URL, "/"))
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderNodeStatus(c, http.StatusNotFound, views.NotFound(a.Config.siteInfo()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Logger.Error("server error",
			zap.Error(err),
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI),
		)
		_ = RenderNodeStatus(c, code, views.ServerError(a.Config.siteInfo()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
