package worksite

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/eringen/worksite/content"
)

const fixturePath = "content/testdata/work.yaml"

func newTestApp(t *testing.T, cfg SiteConfig, opts ...Option) *App {
	t.Helper()
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = filepath.Join(t.TempDir(), "content.db")
	}
	a := New(cfg, opts...)
	require.NoError(t, a.Init())
	t.Cleanup(func() { a.Close() })
	return a
}

func serve(a *App, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	return doc
}

func TestWorkPageFromFixture(t *testing.T) {
	a := newTestApp(t, SiteConfig{FixturePath: fixturePath, HtmxSrc: "/public/htmx.min.js"})

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/work/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, viewportHint, rec.Header().Get("Accept-CH"))
	require.Contains(t, rec.Header().Values(echo.HeaderVary), viewportHint)
	require.Contains(t, rec.Header().Values(echo.HeaderVary), "HX-Request")

	doc := parseBody(t, rec)
	require.Equal(t, "Work | Studio", doc.Find("title").Text())
	require.Equal(t, 2, doc.Find(".service-container").Length())
	require.Equal(t, 2, doc.Find("a.client-item").Length())
	require.Equal(t, 0, doc.Find(".popover").Length())

	_, hasBreakpoint := doc.Find(".site-header").Attr("data-header-breakpoint")
	require.False(t, hasBreakpoint)
}

func TestWorkPageViewportHint(t *testing.T) {
	a := newTestApp(t, SiteConfig{FixturePath: fixturePath})

	req := httptest.NewRequest(http.MethodGet, "/work/", nil)
	req.Header.Set(viewportHint, "900")
	rec := serve(a, req)
	require.Equal(t, http.StatusOK, rec.Code)

	bp, ok := parseBody(t, rec).Find(".site-header").Attr("data-header-breakpoint")
	require.True(t, ok)
	require.Equal(t, "300", bp)
}

func TestWorkPageIgnoresBadViewportHint(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/work/", nil)
	req.Header.Set(viewportHint, "tall")
	require.Nil(t, requestViewport(req))

	req.Header.Set(viewportHint, "-1")
	require.Nil(t, requestViewport(req))

	for _, v := range []string{"Inf", "+Inf", "-Inf", "NaN"} {
		req.Header.Set(viewportHint, v)
		require.Nil(t, requestViewport(req), v)
	}
}

func TestWorkPageDropsNonFiniteViewportHint(t *testing.T) {
	a := newTestApp(t, SiteConfig{FixturePath: fixturePath})

	req := httptest.NewRequest(http.MethodGet, "/work/", nil)
	req.Header.Set(viewportHint, "Inf")
	rec := serve(a, req)
	require.Equal(t, http.StatusOK, rec.Code)

	_, ok := parseBody(t, rec).Find(".site-header").Attr("data-header-breakpoint")
	require.False(t, ok)
}

func TestWorkPageOpenDisclosure(t *testing.T) {
	a := newTestApp(t, SiteConfig{FixturePath: fixturePath})

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/work/?open=2", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parseBody(t, rec)
	pop := doc.Find("#popover-2")
	require.Equal(t, 1, pop.Length())
	require.Equal(t, "Engineering", pop.Find(".popover-title").Text())
	require.Equal(t, "Web and backend development.", pop.Find(".popover-content p").Text())
	require.Equal(t, "closed", doc.Find(`[data-service-id="1"]`).AttrOr("data-disclosure", ""))
	require.Equal(t, "/work/", doc.Find("a.popover-backdrop").AttrOr("href", ""))
}

func TestWorkPageServicesPartial(t *testing.T) {
	a := newTestApp(t, SiteConfig{FixturePath: fixturePath})

	req := httptest.NewRequest(http.MethodGet, "/work/?open=1&partial=services", nil)
	req.Header.Set("HX-Request", "true")
	rec := serve(a, req)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.True(t, strings.HasPrefix(body, `<section id="work-services"`), body)
	require.NotContains(t, strings.ToLower(body), "<!doctype html>")
	require.Contains(t, rec.Header().Values(echo.HeaderVary), "HX-Request")

	doc := parseBody(t, rec)
	require.Equal(t, "open", doc.Find(`[data-service-id="1"]`).AttrOr("data-disclosure", ""))
}

func TestWorkPagePartialNeedsHtmx(t *testing.T) {
	a := newTestApp(t, SiteConfig{FixturePath: fixturePath})

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/work/?partial=services", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, strings.ToLower(rec.Body.String()), "<!doctype html>")
}

func TestWorkPageWithoutContent(t *testing.T) {
	a := newTestApp(t, SiteConfig{})

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/work/", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Page not found", parseBody(t, rec).Find("main h2").Text())
}

func TestWorkPageSourceFailure(t *testing.T) {
	failing := content.SourceFunc(func(context.Context) (content.Bundle, error) {
		return content.Bundle{}, context.DeadlineExceeded
	})
	a := newTestApp(t, SiteConfig{}, WithSource(failing))

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/work/", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "Something went wrong", parseBody(t, rec).Find("main h2").Text())
}

func TestRoutes(t *testing.T) {
	a := newTestApp(t, SiteConfig{FixturePath: fixturePath, URL: "https://studio.example"})

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/work/", rec.Header().Get(echo.HeaderLocation))

	rec = serve(a, httptest.NewRequest(http.MethodGet, "/work", nil))
	require.Equal(t, http.StatusMovedPermanently, rec.Code)
	require.Equal(t, "/work/", rec.Header().Get(echo.HeaderLocation))

	rec = serve(a, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	rec = serve(a, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Disallow: /admin/")
	require.Contains(t, rec.Body.String(), "Sitemap: https://studio.example/sitemap.xml")

	rec = serve(a, httptest.NewRequest(http.MethodGet, "/public/work.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), ".popover")

	rec = serve(a, httptest.NewRequest(http.MethodGet, "/admin/", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSitemap(t *testing.T) {
	a := newTestApp(t, SiteConfig{FixturePath: fixturePath, URL: "https://studio.example"})

	rec := serve(a, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "<loc>https://studio.example/work/</loc>")
	require.NotContains(t, rec.Body.String(), "<lastmod>")

	_, err := a.Sync(context.Background())
	require.NoError(t, err)

	rec = serve(a, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))
	require.Contains(t, rec.Body.String(), "<lastmod>")
}

func TestBuildURL(t *testing.T) {
	require.Equal(t, "https://studio.example/work/", BuildURL("https://studio.example", "work"))
	require.Equal(t, "https://studio.example/", BuildURL("https://studio.example/"))
}

// adminClient carries cookies between requests the way a browser would.
type adminClient struct {
	t       *testing.T
	app     *App
	cookies map[string]*http.Cookie
}

func (c *adminClient) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := serve(c.app, req)
	for _, ck := range rec.Result().Cookies() {
		c.cookies[ck.Name] = ck
	}
	return rec
}

func (c *adminClient) csrf(rec *httptest.ResponseRecorder) string {
	c.t.Helper()
	token, ok := parseBody(c.t, rec).Find(`input[name="_csrf"]`).First().Attr("value")
	require.True(c.t, ok)
	require.NotEmpty(c.t, token)
	return token
}

func TestAdminRefreshFlow(t *testing.T) {
	a := newTestApp(t, SiteConfig{
		FixturePath:   fixturePath,
		AdminPassword: "secret",
		SessionSecret: "0123456789abcdef0123456789abcdef",
	})
	client := &adminClient{t: t, app: a, cookies: map[string]*http.Cookie{}}

	rec := client.do(http.MethodGet, "/admin/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	token := client.csrf(rec)

	rec = client.do(http.MethodPost, "/admin/login/", url.Values{"_csrf": {token}, "password": {"wrong"}})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, 1, parseBody(t, rec).Find(".form-error").Length())

	rec = client.do(http.MethodPost, "/admin/login/", url.Values{"_csrf": {token}, "password": {"secret"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/admin/", rec.Header().Get(echo.HeaderLocation))

	rec = client.do(http.MethodGet, "/admin/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseBody(t, rec)
	require.Equal(t, 1, doc.Find("form.admin-refresh").Length())
	require.Equal(t, 0, doc.Find("table.admin-snapshots").Length())

	rec = client.do(http.MethodPost, "/admin/refresh/", url.Values{"_csrf": {token}})
	require.Equal(t, http.StatusOK, rec.Code)
	doc = parseBody(t, rec)
	require.Equal(t, "Content refreshed from fixture.", doc.Find(".admin-message").Text())
	require.Equal(t, 1, doc.Find("table.admin-snapshots tbody tr").Length())
}

func TestAdminRefreshRequiresCSRF(t *testing.T) {
	a := newTestApp(t, SiteConfig{
		FixturePath:   fixturePath,
		AdminPassword: "secret",
		SessionSecret: "0123456789abcdef0123456789abcdef",
	})

	req := httptest.NewRequest(http.MethodPost, "/admin/refresh/", strings.NewReader(""))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := serve(a, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminLoginRateLimited(t *testing.T) {
	a := newTestApp(t, SiteConfig{
		FixturePath:   fixturePath,
		AdminPassword: "secret",
		SessionSecret: "0123456789abcdef0123456789abcdef",
	})
	client := &adminClient{t: t, app: a, cookies: map[string]*http.Cookie{}}
	token := client.csrf(client.do(http.MethodGet, "/admin/", nil))

	for i := 0; i < 5; i++ {
		rec := client.do(http.MethodPost, "/admin/login/", url.Values{"_csrf": {token}, "password": {"wrong"}})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}
	rec := client.do(http.MethodPost, "/admin/login/", url.Values{"_csrf": {token}, "password": {"secret"}})
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
}
