package worksite

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func readDoc(t *testing.T, path string) *goquery.Document {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
	require.NoError(t, err)
	return doc
}

func TestBuildWritesStaticSite(t *testing.T) {
	a := newTestApp(t, SiteConfig{FixturePath: fixturePath, HtmxSrc: "https://unpkg.com/htmx.org@2.0.4"})
	out := t.TempDir()

	require.NoError(t, a.Build(context.Background(), out))

	for _, rel := range []string{
		"index.html",
		"work/index.html",
		"work/services/1/index.html",
		"work/services/2/index.html",
		"public/work.css",
	} {
		_, err := os.Stat(filepath.Join(out, filepath.FromSlash(rel)))
		require.NoError(t, err, rel)
	}

	doc := readDoc(t, filepath.Join(out, "work", "index.html"))
	require.Equal(t, 0, doc.Find("script[src]").Length())
	require.Equal(t, 1, doc.Find(`script[type="application/ld+json"]`).Length())
	require.Equal(t, 0, doc.Find(".popover").Length())
	require.Equal(t, "/work/services/1/", doc.Find(`[data-service-id="1"] a.service-trigger`).AttrOr("href", ""))
	_, hasHx := doc.Find("a.service-trigger").First().Attr("hx-get")
	require.False(t, hasHx)
	_, hasBreakpoint := doc.Find(".site-header").Attr("data-header-breakpoint")
	require.False(t, hasBreakpoint)

	doc = readDoc(t, filepath.Join(out, "work", "services", "2", "index.html"))
	require.Equal(t, "Engineering", doc.Find("#popover-2 .popover-title").Text())
	require.Equal(t, "/work/", doc.Find(`[data-service-id="2"] a.service-trigger`).AttrOr("href", ""))
	require.Equal(t, "/work/", doc.Find("a.popover-backdrop").AttrOr("href", ""))
	// Opening another service from here replaces the open one.
	require.Equal(t, "/work/services/1/", doc.Find(`[data-service-id="1"] a.service-trigger`).AttrOr("href", ""))
}

func TestBuildWithoutContent(t *testing.T) {
	a := newTestApp(t, SiteConfig{})

	err := a.Build(context.Background(), t.TempDir())
	require.ErrorContains(t, err, "build")
}
