package views

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eringen/worksite/content"
)

func TestResolveStylesFixedSections(t *testing.T) {
	t.Parallel()

	s := ResolveStyles(content.PageMetadata{})
	for _, name := range []string{
		StylePageHeader, StyleHeader, StyleHeaderText, StyleServiceList,
		StyleClientList, StyleClientItem, StyleClientImage, StyleServiceContainer,
		StyleServiceDetails, StyleSummary, StyleDescription, StyleDetailsName,
		StyleDetailsDesc,
	} {
		require.NotEmpty(t, s[name], name)
	}
	require.Len(t, s, 13)

	v, ok := s[StyleServiceContainer].Get("cursor")
	require.True(t, ok)
	require.Equal(t, "pointer", v)
	require.Equal(t, "width:75%;margin:10px auto", s[StyleClientImage].String())
}

func TestResolveStylesSplashImage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		page content.PageMetadata
		want string
	}{
		{name: "absent", page: content.PageMetadata{}},
		{name: "empty url", page: content.PageMetadata{SplashImage: &content.Image{}}},
		{name: "present", page: content.PageMetadata{SplashImage: &content.Image{URL: "/hero.jpg"}}, want: `url("/hero.jpg")`},
		{name: "quoted", page: content.PageMetadata{SplashImage: &content.Image{URL: `/a"b.jpg`}}, want: `url("/a%22b.jpg")`},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			header := ResolveStyles(tc.page)[StylePageHeader]
			bg, ok := header.Get("background")
			if tc.want == "" {
				require.False(t, ok)
				require.Equal(t, Style{{"padding", "0"}}, header)
				return
			}
			require.True(t, ok)
			require.Equal(t, tc.want, bg)
			size, _ := header.Get("background-size")
			pos, _ := header.Get("background-position")
			require.Equal(t, "cover", size)
			require.Equal(t, "center", pos)
		})
	}
}

func TestResolveStylesDoesNotShareState(t *testing.T) {
	t.Parallel()

	withSplash := ResolveStyles(content.PageMetadata{SplashImage: &content.Image{URL: "/x.jpg"}})
	without := ResolveStyles(content.PageMetadata{})
	require.Len(t, withSplash[StylePageHeader], 4)
	require.Len(t, without[StylePageHeader], 1)
}
