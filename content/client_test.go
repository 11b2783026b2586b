package content

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const workResponseBody = `{
  "data": {
    "cosmicjsPages": {
      "metadata": {
        "splash_image": {"url": "https://cdn.example.com/splash.jpg"},
        "splash_phrase": "Hello",
        "intro_summary": "S",
        "intro_description": "D",
        "clients": [{"name": "Acme", "url": "acme.com", "image": "/a.png"}]
      }
    },
    "allCosmicjsServices": {
      "edges": [
        {"node": {"title": "Design", "metadata": {"icon": "pen", "summary": "sum", "description": "desc"}}},
        {"node": {"title": "Build", "metadata": {"summary": "s2", "description": "d2"}}}
      ]
    },
    "cosmicjsSettings": {
      "metadata": {
        "site_title": "Co",
        "site_logo": {"url": "/logo.svg"},
        "contact": {"city": "Oslo", "postalCode": "0150"},
        "connect": [{"name": "GitHub", "url": "https://github.com/co"}]
      }
    }
  }
}`

func TestCMSClientFetchDecodesBundle(t *testing.T) {
	t.Parallel()

	var (
		gotReq    graphQLRequest
		gotAuth   string
		gotMethod string
		decodeErr error
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		decodeErr = json.NewDecoder(r.Body).Decode(&gotReq)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(workResponseBody))
	}))
	defer srv.Close()

	c := NewCMSClient(srv.URL, "secret", time.Second)
	b, err := c.Fetch(context.Background())
	require.NoError(t, err)

	require.NoError(t, decodeErr)
	require.Equal(t, http.MethodPost, gotMethod)
	require.Equal(t, Query, gotReq.Query)
	require.Equal(t, OperationName, gotReq.OperationName)
	require.Equal(t, "Bearer secret", gotAuth)

	require.Equal(t, "https://cdn.example.com/splash.jpg", b.Page.SplashURL())
	require.Equal(t, "S", b.Page.IntroSummary)
	require.Len(t, b.Page.Clients, 1)
	require.Equal(t, "acme.com", b.Page.Clients[0].URL)
	require.Len(t, b.Services, 2)
	require.Equal(t, "Design", b.Services[0].Title)
	require.Equal(t, "desc", b.Services[0].Metadata.Description)
	require.Equal(t, "Build", b.Services[1].Title)
	require.Equal(t, "Co", b.Settings.SiteTitle)
	require.Equal(t, "0150", b.Settings.Contact.PostalCode)
	require.Len(t, b.Settings.Connect, 1)
}

func TestCMSClientFetchWithoutTokenSendsNoAuthorization(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(workResponseBody))
	}))
	defer srv.Close()

	_, err := NewCMSClient(srv.URL, "", 0).Fetch(context.Background())
	require.NoError(t, err)
	require.Empty(t, gotAuth)
}

func TestCMSClientFetchStatusErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		status   int
		notFound bool
	}{
		{name: "not found", status: http.StatusNotFound, notFound: true},
		{name: "unauthorized", status: http.StatusUnauthorized},
		{name: "server error", status: http.StatusBadGateway},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			_, err := NewCMSClient(srv.URL, "", time.Second).Fetch(context.Background())
			require.Error(t, err)
			require.Equal(t, tc.notFound, errors.Is(err, ErrNotFound))
		})
	}
}

func TestCMSClientFetchWithoutEndpointIsNotFound(t *testing.T) {
	t.Parallel()

	_, err := NewCMSClient("", "", 0).Fetch(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDecodeResponseGraphQLErrors(t *testing.T) {
	t.Parallel()

	_, err := DecodeResponse([]byte(`{"data": null, "errors": [{"message": "bad field"}, {"message": "denied"}]}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad field; denied")
	require.False(t, errors.Is(err, ErrNotFound))
}

func TestDecodeResponseMissingPage(t *testing.T) {
	t.Parallel()

	_, err := DecodeResponse([]byte(`{"data": {"cosmicjsPages": null, "allCosmicjsServices": {"edges": []}}}`))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDecodeResponseKeepsAbsentFieldsEmpty(t *testing.T) {
	t.Parallel()

	b, err := DecodeResponse([]byte(`{"data": {"cosmicjsPages": {"metadata": {}}}}`))
	require.NoError(t, err)
	require.Nil(t, b.Page.SplashImage)
	require.Empty(t, b.Page.SplashURL())
	require.Empty(t, b.Page.Clients)
	require.Empty(t, b.Services)
	require.Empty(t, b.Settings.SiteTitle)
}
