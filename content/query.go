package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// PageSlug and SettingsSlug identify the CMS objects the Work page reads.
const (
	PageSlug     = "work"
	SettingsSlug = "site-data"
)

// Query is the GraphQL document sent to the CMS. It requests exactly the
// fields of Bundle.
const Query = `query Work {
  cosmicjsPages(slug: { eq: "work" }) {
    metadata {
      splash_image {
        url
      }
      splash_phrase
      intro_summary
      intro_description
      clients {
        name
        url
        image
      }
    }
  }
  allCosmicjsServices {
    edges {
      node {
        title
        metadata {
          icon
          summary
          description
        }
      }
    }
  }
  cosmicjsSettings(slug: { eq: "site-data" }) {
    metadata {
      site_title
      site_logo {
        url
      }
      contact {
        address1
        address2
        postalCode
        city
        region
        cc
        phone
        email
      }
      connect {
        name
        url
      }
    }
  }
}`

// OperationName is the named operation inside Query.
const OperationName = "Work"

type graphQLRequest struct {
	Query         string `json:"query"`
	OperationName string `json:"operationName,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type workResponse struct {
	Data *struct {
		Page *struct {
			Metadata PageMetadata `json:"metadata"`
		} `json:"cosmicjsPages"`
		Services struct {
			Edges []struct {
				Node Service `json:"node"`
			} `json:"edges"`
		} `json:"allCosmicjsServices"`
		Settings *struct {
			Metadata SiteSettings `json:"metadata"`
		} `json:"cosmicjsSettings"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// DecodeResponse maps a GraphQL response body for Query onto a Bundle. A
// response without the work page yields ErrNotFound; GraphQL errors are
// returned even when partial data is present.
func DecodeResponse(body []byte) (Bundle, error) {
	var resp workResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Bundle{}, fmt.Errorf("content: decode response: %w", err)
	}
	if len(resp.Errors) > 0 {
		msgs := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			msgs = append(msgs, e.Message)
		}
		return Bundle{}, fmt.Errorf("content: graphql: %s", strings.Join(msgs, "; "))
	}
	if resp.Data == nil || resp.Data.Page == nil {
		return Bundle{}, ErrNotFound
	}

	b := Bundle{Page: resp.Data.Page.Metadata}
	b.Services = make([]Service, 0, len(resp.Data.Services.Edges))
	for _, edge := range resp.Data.Services.Edges {
		b.Services = append(b.Services, edge.Node)
	}
	if resp.Data.Settings != nil {
		b.Settings = resp.Data.Settings.Metadata
	}
	return b, nil
}

// ErrNotFound is returned when a source has no Work page content.
var ErrNotFound = errors.New("content: not found")
