package blogger

import (
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"
)

// DefaultBaseURI is the Blogger v3 REST endpoint.  Tests point this at an
// httptest server instead.
const DefaultBaseURI = "https://www.googleapis.com/blogger/v3"

// Blogger's per-user quota is modest; pace ourselves client-side rather
// than hammering into 429s.
const requestsPerSecond = 5

func NewAPI(baseURI string, blogID string, token string) (*API, error) {
	if blogID == "" {
		return &API{}, fmt.Errorf("blogger: configure your blog ID with --blog-id")
	}
	if token == "" {
		return &API{}, fmt.Errorf("blogger: auth token is empty, please check auth-token-cmd")
	}

	if baseURI == "" {
		baseURI = DefaultBaseURI
	}

	u, err := url.ParseRequestURI(baseURI)
	if err != nil {
		return nil, fmt.Errorf("blogger: couldn't parse REST API URL: %w", err)
	}

	a := &API{
		BaseURI: u,
		BlogID:  blogID,
		token:   token,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}
	a.Client = &http.Client{}

	return a, nil
}

type API struct {
	// Base of the publishing endpoint's REST API.
	BaseURI *url.URL

	// The blog all calls operate on.
	BlogID string

	// An HTTP client - you can substitute VCR or whatnot.
	Client *http.Client

	// Auth info
	token string

	limiter *rate.Limiter
}
