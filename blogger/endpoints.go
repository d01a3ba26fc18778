package blogger

import (
	"fmt"
	"net/url"

	"github.com/google/go-querystring/query"
)

// getPostByIDEndpoint returns the API endpoint to fetch one post:
// https://developers.google.com/blogger/docs/3.0/reference/posts/get
func (a *API) getPostByIDEndpoint(opts GetPostByIDQuery) (*url.URL, error) {
	if opts.ID == "" {
		return nil, fmt.Errorf("blogger: please provide ID to get post by ID")
	}

	ep, err := a.resolveEndpoint(fmt.Sprintf("/blogs/%s/posts/%s", a.BlogID, opts.ID))
	if err != nil {
		return nil, fmt.Errorf("blogger: couldn't resolve endpoint: %w", err)
	}

	v, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("blogger: couldn't encode query params: %w", err)
	}
	ep.RawQuery = v.Encode()

	return ep, nil
}

// getPostByPathEndpoint returns the API endpoint to look a post up by its
// URL path, the authoritative identity when no ID is cached:
// https://developers.google.com/blogger/docs/3.0/reference/posts/getByPath
func (a *API) getPostByPathEndpoint(opts GetPostByPathQuery) (*url.URL, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("blogger: please provide path to get post by path")
	}

	ep, err := a.resolveEndpoint(fmt.Sprintf("/blogs/%s/posts/bypath", a.BlogID))
	if err != nil {
		return nil, fmt.Errorf("blogger: couldn't resolve endpoint: %w", err)
	}

	v, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("blogger: couldn't encode query params: %w", err)
	}
	ep.RawQuery = v.Encode()

	return ep, nil
}

// insertPostEndpoint returns the API endpoint to create a post:
// https://developers.google.com/blogger/docs/3.0/reference/posts/insert
func (a *API) insertPostEndpoint(opts InsertPostQuery) (*url.URL, error) {
	ep, err := a.resolveEndpoint(fmt.Sprintf("/blogs/%s/posts", a.BlogID))
	if err != nil {
		return nil, fmt.Errorf("blogger: couldn't resolve endpoint: %w", err)
	}

	v, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("blogger: couldn't encode query params: %w", err)
	}
	ep.RawQuery = v.Encode()

	return ep, nil
}

// updatePostEndpoint returns the API endpoint to replace a post:
// https://developers.google.com/blogger/docs/3.0/reference/posts/update
func (a *API) updatePostEndpoint(id string) (*url.URL, error) {
	if id == "" {
		return nil, fmt.Errorf("blogger: please provide ID to update post")
	}

	return a.resolveEndpoint(fmt.Sprintf("/blogs/%s/posts/%s", a.BlogID, id))
}

// Do a bit of error checking on endpoint format, and return it relative to the base URI.
func (a *API) resolveEndpoint(endpoint string) (*url.URL, error) {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("blogger: failed to parse endpoint ref: %w", err)
	}

	u := *a.BaseURI
	u.Path = u.Path + ref.Path
	return &u, nil
}
