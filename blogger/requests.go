package blogger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// GetPostByID fetches one post by its remote ID.  A deleted or unknown ID
// surfaces as ErrNotFound; the caller decides whether that's fatal.
func (api *API) GetPostByID(ctx context.Context, opts GetPostByIDQuery) (*Post, error) {
	ep, err := api.getPostByIDEndpoint(opts)
	if err != nil {
		return nil, fmt.Errorf("blogger: couldn't get post endpoint: %w", err)
	}

	body, err := api.request(ctx, http.MethodGet, ep, nil)
	if err != nil {
		return nil, fmt.Errorf("blogger: couldn't perform request: %w", err)
	}

	var post Post

	if err := json.Unmarshal(body, &post); err != nil {
		return nil, fmt.Errorf("blogger: couldn't parse json response: %w", err)
	}

	return &post, nil
}

// GetPostByPath looks a post up by its URL path.
func (api *API) GetPostByPath(ctx context.Context, opts GetPostByPathQuery) (*Post, error) {
	ep, err := api.getPostByPathEndpoint(opts)
	if err != nil {
		return nil, fmt.Errorf("blogger: couldn't get by-path endpoint: %w", err)
	}

	body, err := api.request(ctx, http.MethodGet, ep, nil)
	if err != nil {
		return nil, fmt.Errorf("blogger: couldn't perform request: %w", err)
	}

	var post Post

	if err := json.Unmarshal(body, &post); err != nil {
		return nil, fmt.Errorf("blogger: couldn't parse json response: %w", err)
	}

	return &post, nil
}

// CreatePost inserts a new post and returns it, remote ID and URL
// included.
func (api *API) CreatePost(ctx context.Context, opts InsertPostQuery, post Post) (*Post, error) {
	ep, err := api.insertPostEndpoint(opts)
	if err != nil {
		return nil, fmt.Errorf("blogger: couldn't get insert endpoint: %w", err)
	}

	body, err := api.request(ctx, http.MethodPost, ep, post)
	if err != nil {
		return nil, fmt.Errorf("blogger: couldn't perform request: %w", err)
	}

	var created Post

	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("blogger: couldn't parse json response: %w", err)
	}

	return &created, nil
}

// UpdatePost replaces an existing post.  If the remote post was deleted
// out-of-band this returns ErrNotFound and the caller falls back to
// creating.
func (api *API) UpdatePost(ctx context.Context, id string, post Post) (*Post, error) {
	ep, err := api.updatePostEndpoint(id)
	if err != nil {
		return nil, fmt.Errorf("blogger: couldn't get update endpoint: %w", err)
	}

	body, err := api.request(ctx, http.MethodPut, ep, post)
	if err != nil {
		return nil, fmt.Errorf("blogger: couldn't perform request: %w", err)
	}

	var updated Post

	if err := json.Unmarshal(body, &updated); err != nil {
		return nil, fmt.Errorf("blogger: couldn't parse json response: %w", err)
	}

	return &updated, nil
}

// request implements the basic request function.
func (api *API) request(ctx context.Context, method string, u *url.URL, payload any) ([]byte, error) {
	if api.limiter != nil {
		if err := api.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("blogger: rate limiter wait interrupted: %w", err)
		}
	}

	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("blogger: couldn't marshal request payload: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("blogger: couldn't instantiate http request: %w", err)
	}

	req.Header.Add("Accept", "application/json, */*")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if api.token != "" {
		req.Header.Set("Authorization", "Bearer "+api.token)
	}

	response, err := api.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("blogger: couldn't perform http request: %w", err)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("blogger: couldn't read http response body: %w", err)
	}

	if err := response.Body.Close(); err != nil {
		return nil, fmt.Errorf("blogger: couldn't close response body: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return body, nil
	}

	return nil, &StatusError{
		StatusCode: response.StatusCode,
		Status:     response.Status,
		URL:        u.String(),
	}
}
