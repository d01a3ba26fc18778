package blogger

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAPI(t *testing.T, handler http.HandlerFunc) *API {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	api, err := NewAPI(server.URL, "B1", "sekrit")
	require.NoError(t, err)
	return api
}

func TestNewAPIValidation(t *testing.T) {
	_, err := NewAPI("", "", "tok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blog ID")

	_, err = NewAPI("", "B1", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token")

	api, err := NewAPI("", "B1", "tok")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURI, api.BaseURI.String())
}

func TestGetPostByID(t *testing.T) {
	api := testAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/blogs/B1/posts/42", r.URL.Path)
		assert.Equal(t, "AUTHOR", r.URL.Query().Get("view"))
		assert.Equal(t, "Bearer sekrit", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(Post{ID: "42", Title: "Hi", Status: StatusLive})
	})

	post, err := api.GetPostByID(context.Background(), GetPostByIDQuery{ID: "42", View: "AUTHOR"})
	require.NoError(t, err)
	assert.Equal(t, "42", post.ID)
	assert.Equal(t, "Hi", post.Title)
	assert.Equal(t, StatusLive, post.Status)
}

func TestGetPostByIDRequiresID(t *testing.T) {
	api, err := NewAPI("", "B1", "tok")
	require.NoError(t, err)

	_, err = api.GetPostByID(context.Background(), GetPostByIDQuery{})
	require.Error(t, err)
}

func TestGetPostByPath(t *testing.T) {
	api := testAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/blogs/B1/posts/bypath", r.URL.Path)
		assert.Equal(t, "/2025/10/hello.html", r.URL.Query().Get("path"))

		json.NewEncoder(w).Encode(Post{ID: "55"})
	})

	post, err := api.GetPostByPath(context.Background(), GetPostByPathQuery{Path: "/2025/10/hello.html", View: "AUTHOR"})
	require.NoError(t, err)
	assert.Equal(t, "55", post.ID)
}

func TestCreatePost(t *testing.T) {
	api := testAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/blogs/B1/posts", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("isDraft"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload Post
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "blogger#post", payload.Kind)
		assert.Equal(t, "Hi", payload.Title)

		payload.ID = "77"
		json.NewEncoder(w).Encode(payload)
	})

	created, err := api.CreatePost(context.Background(),
		InsertPostQuery{IsDraft: true},
		NewPost("Hi", "<p>body</p>", []string{"go"}, ""))
	require.NoError(t, err)
	assert.Equal(t, "77", created.ID)
}

func TestUpdatePost(t *testing.T) {
	api := testAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/blogs/B1/posts/42", r.URL.Path)

		var payload Post
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		payload.ID = "42"
		json.NewEncoder(w).Encode(payload)
	})

	updated, err := api.UpdatePost(context.Background(), "42", NewPost("Hi", "body", nil, ""))
	require.NoError(t, err)
	assert.Equal(t, "42", updated.ID)
}

func TestErrorClassification(t *testing.T) {
	cases := []struct {
		code     int
		sentinel error
	}{
		{404, ErrNotFound},
		{410, ErrNotFound},
		{429, ErrRateLimited},
		{401, ErrAuth},
		{403, ErrAuth},
		{500, ErrServer},
		{503, ErrServer},
	}

	for _, tc := range cases {
		code := tc.code
		api := testAPI(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		})

		_, err := api.GetPostByID(context.Background(), GetPostByIDQuery{ID: "1"})
		require.Error(t, err)
		assert.ErrorIs(t, err, tc.sentinel, "status %d", tc.code)

		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, tc.code, statusErr.StatusCode)
	}
}

func TestStatusErrorDoesNotMatchOtherSentinels(t *testing.T) {
	err := &StatusError{StatusCode: 404}
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrAuth))
	assert.False(t, errors.Is(err, ErrServer))
	assert.False(t, errors.Is(err, ErrRateLimited))
}
