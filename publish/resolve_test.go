package publish

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toothbrush/blogger-sync/blogger"
	"github.com/toothbrush/blogger-sync/post"
)

func TestStaleCachedIDCorrectedByPathLookup(t *testing.T) {
	blog := newFakeBlog()
	blog.seed("55", "/2025/10/hello.html", blogger.StatusLive)
	engine := newTestEngine(blog, &fakeStore{})

	// the cached ID points at a post deleted out-of-band, but the content
	// still lives at the derived path under a different ID
	dir := writePost(t, "2025-10-12-hello",
		"---\ntitle: Hello\ndate: 2025-10-12\nstatus: published\nblogger_id: \"dead\"\n---\nEdited.\n", nil)

	result, err := engine.PublishPost(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, OpUpdate, result.Operation)
	assert.Equal(t, "55", result.PostID)
	assert.Equal(t, 1, blog.getByIDCalls)
	assert.Equal(t, 1, blog.getByPathCalls)
	assert.Equal(t, 0, blog.createCalls, "a stale cache must never cause a duplicate")

	reloaded, err := post.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "55", reloaded.Front.BloggerID)
}

func TestResolveSurfacesAuthFailure(t *testing.T) {
	blog := newFakeBlog()
	engine := newTestEngine(blog, &fakeStore{})

	p := &post.Post{
		Key:   post.Key{Year: 2025, Month: 10, Day: 12, Slug: "hello"},
		Front: &post.Frontmatter{},
	}

	authBlog := &authFailingAPI{}
	engine.API = authBlog
	_, _, err := engine.resolveIdentity(context.Background(), p)
	require.Error(t, err)
	assert.ErrorIs(t, err, blogger.ErrAuth)
	assert.Equal(t, 1, authBlog.calls, "auth failures are not retried")
}

type authFailingAPI struct {
	calls int
}

func (a *authFailingAPI) GetPostByID(ctx context.Context, opts blogger.GetPostByIDQuery) (*blogger.Post, error) {
	a.calls++
	return nil, &blogger.StatusError{StatusCode: 401, Status: "401 Unauthorized"}
}

func (a *authFailingAPI) GetPostByPath(ctx context.Context, opts blogger.GetPostByPathQuery) (*blogger.Post, error) {
	a.calls++
	return nil, &blogger.StatusError{StatusCode: 401, Status: "401 Unauthorized"}
}

func (a *authFailingAPI) CreatePost(ctx context.Context, opts blogger.InsertPostQuery, p blogger.Post) (*blogger.Post, error) {
	a.calls++
	return nil, &blogger.StatusError{StatusCode: 401, Status: "401 Unauthorized"}
}

func (a *authFailingAPI) UpdatePost(ctx context.Context, id string, p blogger.Post) (*blogger.Post, error) {
	a.calls++
	return nil, &blogger.StatusError{StatusCode: 401, Status: "401 Unauthorized"}
}

func TestOperationStrings(t *testing.T) {
	assert.Equal(t, "create", OpCreate.String())
	assert.Equal(t, "update", OpUpdate.String())
	assert.Equal(t, "created", OpCreate.word())
	assert.Equal(t, "updated", OpUpdate.word())
}
