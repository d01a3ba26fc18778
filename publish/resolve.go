package publish

import (
	"context"
	"errors"

	"github.com/toothbrush/blogger-sync/blogger"
	"github.com/toothbrush/blogger-sync/post"
)

type Operation int

const (
	OpCreate Operation = iota
	OpUpdate
)

func (op Operation) String() string {
	if op == OpUpdate {
		return "update"
	}
	return "create"
}

// past-tense form, for the header and the summary
func (op Operation) word() string {
	if op == OpUpdate {
		return "updated"
	}
	return "created"
}

// resolveIdentity works out whether this post already has a remote
// counterpart.  The cached header ID is only a fast path; the derived URL
// path is the source of truth.  That ordering is what stops a lost or
// stale cache from ever producing a duplicate remote post.  Transient
// lookup failures are retried, never silently degraded to "create".
func (e *Engine) resolveIdentity(ctx context.Context, p *post.Post) (Operation, string, error) {
	// AUTHOR view, so drafts and scheduled posts are found too
	if cached := p.Front.BloggerID; cached != "" {
		found, err := retryCall(ctx, e.retry(), e.logger(), "lookup by cached ID",
			func(ctx context.Context) (*blogger.Post, error) {
				return e.API.GetPostByID(ctx, blogger.GetPostByIDQuery{ID: cached, View: "AUTHOR"})
			})
		if err == nil {
			return OpUpdate, found.ID, nil
		}
		if !errors.Is(err, blogger.ErrNotFound) {
			return OpCreate, "", err
		}
		e.logger().Printf("Cached remote ID %s no longer exists, trying path lookup...\n", cached)
	}

	path := p.Key.BloggerPath()
	found, err := retryCall(ctx, e.retry(), e.logger(), "lookup by path",
		func(ctx context.Context) (*blogger.Post, error) {
			return e.API.GetPostByPath(ctx, blogger.GetPostByPathQuery{Path: path, View: "AUTHOR"})
		})
	if err == nil {
		// corrects a stale or missing cache
		return OpUpdate, found.ID, nil
	}
	if errors.Is(err, blogger.ErrNotFound) {
		return OpCreate, "", nil
	}

	return OpCreate, "", err
}
