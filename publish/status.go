package publish

import (
	"context"
	"errors"
	"fmt"

	"github.com/toothbrush/blogger-sync/blogger"
	"github.com/toothbrush/blogger-sync/post"
)

// StatusResult reports one post's local-versus-remote publish state.
type StatusResult struct {
	Dir string
	Key post.Key

	Local  string
	Remote string

	// the local header was rewritten to match the remote state
	Updated bool

	// never published, or remote counterpart gone; nothing to sync
	Skipped bool
}

// remoteStatusWord maps the endpoint's status enum onto our header values.
func remoteStatusWord(status string) string {
	switch status {
	case blogger.StatusLive:
		return "published"
	case blogger.StatusScheduled:
		return "scheduled"
	default:
		return "draft"
	}
}

// SyncStatus fetches the remote counterpart's actual state and, when it
// disagrees with the local header, rewrites the header to match.  Remote
// wins: drafts get published from the web UI too, and the local files
// must not keep claiming otherwise.
func (e *Engine) SyncStatus(ctx context.Context, dir string) (*StatusResult, error) {
	p, err := post.Load(dir)
	if err != nil {
		return nil, stageErr(StageLoad, err)
	}

	result := &StatusResult{
		Dir:   p.Dir,
		Key:   p.Key,
		Local: p.Front.Status,
	}

	if p.Front.BloggerID == "" {
		result.Skipped = true
		result.Remote = "(never published)"
		return result, nil
	}

	remote, err := retryCall(ctx, e.retry(), e.logger(), "status lookup",
		func(ctx context.Context) (*blogger.Post, error) {
			return e.API.GetPostByID(ctx, blogger.GetPostByIDQuery{ID: p.Front.BloggerID, View: "AUTHOR"})
		})
	if err != nil {
		if errors.Is(err, blogger.ErrNotFound) {
			result.Skipped = true
			result.Remote = "(deleted remotely)"
			return result, nil
		}
		return nil, stageErr(StageResolve, err)
	}

	result.Remote = remoteStatusWord(remote.Status)
	if result.Remote == result.Local {
		return result, nil
	}

	if err := p.Front.Set("status", result.Remote); err != nil {
		return nil, stageErr(StageReconcile, err)
	}
	if remote.URL != "" {
		if err := p.Front.Set("blogger_url", remote.URL); err != nil {
			return nil, stageErr(StageReconcile, err)
		}
	}
	if err := p.WriteMetadata(); err != nil {
		return nil, stageErr(StageReconcile, fmt.Errorf("publish: couldn't write synced status: %w", err))
	}

	result.Updated = true
	return result, nil
}
