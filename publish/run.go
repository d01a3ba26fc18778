package publish

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/toothbrush/blogger-sync/blogger"
	"github.com/toothbrush/blogger-sync/post"
)

// Result summarises one successful publish run.
type Result struct {
	Dir       string
	Key       post.Key
	Operation Operation
	PostID    string
	URL       string

	// the post was future-dated and the remote end will publish it later
	Scheduled bool
	Draft     bool

	// nothing changed since the last successful run; no remote call was
	// made and the header wasn't touched
	Unchanged bool

	Uploaded int
	Reused   int
	Orphaned int
}

// PublishPost runs the whole pipeline for one post directory.  Every
// stage before reconcile leaves disk state untouched, so a failed run can
// always be retried as-is; reconcile is the only write, and it's atomic.
func (e *Engine) PublishPost(ctx context.Context, dir string) (*Result, error) {
	p, err := post.Load(dir)
	if err != nil {
		return nil, stageErr(StageLoad, err)
	}

	hashes := map[string]string{}
	for _, ref := range p.ImageRefs {
		h, err := post.HashFile(p.AssetPath(ref))
		if err != nil {
			return nil, stageErr(StageHash, err)
		}
		hashes[ref] = h
	}

	changes := ClassifyAssets(p.ImageRefs, hashes, p.Front.Images)

	// a post we've already published, with identical content and every
	// asset intact, needs nothing at all: not even an existence check
	fingerprint := Fingerprint(p)
	if p.Front.BloggerID != "" && p.Front.ContentHash == fingerprint && unchanged(changes) {
		e.logger().Printf("  %s unchanged since last publish, skipping\n", p.Key.String())
		return &Result{
			Dir:       p.Dir,
			Key:       p.Key,
			Operation: OpUpdate,
			PostID:    p.Front.BloggerID,
			URL:       p.Front.BloggerURL,
			Draft:     p.Front.IsDraft(),
			Unchanged: true,
			Reused:    len(changes),
		}, nil
	}

	images, counts, err := e.uploadAssets(ctx, p, changes)
	if err != nil {
		return nil, stageErr(StageUpload, err)
	}

	op, remoteID, err := e.resolveIdentity(ctx, p)
	if err != nil {
		return nil, stageErr(StageResolve, err)
	}

	body := ReplaceImageURLs(p.Body, images)

	html := body
	if e.Render != nil {
		html, err = e.Render(body)
		if err != nil {
			return nil, stageErr(StageRender, err)
		}
	}

	// last safe moment to honour cancellation; past this point remote
	// state changes and we owe the header a reconcile
	if ctx.Err() != nil {
		return nil, stageErr(StagePublish, context.Cause(ctx))
	}

	published, scheduled := e.scheduledTimestamp(p)

	remote, op, err := e.publishPost(ctx, op, remoteID, p, html, published)
	if err != nil {
		return nil, stageErr(StagePublish, err)
	}

	if err := e.reconcile(p, remote, op, images, fingerprint); err != nil {
		return nil, stageErr(StageReconcile, err)
	}

	return &Result{
		Dir:       p.Dir,
		Key:       p.Key,
		Operation: op,
		PostID:    remote.ID,
		URL:       remote.URL,
		Scheduled: scheduled,
		Draft:     p.Front.IsDraft(),
		Uploaded:  counts.uploaded,
		Reused:    counts.reused,
		Orphaned:  counts.orphaned,
	}, nil
}

type assetCounts struct {
	uploaded, reused, orphaned int
}

// uploadAssets pushes every changed asset and returns the complete new
// image map.  All-or-nothing: any upload failure throws the whole map
// away, so a half-done batch can never reach the header.  A retry after
// the root cause is fixed re-uploads only what's still classified as
// changed.
func (e *Engine) uploadAssets(ctx context.Context, p *post.Post, changes []AssetChange) (map[string]post.ImageRef, assetCounts, error) {
	images := map[string]post.ImageRef{}
	counts := assetCounts{}

	for _, change := range changes {
		switch change.Action {
		case AssetUnchanged:
			images[change.Ref] = change.Cached
			counts.reused++
			e.logger().Printf("  ✓ %s (cached)\n", change.Ref)

		case AssetOrphaned:
			// drop from local state only; remote deletion is deliberately
			// not our business
			counts.orphaned++
			e.logger().Printf("  - %s (no longer referenced)\n", change.Ref)

		case AssetChanged:
			if e.Store == nil {
				return nil, counts, fmt.Errorf("%w for %s: no asset store configured", ErrUploadFailed, change.Ref)
			}
			key := e.Store.PostKey(p.Key.Slug, change.Ref)
			url, err := retryCall(ctx, e.retry(), e.logger(), "upload "+change.Ref,
				func(ctx context.Context) (string, error) {
					return e.Store.Upload(ctx, p.AssetPath(change.Ref), key)
				})
			if err != nil {
				return nil, counts, fmt.Errorf("%w for %s: %w", ErrUploadFailed, change.Ref, err)
			}

			images[change.Ref] = post.ImageRef{
				URL:        url,
				Hash:       change.Hash,
				UploadedAt: e.now().UTC().Format(time.RFC3339),
			}
			counts.uploaded++
			e.logger().Printf("  ↑ %s → %s\n", change.Ref, url)
		}
	}

	return images, counts, nil
}

// scheduledTimestamp returns the RFC 3339 publish time to send when the
// post is future-dated, which makes the remote end schedule it.
func (e *Engine) scheduledTimestamp(p *post.Post) (string, bool) {
	date, err := p.Front.DateTime()
	if err != nil {
		// Validate caught unparseable dates back in the load stage
		return "", false
	}
	if date.After(e.now()) {
		return date.UTC().Format(time.RFC3339), true
	}
	return "", false
}

// publishPost issues the create or update call.  A 404 on update means the
// remote post was deleted out-of-band; we fall back to create so the run
// still converges on exactly one remote post for this path.
func (e *Engine) publishPost(ctx context.Context, op Operation, remoteID string, p *post.Post, html string, published string) (*blogger.Post, Operation, error) {
	payload := blogger.NewPost(p.Front.Title, html, p.Front.Tags, published)

	if op == OpUpdate {
		remote, err := retryCall(ctx, e.retry(), e.logger(), "update post",
			func(ctx context.Context) (*blogger.Post, error) {
				return e.API.UpdatePost(ctx, remoteID, payload)
			})
		if err == nil {
			return remote, OpUpdate, nil
		}
		if !errors.Is(err, blogger.ErrNotFound) {
			return nil, op, fmt.Errorf("%w: %w", ErrPublishFailed, err)
		}
		e.logger().Printf("Remote post %s disappeared out-of-band, creating a fresh one...\n", remoteID)
	}

	remote, err := retryCall(ctx, e.retry(), e.logger(), "create post",
		func(ctx context.Context) (*blogger.Post, error) {
			return e.API.CreatePost(ctx, blogger.InsertPostQuery{IsDraft: p.Front.IsDraft()}, payload)
		})
	if err != nil {
		return nil, OpCreate, fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	return remote, OpCreate, nil
}

// reconcile persists the confirmed remote state back into the post's own
// header: remote ID, outcome, timestamp, and the new image map with
// orphans dropped.  Runs only after upload and publish both fully
// succeeded, and writes atomically -- the only mutation of the run.
func (e *Engine) reconcile(p *post.Post, remote *blogger.Post, op Operation, images map[string]post.ImageRef, fingerprint string) error {
	fm := p.Front

	if err := fm.Set("blogger_id", remote.ID); err != nil {
		return err
	}
	if err := fm.Set("content_hash", fingerprint); err != nil {
		return err
	}
	if remote.URL != "" {
		if err := fm.Set("blogger_url", remote.URL); err != nil {
			return err
		}
	}
	if err := fm.Set("updated", e.now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	if err := fm.Set("publish_status", op.word()); err != nil {
		return err
	}

	if len(images) > 0 {
		if err := fm.Set("images", images); err != nil {
			return err
		}
	} else {
		fm.Delete("images")
	}

	return p.WriteMetadata()
}
