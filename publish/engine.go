// Package publish is the idempotent local-to-remote pipeline: load a post
// directory, hash its images, upload only what changed, work out whether a
// remote counterpart already exists, create or update it, then write the
// confirmed remote state back into the post's own header.  Re-running with
// no local changes performs zero remote calls.
package publish

import (
	"context"
	"log"
	"time"

	"github.com/toothbrush/blogger-sync/blogger"
)

// PostAPI is the remote publishing endpoint the engine talks to.
// *blogger.API satisfies it; tests substitute a fake.
type PostAPI interface {
	GetPostByID(ctx context.Context, opts blogger.GetPostByIDQuery) (*blogger.Post, error)
	GetPostByPath(ctx context.Context, opts blogger.GetPostByPathQuery) (*blogger.Post, error)
	CreatePost(ctx context.Context, opts blogger.InsertPostQuery, post blogger.Post) (*blogger.Post, error)
	UpdatePost(ctx context.Context, id string, post blogger.Post) (*blogger.Post, error)
}

// AssetStore is the remote object store images are pushed to.
// *cdn.Uploader satisfies it.
type AssetStore interface {
	Upload(ctx context.Context, localPath string, key string) (string, error)
	PostKey(slug string, ref string) string
}

type Engine struct {
	API   PostAPI
	Store AssetStore

	// Render turns the Markdown body (with remote image URLs already
	// substituted) into the HTML payload the endpoint wants.
	Render func(markdown string) (string, error)

	Retry RetryPolicy

	Logger *log.Logger

	// Now is swappable so tests can pin the clock.
	Now func() time.Time
}

func (e *Engine) logger() *log.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return log.Default()
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Engine) retry() RetryPolicy {
	if e.Retry.MaxAttempts > 0 {
		return e.Retry
	}
	return DefaultRetryPolicy()
}
