package publish

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/toothbrush/blogger-sync/post"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/exp/maps"
	"golang.org/x/sync/errgroup"
)

// Runner fans one engine out over every post directory in the store.
// Posts own disjoint directories and disjoint remote paths, so running
// them concurrently can't interfere.
type Runner struct {
	Engine  *Engine
	Workers int

	// render an mpb progress bar (off for tests and --debug runs)
	Progress bool
}

func (r *Runner) workers() int {
	if r.Workers > 0 {
		return r.Workers
	}
	return 4
}

// PublishAll publishes every post under the store.  One post's failure
// doesn't stop the others; all failures come back joined at the end.
func (r *Runner) PublishAll(ctx context.Context, storePath string) ([]*Result, error) {
	dirs, err := post.FindPostDirs(storePath)
	if err != nil {
		return nil, err
	}

	results, err := runJobs(ctx, r, dirs, "publishing", r.Engine.PublishPost)
	sort.Slice(results, func(i, j int) bool { return results[i].Dir < results[j].Dir })
	return results, err
}

// SyncStatusAll reconciles every published post's local status with the
// remote one.
func (r *Runner) SyncStatusAll(ctx context.Context, storePath string) ([]*StatusResult, error) {
	dirs, err := post.FindPostDirs(storePath)
	if err != nil {
		return nil, err
	}

	results, err := runJobs(ctx, r, dirs, "checking", r.Engine.SyncStatus)
	sort.Slice(results, func(i, j int) bool { return results[i].Dir < results[j].Dir })
	return results, err
}

func runJobs[T any](ctx context.Context, r *Runner, dirs []string, phaseName string, job func(context.Context, string) (T, error)) ([]T, error) {
	if len(dirs) == 0 {
		return nil, nil
	}

	jobQueue := make(chan string, len(dirs))
	for _, dir := range dirs {
		jobQueue <- dir
	}
	close(jobQueue)

	var progress *mpb.Progress
	var bar *mpb.Bar
	if r.Progress {
		progress = mpb.New(mpb.WithWidth(64))
		bar = progress.AddBar(int64(len(dirs)),
			mpb.PrependDecorators(
				decor.Name(fmt.Sprintf("%s:", phaseName),
					decor.WC{C: decor.DindentRight | decor.DextraSpace}),
			),
			mpb.AppendDecorators(
				decor.CountersNoUnit("(%d/%d) "),
				decor.NewPercentage("%d"),
			),
		)
	}

	var mu sync.Mutex
	results := []T{}
	failures := map[string]error{}

	grp, gctx := errgroup.WithContext(ctx)
	for i := 0; i < r.workers(); i++ {
		grp.Go(func() error {
			for dir := range jobQueue {
				if gctx.Err() != nil {
					return context.Cause(gctx)
				}

				result, err := job(gctx, dir)

				mu.Lock()
				if err != nil {
					failures[dir] = err
				} else {
					results = append(results, result)
				}
				mu.Unlock()

				if bar != nil {
					bar.Increment()
				}
			}
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return results, fmt.Errorf("publish: run aborted: %w", err)
	}
	if progress != nil {
		progress.Wait()
	}

	if len(failures) > 0 {
		failedDirs := maps.Keys(failures)
		sort.Strings(failedDirs)

		errs := []error{}
		for _, dir := range failedDirs {
			errs = append(errs, fmt.Errorf("%s: %w", dir, failures[dir]))
		}
		return results, errors.Join(errs...)
	}

	return results, nil
}
