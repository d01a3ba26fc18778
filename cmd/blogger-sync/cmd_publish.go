/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toothbrush/blogger-sync/internal/termfmt"
	"github.com/toothbrush/blogger-sync/publish"
	"gopkg.in/dnaeon/go-vcr.v3/cassette"
	"gopkg.in/dnaeon/go-vcr.v3/recorder"
)

var publishUsage = strings.TrimSpace(`
Publish one post directory, or pass --all to reconcile the whole store.  Unchanged posts make zero
remote calls, so --all is cheap to run as often as you like.
`)

// publishCmd represents the publish command
var publishCmd = &cobra.Command{
	Use:   "publish [post-dir]",
	Short: "Publish posts to Blogger",
	Long:  publishUsage,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		debugLog("  All: %v\n", All)
		return runPublish(cmd, args)
	},
}

var (
	All     bool
	WithVCR bool
)

func init() {
	rootCmd.AddCommand(publishCmd)

	publishCmd.Flags().BoolVarP(&All, "all", "a", false, "publish every post in the store")
	publishCmd.Flags().BoolVar(&WithVCR, "with-vcr", false, "use go-vcr to cache responses")
}

func runPublish(cmd *cobra.Command, args []string) error {
	if !All && len(args) != 1 {
		return fmt.Errorf("cmd: give me a post directory, or --all for the whole store")
	}
	if All && len(args) > 0 {
		return fmt.Errorf("cmd: --all and an explicit post directory don't mix")
	}

	api, err := newBloggerAPI()
	if err != nil {
		return err
	}

	if WithVCR {
		// set up VCR recordings.
		opts := &recorder.Options{
			CassetteName:       "fixtures/blogger-stuff",
			Mode:               recorder.ModeReplayWithNewEpisodes,
			SkipRequestLatency: true,
			RealTransport:      http.DefaultTransport,
		}
		r, err := recorder.NewWithOptions(opts)
		if err != nil {
			return fmt.Errorf("cmd: couldn't set up go-vcr recording: %w", err)
		}

		defer r.Stop() // Make sure recorder is stopped once done with it

		// Add a hook which removes Authorization headers from all requests
		hook := func(i *cassette.Interaction) error {
			delete(i.Request.Headers, "Authorization")
			return nil
		}
		r.AddHook(hook, recorder.AfterCaptureHook)
		r.SetReplayableInteractions(true)

		api.Client = r.GetDefaultClient()
	}

	engine, err := newEngine(cmd.Context(), api)
	if err != nil {
		return err
	}

	if !All {
		result, err := engine.PublishPost(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("cmd: publish failed: %w", err)
		}
		printResult(result)
		return nil
	}

	storePath, err := expandStore()
	if err != nil {
		return err
	}

	runner := publish.Runner{
		Engine:   engine,
		Workers:  Workers,
		Progress: !Debug,
	}

	results, err := runner.PublishAll(cmd.Context(), storePath)

	published := 0
	for _, result := range results {
		printResult(result)
		if !result.Unchanged {
			published++
		}
	}
	fmt.Printf("\n%v of %d posts published.\n", termfmt.Bold().V(published), len(results))

	if err != nil {
		return fmt.Errorf("cmd: some posts failed:\n%w", err)
	}
	return nil
}

func printResult(result *publish.Result) {
	if result.Unchanged {
		fmt.Printf("%v %s unchanged\n",
			termfmt.C16(termfmt.DarkGrey).V("="),
			result.Key.String())
		return
	}

	note := ""
	if result.Scheduled {
		note = " (scheduled)"
	} else if result.Draft {
		note = " (draft)"
	}

	fmt.Printf("%v %s %s%s\n",
		termfmt.C16(termfmt.Green).V("✓"),
		result.Key.String(),
		result.Operation,
		note)

	debugLog("  %s: %d uploaded, %d cached, %d orphaned; id=%s url=%s\n",
		result.Key.String(), result.Uploaded, result.Reused, result.Orphaned, result.PostID, result.URL)
}
