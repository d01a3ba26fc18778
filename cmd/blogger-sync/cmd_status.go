/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toothbrush/blogger-sync/internal/termfmt"
	"github.com/toothbrush/blogger-sync/publish"
)

var statusUsage = strings.TrimSpace(`
Posts get published, unpublished or rescheduled from the Blogger web UI too.  This command checks
every published post's actual remote state and rewrites local headers that disagree.
`)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Sync local publish status with the remote state",
	Long:  statusUsage,
	Args:  cobra.ExactArgs(0),
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	api, err := newBloggerAPI()
	if err != nil {
		return err
	}

	engine, err := newEngine(cmd.Context(), api)
	if err != nil {
		return err
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

	results, err := runner.SyncStatusAll(cmd.Context(), storePath)

	updated := 0
	for _, result := range results {
		switch {
		case result.Skipped:
			fmt.Printf("  %s: %s\n", result.Key.String(), result.Remote)
		case result.Updated:
			updated++
			fmt.Printf("%v %s: %s → %s\n",
				termfmt.C16(termfmt.Yellow).V("~"),
				result.Key.String(), result.Local, result.Remote)
		default:
			debugLog("  %s: in sync (%s)\n", result.Key.String(), result.Remote)
		}
	}
	fmt.Printf("\nChecked %d posts, updated %v headers.\n", len(results), termfmt.Bold().V(updated))

	if err != nil {
		return fmt.Errorf("cmd: some status checks failed:\n%w", err)
	}
	return nil
}
