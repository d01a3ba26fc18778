/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"errors"
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	mdplugin "github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/spf13/cobra"
	"github.com/toothbrush/blogger-sync/blogger"
	"github.com/toothbrush/blogger-sync/post"
)

var showUsage = strings.TrimSpace(`
Fetch the remote counterpart of a post and print it as Markdown, so you can eyeball what Blogger
actually has without opening a browser.
`)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <post-dir>",
	Short: "Print the remote version of a post",
	Long:  showUsage,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	p, err := post.Load(args[0])
	if err != nil {
		return fmt.Errorf("cmd: couldn't load post: %w", err)
	}

	api, err := newBloggerAPI()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	var remote *blogger.Post
	if p.Front.BloggerID != "" {
		remote, err = api.GetPostByID(ctx, blogger.GetPostByIDQuery{ID: p.Front.BloggerID, View: "AUTHOR"})
	} else {
		remote, err = api.GetPostByPath(ctx, blogger.GetPostByPathQuery{Path: p.Key.BloggerPath(), View: "AUTHOR"})
	}
	if err != nil {
		if errors.Is(err, blogger.ErrNotFound) {
			return fmt.Errorf("cmd: %s has no remote counterpart", p.Key.String())
		}
		return fmt.Errorf("cmd: couldn't fetch remote post: %w", err)
	}

	converter := md.NewConverter("", true, nil)
	converter.Use(mdplugin.GitHubFlavored())

	markdown, err := converter.ConvertString(remote.Content)
	if err != nil {
		return fmt.Errorf("cmd: couldn't convert remote HTML to Markdown: %w", err)
	}

	fmt.Printf("# %s\n\n", remote.Title)
	fmt.Printf("status: %s", remote.Status)
	if remote.URL != "" {
		fmt.Printf("  (%s)", remote.URL)
	}
	fmt.Printf("\n\n%s\n", markdown)

	return nil
}
