/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/toothbrush/blogger-sync/blogger"
	"github.com/toothbrush/blogger-sync/cdn"
	"github.com/toothbrush/blogger-sync/publish"
	"github.com/toothbrush/blogger-sync/render"
)

func commandOutput(cmdline []string, what string) (string, error) {
	if len(cmdline) < 1 {
		return "", fmt.Errorf("cmd: no command configured for %s", what)
	}
	out, err := exec.Command(cmdline[0], cmdline[1:]...).Output()
	if err != nil {
		return "", fmt.Errorf("cmd: couldn't execute %s '%v': %w", what, cmdline, err)
	}
	return strings.Split(string(out), "\n")[0], nil
}

func newBloggerAPI() (*blogger.API, error) {
	token, err := commandOutput(AuthTokenCmd, "auth-token-cmd")
	if err != nil {
		return nil, err
	}

	api, err := blogger.NewAPI(APIBaseURL, BlogID, token)
	if err != nil {
		return nil, fmt.Errorf("cmd: Blogger API creation failed: %w", err)
	}
	return api, nil
}

// newUploader builds the image store client, or nil when no bucket is
// configured.  Posts without images publish fine without one.
func newUploader(ctx context.Context) (*cdn.Uploader, error) {
	if CdnBucket == "" {
		debugLog("no cdn-bucket configured, image uploads unavailable\n")
		return nil, nil
	}

	secret := ""
	if len(CdnSecretKeyCmd) > 0 {
		s, err := commandOutput(CdnSecretKeyCmd, "cdn-secret-key-cmd")
		if err != nil {
			return nil, err
		}
		secret = s
	}

	uploader, err := cdn.New(ctx, cdn.Config{
		Endpoint:      CdnEndpoint,
		Region:        CdnRegion,
		Bucket:        CdnBucket,
		AccessKey:     CdnAccessKey,
		SecretKey:     secret,
		PublicBaseURL: CdnPublicURL,
		Folder:        CdnFolder,
	})
	if err != nil {
		return nil, fmt.Errorf("cmd: object store client creation failed: %w", err)
	}
	return uploader, nil
}

func newEngine(ctx context.Context, api *blogger.API) (*publish.Engine, error) {
	uploader, err := newUploader(ctx)
	if err != nil {
		return nil, err
	}

	engine := &publish.Engine{
		API:    api,
		Render: render.NewConverter(HighlightStyle).Render,
		Logger: log.New(os.Stderr, "", 0),
	}
	if uploader != nil {
		engine.Store = uploader
	}
	return engine, nil
}

func expandStore() (string, error) {
	if LocalStore == "" {
		return "", fmt.Errorf("cmd: no post store configured.  Use --store or set it in your config file")
	}

	storePath, err := homedir.Expand(LocalStore)
	if err != nil {
		return "", fmt.Errorf("cmd: couldn't expand homedir: %w", err)
	}

	if _, err := os.Stat(storePath); err != nil {
		return "", fmt.Errorf("cmd: couldn't stat store %s: %w", storePath, err)
	}

	return storePath, nil
}
