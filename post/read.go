package post

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ContentFilename is the one file every post directory must contain.
const ContentFilename = "post.md"

// Load reads and validates one post directory.  It is read-only: nothing
// is written back until a publish run reconciles successfully.
func Load(dir string) (*Post, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("post: couldn't resolve %s: %w", dir, err)
	}

	stat, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("post: couldn't stat %s: %w", abs, err)
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("post: %s is not a directory", abs)
	}

	key, err := ParseKey(filepath.Base(abs))
	if err != nil {
		return nil, err
	}

	contentPath := filepath.Join(abs, ContentFilename)
	source, err := os.ReadFile(contentPath)
	if err != nil {
		return nil, fmt.Errorf("post: couldn't read %s: %w", contentPath, err)
	}

	fm, body, err := ParseFrontmatter(string(source))
	if err != nil {
		return nil, err
	}
	if err := fm.Validate(); err != nil {
		return nil, err
	}

	p := &Post{
		Dir:       abs,
		Key:       key,
		Front:     fm,
		Body:      body,
		ImageRefs: ExtractImageRefs(body),
	}

	// all referenced images must exist before we touch the network
	missing := []string{}
	for _, ref := range p.ImageRefs {
		if _, err := os.Stat(p.AssetPath(ref)); err != nil {
			missing = append(missing, ref)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("post: referenced images not found in %s: %s", abs, strings.Join(missing, ", "))
	}

	return p, nil
}

// ContentPath is the absolute path of this post's post.md.
func (p *Post) ContentPath() string {
	return filepath.Join(p.Dir, ContentFilename)
}

// AssetPath resolves an image reference from the body to an absolute path.
func (p *Post) AssetPath(ref string) string {
	return filepath.Join(p.Dir, filepath.FromSlash(NormalizeRef(ref)))
}

// FindPostDirs lists every post directory under the store (any directory
// containing a post.md), sorted by name -- which, given the naming
// convention, is date order.
func FindPostDirs(storePath string) ([]string, error) {
	entries, err := os.ReadDir(storePath)
	if err != nil {
		return nil, fmt.Errorf("post: couldn't list store %s: %w", storePath, err)
	}

	dirs := []string{}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		candidate := filepath.Join(storePath, e.Name())
		if _, err := os.Stat(filepath.Join(candidate, ContentFilename)); err == nil {
			dirs = append(dirs, candidate)
		}
	}

	sort.Strings(dirs)
	return dirs, nil
}
