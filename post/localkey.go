package post

import (
	"errors"
	"fmt"
	"regexp"
)

var ErrInvalidKey = errors.New("post: invalid post directory name")

// Post directories are named like 2025-10-12-my-first-post.  The name is
// the post's stable identity; everything remote is derived from it.
var keyPattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})-([a-z0-9][a-z0-9-]*)$`)

// Key is the parsed form of a post directory name.
type Key struct {
	Year  int
	Month int
	Day   int
	Slug  string
}

// ParseKey validates a directory base name against the required
// YYYY-MM-DD-slug convention.
func ParseKey(name string) (Key, error) {
	m := keyPattern.FindStringSubmatch(name)
	if m == nil {
		return Key{}, fmt.Errorf("%w: %q does not match YYYY-MM-DD-slug (pattern %s)",
			ErrInvalidKey, name, keyPattern.String())
	}

	var k Key
	// the pattern guarantees these scan cleanly
	fmt.Sscanf(m[1], "%d", &k.Year)
	fmt.Sscanf(m[2], "%d", &k.Month)
	fmt.Sscanf(m[3], "%d", &k.Day)
	k.Slug = m[4]

	if k.Month < 1 || k.Month > 12 || k.Day < 1 || k.Day > 31 {
		return Key{}, fmt.Errorf("%w: %q has an impossible date", ErrInvalidKey, name)
	}

	return k, nil
}

func (k Key) String() string {
	return fmt.Sprintf("%04d-%02d-%02d-%s", k.Year, k.Month, k.Day, k.Slug)
}

// BloggerPath derives the remote URL path Blogger will assign this post.
// This is a pure function of the key, and it is the authoritative identity
// when no remote ID is cached: at most one remote post may live at it.
func (k Key) BloggerPath() string {
	return fmt.Sprintf("/%04d/%02d/%s.html", k.Year, k.Month, k.Slug)
}
