package post

import (
	"regexp"
	"strings"
)

var (
	markdownImagePattern = regexp.MustCompile(`!\[[^\]]*\]\(([^)]+)\)`)
	htmlImagePattern     = regexp.MustCompile(`<img[^>]+src=["']([^"']+)["']`)
)

// ExtractImageRefs finds local image paths referenced from the Markdown
// body, in first-appearance order, deduplicated.  External http(s) URLs
// are not ours to manage and are skipped.
func ExtractImageRefs(body string) []string {
	raw := []string{}
	for _, m := range markdownImagePattern.FindAllStringSubmatch(body, -1) {
		raw = append(raw, m[1])
	}
	for _, m := range htmlImagePattern.FindAllStringSubmatch(body, -1) {
		raw = append(raw, m[1])
	}

	seen := map[string]bool{}
	refs := []string{}
	for _, r := range raw {
		if strings.HasPrefix(r, "http://") || strings.HasPrefix(r, "https://") {
			continue
		}
		r = NormalizeRef(r)
		if seen[r] {
			continue
		}
		seen[r] = true
		refs = append(refs, r)
	}

	return refs
}

// NormalizeRef strips the optional leading './' so that './pic.png' and
// 'pic.png' hash and cache as the same asset.
func NormalizeRef(ref string) string {
	return strings.TrimPrefix(ref, "./")
}
