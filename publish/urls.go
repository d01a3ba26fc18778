package publish

import (
	"fmt"
	"sort"
	"strings"

	"github.com/toothbrush/blogger-sync/post"
	"golang.org/x/exp/maps"
)

// ReplaceImageURLs swaps every local image reference in the body for its
// uploaded URL, in both Markdown and inline-HTML syntax, with or without
// the './' prefix the author may have used.
func ReplaceImageURLs(body string, images map[string]post.ImageRef) string {
	refs := maps.Keys(images)
	sort.Strings(refs)

	for _, ref := range refs {
		url := images[ref].URL
		dotted := "./" + ref

		for _, local := range []string{dotted, ref} {
			body = strings.ReplaceAll(body, fmt.Sprintf("](%s)", local), fmt.Sprintf("](%s)", url))
			body = strings.ReplaceAll(body, fmt.Sprintf(`src="%s"`, local), fmt.Sprintf(`src="%s"`, url))
			body = strings.ReplaceAll(body, fmt.Sprintf("src='%s'", local), fmt.Sprintf("src='%s'", url))
		}
	}

	return body
}
