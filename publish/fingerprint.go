package publish

import (
	"strings"

	"github.com/toothbrush/blogger-sync/post"
)

// Fingerprint hashes everything about a post that, when changed, warrants
// a republish: title, date, tags, status, and the raw body.  Image bytes
// are covered separately by the per-asset hashes.  Stored in the header on
// reconcile so the next run can tell "nothing changed" without a single
// remote call.
func Fingerprint(p *post.Post) string {
	parts := []string{
		p.Front.Title,
		p.Front.Date,
		p.Front.Status,
		strings.Join(p.Front.Tags, ","),
		p.Body,
	}
	return post.HashBytes([]byte(strings.Join(parts, "\x00")))
}

// unchanged reports whether every referenced asset can be reused as-is and
// no cached record needs dropping.
func unchanged(changes []AssetChange) bool {
	for _, change := range changes {
		if change.Action != AssetUnchanged {
			return false
		}
	}
	return true
}
