package publish

import (
	"sort"

	"github.com/toothbrush/blogger-sync/post"
	"golang.org/x/exp/maps"
)

type AssetAction int

const (
	// hash matches the cached upload record: reuse it, never re-upload
	AssetUnchanged AssetAction = iota
	// new asset, or bytes differ from the cached record
	AssetChanged
	// cached record exists for a path the body no longer references;
	// drop it from local state (the remote copy is left alone)
	AssetOrphaned
)

func (a AssetAction) String() string {
	switch a {
	case AssetChanged:
		return "changed"
	case AssetOrphaned:
		return "orphaned"
	default:
		return "unchanged"
	}
}

type AssetChange struct {
	Ref    string
	Action AssetAction

	// freshly computed content hash; empty for orphans
	Hash string

	// previous upload record, if any
	Cached post.ImageRef
}

// ClassifyAssets decides, per referenced image, whether its cached upload
// record is still trustworthy.  A record is only reused when its stored
// hash equals the freshly computed one -- filenames prove nothing about
// bytes.  Pure function; referenced assets come out in body order,
// orphans after them in name order.
func ClassifyAssets(refs []string, hashes map[string]string, cached map[string]post.ImageRef) []AssetChange {
	changes := []AssetChange{}

	referenced := map[string]bool{}
	for _, ref := range refs {
		referenced[ref] = true

		change := AssetChange{Ref: ref, Hash: hashes[ref]}
		if prior, ok := cached[ref]; ok && prior.Hash != "" && prior.Hash == hashes[ref] {
			change.Action = AssetUnchanged
			change.Cached = prior
		} else {
			change.Action = AssetChanged
		}
		changes = append(changes, change)
	}

	orphans := []string{}
	for _, ref := range maps.Keys(cached) {
		if !referenced[ref] {
			orphans = append(orphans, ref)
		}
	}
	sort.Strings(orphans)

	for _, ref := range orphans {
		changes = append(changes, AssetChange{
			Ref:    ref,
			Action: AssetOrphaned,
			Cached: cached[ref],
		})
	}

	return changes
}
