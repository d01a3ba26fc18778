package post

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFileAtomic replaces filename via a temp file in the same directory
// plus a rename, so a crash mid-write leaves either the old complete file
// or the new complete file, never a torn one.  The temp file must live on
// the same volume as the destination for the rename to be atomic.
func WriteFileAtomic(filename string, data []byte) error {
	dir := filepath.Dir(filename)

	tmp, err := os.CreateTemp(dir, ".post-*.md~")
	if err != nil {
		return fmt.Errorf("post: couldn't create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("post: couldn't write temp file %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("post: couldn't close temp file %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, filename); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("post: couldn't move %s into place: %w", tmpName, err)
	}

	return nil
}

// WriteMetadata serializes the (updated) header with the original body and
// atomically replaces post.md.  This is the only place a post directory is
// ever written by the pipeline.
func (p *Post) WriteMetadata() error {
	content, err := p.Front.Serialize(p.Body)
	if err != nil {
		return err
	}
	return WriteFileAtomic(p.ContentPath(), []byte(content))
}
