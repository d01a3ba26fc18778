package post

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Asset hashes are stored as "sha256:<hex>" so the algorithm travels with
// the digest.
const HashPrefix = "sha256:"

// HashFile computes the content hash over the full byte stream of a file.
func HashFile(filename string) (string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", fmt.Errorf("post: couldn't open %s for hashing: %w", filename, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("post: couldn't hash %s: %w", filename, err)
	}

	return HashPrefix + hex.EncodeToString(h.Sum(nil)), nil
}

// HashBytes is HashFile for an in-memory buffer.
func HashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return HashPrefix + hex.EncodeToString(sum[:])
}
