package post

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashBytes(t *testing.T) {
	// well-known SHA-256 of the empty string
	assert.Equal(t,
		"sha256:e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		HashBytes(nil))

	assert.NotEqual(t, HashBytes([]byte("a")), HashBytes([]byte("b")))
}

func TestHashFileMatchesHashBytes(t *testing.T) {
	payload := []byte("some image bytes, honest")
	filename := filepath.Join(t.TempDir(), "pic.png")
	require.NoError(t, os.WriteFile(filename, payload, 0644))

	h, err := HashFile(filename)
	require.NoError(t, err)
	assert.Equal(t, HashBytes(payload), h)
}

func TestHashFileMissing(t *testing.T) {
	_, err := HashFile(filepath.Join(t.TempDir(), "nope.png"))
	require.Error(t, err)
}
