package post

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	k, err := ParseKey("2025-10-12-my-first-post")
	require.NoError(t, err)

	assert.Equal(t, 2025, k.Year)
	assert.Equal(t, 10, k.Month)
	assert.Equal(t, 12, k.Day)
	assert.Equal(t, "my-first-post", k.Slug)
	assert.Equal(t, "2025-10-12-my-first-post", k.String())
}

func TestParseKeyRejectsBadNames(t *testing.T) {
	bad := []string{
		"my-first-post",
		"2025-10-12",
		"2025-10-12-",
		"2025-10-12-My-Post",
		"2025-10-12--double",
		"25-10-12-short-year",
	}
	for _, name := range bad {
		_, err := ParseKey(name)
		require.Error(t, err, "expected %q to be rejected", name)
		assert.ErrorIs(t, err, ErrInvalidKey)
		// the author should see both the offending value and the rule
		assert.Contains(t, err.Error(), name)
	}
}

func TestParseKeyRejectsImpossibleDates(t *testing.T) {
	_, err := ParseKey("2025-13-01-bad-month")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = ParseKey("2025-01-32-bad-day")
	require.Error(t, err)
}

func TestBloggerPath(t *testing.T) {
	k, err := ParseKey("2025-10-12-my-first-post")
	require.NoError(t, err)

	assert.Equal(t, "/2025/10/my-first-post.html", k.BloggerPath())

	// the day is not part of Blogger's URL scheme, only year and month
	k2, err := ParseKey("2025-10-31-my-first-post")
	require.NoError(t, err)
	assert.Equal(t, k.BloggerPath(), k2.BloggerPath())
}
