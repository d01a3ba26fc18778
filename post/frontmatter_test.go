package post

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleContent = `---
title: My first post
date: 2025-10-12
tags:
  - golang
  - blogging
status: published
---
Hello, world.
`

func TestParseFrontmatter(t *testing.T) {
	fm, body, err := ParseFrontmatter(sampleContent)
	require.NoError(t, err)

	assert.Equal(t, "My first post", fm.Title)
	assert.Equal(t, "2025-10-12", fm.Date)
	assert.Equal(t, []string{"golang", "blogging"}, fm.Tags)
	assert.Equal(t, "published", fm.Status)
	assert.Equal(t, "Hello, world.\n", body)
}

func TestParseFrontmatterNoHeader(t *testing.T) {
	_, _, err := ParseFrontmatter("just some markdown, no fences\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedMetadata)
	assert.Contains(t, err.Error(), "---")
}

func TestParseFrontmatterNotAMapping(t *testing.T) {
	_, _, err := ParseFrontmatter("---\n- a\n- b\n---\nbody\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedMetadata)
}

func TestValidateMissingTitle(t *testing.T) {
	fm, _, err := ParseFrontmatter("---\ndate: 2025-10-12\n---\nbody\n")
	require.NoError(t, err)

	err = fm.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedMetadata)
	assert.Contains(t, err.Error(), "title")
}

func TestValidateBadDate(t *testing.T) {
	fm, _, err := ParseFrontmatter("---\ntitle: x\ndate: next tuesday\n---\nbody\n")
	require.NoError(t, err)

	err = fm.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "next tuesday")
}

func TestValidateBadStatus(t *testing.T) {
	fm, _, err := ParseFrontmatter("---\ntitle: x\ndate: 2025-10-12\nstatus: wip\n---\nbody\n")
	require.NoError(t, err)

	err = fm.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wip")
}

func TestDateTimeAcceptsBareDayAndRFC3339(t *testing.T) {
	fm := &Frontmatter{Date: "2025-10-12"}
	d, err := fm.DateTime()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 12, 0, 0, 0, 0, time.UTC), d)

	fm.Date = "2025-10-12T09:30:00+02:00"
	d, err = fm.DateTime()
	require.NoError(t, err)
	assert.Equal(t, 9, d.Hour())
}

func TestIsDraft(t *testing.T) {
	assert.True(t, (&Frontmatter{}).IsDraft())
	assert.True(t, (&Frontmatter{Status: "draft"}).IsDraft())
	assert.False(t, (&Frontmatter{Status: "published"}).IsDraft())
	assert.False(t, (&Frontmatter{Status: "scheduled"}).IsDraft())
}

func TestSetPreservesUnknownFieldsAndOrder(t *testing.T) {
	content := "---\ntitle: x\ndate: 2025-10-12\ncustom_thing: 42\nanother: [a, b]\n---\nbody\n"
	fm, body, err := ParseFrontmatter(content)
	require.NoError(t, err)

	require.NoError(t, fm.Set("blogger_id", "12345"))
	require.NoError(t, fm.Set("title", "y"))

	out, err := fm.Serialize(body)
	require.NoError(t, err)

	// unknown fields survive the rewrite untouched
	assert.Contains(t, out, "custom_thing: 42")
	assert.Contains(t, out, "another: [a, b]")

	// title was updated in place, not re-appended
	assert.Less(t, strings.Index(out, "title: y"), strings.Index(out, "custom_thing"))
	assert.NotContains(t, out, "title: x")

	// the new field landed at the end
	reparsed, body2, err := ParseFrontmatter(out)
	require.NoError(t, err)
	assert.Equal(t, "12345", reparsed.BloggerID)
	assert.Equal(t, "y", reparsed.Title)
	assert.Equal(t, "body\n", body2)
}

func TestDelete(t *testing.T) {
	fm, body, err := ParseFrontmatter("---\ntitle: x\ndate: 2025-10-12\nimages:\n  a.png:\n    url: u\n    hash: h\n    uploaded_at: t\n---\nbody\n")
	require.NoError(t, err)
	require.NotNil(t, fm.Images)

	fm.Delete("images")
	fm.Delete("never-existed")

	out, err := fm.Serialize(body)
	require.NoError(t, err)
	assert.NotContains(t, out, "images:")

	reparsed, _, err := ParseFrontmatter(out)
	require.NoError(t, err)
	assert.Nil(t, reparsed.Images)
}

func TestSerializeRoundTripIsStable(t *testing.T) {
	fm, body, err := ParseFrontmatter(sampleContent)
	require.NoError(t, err)

	once, err := fm.Serialize(body)
	require.NoError(t, err)

	fm2, body2, err := ParseFrontmatter(once)
	require.NoError(t, err)

	twice, err := fm2.Serialize(body2)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}
