package post

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrMalformedMetadata = errors.New("post: malformed metadata")

// Header must come first in post.md: a '---' fence, YAML, another fence.
var frontmatterPattern = regexp.MustCompile(`(?s)\A---\s*\n(.*?\n)---\s*\n(.*)\z`)

// Frontmatter is the YAML header of a post.md.  The fields the pipeline
// inspects are typed; everything else the author put in the header is kept
// verbatim in the retained document node, so a rewrite never loses or
// reorders fields we don't know about.
type Frontmatter struct {
	Title      string
	Date       string
	Tags       []string
	Status     string
	BloggerID  string
	BloggerURL string
	Updated    string

	// fingerprint of the publish-relevant content as of the last
	// successful run; see publish.Fingerprint
	ContentHash string

	Images map[string]ImageRef

	doc *yaml.Node
}

// the yaml-tagged mirror we decode the header node into
type frontmatterFields struct {
	Title       string              `yaml:"title"`
	Date        string              `yaml:"date"`
	Tags        []string            `yaml:"tags"`
	Status      string              `yaml:"status"`
	BloggerID   string              `yaml:"blogger_id"`
	BloggerURL  string              `yaml:"blogger_url"`
	Updated     string              `yaml:"updated"`
	ContentHash string              `yaml:"content_hash"`
	Images      map[string]ImageRef `yaml:"images"`
}

// ParseFrontmatter splits raw post.md content into its parsed YAML header
// and Markdown body.
func ParseFrontmatter(content string) (*Frontmatter, string, error) {
	m := frontmatterPattern.FindStringSubmatch(content)
	if m == nil {
		return nil, "", fmt.Errorf("%w: no YAML header found; post.md must start with '---', header fields, '---'", ErrMalformedMetadata)
	}

	doc := new(yaml.Node)
	if err := yaml.Unmarshal([]byte(m[1]), doc); err != nil {
		return nil, "", fmt.Errorf("%w: invalid YAML in header: %v", ErrMalformedMetadata, err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, "", fmt.Errorf("%w: header must be a YAML mapping", ErrMalformedMetadata)
	}

	var fields frontmatterFields
	if err := doc.Decode(&fields); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}

	fm := &Frontmatter{
		Title:       fields.Title,
		Date:        fields.Date,
		Tags:        fields.Tags,
		Status:      fields.Status,
		BloggerID:   fields.BloggerID,
		BloggerURL:  fields.BloggerURL,
		Updated:     fields.Updated,
		ContentHash: fields.ContentHash,
		Images:      fields.Images,
		doc:         doc,
	}

	return fm, m[2], nil
}

// Validate checks the required header fields are present and sane.
func (fm *Frontmatter) Validate() error {
	if fm.Title == "" {
		return fmt.Errorf("%w: missing required field 'title'", ErrMalformedMetadata)
	}
	if fm.Date == "" {
		return fmt.Errorf("%w: missing required field 'date'", ErrMalformedMetadata)
	}
	if _, err := fm.DateTime(); err != nil {
		return fmt.Errorf("%w: invalid date %q, use ISO 8601, e.g. 2025-10-12T10:00:00Z", ErrMalformedMetadata, fm.Date)
	}

	switch fm.Status {
	case "", "draft", "published", "scheduled":
	default:
		return fmt.Errorf("%w: invalid status %q, valid values: draft, published, scheduled", ErrMalformedMetadata, fm.Status)
	}

	return nil
}

// DateTime parses the header date.  Accepts full RFC 3339 or a bare
// YYYY-MM-DD day.
func (fm *Frontmatter) DateTime() (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, fm.Date); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", fm.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("post: couldn't parse date %q: %w", fm.Date, err)
	}
	return t, nil
}

// IsDraft reports whether the post should land as a draft remotely.  An
// absent status means draft, matching what authors expect of unfinished
// posts.
func (fm *Frontmatter) IsDraft() bool {
	return fm.Status == "draft" || fm.Status == ""
}

// Set updates (or appends) one header field in the retained document node,
// so the next Serialize writes it out without disturbing anything else.
func (fm *Frontmatter) Set(key string, value any) error {
	vn := new(yaml.Node)
	if err := vn.Encode(value); err != nil {
		return fmt.Errorf("post: couldn't encode header value for %q: %w", key, err)
	}

	m := fm.doc.Content[0]
	for i := 0; i < len(m.Content)-1; i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = vn
			return nil
		}
	}

	m.Content = append(m.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		vn)
	return nil
}

// Delete drops one header field, if present.
func (fm *Frontmatter) Delete(key string) {
	m := fm.doc.Content[0]
	for i := 0; i < len(m.Content)-1; i += 2 {
		if m.Content[i].Value == key {
			m.Content = append(m.Content[:i], m.Content[i+2:]...)
			return
		}
	}
}

// Serialize reassembles a complete post.md from the (possibly updated)
// header and the given body.
func (fm *Frontmatter) Serialize(body string) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm.doc); err != nil {
		return "", fmt.Errorf("post: couldn't marshal header YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("post: couldn't finalise header YAML: %w", err)
	}

	return fmt.Sprintf("---\n%s---\n%s", buf.String(), body), nil
}
