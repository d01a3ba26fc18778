package post

// A Post is one locally authored unit of publishable content: a directory
// named YYYY-MM-DD-slug holding post.md plus any images it references.
type Post struct {
	// absolute path of the post directory
	Dir string

	// parsed from the directory's base name
	Key Key

	// YAML header of post.md
	Front *Frontmatter

	// Markdown body, without the header
	Body string

	// local image paths referenced from Body, in first-appearance order
	ImageRefs []string
}

// ImageRef records a confirmed upload of one local image.  A changed image
// gets a fresh ImageRef; we never edit these in place.
type ImageRef struct {
	URL        string `yaml:"url" json:"url"`
	Hash       string `yaml:"hash" json:"hash"`
	UploadedAt string `yaml:"uploaded_at" json:"uploaded_at"`
}
