package blogger

// Post statuses Blogger reports when queried with the AUTHOR view.
const (
	StatusLive      = "LIVE"
	StatusDraft     = "DRAFT"
	StatusScheduled = "SCHEDULED"
)

// See https://developers.google.com/blogger/docs/3.0/reference/posts
type Post struct {
	Kind    string `json:"kind,omitempty"`
	ID      string `json:"id,omitempty"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
	URL     string `json:"url,omitempty"`

	// LIVE, DRAFT or SCHEDULED; only populated with view=AUTHOR
	Status string `json:"status,omitempty"`

	Labels []string `json:"labels,omitempty"`

	// RFC 3339.  Sending a future Published schedules the post.
	Published string `json:"published,omitempty"`
	Updated   string `json:"updated,omitempty"`
}

// NewPost fills in the envelope fields Blogger wants on insert/update.
func NewPost(title, content string, labels []string, published string) Post {
	return Post{
		Kind:      "blogger#post",
		Title:     title,
		Content:   content,
		Labels:    labels,
		Published: published,
	}
}
