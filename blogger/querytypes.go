package blogger

// GetPostByIDQuery defines the query parameters for:
// https://developers.google.com/blogger/docs/3.0/reference/posts/get
type GetPostByIDQuery struct {
	ID string `url:"-"` // ID of the post; required

	// READER only sees published posts; AUTHOR also sees drafts and
	// scheduled posts.
	View string `url:"view,omitempty"`
}

// GetPostByPathQuery defines the query parameters for:
// https://developers.google.com/blogger/docs/3.0/reference/posts/getByPath
type GetPostByPathQuery struct {
	Path string `url:"path"` // URL path of the post, e.g. /2025/10/my-post.html; required

	View string `url:"view,omitempty"`
}

// InsertPostQuery defines the query parameters for:
// https://developers.google.com/blogger/docs/3.0/reference/posts/insert
type InsertPostQuery struct {
	IsDraft bool `url:"isDraft,omitempty"`
}
