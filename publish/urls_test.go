package publish

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/toothbrush/blogger-sync/post"
)

func TestReplaceImageURLs(t *testing.T) {
	body := `Start.

![one](pic.png)
![dotted](./pic.png)
<img src="pic.png" alt="inline">
<img src='other.jpg'>

[not an image](pic.txt)
`
	images := map[string]post.ImageRef{
		"pic.png":   {URL: "https://cdn.example/p/pic.png"},
		"other.jpg": {URL: "https://cdn.example/p/other.jpg"},
	}

	out := ReplaceImageURLs(body, images)

	assert.Contains(t, out, "![one](https://cdn.example/p/pic.png)")
	assert.Contains(t, out, "![dotted](https://cdn.example/p/pic.png)")
	assert.Contains(t, out, `<img src="https://cdn.example/p/pic.png" alt="inline">`)
	assert.Contains(t, out, "<img src='https://cdn.example/p/other.jpg'>")
	assert.NotContains(t, out, "](pic.png)")
	assert.NotContains(t, out, "](./pic.png)")

	// non-image links stay alone
	assert.Contains(t, out, "[not an image](pic.txt)")
}

func TestReplaceImageURLsNoImages(t *testing.T) {
	body := "plain body\n"
	assert.Equal(t, body, ReplaceImageURLs(body, nil))
}
