package model

import (
	"path"
	"regexp"
	"strings"
)

// Image is an asset stored on the external image host.
type Image struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

var reVersionSegment = regexp.MustCompile(`^v\d+`)

// ExtractPublicID derives the image host public id from a delivery URL.
// "https://res.example.com/demo/image/upload/v1712/products/lip.jpg" yields "products/lip".
// URLs without an "/upload/" segment yield "".
func ExtractPublicID(url string) string {
	_, after, ok := strings.Cut(url, "/upload/")
	if !ok || after == "" {
		return ""
	}
	if i := strings.IndexAny(after, "?#"); i >= 0 {
		after = after[:i]
	}
	segments := strings.Split(after, "/")
	if reVersionSegment.MatchString(segments[0]) {
		segments = segments[1:]
	}
	id := strings.Join(segments, "/")
	return strings.TrimSuffix(id, path.Ext(id))
}
