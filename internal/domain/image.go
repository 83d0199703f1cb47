package domain

import "strings"

// MinImageSide is the smallest width or height an image may have.
const MinImageSide = 200

type ImageResult struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
	Title     string `json:"title"`
	Source    string `json:"source"`
	Domain    string `json:"domain"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Author    string `json:"author,omitempty"`
	License   string `json:"license,omitempty"`
}

// Acceptable reports whether the image is large enough and not vector art.
func (i ImageResult) Acceptable() bool {
	if strings.Contains(strings.ToLower(i.URL), ".svg") {
		return false
	}
	return i.Width >= MinImageSide && i.Height >= MinImageSide
}
