package domain

// Video source names as shown to the client.
const (
	VideoSourceYouTube     = "YouTube"
	VideoSourceDailymotion = "Dailymotion"
	VideoSourceArchive     = "Archive.org"
	VideoSourcePeerTube    = "PeerTube"
)

const (
	UnknownDate     = "Unknown"
	UnknownDuration = "N/A"
)

type VideoResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Thumbnail   string `json:"thumbnail"`
	Duration    string `json:"duration"`
	Source      string `json:"source"`
	PublishedAt string `json:"publishedAt"`
	Views       string `json:"views,omitempty"`
	Description string `json:"description,omitempty"`
}
