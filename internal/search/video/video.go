// Package video searches YouTube mirrors (Invidious, Piped), Dailymotion and
// PeerTube. Mirror families are tried instance by instance until one answers
// with results.
package video

import (
	"net/http"
	"strings"
	"time"

	"github.com/kitbuilder587/searchportal/internal/search"
)

var (
	DefaultInvidiousInstances = []string{
		"https://vid.puffyan.us",
		"https://yewtu.be",
		"https://invidious.kavin.rocks",
		"https://inv.vern.cc",
		"https://invidious.privacydev.net",
		"https://iv.ggtyler.dev",
		"https://invidious.nerdvpn.de",
		"https://invidious.slipfox.xyz",
	}

	DefaultPipedInstances = []string{
		"https://pipedapi.kavin.rocks",
		"https://api.piped.yt",
		"https://pipedapi.in.projectsegfau.lt",
	}

	DefaultPeerTubeInstances = []string{
		"https://framatube.org",
		"https://peertube.social",
		"https://video.ploud.fr",
	}
)

const (
	defaultMirrorTimeout   = 8 * time.Second
	defaultPeerTubeTimeout = 5 * time.Second
	descriptionLength      = 200
)

type MirrorConfig struct {
	Instances []string
	// Timeout bounds each instance attempt.
	Timeout   time.Duration
	UserAgent string
}

func (c MirrorConfig) withDefaults(instances []string, timeout time.Duration) MirrorConfig {
	if len(c.Instances) == 0 {
		c.Instances = instances
	}
	if c.Timeout == 0 {
		c.Timeout = timeout
	}
	if c.UserAgent == "" {
		c.UserAgent = search.DefaultUserAgent
	}
	trimmed := make([]string, len(c.Instances))
	for i, inst := range c.Instances {
		trimmed[i] = strings.TrimRight(inst, "/")
	}
	c.Instances = trimmed
	return c
}

// mirrorClient has no overall timeout; each attempt carries its own deadline.
func mirrorClient() *http.Client {
	return &http.Client{}
}

func youTubeThumbnail(videoID string) string {
	return "https://i.ytimg.com/vi/" + videoID + "/hqdefault.jpg"
}

func youTubeURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
