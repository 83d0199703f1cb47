package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// Source is a citation entry derived from the top web results.
type Source struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Domain string `json:"domain"`
}

// Hostname returns the URL host without a leading "www.".
// Unparseable URLs yield an empty string.
func Hostname(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	host := u.Hostname()
	if len(host) > 4 && host[:4] == "www." {
		host = host[4:]
	}

	return host
}

// ValidateURL accepts only http and https URLs that carry a host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return ErrInvalidURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return ErrInvalidURL
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidURL
	}

	if u.Host == "" {
		return ErrInvalidURL
	}

	return nil
}

func FaviconURL(host string) string {
	if host == "" {
		return ""
	}
	return fmt.Sprintf("https://www.google.com/s2/favicons?domain=%s&sz=32", url.QueryEscape(strings.ToLower(host)))
}
