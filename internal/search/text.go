package search

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/kitbuilder587/searchportal/internal/domain"
)

var (
	strictOnce   sync.Once
	strictPolicy *bluemonday.Policy
)

func policy() *bluemonday.Policy {
	strictOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// StripTags removes all markup from upstream HTML snippets, decodes
// entities and collapses whitespace.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	return CollapseSpace(html.UnescapeString(policy().Sanitize(s)))
}

func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Snippet strips markup and truncates to n runes.
func Snippet(s string, n int) string {
	return domain.Truncate(StripTags(s), n)
}

// Ellipsis truncates to n runes and appends "..." when something was cut.
func Ellipsis(s string, n int) string {
	cut := domain.Truncate(s, n)
	if cut == s {
		return s
	}
	return cut + "..."
}
