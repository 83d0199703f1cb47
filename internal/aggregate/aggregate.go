// Package aggregate merges per-source result lists into one ranked list.
package aggregate

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kitbuilder587/searchportal/internal/domain"
)

// Interleave merges lists round-robin: item i of every list, in list
// order, before any item i+1.
func Interleave[T any](lists ...[]T) []T {
	longest, total := 0, 0
	for _, l := range lists {
		total += len(l)
		if len(l) > longest {
			longest = len(l)
		}
	}

	out := make([]T, 0, total)
	for i := 0; i < longest; i++ {
		for _, l := range lists {
			if i < len(l) {
				out = append(out, l[i])
			}
		}
	}
	return out
}

// Dedupe keeps the first item for each key. Items with an empty key are
// dropped.
func Dedupe[T any](items []T, key func(T) string) []T {
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, item)
	}
	return out
}

func DedupeResults(results []domain.SearchResult) []domain.SearchResult {
	return Dedupe(results, func(r domain.SearchResult) string { return r.URL })
}

func Truncate[T any](items []T, n int) []T {
	if n >= 0 && len(items) > n {
		return items[:n]
	}
	return items
}

// Sources projects the first n results into citation entries.
func Sources(results []domain.SearchResult, n int) []domain.Source {
	top := Truncate(results, n)
	out := make([]domain.Source, 0, len(top))
	for _, r := range top {
		out = append(out, r.Source())
	}
	return out
}

// TrendingWords counts words longer than four letters across titles and
// returns the n most frequent, capitalized. Ties keep first-seen order.
func TrendingWords(titles []string, n int) []string {
	counts := make(map[string]int)
	var order []string
	for _, title := range titles {
		for _, w := range strings.Fields(strings.ToLower(title)) {
			if utf8.RuneCountInString(w) <= 4 {
				continue
			}
			if _, ok := counts[w]; !ok {
				order = append(order, w)
			}
			counts[w]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	order = Truncate(order, n)
	out := make([]string, 0, len(order))
	for _, w := range order {
		out = append(out, capitalize(w))
	}
	return out
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
