package search

import "testing"

func TestStripTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "hello world", want: "hello world"},
		{name: "search match spans", in: `The <span class="searchmatch">Go</span> language`, want: "The Go language"},
		{name: "entities", in: "Tom &amp; Jerry &quot;show&quot;", want: `Tom & Jerry "show"`},
		{name: "whitespace", in: "  a\n\n  b\t c ", want: "a b c"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripTags(tt.in); got != tt.want {
				t.Errorf("StripTags(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEllipsis(t *testing.T) {
	if got := Ellipsis("abcdef", 3); got != "abc..." {
		t.Errorf("Ellipsis() = %q", got)
	}
	if got := Ellipsis("abc", 3); got != "abc" {
		t.Errorf("Ellipsis() = %q", got)
	}
}
