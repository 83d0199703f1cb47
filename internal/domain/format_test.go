package domain

import "testing"

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    string
	}{
		{name: "zero", seconds: 0, want: "N/A"},
		{name: "negative", seconds: -5, want: "N/A"},
		{name: "seconds only", seconds: 7, want: "0:07"},
		{name: "minutes", seconds: 125, want: "2:05"},
		{name: "hours", seconds: 3725, want: "1:02:05"},
		{name: "exact hour", seconds: 3600, want: "1:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.seconds); got != tt.want {
				t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestFormatViews(t *testing.T) {
	tests := []struct {
		views int64
		want  string
	}{
		{views: 0, want: "0"},
		{views: 999, want: "999"},
		{views: 1000, want: "1.0K views"},
		{views: 1500, want: "1.5K views"},
		{views: 2_500_000, want: "2.5M views"},
	}

	for _, tt := range tests {
		if got := FormatViews(tt.views); got != tt.want {
			t.Errorf("FormatViews(%d) = %q, want %q", tt.views, got, tt.want)
		}
	}
}

func TestFormatDownloads(t *testing.T) {
	if got := FormatDownloads(12_300); got != "12.3K downloads" {
		t.Errorf("FormatDownloads() = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("héllo wörld", 5); got != "héllo" {
		t.Errorf("Truncate() = %q, want %q", got, "héllo")
	}
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate() = %q, want %q", got, "short")
	}
	if got := Truncate("anything", 0); got != "" {
		t.Errorf("Truncate() = %q, want empty", got)
	}
}
