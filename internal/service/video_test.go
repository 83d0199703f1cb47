package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kitbuilder587/searchportal/internal/domain"
)

func videos(source string, n int) []domain.VideoResult {
	out := make([]domain.VideoResult, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.VideoResult{
			Title:  fmt.Sprintf("%s video %d", source, i),
			URL:    fmt.Sprintf("https://%s.example/v/%d", source, i),
			Source: source,
		})
	}
	return out
}

func TestVideoService_Search_SplitsLimit(t *testing.T) {
	tests := []struct {
		name         string
		limit        int
		wantYouTube  int
		wantOthers   int
		wantMaxTotal int
	}{
		{name: "default", limit: 0, wantYouTube: 10, wantOthers: 5, wantMaxTotal: 20},
		{name: "odd limit", limit: 7, wantYouTube: 4, wantOthers: 2, wantMaxTotal: 7},
		{name: "capped", limit: 100, wantYouTube: 15, wantOthers: 8, wantMaxTotal: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yt := NewMockVideoSource(videos("youtube", 30)...)
			dm := NewMockVideoSource(videos("dailymotion", 30)...)
			ar := NewMockVideoSource(videos("archive", 30)...)
			pt := NewMockVideoSource(videos("peertube", 30)...)

			svc := NewVideoService(VideoServiceDeps{Sources: VideoSources{YouTube: yt, Dailymotion: dm, Archive: ar, PeerTube: pt}})
			resp, err := svc.Search(context.Background(), domain.VideoSearchRequest{
				Query:   "cats",
				Options: domain.SearchOptions{Limit: tt.limit},
			})
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}

			if yt.LastLimit() != tt.wantYouTube {
				t.Errorf("youtube limit = %d, want %d", yt.LastLimit(), tt.wantYouTube)
			}
			if dm.LastLimit() != tt.wantOthers || pt.LastLimit() != tt.wantOthers {
				t.Errorf("other limits = %d/%d, want %d", dm.LastLimit(), pt.LastLimit(), tt.wantOthers)
			}
			if resp.Total != tt.wantMaxTotal || len(resp.Videos) != resp.Total {
				t.Errorf("Total = %d, len = %d, want %d", resp.Total, len(resp.Videos), tt.wantMaxTotal)
			}
			if !resp.Success || resp.Query != "cats" {
				t.Errorf("envelope = %+v", resp)
			}
		})
	}
}

func TestVideoService_Search_InterleavesAndIsolatesFailures(t *testing.T) {
	svc := NewVideoService(VideoServiceDeps{Sources: VideoSources{
		YouTube:     NewMockVideoSource().WithError(errors.New("all mirrors down")),
		Dailymotion: NewMockVideoSource(videos("dailymotion", 2)...),
		Archive:     NewMockVideoSource(videos("archive", 2)...),
	}})

	resp, err := svc.Search(context.Background(), domain.VideoSearchRequest{Query: "cats"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	want := []string{"dailymotion", "archive", "dailymotion", "archive"}
	if len(resp.Videos) != len(want) {
		t.Fatalf("len(Videos) = %d, want %d", len(resp.Videos), len(want))
	}
	for i, src := range want {
		if resp.Videos[i].Source != src {
			t.Errorf("Videos[%d].Source = %s, want %s", i, resp.Videos[i].Source, src)
		}
	}
}

func TestVideoService_Search_DedupesByURL(t *testing.T) {
	same := domain.VideoResult{Title: "dup", URL: "https://archive.org/details/x", Source: "archive"}
	svc := NewVideoService(VideoServiceDeps{Sources: VideoSources{
		Dailymotion: NewMockVideoSource(same),
		Archive:     NewMockVideoSource(same),
	}})

	resp, err := svc.Search(context.Background(), domain.VideoSearchRequest{Query: "cats"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("Total = %d, want 1", resp.Total)
	}
}
