package youtube

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ContestSync/internal/config"
	"ContestSync/internal/model"

	"github.com/sirupsen/logrus"
)

const playlistPayload = `{
  "items": [
    {
      "snippet": {
        "title": "LeetCode Weekly Contest 300 Solutions",
        "publishedAt": "2025-05-20T10:00:00Z",
        "resourceId": {"videoId": "abc123"}
      }
    },
    {
      "snippet": {
        "title": "Codeforces Round 900 Editorial",
        "publishedAt": "2025-05-21T08:30:00Z",
        "resourceId": {"videoId": "def456"}
      }
    }
  ]
}`

func testClient(baseURL string) *Client {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewClient(&config.YouTubeConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Timeout: 5,
	}, logger)
}

func TestFetchPlaylistVideos(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/playlistItems" {
			t.Errorf("path: got=%s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("playlistId") != "PL123" {
			t.Errorf("playlistId: got=%s", q.Get("playlistId"))
		}
		if q.Get("key") != "test-key" {
			t.Errorf("key: got=%s", q.Get("key"))
		}
		if q.Get("part") != "snippet" {
			t.Errorf("part: got=%s", q.Get("part"))
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(playlistPayload)); err != nil {
			t.Errorf("写入响应失败: %v", err)
		}
	}))
	defer server.Close()

	videos, err := testClient(server.URL).FetchPlaylistVideos(context.Background(), model.PlatformLeetCode, "PL123")
	if err != nil {
		t.Fatalf("FetchPlaylistVideos: %v", err)
	}
	if len(videos) != 2 {
		t.Fatalf("videos: got=%d want=2", len(videos))
	}
	first := videos[0]
	if first.Title != "LeetCode Weekly Contest 300 Solutions" {
		t.Errorf("title: got=%s", first.Title)
	}
	if first.VideoURL != "https://www.youtube.com/watch?v=abc123" {
		t.Errorf("video url: got=%s", first.VideoURL)
	}
	if first.Platform != model.PlatformLeetCode {
		t.Errorf("platform: got=%s", first.Platform)
	}
	want := time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)
	if !first.PublishedAt.Equal(want) {
		t.Errorf("publishedAt: got=%v want=%v", first.PublishedAt, want)
	}
}

func TestFetchPlaylistVideosErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server_error", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"quota_exceeded", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}},
		{"bad_json", func(w http.ResponseWriter, _ *http.Request) {
			if _, err := w.Write([]byte("not json")); err != nil {
				return
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			if _, err := testClient(server.URL).FetchPlaylistVideos(context.Background(), model.PlatformLeetCode, "PL123"); err == nil {
				t.Fatal("应返回错误")
			}
		})
	}
}
