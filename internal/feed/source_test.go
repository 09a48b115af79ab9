package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func rssFeed(items ...string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>classifieds</title>%s</channel></rss>`, strings.Join(items, ""))
}

func rssItem(title, link, description string) string {
	return fmt.Sprintf(`<item><title>%s</title><link>%s</link><description><![CDATA[%s]]></description></item>`, title, link, description)
}

func serveFeed(t *testing.T, feed string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(feed))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestLatest(t *testing.T) {
	feed := rssFeed(
		rssItem("[WTS] 10oz bars", "https://example.com/1", "<p>10oz bar $580</p><p><del>5oz $295 sold</del></p>"),
		rssItem("[WTB] Eagles", "https://example.com/2", "<p>paying over spot</p>"),
		rssItem("[WTS] junk silver", "https://example.com/3", "90% halves 20x FV"),
	)
	server := serveFeed(t, feed)

	source := NewSource(Config{URL: server.URL}, discardLogger())
	listings := source.Latest(context.Background())

	require.Len(t, listings, 2)
	assert.Equal(t, "https://example.com/1", listings[0].Link)
	assert.Equal(t, "[WTS] 10oz bars", listings[0].Title)
	assert.Equal(t, "10oz bar $580", listings[0].Body)
	assert.Equal(t, "https://example.com/3", listings[1].Link)
}

func TestLatestIncludeBuyPosts(t *testing.T) {
	feed := rssFeed(
		rssItem("[WTS] bars", "https://example.com/1", "bars"),
		rssItem("[WTB] Eagles", "https://example.com/2", "eagles"),
	)
	server := serveFeed(t, feed)

	source := NewSource(Config{URL: server.URL, IncludeBuyPosts: true}, discardLogger())
	listings := source.Latest(context.Background())
	assert.Len(t, listings, 2)
}

func TestLatestHonorsLimit(t *testing.T) {
	items := make([]string, 0, 15)
	for i := 0; i < 15; i++ {
		items = append(items, rssItem(
			fmt.Sprintf("[WTS] post %d", i),
			fmt.Sprintf("https://example.com/%d", i),
			"1oz rounds"))
	}
	server := serveFeed(t, rssFeed(items...))

	source := NewSource(Config{URL: server.URL, Limit: 10}, discardLogger())
	listings := source.Latest(context.Background())
	assert.Len(t, listings, 10)
}

func TestLatestFailSoft(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "down", http.StatusInternalServerError)
			},
		},
		{
			name: "garbage body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("this is not a feed"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			t.Cleanup(server.Close)

			source := NewSource(Config{URL: server.URL}, discardLogger())
			assert.Empty(t, source.Latest(context.Background()))
		})
	}
}

func TestLatestSkipsEntriesWithoutLinks(t *testing.T) {
	feed := rssFeed(`<item><title>[WTS] no link</title><description>text</description></item>`)
	server := serveFeed(t, feed)

	source := NewSource(Config{URL: server.URL}, discardLogger())
	assert.Empty(t, source.Latest(context.Background()))
}
