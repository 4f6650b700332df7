package sources

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/kova98/replydraft.api/enums"
	"github.com/kova98/replydraft.api/extract"
	"github.com/stretchr/testify/assert"
)

const postListing = `[
  {"data": {"children": [{"kind": "t3", "data": {
    "id": "1abc", "title": "Test", "selftext": "Hello",
    "author": "gopher", "subreddit": "test",
    "score": 12, "num_comments": 3, "created_utc": 1748772000
  }}]}},
  {"data": {"children": []}}
]`

const commentListing = `[
  {"data": {"children": [{"kind": "t3", "data": {"id": "1abc", "title": "Test"}}]}},
  {"data": {"children": [{"kind": "t1", "data": {
    "id": "c1", "body": "A comment body",
    "author": "ferris", "subreddit": "test",
    "score": 5, "created_utc": 1748772000
  }}]}}
]`

func newTestFetcher(client *http.Client) *RedditFetcher {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return NewRedditFetcher(logger, client, nil, extract.NewExtractor(logger, client))
}

func TestFetch_PostFromJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/r/test/comments/1abc/test.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(postListing))
	}))
	t.Cleanup(server.Close)

	fetcher := newTestFetcher(server.Client())
	post, err := fetcher.Fetch(context.Background(), server.URL+"/r/test/comments/1abc/test/")

	assert.NoError(t, err)
	assert.Equal(t, "Test", post.Title)
	assert.Equal(t, "Hello", post.Content)
	assert.Equal(t, "gopher", post.Author)
	assert.Equal(t, "test", post.Subreddit)
	assert.Equal(t, 12, post.Upvotes)
	assert.Equal(t, 3, post.Comments)
	assert.Equal(t, enums.PostTypePost, post.Type)
}

func TestFetch_CommentFromJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(commentListing))
	}))
	t.Cleanup(server.Close)

	fetcher := newTestFetcher(server.Client())
	post, err := fetcher.Fetch(context.Background(), server.URL+"/r/test/comments/1abc/test/c1/")

	assert.NoError(t, err)
	assert.Equal(t, enums.PostTypeComment, post.Type)
	assert.Equal(t, "A comment body", post.Content)
	assert.Equal(t, "ferris", post.Author)
	assert.Empty(t, post.Title)
}

func TestFetch_CommentPicksLinkedCommentFromContext(t *testing.T) {
	listing := `[
  {"data": {"children": [{"kind": "t3", "data": {"id": "1abc", "title": "Test"}}]}},
  {"data": {"children": [
    {"kind": "t1", "data": {"id": "c0", "body": "Sibling comment", "author": "other"}},
    {"kind": "t1", "data": {"id": "c1", "body": "Linked comment", "author": "ferris"}}
  ]}}
]`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(listing))
	}))
	t.Cleanup(server.Close)

	fetcher := newTestFetcher(server.Client())
	post, err := fetcher.Fetch(context.Background(), server.URL+"/r/test/comments/1abc/test/c1/")

	assert.NoError(t, err)
	assert.Equal(t, "Linked comment", post.Content)
	assert.Equal(t, "ferris", post.Author)
}

func TestFetch_FallsBackToHTML(t *testing.T) {
	page := `<html><body>
	<div id="siteTable">
	  <div class="thing" data-fullname="t3_1abc" data-author="gopher" data-subreddit="test">
	    <p class="title"><a class="title">From HTML</a></p>
	    <div class="usertext-body"><div class="md">Body text.</div></div>
	  </div>
	</div>
	</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/r/test/comments/1abc/test.json" {
			http.Error(w, "blocked", http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	t.Cleanup(server.Close)

	fetcher := newTestFetcher(server.Client())
	post, err := fetcher.Fetch(context.Background(), server.URL+"/r/test/comments/1abc/test/")

	assert.NoError(t, err)
	assert.Equal(t, "From HTML", post.Title)
	assert.Equal(t, "Body text.", post.Content)
}

func TestFetch_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)

	fetcher := newTestFetcher(server.Client())
	_, err := fetcher.Fetch(context.Background(), server.URL+"/r/test/comments/gone/x/")

	assert.Error(t, err)
}

func TestFetch_RejectsNonPermalink(t *testing.T) {
	fetcher := newTestFetcher(http.DefaultClient)
	_, err := fetcher.Fetch(context.Background(), "https://reddit.com/user/whoever")
	assert.Error(t, err)
}

func TestJSONURL(t *testing.T) {
	assert.Equal(t,
		"https://www.reddit.com/r/test/comments/1/x.json",
		jsonURL("https://www.reddit.com/r/test/comments/1/x/?share_id=123"))
}

func TestOldRedditURL(t *testing.T) {
	assert.Equal(t,
		"https://old.reddit.com/r/test/comments/1/x/",
		oldRedditURL("https://www.reddit.com/r/test/comments/1/x/"))

	// non-reddit hosts untouched
	assert.Equal(t,
		"http://127.0.0.1:8080/r/test/comments/1/x/",
		oldRedditURL("http://127.0.0.1:8080/r/test/comments/1/x/"))
}
