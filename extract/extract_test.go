package extract

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/kova98/replydraft.api/enums"
	"github.com/stretchr/testify/assert"
)

func TestParseCount_Suffixes(t *testing.T) {
	assert.Equal(t, 1200, ParseCount("1.2k"))
	assert.Equal(t, 10000000, ParseCount("10M"))
	assert.Equal(t, 2500000000, ParseCount("2.5B"))
}

func TestParseCount_Plain(t *testing.T) {
	assert.Equal(t, 0, ParseCount(""))
	assert.Equal(t, 0, ParseCount("•"))
	assert.Equal(t, 0, ParseCount("Vote"))
	assert.Equal(t, 42, ParseCount("42"))
	assert.Equal(t, 1234, ParseCount("1,234"))
	assert.Equal(t, 128, ParseCount("128 comments"))
	assert.Equal(t, 0, ParseCount("garbage"))
}

func TestParsePermalink_Post(t *testing.T) {
	p, err := ParsePermalink("https://www.reddit.com/r/golang/comments/abc123/some_title/")
	assert.NoError(t, err)
	assert.Equal(t, "golang", p.Subreddit)
	assert.Equal(t, "abc123", p.PostID)
	assert.False(t, p.IsComment())
}

func TestParsePermalink_Comment(t *testing.T) {
	p, err := ParsePermalink("https://www.reddit.com/r/golang/comments/abc123/some_title/def456/")
	assert.NoError(t, err)
	assert.Equal(t, "abc123", p.PostID)
	assert.Equal(t, "def456", p.CommentID)
	assert.True(t, p.IsComment())
}

func TestParsePermalink_Rejects(t *testing.T) {
	_, err := ParsePermalink("https://www.reddit.com/user/someone")
	assert.Error(t, err)

	_, err = ParsePermalink("https://example.com/r/golang/comments")
	assert.Error(t, err)
}

const postPage = `<html><body>
<div id="siteTable">
  <div class="thing" data-fullname="t3_abc123" data-author="gopher" data-subreddit="golang">
    <p class="title"><a class="title">Why I like channels</a></p>
    <p class="tagline"><a class="author">gopher</a> <time datetime="2025-06-01T10:00:00+00:00">posted</time></p>
    <div class="score unvoted">1.2k</div>
    <div class="usertext-body"><div class="md">They compose nicely.</div></div>
    <a class="comments">128 comments</a>
  </div>
</div>
</body></html>`

const commentPage = `<html><body>
<div id="siteTable"></div>
<div class="commentarea">
  <div class="comment" data-fullname="t1_def456">
    <a class="author">ferris</a>
    <span class="score">87 points</span>
    <div class="usertext-body"><div class="md">Channels are just queues.</div></div>
  </div>
</div>
</body></html>`

const emptyPage = `<html><body><div id="siteTable"></div></body></html>`

func newTestExtractor() *Extractor {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return NewExtractor(logger, nil)
}

func serve(t *testing.T, html string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestExtract_Post(t *testing.T) {
	server := serve(t, postPage)

	post, err := newTestExtractor().Extract(server.URL + "/r/golang/comments/abc123/why_i_like_channels/")
	assert.NoError(t, err)
	assert.Equal(t, "Why I like channels", post.Title)
	assert.Equal(t, "They compose nicely.", post.Content)
	assert.Equal(t, "gopher", post.Author)
	assert.Equal(t, "golang", post.Subreddit)
	assert.Equal(t, 1200, post.Upvotes)
	assert.Equal(t, 128, post.Comments)
	assert.Equal(t, "abc123", post.RedditID)
	assert.Equal(t, enums.PostTypePost, post.Type)
	assert.Equal(t, 2025, post.Timestamp.Year())
}

func TestExtract_Comment(t *testing.T) {
	server := serve(t, commentPage)

	post, err := newTestExtractor().Extract(server.URL + "/r/golang/comments/abc123/title/def456/")
	assert.NoError(t, err)
	assert.Equal(t, enums.PostTypeComment, post.Type)
	assert.Equal(t, "Channels are just queues.", post.Content)
	assert.Equal(t, "ferris", post.Author)
	assert.Equal(t, "golang", post.Subreddit)
	assert.Equal(t, 87, post.Upvotes)
	assert.Empty(t, post.Title)
}

func TestExtract_NothingFound(t *testing.T) {
	server := serve(t, emptyPage)

	_, err := newTestExtractor().Extract(server.URL + "/r/golang/comments/abc123/title/")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "could not extract")
}

func TestExtract_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)

	_, err := newTestExtractor().Extract(server.URL + "/r/golang/comments/abc123/title/")
	assert.Error(t, err)
}
