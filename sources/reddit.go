package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/kova98/replydraft.api/enums"
	"github.com/kova98/replydraft.api/extract"
	"github.com/kova98/replydraft.api/metrics"
	"github.com/kova98/replydraft.api/models"
)

// RedditFetcher resolves a reddit permalink into a normalized post record.
// It tries the public .json endpoint first and falls back to extracting
// the old.reddit.com HTML rendering. Neither path is retried; a failed
// fetch surfaces once.
type RedditFetcher struct {
	logger    *slog.Logger
	client    *http.Client
	pool      *ProxyPool
	extractor *extract.Extractor
}

// NewRedditFetcher creates a fetcher. pool may be nil; when set, outbound
// requests rotate through the pool's proxied clients.
func NewRedditFetcher(logger *slog.Logger, client *http.Client, pool *ProxyPool, extractor *extract.Extractor) *RedditFetcher {
	return &RedditFetcher{
		logger:    logger,
		client:    client,
		pool:      pool,
		extractor: extractor,
	}
}

type redditListing struct {
	Data struct {
		Children []struct {
			Kind string      `json:"kind"`
			Data redditThing `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditThing struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Body        string  `json:"body"`
	Author      string  `json:"author"`
	Subreddit   string  `json:"subreddit"`
	Permalink   string  `json:"permalink"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
}

// Fetch resolves rawURL into a RedditPost or a comment record when the
// permalink targets a comment.
func (f *RedditFetcher) Fetch(ctx context.Context, rawURL string) (*models.RedditPost, error) {
	permalink, err := extract.ParsePermalink(rawURL)
	if err != nil {
		return nil, err
	}

	post, jsonErr := f.fetchJSON(ctx, rawURL, permalink)
	if jsonErr == nil {
		metrics.RedditFetches.WithLabelValues("json").Inc()
		return post, nil
	}

	f.logger.Warn("json endpoint failed, falling back to html extraction", "url", rawURL, "error", jsonErr)

	post, htmlErr := f.extractor.Extract(oldRedditURL(rawURL))
	if htmlErr != nil {
		return nil, fmt.Errorf("fetch reddit content: %w", htmlErr)
	}
	post.URL = CanonicalURL(rawURL)
	metrics.RedditFetches.WithLabelValues("html").Inc()

	return post, nil
}

func (f *RedditFetcher) fetchJSON(ctx context.Context, rawURL string, permalink extract.Permalink) (*models.RedditPost, error) {
	url := jsonURL(rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	// Make the request look like a real browser to avoid blocks
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "application/json,text/html;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Connection", "keep-alive")

	client, host := f.pickClient()
	resp, err := client.Do(req)
	if err != nil {
		f.markOutcome(host, false)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests && f.pool != nil {
		f.pool.MarkRateLimited(host)
	}
	if resp.StatusCode != http.StatusOK {
		f.markOutcome(host, false)
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 300))
		return nil, fmt.Errorf("reddit returned status %d: %s", resp.StatusCode, string(body))
	}

	var listings []redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listings); err != nil {
		f.markOutcome(host, false)
		return nil, fmt.Errorf("decode reddit response: %w", err)
	}
	f.markOutcome(host, true)

	if permalink.IsComment() {
		return buildComment(listings, rawURL, permalink)
	}
	return buildPost(listings, rawURL)
}

func buildPost(listings []redditListing, rawURL string) (*models.RedditPost, error) {
	if len(listings) == 0 || len(listings[0].Data.Children) == 0 {
		return nil, fmt.Errorf("post not found at %s", rawURL)
	}

	thing := listings[0].Data.Children[0].Data
	return &models.RedditPost{
		RedditID:  thing.ID,
		Title:     thing.Title,
		Content:   thing.Selftext,
		Author:    thing.Author,
		Subreddit: thing.Subreddit,
		Upvotes:   thing.Score,
		Comments:  thing.NumComments,
		URL:       CanonicalURL(rawURL),
		Timestamp: time.Unix(int64(thing.CreatedUTC), 0).UTC(),
		Type:      enums.PostTypePost,
	}, nil
}

func buildComment(listings []redditListing, rawURL string, permalink extract.Permalink) (*models.RedditPost, error) {
	// A comment permalink returns two listings: the post, then the
	// focused comment subtree.
	if len(listings) < 2 || len(listings[1].Data.Children) == 0 {
		return nil, fmt.Errorf("comment not found at %s", rawURL)
	}

	// The listing is rooted at the focused comment, but match by id in
	// case the API returns surrounding context too.
	children := listings[1].Data.Children
	thing := children[0].Data
	for _, child := range children {
		if child.Data.ID == permalink.CommentID {
			thing = child.Data
			break
		}
	}
	if thing.Body == "" {
		return nil, fmt.Errorf("comment not found at %s", rawURL)
	}

	return &models.RedditPost{
		RedditID:  thing.ID,
		Content:   thing.Body,
		Author:    thing.Author,
		Subreddit: thing.Subreddit,
		Upvotes:   thing.Score,
		URL:       CanonicalURL(rawURL),
		Timestamp: time.Unix(int64(thing.CreatedUTC), 0).UTC(),
		Type:      enums.PostTypeComment,
	}, nil
}

func (f *RedditFetcher) pickClient() (*http.Client, string) {
	if f.pool != nil {
		return f.pool.Next()
	}
	return f.client, ""
}

func (f *RedditFetcher) markOutcome(host string, ok bool) {
	if f.pool == nil || host == "" {
		return
	}
	if ok {
		f.pool.MarkSuccess(host)
	} else {
		f.pool.MarkFailure(host)
	}
}

func jsonURL(rawURL string) string {
	url := strings.TrimSuffix(CanonicalURL(rawURL), "/")
	return url + ".json"
}

// CanonicalURL strips query and fragment noise from share links.
func CanonicalURL(rawURL string) string {
	u, err := neturl.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// oldRedditURL points reddit.com links at the old UI, which still renders
// server-side markup the selector lists understand. Non-reddit hosts are
// left alone.
func oldRedditURL(rawURL string) string {
	u, err := neturl.Parse(CanonicalURL(rawURL))
	if err != nil {
		return rawURL
	}
	if strings.HasSuffix(u.Host, "reddit.com") {
		u.Host = "old.reddit.com"
		u.Scheme = "https"
	}
	return u.String()
}
