package extract

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/kova98/replydraft.api/enums"
	"github.com/kova98/replydraft.api/models"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Extractor pulls a normalized post or comment record out of an
// old.reddit.com page using the ordered selector lists in selectors.go.
type Extractor struct {
	logger *slog.Logger
	client *http.Client
}

func NewExtractor(logger *slog.Logger, client *http.Client) *Extractor {
	return &Extractor{logger: logger, client: client}
}

// Extract fetches pageURL and returns the normalized record. The URL must
// be a reddit permalink; comment permalinks yield type=comment records.
// Failures are not retried.
func (x *Extractor) Extract(pageURL string) (*models.RedditPost, error) {
	permalink, err := ParsePermalink(pageURL)
	if err != nil {
		return nil, err
	}

	c := colly.NewCollector(
		colly.UserAgent(browserUserAgent),
		colly.IgnoreRobotsTxt(),
	)
	if x.client != nil {
		c.SetClient(x.client)
	}

	var post *models.RedditPost
	c.OnHTML("html", func(e *colly.HTMLElement) {
		if permalink.IsComment() {
			post = x.extractComment(e, permalink, pageURL)
		} else {
			post = x.extractPost(e, permalink, pageURL)
		}
	})

	var fetchErr error
	c.OnError(func(r *colly.Response, err error) {
		fetchErr = fmt.Errorf("reddit returned status %d: %w", r.StatusCode, err)
	})

	if err := c.Visit(pageURL); err != nil && fetchErr == nil {
		fetchErr = err
	}
	if fetchErr != nil {
		return nil, fmt.Errorf("fetch reddit page: %w", fetchErr)
	}
	if post == nil {
		return nil, errors.New("could not extract content from page")
	}

	x.logger.Debug("extracted content", "url", pageURL, "type", post.Type)
	return post, nil
}

func (x *Extractor) extractPost(e *colly.HTMLElement, permalink Permalink, pageURL string) *models.RedditPost {
	title := firstText(e, titleSelectors)
	content := firstText(e, contentSelectors)
	if title == "" && content == "" {
		return nil
	}

	author := firstText(e, authorSelectors)
	if author == "" {
		author = attrOr(e, thingSelector, authorAttr, "[deleted]")
	}

	subreddit := firstText(e, subredditSelectors)
	subreddit = normalizeSubreddit(subreddit)
	if subreddit == "" {
		subreddit = attrOr(e, thingSelector, subredditAttr, permalink.Subreddit)
	}

	return &models.RedditPost{
		RedditID:  strings.TrimPrefix(attrOr(e, thingSelector, fullnameAttr, ""), "t3_"),
		Title:     title,
		Content:   content,
		Author:    author,
		Subreddit: subreddit,
		Upvotes:   ParseCount(firstText(e, scoreSelectors)),
		Comments:  ParseCount(firstText(e, commentCountSelectors)),
		URL:       pageURL,
		Timestamp: extractTimestamp(e),
		Type:      enums.PostTypePost,
	}
}

func (x *Extractor) extractComment(e *colly.HTMLElement, permalink Permalink, pageURL string) *models.RedditPost {
	body := firstText(e, commentBodySelectors)
	if body == "" {
		return nil
	}

	author := firstText(e, commentAuthorSelectors)
	if author == "" {
		author = "[deleted]"
	}

	return &models.RedditPost{
		RedditID:  permalink.CommentID,
		Content:   body,
		Author:    author,
		Subreddit: permalink.Subreddit,
		Upvotes:   ParseCount(firstText(e, commentScoreSelectors)),
		URL:       pageURL,
		Timestamp: extractTimestamp(e),
		Type:      enums.PostTypeComment,
	}
}

// firstText returns the trimmed text of the first selector with a
// non-empty match.
func firstText(e *colly.HTMLElement, selectors []string) string {
	for _, sel := range selectors {
		text := strings.TrimSpace(e.DOM.Find(sel).First().Text())
		if text != "" {
			return text
		}
	}
	return ""
}

func attrOr(e *colly.HTMLElement, selector, attr, fallback string) string {
	value, ok := e.DOM.Find(selector).First().Attr(attr)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}

func extractTimestamp(e *colly.HTMLElement) time.Time {
	datetime, ok := e.DOM.Find(timestampSelector).First().Attr("datetime")
	if ok {
		if ts, err := time.Parse(time.RFC3339, datetime); err == nil {
			return ts.UTC()
		}
	}
	return time.Now().UTC()
}

// normalizeSubreddit strips the "r/" prefix old reddit renders in
// subreddit links.
func normalizeSubreddit(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "/")
	s = strings.TrimPrefix(s, "r/")
	return strings.TrimSuffix(s, "/")
}
