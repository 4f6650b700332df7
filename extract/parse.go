package extract

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ParseCount parses reddit-style engagement counts: plain integers,
// comma-grouped numbers, and abbreviated "1.2k" / "10M" / "1B" forms.
// Placeholder values ("•", "Vote", "") parse to 0.
func ParseCount(s string) int {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "•" || s == "vote" {
		return 0
	}

	// "1234 comments" -> "1234"
	if i := strings.IndexByte(s, ' '); i > 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, ",", "")

	multiplier := 1.0
	switch {
	case strings.HasSuffix(s, "k"):
		multiplier = 1_000
		s = strings.TrimSuffix(s, "k")
	case strings.HasSuffix(s, "m"):
		multiplier = 1_000_000
		s = strings.TrimSuffix(s, "m")
	case strings.HasSuffix(s, "b"):
		multiplier = 1_000_000_000
		s = strings.TrimSuffix(s, "b")
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}

	return int(value * multiplier)
}

// Permalink is the decomposed form of a reddit post or comment URL.
type Permalink struct {
	Subreddit string
	PostID    string
	CommentID string
}

func (p Permalink) IsComment() bool {
	return p.CommentID != ""
}

// ParsePermalink decomposes /r/{sub}/comments/{postID}[/{slug}[/{commentID}]]
// URLs. Anything else is rejected.
func ParsePermalink(rawURL string) (Permalink, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Permalink{}, fmt.Errorf("parse url: %w", err)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 4 || parts[0] != "r" || parts[2] != "comments" {
		return Permalink{}, fmt.Errorf("not a reddit post url: %s", rawURL)
	}

	permalink := Permalink{
		Subreddit: parts[1],
		PostID:    parts[3],
	}
	if len(parts) >= 6 && parts[5] != "" {
		permalink.CommentID = parts[5]
	}

	return permalink, nil
}
