package models

import (
	"time"

	"github.com/kova98/replydraft.api/enums"
)

// RedditPost is the normalized post or comment record used as generation
// context. Immutable once created.
type RedditPost struct {
	ID        int            `json:"id"`
	RedditID  string         `json:"redditId,omitempty"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Author    string         `json:"author"`
	Subreddit string         `json:"subreddit"`
	Upvotes   int            `json:"upvotes"`
	Comments  int            `json:"comments"`
	URL       string         `json:"url"`
	Timestamp time.Time      `json:"timestamp"`
	Type      enums.PostType `json:"type"`
}

type FetchPostRequest struct {
	URL string `json:"url"`
}

type ManualPostRequest struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	Subreddit string `json:"subreddit"`
	Upvotes   int    `json:"upvotes"`
	Comments  int    `json:"comments"`
	Type      string `json:"type"`
}
