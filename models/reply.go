package models

import "time"

// AiReply is the generated text plus derived metadata. EstimatedReadTime
// is in minutes at 200 words per minute, never below 1.
type AiReply struct {
	Content           string    `json:"content"`
	WordCount         int       `json:"wordCount"`
	EstimatedReadTime int       `json:"estimatedReadTime"`
	GeneratedAt       time.Time `json:"generatedAt"`
}

type GenerateReplyRequest struct {
	RedditURL     string        `json:"redditUrl"`
	Customization Customization `json:"customization"`
}

// HistoryEntry pairs a reply with the post and customization that produced
// it, so past generations can be inspected and regenerated.
type HistoryEntry struct {
	ID            int           `json:"id"`
	PostID        int           `json:"postId"`
	Post          RedditPost    `json:"post"`
	Customization Customization `json:"customization"`
	Reply         AiReply       `json:"reply"`
}

type GetHistoryResponse struct {
	Entries []HistoryEntry `json:"entries"`
	Total   int            `json:"total"`
	Page    int            `json:"page"`
	PerPage int            `json:"perPage"`
}
