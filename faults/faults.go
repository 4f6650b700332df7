package faults

import "strings"

type Category string

const (
	APIKeyMissing           Category = "API_KEY_MISSING"
	APIKeyInvalid           Category = "API_KEY_INVALID"
	APIRateLimited          Category = "API_RATE_LIMITED"
	RedditContentNotFound   Category = "REDDIT_CONTENT_NOT_FOUND"
	ContentExtractionFailed Category = "CONTENT_EXTRACTION_FAILED"
	StorageError            Category = "STORAGE_ERROR"
	NetworkError            Category = "NETWORK_ERROR"
	TimeoutError            Category = "TIMEOUT_ERROR"
	PermissionDenied        Category = "PERMISSION_DENIED"
	Unknown                 Category = "UNKNOWN_ERROR"
)

// categoryRule maps substrings of raw error text to a category. First hit
// wins, so more specific rules come first.
type categoryRule struct {
	substrings []string
	category   Category
}

var rules = []categoryRule{
	{[]string{"api key is missing", "api key required", "no api key"}, APIKeyMissing},
	{[]string{"invalid api key", "incorrect api key", "401", "unauthorized", "authentication"}, APIKeyInvalid},
	{[]string{"rate limit", "429", "too many requests", "quota"}, APIRateLimited},
	{[]string{"post not found", "comment not found", "reddit returned status 404"}, RedditContentNotFound},
	{[]string{"could not extract", "extraction failed", "no content found"}, ContentExtractionFailed},
	{[]string{"database", "sql", "storage"}, StorageError},
	{[]string{"timeout", "deadline exceeded", "timed out"}, TimeoutError},
	{[]string{"permission denied", "403", "forbidden"}, PermissionDenied},
	{[]string{"network", "connection refused", "no such host", "dial tcp", "eof"}, NetworkError},
}

// Categorize classifies a raw failure into one of the fixed categories by
// case-insensitive substring matching on the error text.
func Categorize(err error) Category {
	if err == nil {
		return Unknown
	}

	text := strings.ToLower(err.Error())
	for _, rule := range rules {
		for _, sub := range rule.substrings {
			if strings.Contains(text, sub) {
				return rule.category
			}
		}
	}

	return Unknown
}

var messages = map[Category]string{
	APIKeyMissing:           "No API key is configured. Add one in settings before generating replies.",
	APIKeyInvalid:           "The API key was rejected. Check that it is entered correctly and still active.",
	APIRateLimited:          "The AI service is rate limiting requests. Wait a moment and try again.",
	RedditContentNotFound:   "Could not find a Reddit post or comment at that URL.",
	ContentExtractionFailed: "Could not extract content from the Reddit page.",
	StorageError:            "Saving or loading data failed. Try again.",
	NetworkError:            "A network error occurred. Check your connection and try again.",
	TimeoutError:            "The request timed out. Try again.",
	PermissionDenied:        "Access was denied by the remote service.",
	Unknown:                 "Something went wrong. Try again.",
}

// Message returns the fixed user-facing sentence for a category.
func Message(c Category) string {
	if msg, ok := messages[c]; ok {
		return msg
	}
	return messages[Unknown]
}

// UserMessage is the common path: classify and describe in one step.
func UserMessage(err error) string {
	return Message(Categorize(err))
}
