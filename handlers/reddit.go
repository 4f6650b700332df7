package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/kova98/replydraft.api/data"
	"github.com/kova98/replydraft.api/data/repos"
	"github.com/kova98/replydraft.api/enums"
	"github.com/kova98/replydraft.api/faults"
	"github.com/kova98/replydraft.api/models"
	"github.com/kova98/replydraft.api/sources"
)

type RedditHandler struct {
	fetcher *sources.RedditFetcher
	repo    *repos.PostRepo
}

func NewRedditHandler(fetcher *sources.RedditFetcher, repo *repos.PostRepo) *RedditHandler {
	return &RedditHandler{fetcher, repo}
}

// FetchPost resolves a reddit permalink into a stored post record. Fetching
// the same URL twice returns the already stored record.
func (h *RedditHandler) FetchPost(w http.ResponseWriter, r *http.Request) Result {
	var req models.FetchPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return BadRequest("invalid request body")
	}
	if req.URL == "" {
		return BadRequest("url is required")
	}

	post, err := h.fetcher.Fetch(r.Context(), req.URL)
	if err != nil {
		switch faults.Categorize(err) {
		case faults.RedditContentNotFound:
			return NotFound(faults.UserMessage(err))
		default:
			return InternalError(err, "fetch reddit post")
		}
	}

	id, err := h.repo.CreatePost(toDataPost(*post))
	if err != nil {
		return InternalError(err, "store fetched post")
	}
	post.ID = id

	return Ok(post)
}

// ManualPost stores content the user pasted in by hand, for posts the
// fetcher cannot reach.
func (h *RedditHandler) ManualPost(w http.ResponseWriter, r *http.Request) Result {
	var req models.ManualPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return BadRequest("invalid request body")
	}
	if req.URL == "" {
		return BadRequest("url is required")
	}
	if req.Content == "" && req.Title == "" {
		return BadRequest("title or content is required")
	}

	postType := enums.PostTypePost
	if req.Type == string(enums.PostTypeComment) {
		postType = enums.PostTypeComment
	}

	post := models.RedditPost{
		Title:     req.Title,
		Content:   req.Content,
		Author:    req.Author,
		Subreddit: req.Subreddit,
		Upvotes:   req.Upvotes,
		Comments:  req.Comments,
		URL:       sources.CanonicalURL(req.URL),
		Timestamp: time.Now().UTC(),
		Type:      postType,
	}

	id, err := h.repo.CreatePost(toDataPost(post))
	if err != nil {
		return InternalError(err, "store manual post")
	}
	post.ID = id

	return Ok(post)
}

func toDataPost(p models.RedditPost) data.Post {
	return data.Post{
		ID:        p.ID,
		RedditID:  p.RedditID,
		Title:     p.Title,
		Content:   p.Content,
		Author:    p.Author,
		Subreddit: p.Subreddit,
		Upvotes:   p.Upvotes,
		Comments:  p.Comments,
		URL:       p.URL,
		PostType:  string(p.Type),
		PostedAt:  p.Timestamp,
	}
}

func fromDataPost(p data.Post) models.RedditPost {
	return models.RedditPost{
		ID:        p.ID,
		RedditID:  p.RedditID,
		Title:     p.Title,
		Content:   p.Content,
		Author:    p.Author,
		Subreddit: p.Subreddit,
		Upvotes:   p.Upvotes,
		Comments:  p.Comments,
		URL:       p.URL,
		Timestamp: p.PostedAt,
		Type:      enums.PostType(p.PostType),
	}
}
