package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/kova98/replydraft.api/data"
	"github.com/kova98/replydraft.api/data/repos"
	"github.com/kova98/replydraft.api/faults"
	"github.com/kova98/replydraft.api/generator"
	"github.com/kova98/replydraft.api/metrics"
	"github.com/kova98/replydraft.api/models"
	"github.com/kova98/replydraft.api/sources"
)

type ReplyHandler struct {
	generator   *generator.Generator
	fetcher     *sources.RedditFetcher
	posts       *repos.PostRepo
	history     *repos.HistoryRepo
	settings    *repos.SettingsRepo
	fallbackKey string
}

func NewReplyHandler(
	gen *generator.Generator,
	fetcher *sources.RedditFetcher,
	posts *repos.PostRepo,
	history *repos.HistoryRepo,
	settings *repos.SettingsRepo,
	fallbackKey string,
) *ReplyHandler {
	return &ReplyHandler{gen, fetcher, posts, history, settings, fallbackKey}
}

// GenerateReply drafts a reply for the post at the given URL. The post is
// fetched on demand when it was not seen before. A generation failure after
// retries is reported with a user readable message; a history write failure
// is logged but never loses the reply.
func (h *ReplyHandler) GenerateReply(w http.ResponseWriter, r *http.Request) Result {
	var req models.GenerateReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return BadRequest("invalid request body")
	}
	if req.RedditURL == "" {
		return BadRequest("redditUrl is required")
	}
	if err := req.Customization.Validate(); err != nil {
		return BadRequest(err.Error())
	}

	post, res := h.lookupPost(r.Context(), req.RedditURL)
	if res != nil {
		return *res
	}

	settings, err := loadSettings(h.settings)
	if err != nil {
		return InternalError(err, "load settings")
	}

	apiKey := settings.APIKey
	if apiKey == "" {
		apiKey = h.fallbackKey
	}

	reply, err := h.generator.Generate(r.Context(), post, req.Customization, apiKey)
	if err != nil {
		switch category := faults.Categorize(err); category {
		case faults.APIKeyMissing, faults.APIKeyInvalid:
			metrics.ErrorsTotal.WithLabelValues(string(category)).Inc()
			return BadRequest(faults.UserMessage(err))
		default:
			return InternalError(err, "generate reply")
		}
	}

	if settings.SaveHistory {
		raw, err := json.Marshal(req.Customization)
		if err == nil {
			_, err = h.history.CreateEntry(data.HistoryEntry{
				PostID:           post.ID,
				CustomizationRaw: raw,
				Content:          reply.Content,
				WordCount:        reply.WordCount,
				ReadTime:         reply.EstimatedReadTime,
				GeneratedAt:      reply.GeneratedAt,
			})
		}
		if err != nil {
			slog.Warn("failed to save history entry", "postId", post.ID, "error", err)
		}
	}

	return Ok(reply)
}

// GetRepliesForPost lists every reply generated for one stored post.
func (h *ReplyHandler) GetRepliesForPost(w http.ResponseWriter, r *http.Request) Result {
	idStr := r.PathValue("postId")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return BadRequest("invalid post id")
	}

	post, err := h.posts.GetPostByID(id)
	if err != nil {
		return InternalError(err, "get post")
	}
	if post == nil {
		return NotFound("post not found")
	}

	entries, err := h.history.GetEntriesByPostID(id)
	if err != nil {
		return InternalError(err, "get replies for post")
	}

	replies := make([]models.AiReply, 0, len(entries))
	for _, e := range entries {
		replies = append(replies, models.AiReply{
			Content:           e.Content,
			WordCount:         e.WordCount,
			EstimatedReadTime: e.ReadTime,
			GeneratedAt:       e.GeneratedAt,
		})
	}

	return Ok(replies)
}

func (h *ReplyHandler) lookupPost(ctx context.Context, rawURL string) (models.RedditPost, *Result) {
	url := sources.CanonicalURL(rawURL)

	stored, err := h.posts.GetPostByURL(url)
	if err != nil {
		res := InternalError(err, "look up post")
		return models.RedditPost{}, &res
	}
	if stored != nil {
		return fromDataPost(*stored), nil
	}

	post, err := h.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		var res Result
		if faults.Categorize(err) == faults.RedditContentNotFound {
			res = NotFound(faults.UserMessage(err))
		} else {
			res = InternalError(err, "fetch post for generation")
		}
		return models.RedditPost{}, &res
	}

	id, err := h.posts.CreatePost(toDataPost(*post))
	if err != nil {
		res := InternalError(err, "store fetched post")
		return models.RedditPost{}, &res
	}
	post.ID = id

	return *post, nil
}
