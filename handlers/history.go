package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/kova98/replydraft.api/data"
	"github.com/kova98/replydraft.api/data/repos"
	"github.com/kova98/replydraft.api/models"
)

type HistoryHandler struct {
	history  *repos.HistoryRepo
	posts    *repos.PostRepo
	settings *repos.SettingsRepo
	limit    int
}

func NewHistoryHandler(history *repos.HistoryRepo, posts *repos.PostRepo, settings *repos.SettingsRepo, limit int) *HistoryHandler {
	return &HistoryHandler{history, posts, settings, limit}
}

func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) Result {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	perPage := 20
	offset := (page - 1) * perPage

	entries, total, err := h.history.GetEntries(perPage, offset)
	if err != nil {
		return InternalError(err, "get history")
	}

	mapped, err := h.withPosts(entries)
	if err != nil {
		return InternalError(err, "load history posts")
	}

	return Ok(models.GetHistoryResponse{
		Entries: mapped,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	})
}

func (h *HistoryHandler) ClearHistory(w http.ResponseWriter, r *http.Request) Result {
	if err := h.history.Clear(); err != nil {
		return InternalError(err, "clear history")
	}

	return Ok(nil)
}

// Export bundles settings and the full history into a backup document. The
// stored API key never leaves the server.
func (h *HistoryHandler) Export(w http.ResponseWriter, r *http.Request) Result {
	settings, err := loadSettings(h.settings)
	if err != nil {
		return InternalError(err, "load settings")
	}

	entries, _, err := h.history.GetEntries(h.limit, 0)
	if err != nil {
		return InternalError(err, "load history")
	}

	mapped, err := h.withPosts(entries)
	if err != nil {
		return InternalError(err, "load history posts")
	}

	return Ok(models.BuildExport(settings, mapped))
}

// Import restores a backup. Imported settings replace stored ones except the
// API key, which always keeps its stored value. History entries merge by id;
// entries already present win.
func (h *HistoryHandler) Import(w http.ResponseWriter, r *http.Request) Result {
	var req models.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return BadRequest("invalid request body")
	}

	if req.Settings != nil {
		stored, err := loadSettings(h.settings)
		if err != nil {
			return InternalError(err, "load settings")
		}

		imported := *req.Settings
		imported.APIKey = stored.APIKey
		if err := saveSettings(h.settings, imported); err != nil {
			return InternalError(err, "save imported settings")
		}
	}

	batch := make([]data.HistoryEntry, 0, len(req.History))
	for _, e := range req.History {
		postID, err := h.posts.CreatePost(toDataPost(e.Post))
		if err != nil {
			return InternalError(err, "store imported post")
		}

		raw, err := json.Marshal(e.Customization)
		if err != nil {
			return InternalError(err, "encode imported customization")
		}

		batch = append(batch, data.HistoryEntry{
			ID:               e.ID,
			PostID:           postID,
			CustomizationRaw: raw,
			Content:          e.Reply.Content,
			WordCount:        e.Reply.WordCount,
			ReadTime:         e.Reply.EstimatedReadTime,
			GeneratedAt:      e.Reply.GeneratedAt,
		})
	}

	imported, err := h.history.ImportEntries(batch)
	if err != nil {
		return InternalError(err, "import history")
	}

	return Ok(models.ImportResponse{
		SettingsApplied: req.Settings != nil,
		HistoryImported: imported,
	})
}

// withPosts resolves the posts referenced by a page of history entries with
// a single query.
func (h *HistoryHandler) withPosts(entries []data.HistoryEntry) ([]models.HistoryEntry, error) {
	ids := make([]int, 0, len(entries))
	seen := map[int]bool{}
	for _, e := range entries {
		if !seen[e.PostID] {
			seen[e.PostID] = true
			ids = append(ids, e.PostID)
		}
	}

	posts, err := h.posts.GetPostsByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]models.RedditPost, len(posts))
	for _, p := range posts {
		byID[p.ID] = fromDataPost(p)
	}

	mapped := make([]models.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		customization := decodeCustomization(e.ID, e.CustomizationRaw)

		mapped = append(mapped, models.HistoryEntry{
			ID:            e.ID,
			PostID:        e.PostID,
			Post:          byID[e.PostID],
			Customization: customization,
			Reply: models.AiReply{
				Content:           e.Content,
				WordCount:         e.WordCount,
				EstimatedReadTime: e.ReadTime,
				GeneratedAt:       e.GeneratedAt,
			},
		})
	}

	return mapped, nil
}

// decodeCustomization tolerates a corrupt stored snapshot: the entry is
// still rendered, with the decode failure logged rather than dropped.
func decodeCustomization(entryID int, raw []byte) models.Customization {
	var customization models.Customization
	if err := json.Unmarshal(raw, &customization); err != nil {
		slog.Warn("failed to decode stored customization", "entryId", entryID, "error", err)
	}
	return customization
}
