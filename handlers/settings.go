package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kova98/replydraft.api/data/repos"
	"github.com/kova98/replydraft.api/generator"
	"github.com/kova98/replydraft.api/models"
)

type SettingsHandler struct {
	repo      *repos.SettingsRepo
	generator *generator.Generator
}

func NewSettingsHandler(repo *repos.SettingsRepo, gen *generator.Generator) *SettingsHandler {
	return &SettingsHandler{repo, gen}
}

func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) Result {
	settings, err := loadSettings(h.repo)
	if err != nil {
		return InternalError(err, "load settings")
	}

	return Ok(settings)
}

// UpdateSettings applies a partial update. Fields absent from the request
// keep their stored value.
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) Result {
	var req models.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return BadRequest("invalid request body")
	}

	if req.DefaultCustomization != nil {
		if err := req.DefaultCustomization.Validate(); err != nil {
			return BadRequest(err.Error())
		}
	}

	settings, err := loadSettings(h.repo)
	if err != nil {
		return InternalError(err, "load settings")
	}

	merged := req.Merge(settings)
	if err := saveSettings(h.repo, merged); err != nil {
		return InternalError(err, "save settings")
	}

	return Ok(merged)
}

// TestKey checks a chat-completion key against the provider without storing
// it. An unreachable provider is an error, not an invalid key.
func (h *SettingsHandler) TestKey(w http.ResponseWriter, r *http.Request) Result {
	var req models.TestKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return BadRequest("invalid request body")
	}
	if req.APIKey == "" {
		return BadRequest("apiKey is required")
	}

	valid, err := h.generator.TestKey(r.Context(), req.APIKey)
	if err != nil {
		return InternalError(err, "test api key")
	}

	return Ok(models.TestKeyResponse{Valid: valid})
}

// loadSettings reads the single settings row, falling back to defaults when
// none was saved yet.
func loadSettings(repo *repos.SettingsRepo) (models.Settings, error) {
	row, err := repo.GetSettings()
	if err != nil {
		return models.Settings{}, err
	}
	if row == nil {
		return models.DefaultSettings(), nil
	}

	var settings models.Settings
	if err := json.Unmarshal(row.DataRaw, &settings); err != nil {
		return models.Settings{}, fmt.Errorf("decode settings: %w", err)
	}

	return settings, nil
}

func saveSettings(repo *repos.SettingsRepo, settings models.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return repo.SaveSettings(raw)
}
