package models

import (
	"time"

	"github.com/google/uuid"
)

// Settings is the single persisted settings record. APIKey is the
// chat-completion key used for generation when set.
type Settings struct {
	APIKey               string        `json:"apiKey"`
	DefaultCustomization Customization `json:"defaultCustomization"`
	AutoDetectContext    bool          `json:"autoDetectContext"`
	SaveHistory          bool          `json:"saveHistory"`
	DarkMode             bool          `json:"darkMode"`
}

// DefaultSettings matches the onboarding defaults of the original app.
func DefaultSettings() Settings {
	return Settings{
		DefaultCustomization: Customization{
			Length: "medium",
			Mood:   "friendly",
			Tone:   "casual",
		},
		AutoDetectContext: true,
		SaveHistory:       true,
	}
}

// UpdateSettingsRequest carries a partial update; nil fields keep their
// stored value (merge-on-update).
type UpdateSettingsRequest struct {
	APIKey               *string        `json:"apiKey"`
	DefaultCustomization *Customization `json:"defaultCustomization"`
	AutoDetectContext    *bool          `json:"autoDetectContext"`
	SaveHistory          *bool          `json:"saveHistory"`
	DarkMode             *bool          `json:"darkMode"`
}

// Merge applies the provided fields onto s and returns the result.
func (r UpdateSettingsRequest) Merge(s Settings) Settings {
	if r.APIKey != nil {
		s.APIKey = *r.APIKey
	}
	if r.DefaultCustomization != nil {
		s.DefaultCustomization = *r.DefaultCustomization
	}
	if r.AutoDetectContext != nil {
		s.AutoDetectContext = *r.AutoDetectContext
	}
	if r.SaveHistory != nil {
		s.SaveHistory = *r.SaveHistory
	}
	if r.DarkMode != nil {
		s.DarkMode = *r.DarkMode
	}
	return s
}

type TestKeyRequest struct {
	APIKey string `json:"apiKey"`
}

type TestKeyResponse struct {
	Valid bool `json:"valid"`
}

const apiKeyRedacted = "[REDACTED]"

// ExportPayload is the backup format. The API key is never exported.
type ExportPayload struct {
	ExportID   uuid.UUID      `json:"exportId"`
	ExportedAt time.Time      `json:"exportedAt"`
	Settings   Settings       `json:"settings"`
	History    []HistoryEntry `json:"history"`
}

// BuildExport assembles an export payload with the API key redacted,
// regardless of its stored value.
func BuildExport(settings Settings, history []HistoryEntry) ExportPayload {
	settings.APIKey = apiKeyRedacted
	return ExportPayload{
		ExportID:   uuid.New(),
		ExportedAt: time.Now().UTC(),
		Settings:   settings,
		History:    history,
	}
}

// ImportRequest mirrors ExportPayload. The imported API key is ignored on
// import; history entries merge by id with existing entries winning.
type ImportRequest struct {
	Settings *Settings      `json:"settings"`
	History  []HistoryEntry `json:"history"`
}

type ImportResponse struct {
	SettingsApplied bool `json:"settingsApplied"`
	HistoryImported int  `json:"historyImported"`
}
