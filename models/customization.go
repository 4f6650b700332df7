package models

import (
	"fmt"

	"github.com/kova98/replydraft.api/enums"
)

const (
	MinCustomLength = 5
	MaxCustomLength = 500
)

// Customization is the user-selected direction, length, mood, and tone
// controlling a single generation. Ephemeral, created per request.
type Customization struct {
	Direction    string     `json:"direction"`
	Length       string     `json:"length"`
	CustomLength int        `json:"customLength,omitempty"`
	Mood         enums.Mood `json:"mood"`
	CustomMood   string     `json:"customMood,omitempty"`
	Tone         enums.Tone `json:"tone"`
}

// Validate checks the enum fields and the custom length bounds. Direction
// and tone are optional; mood defaults to neutral when empty.
func (c Customization) Validate() error {
	length := enums.ParseReplyLength(c.Length)
	if length == enums.ReplyLengthInvalid {
		return fmt.Errorf("invalid length %q", c.Length)
	}
	if length == enums.ReplyLengthCustom {
		if c.CustomLength < MinCustomLength || c.CustomLength > MaxCustomLength {
			return fmt.Errorf("custom length must be between %d and %d words", MinCustomLength, MaxCustomLength)
		}
	}
	if c.Mood != "" && !c.Mood.Valid() {
		return fmt.Errorf("invalid mood %q", c.Mood)
	}
	if c.Mood == enums.MoodCustom && c.CustomMood == "" {
		return fmt.Errorf("custom mood requires a customMood description")
	}
	if c.Tone != "" && !c.Tone.Valid() {
		return fmt.Errorf("invalid tone %q", c.Tone)
	}
	return nil
}
