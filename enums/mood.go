package enums

type Mood string

const (
	MoodFriendly     Mood = "friendly"
	MoodProfessional Mood = "professional"
	MoodWitty        Mood = "witty"
	MoodSupportive   Mood = "supportive"
	MoodSarcastic    Mood = "sarcastic"
	MoodNeutral      Mood = "neutral"

	// MoodCustom means the free-text customMood field carries the
	// description instead of a built-in one.
	MoodCustom Mood = "custom"
)

type Tone string

const (
	ToneCasual     Tone = "casual"
	ToneFormal     Tone = "formal"
	ToneHumorous   Tone = "humorous"
	ToneEmpathetic Tone = "empathetic"
	ToneDirect     Tone = "direct"
)

func (m Mood) Valid() bool {
	switch m {
	case MoodFriendly, MoodProfessional, MoodWitty, MoodSupportive, MoodSarcastic, MoodNeutral, MoodCustom:
		return true
	}
	return false
}

func (t Tone) Valid() bool {
	switch t {
	case ToneCasual, ToneFormal, ToneHumorous, ToneEmpathetic, ToneDirect:
		return true
	}
	return false
}
