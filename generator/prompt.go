package generator

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"

	"github.com/kova98/replydraft.api/enums"
	"github.com/kova98/replydraft.api/models"
)

type WordRange struct {
	Min int
	Max int
}

var lengthRanges = map[enums.ReplyLength]WordRange{
	enums.ReplyLengthSmall:  {20, 25},
	enums.ReplyLengthMedium: {50, 75},
	enums.ReplyLengthLarge:  {100, 150},
}

// TargetWords returns the word range requested from the model. A custom
// length passes the user's value through unchanged.
func TargetWords(c models.Customization) WordRange {
	length := enums.ParseReplyLength(c.Length)
	if length == enums.ReplyLengthCustom {
		return WordRange{c.CustomLength, c.CustomLength}
	}
	if r, ok := lengthRanges[length]; ok {
		return r
	}
	return lengthRanges[enums.ReplyLengthMedium]
}

var moodDescriptions = map[enums.Mood]string{
	enums.MoodFriendly:     "warm, friendly and approachable",
	enums.MoodProfessional: "polished, professional and measured",
	enums.MoodWitty:        "witty, clever and lightly playful",
	enums.MoodSupportive:   "encouraging, supportive and validating",
	enums.MoodSarcastic:    "dry, sarcastic and tongue-in-cheek",
	enums.MoodNeutral:      "even, neutral and matter-of-fact",
}

var toneDescriptions = map[enums.Tone]string{
	enums.ToneCasual:     "casual, like talking to a friend",
	enums.ToneFormal:     "formal and well structured",
	enums.ToneHumorous:   "humorous, allowing a joke where it fits",
	enums.ToneEmpathetic: "empathetic, acknowledging how the author feels",
	enums.ToneDirect:     "direct and to the point",
}

// moodDescription resolves the mood to prompt text; a custom mood uses the
// user's own description verbatim.
func moodDescription(c models.Customization) string {
	if c.Mood == enums.MoodCustom {
		return c.CustomMood
	}
	if desc, ok := moodDescriptions[c.Mood]; ok {
		return desc
	}
	return moodDescriptions[enums.MoodNeutral]
}

var moodTemperatures = map[enums.Mood]float64{
	enums.MoodFriendly:     0.7,
	enums.MoodProfessional: 0.4,
	enums.MoodWitty:        0.9,
	enums.MoodSupportive:   0.65,
	enums.MoodSarcastic:    0.95,
	enums.MoodNeutral:      0.5,
	enums.MoodCustom:       0.8,
}

// Temperature derives the sampling temperature from the chosen mood.
func Temperature(c models.Customization) float64 {
	if t, ok := moodTemperatures[c.Mood]; ok {
		return t
	}
	return moodTemperatures[enums.MoodNeutral]
}

// MaxTokens budgets completion tokens from the word target, with headroom
// for the model running slightly long.
func MaxTokens(c models.Customization) int {
	r := TargetWords(c)
	tokens := r.Max*2 + 60
	if tokens > 2048 {
		tokens = 2048
	}
	return tokens
}

// BuildPrompt renders the deterministic generation prompt from the post
// fields and the customization tables above.
func BuildPrompt(post models.RedditPost, c models.Customization) string {
	var b strings.Builder

	b.WriteString("You are drafting a reddit reply on behalf of a user. ")
	b.WriteString("Write in the first person, as a regular commenter. Do not mention being an AI.\n\n")

	if post.Type == enums.PostTypeComment {
		b.WriteString("You are replying to this comment:\n")
	} else {
		b.WriteString("You are replying to this post:\n")
	}
	fmt.Fprintf(&b, "Subreddit: r/%s\n", post.Subreddit)
	fmt.Fprintf(&b, "Author: u/%s\n", post.Author)
	if post.Title != "" {
		fmt.Fprintf(&b, "Title: %s\n", post.Title)
	}
	fmt.Fprintf(&b, "Content: %s\n\n", post.Content)

	fmt.Fprintf(&b, "The reply should be %s in mood", moodDescription(c))
	if desc, ok := toneDescriptions[c.Tone]; ok {
		fmt.Fprintf(&b, ", and %s in tone", desc)
	}
	b.WriteString(".\n")

	if c.Direction != "" {
		fmt.Fprintf(&b, "Direction from the user: %s\n", c.Direction)
	}

	r := TargetWords(c)
	if r.Min == r.Max {
		fmt.Fprintf(&b, "Aim for exactly %d words.\n", r.Min)
	} else {
		fmt.Fprintf(&b, "Aim for approximately %d-%d words.\n", r.Min, r.Max)
	}

	if lang := DetectLanguage(post.Title + " " + post.Content); lang != "" {
		fmt.Fprintf(&b, "The post is written in %s; reply in %s.\n", lang, lang)
	}

	b.WriteString("Return only the reply text, with no preamble or quotation marks.")

	return b.String()
}

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// DetectLanguage returns the post's language name when it is confidently
// detected as something other than English, and "" otherwise.
func DetectLanguage(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(
				lingua.English, lingua.Spanish, lingua.French,
				lingua.German, lingua.Portuguese, lingua.Italian,
				lingua.Dutch, lingua.Japanese, lingua.Korean,
			).
			WithMinimumRelativeDistance(0.25).
			Build()
	})

	lang, ok := detector.DetectLanguageOf(text)
	if !ok || lang == lingua.English {
		return ""
	}
	return lang.String()
}
