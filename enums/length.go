package enums

type ReplyLength string

const (
	ReplyLengthInvalid ReplyLength = ""

	// ReplyLengthSmall targets roughly 20-25 words, a quick one-liner.
	ReplyLengthSmall ReplyLength = "small"

	// ReplyLengthMedium targets roughly 50-75 words, a short paragraph.
	ReplyLengthMedium ReplyLength = "medium"

	// ReplyLengthLarge targets roughly 100-150 words, a full comment.
	ReplyLengthLarge ReplyLength = "large"

	// ReplyLengthCustom uses the user-supplied word count (5-500).
	ReplyLengthCustom ReplyLength = "custom"
)

// ParseReplyLength normalizes a raw length value. The extension variant
// called the large option "long"; both spellings are accepted.
func ParseReplyLength(s string) ReplyLength {
	switch s {
	case "small":
		return ReplyLengthSmall
	case "medium":
		return ReplyLengthMedium
	case "large", "long":
		return ReplyLengthLarge
	case "custom":
		return ReplyLengthCustom
	}
	return ReplyLengthInvalid
}
