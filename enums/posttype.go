package enums

type PostType string

const (
	// PostTypePost is a submission: title plus optional selftext.
	PostTypePost PostType = "post"

	// PostTypeComment is a single comment: body only, no title.
	PostTypeComment PostType = "comment"
)
