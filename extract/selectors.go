package extract

// old.reddit.com DOM selectors, ordered by priority. The first selector
// returning a non-empty match wins. Isolated here because reddit markup
// shifts; update these when extraction breaks.

var (
	// Post fields
	titleSelectors = []string{
		"div#siteTable p.title a.title",
		"p.title a.title",
		"a.title",
	}
	contentSelectors = []string{
		"div#siteTable div.usertext-body div.md",
		"div.expando div.usertext-body div.md",
		"div.usertext-body div.md",
	}
	authorSelectors = []string{
		"div#siteTable a.author",
		"p.tagline a.author",
		"a.author",
	}
	subredditSelectors = []string{
		"div#siteTable a.subreddit",
		"span.redditname a",
		"a.subreddit",
	}
	scoreSelectors = []string{
		"div#siteTable div.score.unvoted",
		"div.score.unvoted",
		"span.score",
	}
	commentCountSelectors = []string{
		"div#siteTable a.comments",
		"a.comments",
	}

	// Comment permalink pages: the focused comment is the first entry in
	// the comment area.
	commentBodySelectors = []string{
		"div.commentarea div.comment div.usertext-body div.md",
		"div.comment div.md",
	}
	commentAuthorSelectors = []string{
		"div.commentarea div.comment a.author",
	}
	commentScoreSelectors = []string{
		"div.commentarea div.comment span.score",
	}
)

// Attribute fallbacks on the post container, tried when the text selectors
// come up empty.
const (
	thingSelector     = "div.thing"
	authorAttr        = "data-author"
	subredditAttr     = "data-subreddit"
	fullnameAttr      = "data-fullname"
	timestampSelector = "time"
)
