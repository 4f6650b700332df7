package data

import "time"

type Post struct {
	ID        int       `db:"id"`
	RedditID  string    `db:"reddit_id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	Author    string    `db:"author"`
	Subreddit string    `db:"subreddit"`
	Upvotes   int       `db:"upvotes"`
	Comments  int       `db:"comments"`
	URL       string    `db:"url"`
	PostType  string    `db:"post_type"`
	PostedAt  time.Time `db:"posted_at"`
	CreatedAt time.Time `db:"created_at"`
}

// HistoryEntry stores one generation. CustomizationRaw is the jsonb
// snapshot of the options used, kept so a reply can be regenerated later.
type HistoryEntry struct {
	ID               int       `db:"id"`
	PostID           int       `db:"post_id"`
	CustomizationRaw []byte    `db:"customization"`
	Content          string    `db:"content"`
	WordCount        int       `db:"word_count"`
	ReadTime         int       `db:"read_time"`
	GeneratedAt      time.Time `db:"generated_at"`
}

// Settings is the single-row settings record. DataRaw holds the whole
// settings document as jsonb so new fields need no migration.
type Settings struct {
	ID        int       `db:"id"`
	DataRaw   []byte    `db:"data"`
	UpdatedAt time.Time `db:"updated_at"`
}
