package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/kova98/replydraft.api/data"
)

type HistoryRepo struct {
	db    *sqlx.DB
	limit int
}

// NewHistoryRepo creates a history repo with a maximum entry count.
// Appending past the limit evicts the oldest entries (FIFO).
func NewHistoryRepo(db *sqlx.DB, limit int) *HistoryRepo {
	return &HistoryRepo{db: db, limit: limit}
}

func (r *HistoryRepo) CreateEntry(entry data.HistoryEntry) (int, error) {
	query := `
		INSERT INTO history (post_id, customization, content, word_count, read_time, generated_at)
		VALUES (:post_id, :customization, :content, :word_count, :read_time, :generated_at)
		RETURNING id`

	rows, err := r.db.NamedQuery(query, entry)
	if err != nil {
		return 0, fmt.Errorf("create history entry: %w", err)
	}
	defer rows.Close()

	var id int
	if rows.Next() {
		if err = rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("scan returned id: %w", err)
		}
	}

	if err := r.trim(); err != nil {
		return id, err
	}

	return id, nil
}

// trim drops the oldest entries beyond the configured limit.
func (r *HistoryRepo) trim() error {
	query := `
		DELETE FROM history
		WHERE id NOT IN (SELECT id FROM history ORDER BY id DESC LIMIT $1)`

	_, err := r.db.Exec(query, r.limit)
	if err != nil {
		return fmt.Errorf("trim history: %w", err)
	}

	return nil
}

func (r *HistoryRepo) GetEntries(limit, offset int) ([]data.HistoryEntry, int, error) {
	var entries []data.HistoryEntry
	query := `
		SELECT id, post_id, customization, content, word_count, read_time, generated_at
		FROM history
		ORDER BY id DESC
		LIMIT $1 OFFSET $2`

	err := r.db.Select(&entries, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("get history entries: %w", err)
	}

	var total int
	err = r.db.Get(&total, "SELECT COUNT(*) FROM history")
	if err != nil {
		return nil, 0, fmt.Errorf("count history entries: %w", err)
	}

	return entries, total, nil
}

func (r *HistoryRepo) GetEntriesByPostID(postID int) ([]data.HistoryEntry, error) {
	var entries []data.HistoryEntry
	query := `
		SELECT id, post_id, customization, content, word_count, read_time, generated_at
		FROM history
		WHERE post_id = $1
		ORDER BY id DESC`

	err := r.db.Select(&entries, query, postID)
	if err != nil {
		return nil, fmt.Errorf("get history entries by post id: %w", err)
	}

	return entries, nil
}

func (r *HistoryRepo) Clear() error {
	_, err := r.db.Exec("DELETE FROM history")
	if err != nil {
		return fmt.Errorf("clear history: %w", err)
	}

	return nil
}

// ImportEntries inserts entries keeping their original ids; entries whose
// id already exists are skipped, so existing data wins. Returns the number
// of rows actually inserted.
func (r *HistoryRepo) ImportEntries(entries []data.HistoryEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO history (id, post_id, customization, content, word_count, read_time, generated_at)
		VALUES (:id, :post_id, :customization, :content, :word_count, :read_time, :generated_at)
		ON CONFLICT (id) DO NOTHING`

	res, err := r.db.NamedExec(query, entries)
	if err != nil {
		return 0, fmt.Errorf("import history entries: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		inserted = 0
	}

	// Keep the serial in step with explicitly inserted ids. On an empty
	// table the sequence is rewound so id 1 is still handed out.
	_, err = r.db.Exec(`SELECT setval(pg_get_serial_sequence('history', 'id'), COALESCE(MAX(id), 1), MAX(id) IS NOT NULL) FROM history`)
	if err != nil {
		return int(inserted), fmt.Errorf("reset history sequence: %w", err)
	}

	if err := r.trim(); err != nil {
		return int(inserted), err
	}

	return int(inserted), nil
}
