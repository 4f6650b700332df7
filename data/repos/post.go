package repos

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/kova98/replydraft.api/data"
)

type PostRepo struct {
	db *sqlx.DB
}

func NewPostRepo(db *sqlx.DB) *PostRepo {
	return &PostRepo{db}
}

// CreatePost inserts a post, or returns the existing id when the url was
// seen before. Posts are immutable once created, so a conflict does not
// overwrite anything.
func (r *PostRepo) CreatePost(post data.Post) (int, error) {
	query := `
		INSERT INTO posts (reddit_id, title, content, author, subreddit, upvotes, comments, url, post_type, posted_at)
		VALUES (:reddit_id, :title, :content, :author, :subreddit, :upvotes, :comments, :url, :post_type, :posted_at)
		ON CONFLICT (url) DO NOTHING
		RETURNING id`

	rows, err := r.db.NamedQuery(query, post)
	if err != nil {
		return 0, fmt.Errorf("create post: %w", err)
	}
	defer rows.Close()

	var id int
	if rows.Next() {
		err = rows.Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("scan returned id: %w", err)
		}
		return id, nil
	}

	query = "SELECT id FROM posts WHERE url = $1"
	err = r.db.Get(&id, query, post.URL)
	if err != nil {
		return 0, fmt.Errorf("get existing post id: %w", err)
	}

	return id, nil
}

func (r *PostRepo) GetPostByID(id int) (*data.Post, error) {
	var post data.Post
	query := "SELECT * FROM posts WHERE id = $1"

	err := r.db.Get(&post, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get post by id: %w", err)
	}

	return &post, nil
}

func (r *PostRepo) GetPostsByIDs(ids []int) ([]data.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var posts []data.Post
	query, args, err := sqlx.In("SELECT * FROM posts WHERE id IN (?)", ids)
	if err != nil {
		return nil, fmt.Errorf("build get posts by ids: %w", err)
	}
	query = r.db.Rebind(query)

	err = r.db.Select(&posts, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get posts by ids: %w", err)
	}

	return posts, nil
}

func (r *PostRepo) GetPostByURL(url string) (*data.Post, error) {
	var post data.Post
	query := "SELECT * FROM posts WHERE url = $1"

	err := r.db.Get(&post, query, url)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get post by url: %w", err)
	}

	return &post, nil
}
