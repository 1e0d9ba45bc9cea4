package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"blogcore/internal/content"
	"blogcore/internal/models"
)

type contentRepo struct {
	db *sqlx.DB
}

// NewContentRepository creates the Postgres-backed content repository.
func NewContentRepository(db *sqlx.DB) content.Repository {
	return &contentRepo{db: db}
}

func (r *contentRepo) CreatePost(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (author_id, title, body, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRowxContext(ctx, query, post.AuthorID, post.Title, post.Body, post.ImageURL).
		Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *contentRepo) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	err := r.db.GetContext(ctx, &post, `SELECT * FROM posts WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, content.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select post: %w", err)
	}
	return &post, nil
}

func (r *contentRepo) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	// Newest first; id breaks created_at ties so the order is stable.
	err := r.db.SelectContext(ctx, &posts, `
		SELECT * FROM posts
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("select posts: %w", err)
	}
	return posts, nil
}

func (r *contentRepo) PostExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM posts WHERE id=$1)`, id)
	if err != nil {
		return false, fmt.Errorf("post exists: %w", err)
	}
	return exists, nil
}

func (r *contentRepo) CreateComment(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (post_id, body)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.db.QueryRowxContext(ctx, query, comment.PostID, comment.Body).
		Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *contentRepo) ListCommentsByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.SelectContext(ctx, &comments, `
		SELECT * FROM comments
		WHERE post_id=$1
		ORDER BY created_at ASC, id ASC
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("select comments: %w", err)
	}
	return comments, nil
}
