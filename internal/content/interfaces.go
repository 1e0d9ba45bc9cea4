package content

import (
	"context"

	"blogcore/internal/models"
)

// Repository is the data access boundary for posts and comments.
// Both collections are insert-only; there is no update or delete.
//
// Ordering contract: ListPosts returns newest first (created_at DESC,
// id DESC as tiebreak); ListCommentsByPost returns insertion order
// (created_at ASC, id ASC).
type Repository interface {
	// CreatePost inserts a post and fills its store-assigned ID and
	// CreatedAt.
	CreatePost(ctx context.Context, post *models.Post) error

	// GetPostByID returns ErrPostNotFound for an absent id.
	GetPostByID(ctx context.Context, id int64) (*models.Post, error)

	// ListPosts returns every post, newest first.
	ListPosts(ctx context.Context) ([]models.Post, error)

	// PostExists reports whether a post with the given id exists.
	PostExists(ctx context.Context, id int64) (bool, error)

	// CreateComment inserts a comment and fills its ID and CreatedAt.
	// The caller has already checked the post exists.
	CreateComment(ctx context.Context, comment *models.Comment) error

	// ListCommentsByPost returns a post's comments, oldest first.
	ListCommentsByPost(ctx context.Context, postID int64) ([]models.Comment, error)
}

// TokenVerifier checks a bearer credential and yields the caller's
// user id. Validity and expiry rules live with the implementation.
type TokenVerifier interface {
	Verify(token string) (int64, error)
}
