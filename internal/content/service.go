// Package content implements the blog content service: reads over
// posts and comments plus the two authenticated-adjacent writes.
// Credentials are passed explicitly; nothing in this package reads
// ambient request state.
package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"blogcore/internal/events"
	"blogcore/internal/models"
	"blogcore/internal/validation"
)

// Service coordinates validation, authorization and the repository.
type Service struct {
	repo              Repository
	verifier          TokenVerifier
	bus               events.Bus
	allowedImageHosts []string
	logger            *slog.Logger
}

func NewService(repo Repository, verifier TokenVerifier, bus events.Bus, allowedImageHosts []string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:              repo,
		verifier:          verifier,
		bus:               bus,
		allowedImageHosts: allowedImageHosts,
		logger:            logger,
	}
}

// CreatePostRequest is the payload for CreatePost. ImageURL is
// optional; when set it must point at an allow-listed host.
type CreatePostRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	ImageURL string `json:"image_url,omitempty"`
}

type CreateCommentRequest struct {
	PostID int64  `json:"post_id"`
	Body   string `json:"body"`
}

// GetPosts returns all posts, newest first. Public read.
func (s *Service) GetPosts(ctx context.Context) ([]models.Post, error) {
	posts, err := s.repo.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

// FeaturedPosts returns the first n posts of GetPosts' order, or all
// of them when fewer exist.
func (s *Service) FeaturedPosts(ctx context.Context, n int) ([]models.Post, error) {
	posts, err := s.GetPosts(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 && len(posts) > n {
		posts = posts[:n]
	}
	return posts, nil
}

// GetPostByID returns the post or ErrPostNotFound. A syntactically
// valid but absent id is not an upstream failure.
func (s *Service) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.repo.GetPostByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	return post, nil
}

// ListComments returns a post's comments oldest first. A post with no
// comments yields an empty slice; an absent post yields
// ErrPostNotFound.
func (s *Service) ListComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	exists, err := s.repo.PostExists(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("check post %d: %w", postID, err)
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	comments, err := s.repo.ListCommentsByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments for post %d: %w", postID, err)
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return comments, nil
}

// CreatePost validates the payload, verifies the caller's token and
// inserts one post. At most one record per call; a double submit
// produces two posts.
func (s *Service) CreatePost(ctx context.Context, token string, req CreatePostRequest) (int64, error) {
	if token == "" {
		return 0, ErrUnauthorized
	}
	userID, err := s.verifier.Verify(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	in, res := validation.CreatePost(validation.CreatePostInput{
		Title:    req.Title,
		Body:     req.Body,
		ImageURL: req.ImageURL,
	}, s.allowedImageHosts)
	if !res.Ok() {
		return 0, &ValidationError{Fields: res.Errors}
	}

	post := &models.Post{
		AuthorID: userID,
		Title:    in.Title,
		Body:     in.Body,
	}
	if in.ImageURL != "" {
		post.ImageURL = &in.ImageURL
	}

	if err := s.repo.CreatePost(ctx, post); err != nil {
		return 0, fmt.Errorf("create post: %w", err)
	}

	s.logger.Info("post created", "post_id", post.ID, "author_id", userID)
	return post.ID, nil
}

// CreateComment validates the body, checks the post exists and inserts
// one comment. The created comment is announced on the event bus;
// publish failures are logged, not returned, since the write already
// happened.
func (s *Service) CreateComment(ctx context.Context, req CreateCommentRequest) (int64, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return 0, &ValidationError{Fields: []validation.FieldError{
			{Field: "body", Message: "body is required"},
		}}
	}
	if len(body) > validation.MaxBodyLen {
		return 0, &ValidationError{Fields: []validation.FieldError{
			{Field: "body", Message: fmt.Sprintf("body must be at most %d characters", validation.MaxBodyLen)},
		}}
	}

	exists, err := s.repo.PostExists(ctx, req.PostID)
	if err != nil {
		return 0, fmt.Errorf("check post %d: %w", req.PostID, err)
	}
	if !exists {
		return 0, ErrPostNotFound
	}

	comment := &models.Comment{
		PostID: req.PostID,
		Body:   body,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return 0, fmt.Errorf("create comment: %w", err)
	}

	ev := events.Event{
		ID:        uuid.NewString(),
		PostID:    comment.PostID,
		CommentID: comment.ID,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}
	if err := s.bus.Publish(ctx, ev); err != nil {
		s.logger.Warn("comment event publish failed", "post_id", comment.PostID, "error", err)
	}

	return comment.ID, nil
}
