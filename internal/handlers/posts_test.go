package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogcore/internal/content"
	"blogcore/internal/events"
	"blogcore/internal/models"
)

// fakeRepo is a minimal in-memory content.Repository for façade tests.
type fakeRepo struct {
	posts    map[int64]*models.Post
	comments map[int64][]models.Comment
	nextID   int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		posts:    make(map[int64]*models.Post),
		comments: make(map[int64][]models.Comment),
	}
}

func (f *fakeRepo) CreatePost(_ context.Context, post *models.Post) error {
	f.nextID++
	post.ID = f.nextID
	post.CreatedAt = time.Now()
	cp := *post
	f.posts[post.ID] = &cp
	return nil
}

func (f *fakeRepo) GetPostByID(_ context.Context, id int64) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, content.ErrPostNotFound
	}
	return p, nil
}

func (f *fakeRepo) ListPosts(_ context.Context) ([]models.Post, error) {
	out := make([]models.Post, 0, len(f.posts))
	for id := f.nextID; id > 0; id-- {
		if p, ok := f.posts[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeRepo) PostExists(_ context.Context, id int64) (bool, error) {
	_, ok := f.posts[id]
	return ok, nil
}

func (f *fakeRepo) CreateComment(_ context.Context, comment *models.Comment) error {
	f.nextID++
	comment.ID = f.nextID
	comment.CreatedAt = time.Now()
	f.comments[comment.PostID] = append(f.comments[comment.PostID], *comment)
	return nil
}

func (f *fakeRepo) ListCommentsByPost(_ context.Context, postID int64) ([]models.Comment, error) {
	return f.comments[postID], nil
}

type okVerifier struct{}

func (okVerifier) Verify(token string) (int64, error) {
	if token != "good" {
		return 0, content.ErrUnauthorized
	}
	return 1, nil
}

func newTestRouter(repo *fakeRepo) *chi.Mux {
	svc := content.NewService(repo, okVerifier{}, events.NewMemoryBus(), []string{"images.unsplash.com"}, nil)
	posts := NewPostHandler(svc)
	comments := NewCommentHandler(svc, nil)

	r := chi.NewRouter()
	r.Get("/posts", posts.GetPosts)
	r.Get("/posts/featured", posts.GetFeatured)
	r.Get("/posts/{id}", posts.GetPostByID)
	r.Post("/posts", posts.CreatePost)
	r.Get("/posts/{id}/comments", comments.ListComments)
	r.Post("/posts/{id}/comments", comments.CreateComment)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePostCreated(t *testing.T) {
	r := newTestRouter(newFakeRepo())

	w := doJSON(t, r, "POST", "/posts", "good", `{"title":"Hello","body":"World"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/posts/1", w.Header().Get("Location"))

	var resp map[string]int64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp["id"])
}

func TestCreatePostValidationDetailExposed(t *testing.T) {
	r := newTestRouter(newFakeRepo())

	w := doJSON(t, r, "POST", "/posts", "good", `{"title":"","body":""}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error  string `json:"error"`
		Fields []struct {
			Field string `json:"field"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Fields, 2)
}

func TestCreatePostUnauthorized(t *testing.T) {
	repo := newFakeRepo()
	r := newTestRouter(repo)

	w := doJSON(t, r, "POST", "/posts", "", `{"title":"Hello","body":"World"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, "POST", "/posts", "bad", `{"title":"Hello","body":"World"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	assert.Empty(t, repo.posts)
}

func TestGetPostDetail(t *testing.T) {
	repo := newFakeRepo()
	r := newTestRouter(repo)

	require.Equal(t, http.StatusCreated, doJSON(t, r, "POST", "/posts", "good", `{"title":"Hello","body":"World"}`).Code)
	require.Equal(t, http.StatusCreated, doJSON(t, r, "POST", "/posts/1/comments", "", `{"body":"Nice!"}`).Code)

	w := doJSON(t, r, "GET", "/posts/1", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Post     models.Post      `json:"post"`
		Comments []models.Comment `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Hello", resp.Post.Title)
	require.Len(t, resp.Comments, 1)
	assert.Equal(t, "Nice!", resp.Comments[0].Body)
}

func TestGetPostDetailNotFound(t *testing.T) {
	r := newTestRouter(newFakeRepo())

	w := doJSON(t, r, "GET", "/posts/99", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, "GET", "/posts/not-a-number", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListCommentsEmptyArray(t *testing.T) {
	r := newTestRouter(newFakeRepo())

	require.Equal(t, http.StatusCreated, doJSON(t, r, "POST", "/posts", "good", `{"title":"Hello","body":"World"}`).Code)

	w := doJSON(t, r, "GET", "/posts/1/comments", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestCreateCommentMissingPost(t *testing.T) {
	r := newTestRouter(newFakeRepo())

	w := doJSON(t, r, "POST", "/posts/99/comments", "", `{"body":"hi"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFeaturedReturnsFirstThree(t *testing.T) {
	r := newTestRouter(newFakeRepo())

	for _, title := range []string{"a", "b", "c", "d", "e"} {
		require.Equal(t, http.StatusCreated,
			doJSON(t, r, "POST", "/posts", "good", `{"title":"`+title+`","body":"x"}`).Code)
	}

	w := doJSON(t, r, "GET", "/posts/featured", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var all, featured []models.Post
	require.NoError(t, json.Unmarshal(doJSON(t, r, "GET", "/posts", "", "").Body.Bytes(), &all))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &featured))

	require.Len(t, all, 5)
	require.Len(t, featured, 3)
	for i := range featured {
		assert.Equal(t, all[i].ID, featured[i].ID)
	}
}
