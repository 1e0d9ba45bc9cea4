package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"blogcore/internal/content"
	"blogcore/internal/models"
	"blogcore/internal/utils"
)

// featuredCount is how many posts the home view shows.
const featuredCount = 3

type PostHandler struct {
	svc *content.Service
}

func NewPostHandler(svc *content.Service) *PostHandler {
	return &PostHandler{svc: svc}
}

// ---------------------- CREATE ----------------------

// CreatePost is an explicit write: the bearer token travels with the
// call into the service, and the response is the new id plus a
// Location header. Navigation is the client's decision.
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req content.CreatePostRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	id, err := h.svc.CreatePost(r.Context(), utils.BearerToken(r), req)
	if err != nil {
		writeContentError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/posts/%d", id))
	utils.JSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// ---------------------- LIST ----------------------

func (h *PostHandler) GetPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.GetPosts(r.Context())
	if err != nil {
		writeContentError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, posts)
}

// GetFeatured returns the first three posts of the listing order, or
// all of them when fewer exist.
func (h *PostHandler) GetFeatured(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.FeaturedPosts(r.Context(), featuredCount)
	if err != nil {
		writeContentError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, posts)
}

// ---------------------- DETAIL ----------------------

type postDetailResponse struct {
	Post     *models.Post     `json:"post"`
	Comments []models.Comment `json:"comments"`
}

// GetPostByID fetches the post and its comments concurrently and joins
// before responding. If either leg fails the whole request fails; an
// absent post is a 404, never a partial result.
func (h *PostHandler) GetPostByID(w http.ResponseWriter, r *http.Request) {
	id, err := postIDParam(r)
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	var (
		post     *models.Post
		comments []models.Comment
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		post, err = h.svc.GetPostByID(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = h.svc.ListComments(ctx, id)
		return err
	})

	if err := g.Wait(); err != nil {
		writeContentError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, postDetailResponse{Post: post, Comments: comments})
}

func postIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
