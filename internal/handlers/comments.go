package handlers

import (
	"net/http"

	"blogcore/internal/content"
	"blogcore/internal/utils"
	"blogcore/internal/ws"
)

type CommentHandler struct {
	svc *content.Service
	hub *ws.Hub
}

func NewCommentHandler(svc *content.Service, hub *ws.Hub) *CommentHandler {
	return &CommentHandler{svc: svc, hub: hub}
}

func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	id, err := postIDParam(r)
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	comments, err := h.svc.ListComments(r.Context(), id)
	if err != nil {
		writeContentError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, comments)
}

func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	id, err := postIDParam(r)
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	var body struct {
		Body string `json:"body"`
	}
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		return
	}

	commentID, err := h.svc.CreateComment(r.Context(), content.CreateCommentRequest{
		PostID: id,
		Body:   body.Body,
	})
	if err != nil {
		writeContentError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, map[string]int64{"id": commentID})
}

// Live upgrades to a websocket and streams new comments for the post.
// The post must exist before the subscription starts.
func (h *CommentHandler) Live(w http.ResponseWriter, r *http.Request) {
	id, err := postIDParam(r)
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	if _, err := h.svc.GetPostByID(r.Context(), id); err != nil {
		writeContentError(w, err)
		return
	}

	h.hub.ServeWS(w, r, id)
}
