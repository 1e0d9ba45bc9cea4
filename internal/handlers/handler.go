package handlers

import (
	"github.com/jmoiron/sqlx"

	"blogcore/internal/config"
	"blogcore/internal/content"
	"blogcore/internal/ws"
)

type Handler struct {
	Auth     *AuthHandler
	Posts    *PostHandler
	Comments *CommentHandler
}

func NewHandler(db *sqlx.DB, svc *content.Service, hub *ws.Hub, cfg *config.Config) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(db, cfg),
		Posts:    NewPostHandler(svc),
		Comments: NewCommentHandler(svc, hub),
	}
}
