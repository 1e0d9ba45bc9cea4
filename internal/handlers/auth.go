package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"blogcore/internal/config"
	"blogcore/internal/models"
	"blogcore/internal/utils"
	"blogcore/internal/validation"
)

type AuthHandler struct {
	DB  *sqlx.DB
	cfg *config.Config
}

func NewAuthHandler(db *sqlx.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{DB: db, cfg: cfg}
}

// ----------- Request/Response DTOs -------------

type signUpReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenResp struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// -------------- SIGN UP ----------------------

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	in, res := validation.SignUp(validation.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if !res.Ok() {
		utils.JSONFieldErrors(w, http.StatusBadRequest, res.Errors)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	_, err = h.DB.ExecContext(r.Context(), `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
	`, in.Name, in.Email, string(hash))

	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "email already exists")
		return
	}

	utils.JSON(w, http.StatusCreated, map[string]string{
		"message": "user created",
	})
}

// -------------- LOGIN ------------------------

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if _, res := validation.Login(validation.LoginInput(req)); !res.Ok() {
		utils.JSONFieldErrors(w, http.StatusBadRequest, res.Errors)
		return
	}

	var u models.User
	err := h.DB.GetContext(r.Context(), &u, `
		SELECT id, name, email, password_hash
		FROM users
		WHERE email=$1
	`, req.Email)

	if errors.Is(err, sql.ErrNoRows) {
		utils.JSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		utils.JSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	access, expAccess, err := utils.GenerateToken(u.ID, u.Email, h.cfg.AccessSecret, h.cfg.AccessTTL)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "token error")
		return
	}

	refresh, expRefresh, err := utils.GenerateToken(u.ID, u.Email, h.cfg.RefreshSecret, h.cfg.RefreshTTL)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "token error")
		return
	}

	_, err = h.DB.ExecContext(r.Context(), `
		INSERT INTO refresh_tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)
	`, u.ID, refresh, time.Unix(expRefresh, 0))

	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error")
		return
	}

	utils.JSON(w, http.StatusOK, tokenResp{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    expAccess,
	})
}

// ---------------- REFRESH ---------------------

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	claims, err := utils.VerifyToken(req.RefreshToken, h.cfg.RefreshSecret)
	if err != nil {
		utils.JSONError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	var exists bool
	err = h.DB.GetContext(r.Context(), &exists, `
		SELECT EXISTS (
			SELECT 1 FROM refresh_tokens
			WHERE token=$1 AND user_id=$2 AND expires_at > NOW()
		)
	`, req.RefreshToken, claims.SubjectInt())

	if err != nil || !exists {
		utils.JSONError(w, http.StatusUnauthorized, "refresh token expired or invalid")
		return
	}

	tx, err := h.DB.Beginx()
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error")
		return
	}
	defer tx.Rollback()

	_, _ = tx.Exec(`DELETE FROM refresh_tokens WHERE token=$1`, req.RefreshToken)

	access, expAccess, err := utils.GenerateToken(claims.SubjectInt(), claims.Email, h.cfg.AccessSecret, h.cfg.AccessTTL)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "token error")
		return
	}

	refresh, expRefresh, err := utils.GenerateToken(claims.SubjectInt(), claims.Email, h.cfg.RefreshSecret, h.cfg.RefreshTTL)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "token error")
		return
	}

	_, err = tx.Exec(`
		INSERT INTO refresh_tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)
	`, claims.SubjectInt(), refresh, time.Unix(expRefresh, 0))

	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error")
		return
	}

	if err := tx.Commit(); err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error")
		return
	}

	utils.JSON(w, http.StatusOK, tokenResp{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    expAccess,
	})
}

// -------------- LOGOUT -----------------------

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req refreshReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	_, err := h.DB.ExecContext(r.Context(), `DELETE FROM refresh_tokens WHERE token=$1`, req.RefreshToken)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// -------------- ME (protected) ----------------

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value(utils.CtxUserIDKey).(int64)
	if !ok || uid == 0 {
		utils.JSONError(w, http.StatusUnauthorized, "not authorized")
		return
	}

	var user models.User
	err := h.DB.GetContext(r.Context(), &user, `
		SELECT id, name, email, created_at
		FROM users
		WHERE id=$1
	`, uid)

	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error")
		return
	}

	utils.JSON(w, http.StatusOK, user)
}
