package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"retailhub-be/internal/user"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	Svc user.Service
}

type RegisterReq struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResp struct {
	UserID    uint   `json:"userId"`
	Token     string `json:"token"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (h *AuthHandler) Register(r chi.Router) {
	r.Post("/api/auth/register", h.register)
	r.Post("/api/auth/login", h.login)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" || strings.TrimSpace(req.Username) == "" {
		writeError(w, http.StatusBadRequest, "email, username and password are required")
		return
	}

	result, err := h.Svc.Register(r.Context(), user.RegisterParams{
		Email:     req.Email,
		Password:  req.Password,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeAuthError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAuthResp(result))
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	result, err := h.Svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAuthResp(result))
}

func toAuthResp(result *user.AuthResult) AuthResp {
	return AuthResp{
		UserID:    result.UserID,
		Token:     result.Token,
		Email:     result.Email,
		Username:  result.Username,
		FirstName: result.FirstName,
		LastName:  result.LastName,
	}
}

func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrEmailExists), errors.Is(err, user.ErrUsernameExists):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, user.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, user.ErrAccountDisabled):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
