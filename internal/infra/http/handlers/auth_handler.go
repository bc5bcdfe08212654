package handlers

import (
	"context"
	"net/http"
)

type AdminAuthenticator interface {
	HasAdmin(ctx context.Context) (bool, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type AuthHandler struct {
	UC AdminAuthenticator
}

func NewAuthHandler(uc AdminAuthenticator) *AuthHandler {
	return &AuthHandler{UC: uc}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	has, err := h.UC.HasAdmin(r.Context())
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"hasAdmin": has})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}

	token, err := h.UC.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Success: true, Token: token})
}
