package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/futurewear/storefront/internal/auth"
	"github.com/futurewear/storefront/internal/cart"
	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	Auth  *auth.Store
	Carts *cart.Store
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (h *AuthHandler) Register(r *chi.Mux) {
	r.Post("/auth/login", h.login)
	r.Post("/auth/signup", h.signup)
	r.Post("/auth/google", h.googleLogin)
	r.Post("/auth/logout", h.logout)
	r.Get("/auth/me", h.me)
	r.Patch("/auth/profile", h.updateProfile)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	u, err := h.Auth.Login(r.Context(), SessionID(r), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	var req SignupReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	u, err := h.Auth.Signup(r.Context(), SessionID(r), req.Email, req.Password, req.Name)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *AuthHandler) googleLogin(w http.ResponseWriter, r *http.Request) {
	u, err := h.Auth.GoogleLogin(r.Context(), SessionID(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// logout tears the session down: user record and cart both go.
func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	sid := SessionID(r)
	h.Auth.Logout(r.Context(), sid)
	if h.Carts != nil {
		h.Carts.Drop(r.Context(), sid)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	u, ok := h.Auth.Current(r.Context(), SessionID(r))
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not logged in"})
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *AuthHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var patch auth.ProfilePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	u, err := h.Auth.UpdateProfile(r.Context(), SessionID(r), patch)
	if errors.Is(err, auth.ErrNotLoggedIn) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, u)
}
