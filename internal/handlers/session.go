package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/fitpulse/fitpulse/internal/account"
	"github.com/fitpulse/fitpulse/internal/model"
)

// SessionHandler serves login, logout and profile requests.
type SessionHandler struct {
	accounts *account.Service
	log      logrus.FieldLogger
}

func NewSessionHandler(accounts *account.Service, log logrus.FieldLogger) *SessionHandler {
	return &SessionHandler{accounts: accounts, log: log}
}

// Login handles POST /api/login.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.accounts.Login(r.Context(), body.Email)
	if errors.Is(err, account.ErrEmptyEmail) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.log.Errorf("login failed: %v", err)
		respondError(w, http.StatusInternalServerError, "login failed")
		return
	}

	respondJSON(w, http.StatusOK, user, h.log)
}

// Logout handles POST /api/logout.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.Logout(r.Context()); err != nil {
		h.log.Errorf("logout failed: %v", err)
		respondError(w, http.StatusInternalServerError, "logout failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Profile handles GET /api/profile.
func (h *SessionHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.accounts.CurrentUser(r.Context())
	if err != nil {
		h.log.Errorf("reading current user: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to read profile")
		return
	}
	if user == nil {
		respondError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	respondJSON(w, http.StatusOK, user, h.log)
}

// UpdateProfile handles PATCH /api/profile.
func (h *SessionHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var patch model.ProfilePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.accounts.UpdateProfile(r.Context(), patch)
	if err != nil {
		h.log.Errorf("updating profile: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}
	if user == nil {
		respondError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	respondJSON(w, http.StatusOK, user, h.log)
}
