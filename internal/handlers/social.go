package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/fitpulse/fitpulse/internal/account"
	"github.com/fitpulse/fitpulse/internal/feed"
	"github.com/fitpulse/fitpulse/internal/workout"
)

// SocialHandler serves the shared-workout feed.
type SocialHandler struct {
	accounts *account.Service
	ledger   *workout.Ledger
	feed     *feed.Feed
	log      logrus.FieldLogger
}

func NewSocialHandler(accounts *account.Service, ledger *workout.Ledger, f *feed.Feed, log logrus.FieldLogger) *SocialHandler {
	return &SocialHandler{accounts: accounts, ledger: ledger, feed: f, log: log}
}

// Feed handles GET /api/feed. The feed is global: no login required to read.
func (h *SocialHandler) Feed(w http.ResponseWriter, r *http.Request) {
	posts, err := h.feed.List(r.Context())
	if err != nil {
		h.log.Errorf("listing feed: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to list feed")
		return
	}

	respondJSON(w, http.StatusOK, posts, h.log)
}

// Share handles POST /api/feed. The current user's name and photo are copied
// into the post along with a snapshot of the workout.
func (h *SocialHandler) Share(w http.ResponseWriter, r *http.Request) {
	user, err := h.accounts.CurrentUser(r.Context())
	if err != nil {
		h.log.Errorf("reading current user: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to read session")
		return
	}
	if user == nil {
		respondError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	var body struct {
		WorkoutID string `json:"workoutId"`
		Message   string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	wo, err := h.ledger.Get(r.Context(), body.WorkoutID)
	if errors.Is(err, workout.ErrNotFound) {
		respondError(w, http.StatusNotFound, "workout not found")
		return
	}
	if err != nil {
		h.log.Errorf("loading workout to share: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to share workout")
		return
	}
	if wo.UserID != user.ID {
		respondError(w, http.StatusForbidden, "cannot share someone else's workout")
		return
	}

	post, err := h.feed.Share(r.Context(), user.ID, user.Name, user.PhotoURL, *wo, body.Message)
	if err != nil {
		h.log.Errorf("sharing workout: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to share workout")
		return
	}

	respondJSON(w, http.StatusCreated, post, h.log)
}
