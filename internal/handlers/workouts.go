package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/fitpulse/fitpulse/internal/account"
	"github.com/fitpulse/fitpulse/internal/model"
	"github.com/fitpulse/fitpulse/internal/stats"
	"github.com/fitpulse/fitpulse/internal/workout"
)

// WorkoutHandler serves the current user's workout ledger.
type WorkoutHandler struct {
	accounts *account.Service
	ledger   *workout.Ledger
	log      logrus.FieldLogger
}

func NewWorkoutHandler(accounts *account.Service, ledger *workout.Ledger, log logrus.FieldLogger) *WorkoutHandler {
	return &WorkoutHandler{accounts: accounts, ledger: ledger, log: log}
}

// currentUser resolves the session user, writing the error response itself
// when there is none.
func (h *WorkoutHandler) currentUser(w http.ResponseWriter, r *http.Request) *model.UserProfile {
	user, err := h.accounts.CurrentUser(r.Context())
	if err != nil {
		h.log.Errorf("reading current user: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to read session")
		return nil
	}
	if user == nil {
		respondError(w, http.StatusUnauthorized, "not logged in")
		return nil
	}
	return user
}

// List handles GET /api/workouts.
func (h *WorkoutHandler) List(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(w, r)
	if user == nil {
		return
	}

	workouts, err := h.ledger.ListForUser(r.Context(), user.ID)
	if err != nil {
		h.log.Errorf("listing workouts: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to list workouts")
		return
	}

	respondJSON(w, http.StatusOK, workouts, h.log)
}

// Add handles POST /api/workouts.
func (h *WorkoutHandler) Add(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(w, r)
	if user == nil {
		return
	}

	var in model.Workout
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in.UserID = user.ID
	if in.Date.IsZero() {
		in.Date = time.Now()
	}

	added, err := h.ledger.Add(r.Context(), in)
	if errors.Is(err, workout.ErrInvalid) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.log.Errorf("adding workout: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to add workout")
		return
	}

	respondJSON(w, http.StatusCreated, added, h.log)
}

// Update handles PATCH /api/workouts/{id}. Only the owner may patch a
// workout.
func (h *WorkoutHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(w, r)
	if user == nil {
		return
	}

	var patch model.WorkoutPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := mux.Vars(r)["id"]
	wo, err := h.ledger.Get(r.Context(), id)
	if errors.Is(err, workout.ErrNotFound) {
		respondError(w, http.StatusNotFound, "workout not found")
		return
	}
	if err != nil {
		h.log.Errorf("loading workout to update: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to update workout")
		return
	}
	if wo.UserID != user.ID {
		respondError(w, http.StatusForbidden, "cannot update someone else's workout")
		return
	}

	err = h.ledger.Update(r.Context(), id, patch)
	if errors.Is(err, workout.ErrNotFound) {
		respondError(w, http.StatusNotFound, "workout not found")
		return
	}
	if errors.Is(err, workout.ErrInvalid) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.log.Errorf("updating workout: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to update workout")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/workouts/{id}. Deleting twice is fine; the
// second call is a no-op. Only the owner may delete a workout.
func (h *WorkoutHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(w, r)
	if user == nil {
		return
	}

	id := mux.Vars(r)["id"]
	wo, err := h.ledger.Get(r.Context(), id)
	if errors.Is(err, workout.ErrNotFound) {
		// Already gone; keep the operation idempotent.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		h.log.Errorf("loading workout to delete: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to delete workout")
		return
	}
	if wo.UserID != user.ID {
		respondError(w, http.StatusForbidden, "cannot delete someone else's workout")
		return
	}

	if err := h.ledger.Delete(r.Context(), id); err != nil {
		h.log.Errorf("deleting workout: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to delete workout")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Stats handles GET /api/workouts/stats.
func (h *WorkoutHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(w, r)
	if user == nil {
		return
	}

	workouts, err := h.ledger.ListForUser(r.Context(), user.ID)
	if err != nil {
		h.log.Errorf("listing workouts for stats: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	resp := struct {
		Totals stats.Totals              `json:"totals"`
		Week   []stats.DayBucket         `json:"week"`
		ByType map[model.WorkoutType]int `json:"byType"`
		Streak int                       `json:"streak"`
	}{
		Totals: stats.ComputeTotals(workouts),
		Week:   stats.LastSevenDays(workouts, time.Now()),
		ByType: stats.CountByType(workouts),
		Streak: user.Streak,
	}

	respondJSON(w, http.StatusOK, resp, h.log)
}
