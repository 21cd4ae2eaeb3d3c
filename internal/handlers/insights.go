package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/fitpulse/fitpulse/internal/account"
	"github.com/fitpulse/fitpulse/internal/insight"
	"github.com/fitpulse/fitpulse/internal/workout"
)

// InsightHandler serves AI coaching insights for the current user.
type InsightHandler struct {
	accounts *account.Service
	ledger   *workout.Ledger
	advisor  *insight.Advisor
	log      logrus.FieldLogger
}

func NewInsightHandler(accounts *account.Service, ledger *workout.Ledger, advisor *insight.Advisor, log logrus.FieldLogger) *InsightHandler {
	return &InsightHandler{accounts: accounts, ledger: ledger, advisor: advisor, log: log}
}

// Insights handles GET /api/insights. The advisor never fails: the worst
// case is its static fallback insight.
func (h *InsightHandler) Insights(w http.ResponseWriter, r *http.Request) {
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

	workouts, err := h.ledger.ListForUser(r.Context(), user.ID)
	if err != nil {
		h.log.Errorf("listing workouts for insights: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to list workouts")
		return
	}

	respondJSON(w, http.StatusOK, h.advisor.Insights(r.Context(), workouts, user.Goals), h.log)
}
