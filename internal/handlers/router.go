package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/fitpulse/fitpulse/internal/account"
	"github.com/fitpulse/fitpulse/internal/feed"
	"github.com/fitpulse/fitpulse/internal/insight"
	"github.com/fitpulse/fitpulse/internal/middleware"
	"github.com/fitpulse/fitpulse/internal/workout"
)

// NewRouter wires all handlers into the API routes.
func NewRouter(accounts *account.Service, ledger *workout.Ledger, f *feed.Feed, advisor *insight.Advisor, log logrus.FieldLogger) *mux.Router {
	session := NewSessionHandler(accounts, log)
	workouts := NewWorkoutHandler(accounts, ledger, log)
	social := NewSocialHandler(accounts, ledger, f, log)
	insights := NewInsightHandler(accounts, ledger, advisor, log)

	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/login", session.Login).Methods(http.MethodPost)
	api.HandleFunc("/logout", session.Logout).Methods(http.MethodPost)
	api.HandleFunc("/profile", session.Profile).Methods(http.MethodGet)
	api.HandleFunc("/profile", session.UpdateProfile).Methods(http.MethodPatch)

	api.HandleFunc("/workouts", workouts.List).Methods(http.MethodGet)
	api.HandleFunc("/workouts", workouts.Add).Methods(http.MethodPost)
	api.HandleFunc("/workouts/stats", workouts.Stats).Methods(http.MethodGet)
	api.HandleFunc("/workouts/{id}", workouts.Update).Methods(http.MethodPatch)
	api.HandleFunc("/workouts/{id}", workouts.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/feed", social.Feed).Methods(http.MethodGet)
	api.HandleFunc("/feed", social.Share).Methods(http.MethodPost)

	api.HandleFunc("/insights", insights.Insights).Methods(http.MethodGet)

	return r
}
