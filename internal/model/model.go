// Package model defines the FitPulse domain records and their patch types.
package model

import "time"

// WorkoutType enumerates the workout categories a user can log.
type WorkoutType string

const (
	Strength WorkoutType = "Strength"
	Cardio   WorkoutType = "Cardio"
	Yoga     WorkoutType = "Yoga"
	HIIT     WorkoutType = "HIIT"
	Pilates  WorkoutType = "Pilates"
	Other    WorkoutType = "Other"
)

// Valid reports whether t is one of the known workout types.
func (t WorkoutType) Valid() bool {
	switch t {
	case Strength, Cardio, Yoga, HIIT, Pilates, Other:
		return true
	}
	return false
}

// UserProfile is the single live account record for a session.
type UserProfile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photoUrl"`
	Age      int    `json:"age"`
	Weight   int    `json:"weight"`
	Goals    string `json:"goals"`
	Streak   int    `json:"streak"`
}

// Workout is a single logged exercise session.
type Workout struct {
	ID       string      `json:"id"`
	UserID   string      `json:"userId"`
	Type     WorkoutType `json:"type"`
	Exercise string      `json:"exercise"`
	Duration int         `json:"duration"` // minutes
	Calories int         `json:"calories"`
	Date     time.Time   `json:"date"`
}

// SharedWorkout is a feed post: a snapshot of a workout plus a message.
// The embedded workout is a copy taken at share time, not a live reference.
type SharedWorkout struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	UserPhoto string    `json:"userPhoto"`
	Workout   Workout   `json:"workout"`
	Message   string    `json:"message"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}

// InsightCategory classifies a coaching insight.
type InsightCategory string

const (
	Encouragement InsightCategory = "encouragement"
	Warning       InsightCategory = "warning"
	Tip           InsightCategory = "tip"
)

// FitnessInsight is a short piece of AI-generated coaching text. Insights are
// recomputed on every load and never persisted.
type FitnessInsight struct {
	Title    string          `json:"title"`
	Advice   string          `json:"advice"`
	Category InsightCategory `json:"category"`
}

// ProfilePatch is a partial profile update. Nil fields are left untouched.
type ProfilePatch struct {
	Name     *string `json:"name,omitempty"`
	PhotoURL *string `json:"photoUrl,omitempty"`
	Age      *int    `json:"age,omitempty"`
	Weight   *int    `json:"weight,omitempty"`
	Goals    *string `json:"goals,omitempty"`
	Streak   *int    `json:"streak,omitempty"`
}

// Apply merges the set fields of p onto u.
func (p ProfilePatch) Apply(u *UserProfile) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.PhotoURL != nil {
		u.PhotoURL = *p.PhotoURL
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	if p.Weight != nil {
		u.Weight = *p.Weight
	}
	if p.Goals != nil {
		u.Goals = *p.Goals
	}
	if p.Streak != nil {
		u.Streak = *p.Streak
	}
}

// WorkoutPatch is a partial workout update. Nil fields are left untouched.
type WorkoutPatch struct {
	Type     *WorkoutType `json:"type,omitempty"`
	Exercise *string      `json:"exercise,omitempty"`
	Duration *int         `json:"duration,omitempty"`
	Calories *int         `json:"calories,omitempty"`
	Date     *time.Time   `json:"date,omitempty"`
}

// Apply merges the set fields of p onto w. The id and owner are never patched.
func (p WorkoutPatch) Apply(w *Workout) {
	if p.Type != nil {
		w.Type = *p.Type
	}
	if p.Exercise != nil {
		w.Exercise = *p.Exercise
	}
	if p.Duration != nil {
		w.Duration = *p.Duration
	}
	if p.Calories != nil {
		w.Calories = *p.Calories
	}
	if p.Date != nil {
		w.Date = *p.Date
	}
}
