// Package workout implements the workout ledger: every user's logged
// sessions, held as one collection and filtered per user on read.
package workout

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fitpulse/fitpulse/internal/model"
	"github.com/fitpulse/fitpulse/internal/store"
)

var (
	// ErrNotFound is returned when no workout with the given id exists. The
	// source this ledger replaces treated a missing id on update as a silent
	// no-op; surfacing it is a deliberate improvement.
	ErrNotFound = errors.New("workout not found")

	// ErrInvalid wraps every validation failure on add and update.
	ErrInvalid = errors.New("invalid workout")
)

type Ledger struct {
	store store.Store
	log   logrus.FieldLogger
}

func NewLedger(st store.Store, log logrus.FieldLogger) *Ledger {
	return &Ledger{store: st, log: log}
}

// ListForUser returns userID's workouts, most recent first. Ties on date keep
// insertion order.
func (l *Ledger) ListForUser(ctx context.Context, userID string) ([]model.Workout, error) {
	all, err := l.readAll(ctx)
	if err != nil {
		return nil, err
	}

	workouts := make([]model.Workout, 0)
	for _, w := range all {
		if w.UserID == userID {
			workouts = append(workouts, w)
		}
	}
	sort.SliceStable(workouts, func(i, j int) bool {
		return workouts[i].Date.After(workouts[j].Date)
	})

	return workouts, nil
}

// Get returns the workout with the given id, regardless of owner.
func (l *Ledger) Get(ctx context.Context, id string) (*model.Workout, error) {
	all, err := l.readAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, ErrNotFound
}

// Add validates w, assigns it a fresh id and appends it to the ledger. The
// validation is a deliberate strengthening over the source, which accepted
// any values.
func (l *Ledger) Add(ctx context.Context, w model.Workout) (*model.Workout, error) {
	if err := validate(w); err != nil {
		return nil, err
	}

	all, err := l.readAll(ctx)
	if err != nil {
		return nil, err
	}

	w.ID = uuid.NewString()
	all = append(all, w)
	if err := l.store.Write(ctx, store.KeyWorkouts, all); err != nil {
		return nil, err
	}
	l.log.WithFields(logrus.Fields{"workout": w.ID, "user": w.UserID}).Info("added workout")

	return &w, nil
}

// Update merges patch onto the workout with the given id and persists it.
func (l *Ledger) Update(ctx context.Context, id string, patch model.WorkoutPatch) error {
	all, err := l.readAll(ctx)
	if err != nil {
		return err
	}

	for i := range all {
		if all[i].ID != id {
			continue
		}
		patch.Apply(&all[i])
		if err := validate(all[i]); err != nil {
			return err
		}
		return l.store.Write(ctx, store.KeyWorkouts, all)
	}

	return ErrNotFound
}

// Delete removes the workout with the given id. Deleting an id that does not
// exist is a no-op, so the operation is idempotent.
func (l *Ledger) Delete(ctx context.Context, id string) error {
	all, err := l.readAll(ctx)
	if err != nil {
		return err
	}

	kept := all[:0]
	for _, w := range all {
		if w.ID != id {
			kept = append(kept, w)
		}
	}
	if len(kept) == len(all) {
		return nil
	}

	return l.store.Write(ctx, store.KeyWorkouts, kept)
}

func (l *Ledger) readAll(ctx context.Context) ([]model.Workout, error) {
	all := []model.Workout{}
	if err := l.store.Read(ctx, store.KeyWorkouts, &all); err != nil {
		return nil, err
	}
	return all, nil
}

func validate(w model.Workout) error {
	switch {
	case w.UserID == "":
		return fmt.Errorf("%w: user id must not be empty", ErrInvalid)
	case !w.Type.Valid():
		return fmt.Errorf("%w: unknown type %q", ErrInvalid, w.Type)
	case w.Duration <= 0:
		return fmt.Errorf("%w: duration must be positive", ErrInvalid)
	case w.Calories <= 0:
		return fmt.Errorf("%w: calories must be positive", ErrInvalid)
	}
	return nil
}
