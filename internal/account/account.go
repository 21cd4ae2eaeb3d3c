// Package account manages the current-user session slot and the saved
// profiles keyed by email.
package account

import (
	"context"
	"crypto/sha1" //#nosec:G505 // Not used for security, only for deterministic ids.
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/fitpulse/fitpulse/internal/model"
	"github.com/fitpulse/fitpulse/internal/store"
)

// ErrEmptyEmail is returned by Login when no email is given.
var ErrEmptyEmail = errors.New("email must not be empty")

// Defaults applied to a profile created on first login. These mirror the demo
// nature of the login flow: there is no credential check of any kind.
const (
	defaultAge    = 28
	defaultWeight = 75
	defaultGoals  = "Lose 5kg and run a 5k"
	defaultStreak = 4
)

type Service struct {
	store store.Store
	log   logrus.FieldLogger
}

func NewService(st store.Store, log logrus.FieldLogger) *Service {
	return &Service{store: st, log: log}
}

// CurrentUser returns the logged-in profile, or nil when nobody is logged in.
func (s *Service) CurrentUser(ctx context.Context) (*model.UserProfile, error) {
	var user *model.UserProfile
	if err := s.store.Read(ctx, store.KeyCurrentUser, &user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login makes email's profile the current user, unconditionally replacing any
// existing session. A previously saved profile for that email is recalled;
// otherwise a fresh profile with default stats is created. There is no
// password: any non-empty email logs in.
func (s *Service) Login(ctx context.Context, email string) (*model.UserProfile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrEmptyEmail
	}

	profiles := map[string]model.UserProfile{}
	if err := s.store.Read(ctx, store.KeyProfiles, &profiles); err != nil {
		return nil, err
	}

	user, ok := profiles[email]
	if !ok {
		user = model.UserProfile{
			ID:       profileID(email),
			Name:     strings.SplitN(email, "@", 2)[0],
			Email:    email,
			PhotoURL: fmt.Sprintf("https://picsum.photos/seed/%s/200", email),
			Age:      defaultAge,
			Weight:   defaultWeight,
			Goals:    defaultGoals,
			Streak:   defaultStreak,
		}
		profiles[email] = user
		if err := s.store.Write(ctx, store.KeyProfiles, profiles); err != nil {
			return nil, err
		}
		s.log.WithField("user", user.ID).Info("created new profile")
	}

	if err := s.store.Write(ctx, store.KeyCurrentUser, &user); err != nil {
		return nil, err
	}
	s.log.WithField("user", user.ID).Info("logged in")

	return &user, nil
}

// Logout clears the current-user slot. Workouts and feed posts are left in
// their own stores and become reachable again on the next login.
func (s *Service) Logout(ctx context.Context) error {
	return s.store.Write(ctx, store.KeyCurrentUser, nil)
}

// UpdateProfile merges patch onto the current user and persists the result,
// both in the session slot and in the saved profiles. Returns nil, nil when
// nobody is logged in.
func (s *Service) UpdateProfile(ctx context.Context, patch model.ProfilePatch) (*model.UserProfile, error) {
	user, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	patch.Apply(user)

	profiles := map[string]model.UserProfile{}
	if err := s.store.Read(ctx, store.KeyProfiles, &profiles); err != nil {
		return nil, err
	}
	profiles[user.Email] = *user
	if err := s.store.Write(ctx, store.KeyProfiles, profiles); err != nil {
		return nil, err
	}

	if err := s.store.Write(ctx, store.KeyCurrentUser, user); err != nil {
		return nil, err
	}

	return user, nil
}

// profileID derives a stable id from the email so the same address maps to
// the same workouts across logout/login cycles.
func profileID(email string) string {
	sum := sha1.Sum([]byte(email)) //#nosec:G401
	return fmt.Sprintf("user_%x", sum[:8])
}
