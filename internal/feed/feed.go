// Package feed implements the shared-workout feed: posts are immutable
// snapshots visible to all users.
package feed

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fitpulse/fitpulse/internal/model"
	"github.com/fitpulse/fitpulse/internal/store"
)

type Feed struct {
	store store.Store
	log   logrus.FieldLogger
	now   func() time.Time
}

func New(st store.Store, log logrus.FieldLogger) *Feed {
	return &Feed{store: st, log: log, now: time.Now}
}

// List returns all posts, newest first. Ties on creation time keep insertion
// order.
func (f *Feed) List(ctx context.Context) ([]model.SharedWorkout, error) {
	posts := []model.SharedWorkout{}
	if err := f.store.Read(ctx, store.KeyFeed, &posts); err != nil {
		return nil, err
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

// Share appends a new post embedding a copy of workout. The user's name and
// photo are denormalized into the post at share time; later profile or
// workout edits do not propagate to it.
func (f *Feed) Share(ctx context.Context, userID, userName, userPhoto string, workout model.Workout, message string) (*model.SharedWorkout, error) {
	posts := []model.SharedWorkout{}
	if err := f.store.Read(ctx, store.KeyFeed, &posts); err != nil {
		return nil, err
	}

	post := model.SharedWorkout{
		ID:        uuid.NewString(),
		UserID:    userID,
		UserName:  userName,
		UserPhoto: userPhoto,
		Workout:   workout,
		Message:   message,
		Likes:     0,
		CreatedAt: f.now(),
	}
	posts = append(posts, post)
	if err := f.store.Write(ctx, store.KeyFeed, posts); err != nil {
		return nil, err
	}
	f.log.WithFields(logrus.Fields{"post": post.ID, "user": userID}).Info("shared workout")

	return &post, nil
}
