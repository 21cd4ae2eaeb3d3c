package feed

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/sirupsen/logrus"

	"github.com/fitpulse/fitpulse/internal/model"
	"github.com/fitpulse/fitpulse/internal/store"
	"github.com/fitpulse/fitpulse/internal/workout"
)

func newTestFeed(t *testing.T) (*Feed, *workout.Ledger) {
	t.Helper()
	r := miniredis.RunT(t)
	log := logrus.New()
	log.SetOutput(io.Discard)
	st, err := store.New(context.Background(), fmt.Sprintf("redis://%s", r.Addr()), log)
	if err != nil {
		t.Fatal(err)
	}
	return New(st, log), workout.NewLedger(st, log)
}

func testWorkout(userID string) model.Workout {
	return model.Workout{
		UserID:   userID,
		Type:     model.Strength,
		Exercise: "Deadlift",
		Duration: 45,
		Calories: 400,
		Date:     time.Now(),
	}
}

func TestShareAndList(t *testing.T) {
	f, _ := newTestFeed(t)
	ctx := context.Background()

	post, err := f.Share(ctx, "u1", "jane", "https://example.com/p.jpg", testWorkout("u1"), "new PB!")
	if err != nil {
		t.Fatal(err)
	}
	if post.ID == "" {
		t.Error("expected a non-empty id")
	}
	if post.Likes != 0 {
		t.Errorf("expected likes to start at 0, got %d", post.Likes)
	}

	posts, err := f.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) != 1 || posts[0].ID != post.ID {
		t.Errorf("expected the shared post, got %v", posts)
	}
	if posts[0].Message != "new PB!" {
		t.Errorf("expected the message to survive, got %q", posts[0].Message)
	}
}

func TestListNewestFirst(t *testing.T) {
	f, _ := newTestFeed(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	times := []time.Time{base, base.Add(2 * time.Hour), base.Add(time.Hour)}
	var ids []string
	for _, at := range times {
		f.now = func() time.Time { return at }
		post, err := f.Share(ctx, "u1", "jane", "", testWorkout("u1"), "")
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, post.ID)
	}

	posts, err := f.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{ids[1], ids[2], ids[0]}
	for i, p := range posts {
		if p.ID != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], p.ID)
		}
	}
}

func TestEmbeddedWorkoutIsASnapshot(t *testing.T) {
	f, ledger := newTestFeed(t)
	ctx := context.Background()

	added, err := ledger.Add(ctx, testWorkout("u1"))
	if err != nil {
		t.Fatal(err)
	}
	post, err := f.Share(ctx, "u1", "jane", "", *added, "look at this")
	if err != nil {
		t.Fatal(err)
	}

	// Updating the original workout must not touch the feed post's copy.
	calories := 999
	if err := ledger.Update(ctx, added.ID, model.WorkoutPatch{Calories: &calories}); err != nil {
		t.Fatal(err)
	}

	posts, err := f.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if posts[0].ID != post.ID || posts[0].Workout.Calories != 400 {
		t.Errorf("expected the embedded snapshot untouched, got %+v", posts[0].Workout)
	}
}
