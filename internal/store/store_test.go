package store

import (
	"context"
	"fmt"
	"io"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/sirupsen/logrus"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	r := miniredis.RunT(t)
	log := logrus.New()
	log.SetOutput(io.Discard)
	s, err := New(context.Background(), fmt.Sprintf("redis://%s", r.Addr()), log)
	if err != nil {
		t.Fatal(err)
	}
	return s, r
}

func TestReadWrite(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	type record struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	if err := s.Write(ctx, "test-key", record{Name: "row", Count: 3}); err != nil {
		t.Fatal(err)
	}

	var got record
	if err := s.Read(ctx, "test-key", &got); err != nil {
		t.Fatal(err)
	}
	if got.Name != "row" || got.Count != 3 {
		t.Errorf("expected {row 3}, got %+v", got)
	}
}

func TestReadAbsentKeyKeepsDefault(t *testing.T) {
	s, _ := newTestStore(t)

	got := []string{"default"}
	if err := s.Read(context.Background(), "no-such-key", &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != "default" {
		t.Errorf("expected default to survive, got %v", got)
	}
}

func TestReadCorruptValueKeepsDefault(t *testing.T) {
	s, r := newTestStore(t)
	r.Set("bad-key", "{not json") //nolint:errcheck

	got := map[string]int{"default": 1}
	if err := s.Read(context.Background(), "bad-key", &got); err != nil {
		t.Fatal(err)
	}
	if got["default"] != 1 {
		t.Errorf("expected default to survive a corrupt value, got %v", got)
	}
}

func TestReadMidDecodeFailureKeepsDefault(t *testing.T) {
	s, r := newTestStore(t)

	type entry struct {
		ID       string `json:"id"`
		Calories int    `json:"calories"`
	}

	// Valid JSON whose second element fails to decode partway through. The
	// empty default must stand; no half-filled records may leak out.
	r.Set("half-key", `[{"id":"a","calories":100},{"id":"b","calories":"oops"}]`) //nolint:errcheck

	got := []entry{}
	if err := s.Read(context.Background(), "half-key", &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected the empty default to survive, got %+v", got)
	}
}

func TestWriteReplacesPriorValue(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if err := s.Write(ctx, "k", []int{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if err := s.Write(ctx, "k", []int{9}); err != nil {
		t.Fatal(err)
	}

	var got []int
	if err := s.Read(ctx, "k", &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != 9 {
		t.Errorf("expected [9], got %v", got)
	}
}
