// Package stats computes derived aggregates over a user's workouts. All
// functions are pure; nothing here touches storage.
package stats

import (
	"time"

	"github.com/fitpulse/fitpulse/internal/model"
)

// Totals summarizes a workout slice.
type Totals struct {
	Workouts    int `json:"workouts"`
	Calories    int `json:"calories"`
	Minutes     int `json:"minutes"`
	AvgDuration int `json:"avgDuration"`
}

// DayBucket holds one calendar day's summed calories and duration.
type DayBucket struct {
	Day      string `json:"day"` // short weekday name
	Calories int    `json:"calories"`
	Duration int    `json:"duration"`
}

// ComputeTotals sums calories and minutes across workouts. AvgDuration is
// rounded to the nearest minute and 0 for an empty slice.
func ComputeTotals(workouts []model.Workout) Totals {
	t := Totals{Workouts: len(workouts)}
	for _, w := range workouts {
		t.Calories += w.Calories
		t.Minutes += w.Duration
	}
	if len(workouts) > 0 {
		t.AvgDuration = (t.Minutes + len(workouts)/2) / len(workouts)
	}
	return t
}

// LastSevenDays buckets workouts into the seven calendar days ending at now,
// oldest day first.
func LastSevenDays(workouts []model.Workout, now time.Time) []DayBucket {
	buckets := make([]DayBucket, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		b := DayBucket{Day: day.Format("Mon")}
		for _, w := range workouts {
			if sameDay(w.Date, day) {
				b.Calories += w.Calories
				b.Duration += w.Duration
			}
		}
		buckets = append(buckets, b)
	}
	return buckets
}

// CountByType counts workouts per type.
func CountByType(workouts []model.Workout) map[model.WorkoutType]int {
	counts := make(map[model.WorkoutType]int)
	for _, w := range workouts {
		counts[w.Type]++
	}
	return counts
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
