package insight

import (
	"context"
	"io"
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/sirupsen/logrus"

	"github.com/fitpulse/fitpulse/internal/client"
	"github.com/fitpulse/fitpulse/internal/model"
)

func newTestAdvisor(apiKey string) *Advisor {
	u, _ := url.Parse(BaseURL)
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewAdvisor(client.NewClient(u, nil), apiKey, "gemini-1.5-flash", log)
}

func testWorkouts() []model.Workout {
	date, _ := time.Parse("2006-01-02", "2024-03-01")
	return []model.Workout{
		{UserID: "u1", Type: model.Cardio, Exercise: "Running", Duration: 30, Calories: 300, Date: date},
	}
}

// The generateContent endpoint wraps its JSON payload in candidate text.
const goodResponse = `{"candidates":[{"content":{"parts":[{"text":
"[{\"title\":\"Solid week\",\"advice\":\"Three sessions logged.\",\"category\":\"encouragement\"},
{\"title\":\"Pace yourself\",\"advice\":\"Keep runs conversational.\",\"category\":\"tip\"},
{\"title\":\"Push on\",\"advice\":\"One more session this week.\",\"category\":\"warning\"}]"
}]}}]}`

func TestInsights(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", `=~^https://generativelanguage\.googleapis\.com/v1beta/models/.+:generateContent`,
		httpmock.NewStringResponder(200, strings.ReplaceAll(goodResponse, "\n", "")))

	a := newTestAdvisor("test-key")
	got := a.Insights(context.Background(), testWorkouts(), "run a 5k")

	if len(got) != 3 {
		t.Fatalf("expected 3 insights, got %d", len(got))
	}
	if got[0].Title != "Solid week" || got[0].Category != model.Encouragement {
		t.Errorf("unexpected first insight: %+v", got[0])
	}
	if got[1].Category != model.Tip || got[2].Category != model.Warning {
		t.Errorf("unexpected categories: %+v", got)
	}
}

func TestInsightsFallback(t *testing.T) {
	responders := []struct {
		name string
		resp httpmock.Responder
	}{
		{"server error", httpmock.NewStringResponder(500, "")},
		{"empty candidates", httpmock.NewStringResponder(200, `{"candidates":[]}`)},
		{"malformed body", httpmock.NewStringResponder(200, `{oops`)},
		{"candidate text is not JSON", httpmock.NewStringResponder(200, `{"candidates":[{"content":{"parts":[{"text":"not json"}]}}]}`)},
		{"wrong insight count", httpmock.NewStringResponder(200, `{"candidates":[{"content":{"parts":[{"text":"[{\"title\":\"t\",\"advice\":\"a\",\"category\":\"tip\"}]"}]}}]}`)},
		{"unknown category", httpmock.NewStringResponder(200, `{"candidates":[{"content":{"parts":[{"text":"[{\"title\":\"t\",\"advice\":\"a\",\"category\":\"nope\"},{\"title\":\"t\",\"advice\":\"a\",\"category\":\"tip\"},{\"title\":\"t\",\"advice\":\"a\",\"category\":\"tip\"}]"}]}}]}`)},
	}

	want := []model.FitnessInsight{Fallback}

	for _, tc := range responders {
		t.Run(tc.name, func(t *testing.T) {
			httpmock.Activate()
			defer httpmock.DeactivateAndReset()
			httpmock.RegisterResponder("POST", `=~^https://generativelanguage\.googleapis\.com/.*`, tc.resp)

			a := newTestAdvisor("test-key")
			got := a.Insights(context.Background(), testWorkouts(), "run a 5k")
			if !reflect.DeepEqual(got, want) {
				t.Errorf("expected the fallback insight, got %+v", got)
			}
		})
	}
}

func TestInsightsNoAPIKey(t *testing.T) {
	a := newTestAdvisor("")
	got := a.Insights(context.Background(), testWorkouts(), "run a 5k")
	if !reflect.DeepEqual(got, []model.FitnessInsight{Fallback}) {
		t.Errorf("expected the fallback insight, got %+v", got)
	}
}

func TestPromptSummarizesAtMostFiveWorkouts(t *testing.T) {
	var workouts []model.Workout
	date, _ := time.Parse("2006-01-02", "2024-03-01")
	for i := 0; i < 8; i++ {
		workouts = append(workouts, model.Workout{
			Exercise: "Running", Duration: 30, Calories: 300, Date: date.AddDate(0, 0, -i),
		})
	}

	p := prompt(workouts, "run a 5k")
	if got := strings.Count(p, "Running"); got != 5 {
		t.Errorf("expected 5 workouts in the summary, got %d", got)
	}
	if !strings.Contains(p, `"run a 5k"`) {
		t.Errorf("expected the goal in the prompt, got %s", p)
	}
	if !strings.Contains(p, "2024-03-01: Running (30m, 300 cal)") {
		t.Errorf("unexpected summary format: %s", p)
	}
}
