// Package insight turns a user's recent workouts and goal into short
// coaching texts via the Gemini API. Every failure path degrades to a static
// fallback; callers never see an error.
package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fitpulse/fitpulse/internal/client"
	"github.com/fitpulse/fitpulse/internal/model"
)

var BaseURL = "https://generativelanguage.googleapis.com"

// Fallback is returned whenever the advisor call fails for any reason.
var Fallback = model.FitnessInsight{
	Title:    "Keep Moving!",
	Advice:   "Every step counts. Keep logging your workouts to get personalized AI insights.",
	Category: model.Encouragement,
}

const (
	maxSummaryWorkouts = 5
	wantInsights       = 3
	defaultTimeout     = 10 * time.Second
)

type Advisor struct {
	client  *client.Client
	apiKey  string
	model   string
	timeout time.Duration
	log     logrus.FieldLogger
}

func NewAdvisor(c *client.Client, apiKey, modelName string, log logrus.FieldLogger) *Advisor {
	return &Advisor{client: c, apiKey: apiKey, model: modelName, timeout: defaultTimeout, log: log}
}

// Request/response shapes for the generateContent endpoint; only the fields
// we touch.
type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Insights returns exactly three coaching insights for the given workouts and
// goal, or the single-element fallback when anything goes wrong. The call is
// bounded by the advisor's timeout.
func (a *Advisor) Insights(ctx context.Context, workouts []model.Workout, goals string) []model.FitnessInsight {
	if a.apiKey == "" {
		a.log.Warn("no Gemini API key configured, serving fallback insight")
		return []model.FitnessInsight{Fallback}
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	body := generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt(workouts, goals)}}}},
		GenerationConfig: generationConfig{ResponseMimeType: "application/json"},
	}

	path := fmt.Sprintf("/v1beta/models/%s:generateContent?key=%s", a.model, a.apiKey)
	req, err := a.client.NewRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		a.log.Warnf("building insight request: %v", err)
		return []model.FitnessInsight{Fallback}
	}

	var resp generateResponse
	if _, err := a.client.Do(req, &resp); err != nil {
		a.log.Warnf("insight call failed: %v", err)
		return []model.FitnessInsight{Fallback}
	}

	insights, err := parseInsights(resp)
	if err != nil {
		a.log.Warnf("unusable insight response: %v", err)
		return []model.FitnessInsight{Fallback}
	}

	return insights
}

// prompt builds a compact summary of the most recent workouts plus the goal.
// The workouts are expected newest-first, as the ledger returns them.
func prompt(workouts []model.Workout, goals string) string {
	if len(workouts) > maxSummaryWorkouts {
		workouts = workouts[:maxSummaryWorkouts]
	}
	lines := make([]string, 0, len(workouts))
	for _, w := range workouts {
		lines = append(lines, fmt.Sprintf("%s: %s (%dm, %d cal)", w.Date.Format("2006-01-02"), w.Exercise, w.Duration, w.Calories))
	}

	return fmt.Sprintf(`Based on the following workout history: [%s] and the user's goals: %q, generate 3 personalized fitness insights. `+
		`One should be an encouraging milestone or stat, one a technical tip, and one a motivational push. `+
		`Return a JSON array of objects with keys: title, advice, category (one of "encouragement", "warning", "tip").`,
		strings.Join(lines, ", "), goals)
}

func parseInsights(resp generateResponse) ([]model.FitnessInsight, error) {
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("response contains no candidates")
	}

	var insights []model.FitnessInsight
	text := resp.Candidates[0].Content.Parts[0].Text
	if err := json.Unmarshal([]byte(text), &insights); err != nil {
		return nil, fmt.Errorf("unmarshaling insight JSON: %w", err)
	}

	if len(insights) != wantInsights {
		return nil, fmt.Errorf("expected %d insights, got %d", wantInsights, len(insights))
	}
	for _, in := range insights {
		if in.Title == "" || in.Advice == "" {
			return nil, fmt.Errorf("insight with empty title or advice")
		}
		switch in.Category {
		case model.Encouragement, model.Warning, model.Tip:
		default:
			return nil, fmt.Errorf("unknown insight category %q", in.Category)
		}
	}

	return insights, nil
}
