package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want logrus.Level
	}{
		{"default", "", logrus.InfoLevel},
		{"debug", "debug", logrus.DebugLevel},
		{"warn", "warn", logrus.WarnLevel},
		{"garbage falls back to info", "loud", logrus.InfoLevel},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tc.env)
			if got := level(); got != tc.want {
				t.Errorf("expected level %v, got %v", tc.want, got)
			}
		})
	}
}
