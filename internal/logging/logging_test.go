package logging

import (
	"testing"

	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level, format string
		wantErr       bool
	}{
		{"info", "json", false},
		{"debug", "console", false},
		{"warn", "", false},
		{"loud", "json", true},
		{"info", "xml", true},
	}

	for _, tt := range tests {
		logger, err := New(tt.level, tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("New(%q, %q): expected error %v, got %v", tt.level, tt.format, tt.wantErr, err)
			continue
		}
		if err == nil && logger == nil {
			t.Errorf("New(%q, %q): expected logger", tt.level, tt.format)
		}
	}
}

func TestNew_Level(t *testing.T) {
	logger, err := New("warn", "json")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if logger.Core().Enabled(zap.InfoLevel) {
		t.Error("Expected info to be disabled at warn level")
	}
	if !logger.Core().Enabled(zap.ErrorLevel) {
		t.Error("Expected error to be enabled at warn level")
	}
}
