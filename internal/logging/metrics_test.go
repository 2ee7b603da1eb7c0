package logging

import (
	"errors"
	"strings"
	"testing"
	"time"

	"rackiam/internal/domain"
)

func TestMetrics_RecordResource(t *testing.T) {
	m := newMetrics()
	m.RecordResource(domain.ResourceTypeRole)
	m.RecordResource(domain.ResourceTypeRole)
	m.RecordResource(domain.ResourceTypeUser)

	if got := m.ResourceCount(domain.ResourceTypeRole); got != 2 {
		t.Errorf("Expected 2 roles, got %d", got)
	}
	if m.TotalResources != 3 {
		t.Errorf("Expected 3 resources, got %d", m.TotalResources)
	}

	summary := m.Summary()
	if !strings.Contains(summary, "AWS::IAM::Role") || !strings.Contains(summary, "Rendered 3 resources") {
		t.Errorf("Unexpected summary:\n%s", summary)
	}
}

func TestMetrics_RecordOperation(t *testing.T) {
	m := newMetrics()
	m.RecordOperation("render", time.Millisecond, true, 4, nil)
	m.RecordOperation("load", time.Millisecond, false, 0, errors.New("boom"))

	if m.TotalFailures != 1 {
		t.Errorf("Expected 1 failure, got %d", m.TotalFailures)
	}
	if m.Operations["load"].Error != "boom" {
		t.Errorf("Expected error recorded, got %+v", m.Operations["load"])
	}
	if !strings.Contains(m.Summary(), "Failed operations: 1") {
		t.Errorf("Expected failures in summary:\n%s", m.Summary())
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   LogLevelDebug,
		" WARN ":  LogLevelWarn,
		"Error":   LogLevelError,
		"":        LogLevelInfo,
		"verbose": LogLevelInfo,
	}
	for in, want := range tests {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
