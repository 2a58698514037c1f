package version

import (
	"strings"
	"testing"
)

func TestCalculateBuildID(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		expected  int
		wantError bool
	}{
		{name: "epoch date", date: "2026-03-01", expected: 0},
		{name: "next day after epoch", date: "2026-03-02", expected: 1},
		{name: "one year later", date: "2027-03-01", expected: 365},
		{name: "two leap days included", date: "2032-03-01", expected: 2192},
		{name: "invalid format", date: "invalid", wantError: true},
		{name: "empty date", date: "", wantError: true},
		{name: "before epoch", date: "2026-02-28", wantError: true},
	}

	old := BuildDate
	defer func() { BuildDate = old }()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			BuildDate = tt.date

			got, err := CalculateBuildID()

			if tt.wantError {
				if err == nil {
					t.Fatalf("expected error, got nil (id=%d)", got)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.expected {
				t.Errorf("CalculateBuildID() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestString(t *testing.T) {
	oldDate, oldCommit := BuildDate, BuildCommit
	defer func() { BuildDate, BuildCommit = oldDate, oldCommit }()

	BuildDate, BuildCommit = "2026-03-11", "abc123"
	if s := String(); !strings.HasPrefix(s, "Build 10 (2026-03-11) commit[abc123]") {
		t.Errorf("String() = %q", s)
	}

	BuildDate = ""
	if s := String(); !strings.HasPrefix(s, "Build unknown") {
		t.Errorf("String() = %q", s)
	}
}
