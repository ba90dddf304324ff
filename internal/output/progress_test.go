package output

import (
	"strings"
	"testing"
)

func TestScoreBar(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tests := []struct {
		score  float64
		filled int
		label  string
	}{
		{80, 8, "80/100"},
		{0, 0, "0/100"},
		{150, 10, "150/100"},
		{-5, 0, "-5/100"},
	}
	for _, tc := range tests {
		got := ScoreBar(tc.score, 10)
		if n := strings.Count(got, "█"); n != tc.filled {
			t.Errorf("ScoreBar(%v) filled = %d, want %d", tc.score, n, tc.filled)
		}
		if !strings.HasSuffix(got, tc.label) {
			t.Errorf("ScoreBar(%v) = %q, want suffix %q", tc.score, got, tc.label)
		}
	}
}

func TestCountdown(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	got := Countdown("work", 600, 1500, 10)
	if !strings.Contains(got, "10:00 left") {
		t.Errorf("Countdown() = %q, want 10:00 left", got)
	}
	if n := strings.Count(got, "█"); n != 6 {
		t.Errorf("Countdown() filled = %d, want 6", n)
	}

	if got := Countdown("short-break", 0, 0, 4); !strings.Contains(got, "░░░░") {
		t.Errorf("Countdown() with zero total = %q", got)
	}
}

func TestBullets(t *testing.T) {
	got := Bullets([]string{"one", "two"})
	want := "  • one\n  • two\n"
	if got != want {
		t.Errorf("Bullets() = %q, want %q", got, want)
	}
	if Bullets(nil) != "" {
		t.Error("Bullets(nil) should be empty")
	}
}

func TestIsTerminal_NonTerminals(t *testing.T) {
	if IsTerminal(nil) {
		t.Error("IsTerminal(nil) = true")
	}
	var sb strings.Builder
	if IsTerminalWriter(&sb) {
		t.Error("IsTerminalWriter(strings.Builder) = true")
	}
}
