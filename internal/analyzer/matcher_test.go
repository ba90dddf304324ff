package analyzer

import (
	"testing"
	"time"

	"github.com/blackwell-systems/weatherfocus/internal/tracker"
)

var base = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

func weatherAt(offset time.Duration, temp float64, conditions string) tracker.WeatherSample {
	return tracker.WeatherSample{Timestamp: base.Add(offset), Temp: temp, Conditions: conditions}
}

func TestNearest_Empty(t *testing.T) {
	_, ok := Nearest(base, []tracker.WeatherSample(nil))
	if ok {
		t.Fatal("expected no match on empty series")
	}
}

func TestNearest_PicksClosest(t *testing.T) {
	series := []tracker.WeatherSample{
		weatherAt(-2*time.Hour, 10, "Rain"),
		weatherAt(20*time.Minute, 15, "Clouds"),
		weatherAt(3*time.Hour, 20, "Clear"),
	}
	got, ok := Nearest(base, series)
	if !ok {
		t.Fatal("expected a match")
	}
	if got.Conditions != "Clouds" {
		t.Errorf("Nearest = %q, want Clouds", got.Conditions)
	}
}

func TestNearest_TieGoesToFirst(t *testing.T) {
	series := []tracker.WeatherSample{
		weatherAt(-time.Hour, 10, "Rain"),
		weatherAt(time.Hour, 20, "Clear"),
	}
	got, _ := Nearest(base, series)
	if got.Conditions != "Rain" {
		t.Errorf("tie should resolve to first record, got %q", got.Conditions)
	}
}

func TestNearest_IgnoresAbsentTimestamps(t *testing.T) {
	series := []tracker.WeatherSample{
		{Conditions: "Snow"},
		weatherAt(5*time.Hour, 20, "Clear"),
	}
	got, ok := Nearest(base, series)
	if !ok || got.Conditions != "Clear" {
		t.Errorf("Nearest = %q, %v; want Clear, true", got.Conditions, ok)
	}
}

func TestPositionalPair(t *testing.T) {
	weather := []tracker.WeatherSample{
		weatherAt(0, 5, "Clear"),
		{Temp: 7}, // no timestamp
		weatherAt(2*time.Hour, 9, "Rain"),
		weatherAt(3*time.Hour, 11, "Rain"),
	}
	productivity := []tracker.ProductivitySample{
		{Timestamp: base, ProductivityScore: 10},
		{Timestamp: base.Add(time.Hour), ProductivityScore: 20},
		{Timestamp: base.Add(2 * time.Hour), ProductivityScore: 30},
	}

	pairs := PositionalPair(weather, productivity)
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}
	if pairs[0].Right.ProductivityScore != 10 || pairs[1].Right.ProductivityScore != 30 {
		t.Errorf("unexpected pairing: %+v", pairs)
	}
	if pairs[1].Left.Conditions != "Rain" {
		t.Errorf("pair 1 weather = %q, want Rain", pairs[1].Left.Conditions)
	}
}
