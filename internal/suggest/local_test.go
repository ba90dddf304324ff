package suggest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/blackwell-systems/weatherfocus/internal/tracker"
)

func TestLocal_AllRulesFire(t *testing.T) {
	sc := Context{
		Weather:      &WeatherSnapshot{Conditions: "Clear", Temp: 30},
		Productivity: &ProductivitySnapshot{Score: 40, FocusedTime: 200},
	}
	got := Local(sc)
	assert.Equal(t, SourceLocal, got.Source)
	assert.Empty(t, got.Provider)
	assert.Equal(t, []string{
		"It's warm - stay hydrated and take cooling breaks",
		"Try the Pomodoro technique (25min work, 5min break)",
		"You've been focused for 3+ hours - consider a longer break",
	}, got.Suggestions)
}

func TestLocal_Defaults(t *testing.T) {
	sc := Context{
		Weather:      &WeatherSnapshot{Conditions: "Clouds", Temp: 25},
		Productivity: &ProductivitySnapshot{Score: 60, FocusedTime: 180},
	}
	got := Local(sc)
	assert.Equal(t, DefaultSuggestions, got.Suggestions)
}

func TestLocal_NilSnapshots(t *testing.T) {
	got := Local(Context{})
	assert.Equal(t, SourceLocal, got.Source)
	assert.Equal(t, DefaultSuggestions, got.Suggestions)
}

func TestLocal_DoesNotAliasDefaults(t *testing.T) {
	got := Local(Context{})
	got.Suggestions[0] = "changed"
	assert.Equal(t, "Start with your most important task first", DefaultSuggestions[0])
}

func TestNewContext(t *testing.T) {
	now := time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)
	w := &tracker.WeatherSample{Conditions: "Rain", Temp: 12.5}
	p := &tracker.ProductivitySample{ProductivityScore: 70, FocusedTime: 95}

	sc := NewContext(w, p, now)
	assert.Equal(t, "afternoon", sc.TimeOfDay)
	assert.Equal(t, &WeatherSnapshot{Conditions: "Rain", Temp: 12.5}, sc.Weather)
	assert.Equal(t, &ProductivitySnapshot{Score: 70, FocusedTime: 95}, sc.Productivity)
	assert.NoError(t, sc.Validate())

	empty := NewContext(nil, p, now)
	assert.Nil(t, empty.Weather)
	assert.ErrorIs(t, empty.Validate(), ErrInvalidContext)
}
