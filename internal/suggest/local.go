package suggest

// Rule inspects a context and optionally produces one suggestion.
type Rule func(sc Context) (string, bool)

// LocalRules are evaluated in order by Local.
var LocalRules = []Rule{
	WarmWeather,
	LowScore,
	LongFocus,
}

// DefaultSuggestions are returned when no rule fires.
var DefaultSuggestions = []string{
	"Start with your most important task first",
	"Remove distractions for better focus",
	"Take a short walk to refresh your mind",
}

// WarmWeather suggests hydration above 25°C.
func WarmWeather(sc Context) (string, bool) {
	if sc.Weather != nil && sc.Weather.Temp > 25 {
		return "It's warm - stay hydrated and take cooling breaks", true
	}
	return "", false
}

// LowScore suggests a focus technique when the score is below 60.
func LowScore(sc Context) (string, bool) {
	if sc.Productivity != nil && sc.Productivity.Score < 60 {
		return "Try the Pomodoro technique (25min work, 5min break)", true
	}
	return "", false
}

// LongFocus suggests a longer break after three hours of focus.
func LongFocus(sc Context) (string, bool) {
	if sc.Productivity != nil && sc.Productivity.FocusedTime > 180 {
		return "You've been focused for 3+ hours - consider a longer break", true
	}
	return "", false
}

// Local runs the heuristic rules. It has no dependencies and cannot fail.
func Local(sc Context) Result {
	var suggestions []string
	for _, rule := range LocalRules {
		if s, ok := rule(sc); ok {
			suggestions = append(suggestions, s)
		}
	}
	if len(suggestions) == 0 {
		suggestions = append(suggestions, DefaultSuggestions...)
	}
	return Result{
		Source:      SourceLocal,
		Suggestions: capSuggestions(suggestions),
	}
}
