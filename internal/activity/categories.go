package activity

import "strings"

// Category classifies an application.
type Category int

const (
	Uncategorized Category = iota
	Productive
	Distracting
	Neutral
)

var productiveApps = []string{
	"code", "vscode", "visual studio code", "pycharm", "webstorm",
	"sublime", "atom", "terminal", "cmd", "powershell", "notepad++",
	"intellij", "eclipse", "xcode", "android studio",
}

var distractingApps = []string{
	"youtube", "facebook", "twitter", "reddit", "instagram",
	"netflix", "game", "discord", "twitch", "tiktok", "prime video",
	"spotify", "steam", "minecraft", "whatsapp",
}

var neutralApps = []string{
	"chrome", "firefox", "edge", "safari", "explorer",
	"notepad", "wordpad", "calculator", "mail", "calendar",
}

// CleanAppName lower-cases an app name and strips platform suffixes.
func CleanAppName(name string) string {
	name = strings.ToLower(name)
	name = strings.Replace(name, ".exe", "", 1)
	name = strings.Replace(name, ".app", "", 1)
	return strings.TrimSpace(name)
}

// Categorize matches a cleaned app name by substring. Productive wins over
// distracting, which wins over neutral.
func Categorize(app string) Category {
	switch {
	case containsAny(app, productiveApps):
		return Productive
	case containsAny(app, distractingApps):
		return Distracting
	case containsAny(app, neutralApps):
		return Neutral
	}
	return Uncategorized
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
