package publisher

// DefaultLabelColor is used for labels missing from the colour table.
const DefaultLabelColor = "ededed"

var defaultLabelColors = map[string]string{
	"scripting":        "0075ca",
	"building":         "2ea44f",
	"ui-design":        "f9d0c4",
	"3d-art":           "e4e669",
	"game-design":      "a2eeef",
	"bug":              "d73a4a",
	"feature":          "0075ca",
	"enhancement":      "a2eeef",
	"documentation":    "0075ca",
	"sound-design":     "e99695",
	"haute-priorité":   "b60205",
	"moyenne-priorité": "fbca04",
	"basse-priorité":   "0e8a16",
}

// DefaultLabelColors returns a fresh copy of the built-in colour table.
func DefaultLabelColors() map[string]string {
	out := make(map[string]string, len(defaultLabelColors))
	for k, v := range defaultLabelColors {
		out[k] = v
	}
	return out
}

// LabelColor returns the colour for name, or fallback when unknown.
func LabelColor(colors map[string]string, name, fallback string) string {
	if c, ok := colors[name]; ok {
		return c
	}
	return fallback
}
