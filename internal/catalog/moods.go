package catalog

import (
	"strings"

	"github.com/julianstephens/heybuddy/internal/models"
)

var moodPalette = []models.MoodOption{
	{Emoji: "😭", Label: "Terrible", Color: "#EF4444", Intensity: 1},
	{Emoji: "😢", Label: "Sad", Color: "#F97316", Intensity: 2},
	{Emoji: "😔", Label: "Down", Color: "#EAB308", Intensity: 3},
	{Emoji: "😐", Label: "Okay", Color: "#84CC16", Intensity: 4},
	{Emoji: "🙂", Label: "Good", Color: "#22C55E", Intensity: 5},
	{Emoji: "😊", Label: "Happy", Color: "#06B6D4", Intensity: 6},
	{Emoji: "😄", Label: "Great", Color: "#3B82F6", Intensity: 7},
	{Emoji: "🤩", Label: "Amazing", Color: "#8B5CF6", Intensity: 8},
	{Emoji: "🥳", Label: "Fantastic", Color: "#EC4899", Intensity: 9},
	{Emoji: "🚀", Label: "Incredible", Color: "#F59E0B", Intensity: 10},
}

// MoodPalette returns the selectable moods ordered by intensity.
func MoodPalette() []models.MoodOption {
	return append([]models.MoodOption(nil), moodPalette...)
}

// MoodByEmoji finds the palette entry for an emoji. Labels are also accepted,
// case-insensitively, so the CLI can take "happy" as well as "😊".
func MoodByEmoji(s string) (models.MoodOption, bool) {
	for _, m := range moodPalette {
		if m.Emoji == s || strings.EqualFold(m.Label, s) {
			return m, true
		}
	}
	return models.MoodOption{}, false
}
