package stats

import (
	"fmt"

	"github.com/julianstephens/heybuddy/internal/models"
)

// Achievement is a milestone unlocked by streak length or history size
type Achievement struct {
	Emoji string
	Title string
}

// Achievements lists the milestones reached, in unlock order.
func Achievements(streak int, entries []models.MoodEntry) []Achievement {
	var out []Achievement
	if streak >= 1 {
		out = append(out, Achievement{Emoji: "🌟", Title: "First Check-in"})
	}
	if streak >= 7 {
		out = append(out, Achievement{Emoji: "🔥", Title: "Week Warrior"})
	}
	if streak >= 30 {
		out = append(out, Achievement{Emoji: "💎", Title: "Month Master"})
	}
	if len(entries) >= 10 {
		out = append(out, Achievement{Emoji: "📊", Title: "Data Collector"})
	}
	return out
}

// StreakMessage is the home screen greeting for a streak length.
func StreakMessage(streak int) string {
	switch {
	case streak <= 0:
		return "Ready to start your wellness journey? 🌟"
	case streak == 1:
		return "Great start! You're building momentum! 🎉"
	case streak < 7:
		return fmt.Sprintf("%d days strong! You're on fire! 🔥", streak)
	case streak < 30:
		return fmt.Sprintf("Wow! %d days of consistency! 💪", streak)
	default:
		return fmt.Sprintf("Incredible! %d days of wellness! You're a champion! 🏆", streak)
	}
}

// StreakDescription is the stats screen blurb for a streak length.
func StreakDescription(streak int) string {
	switch {
	case streak <= 0:
		return "Start your wellness journey today!"
	case streak < 7:
		return "Great start! Keep building momentum!"
	case streak < 30:
		return "You're on fire! Amazing consistency!"
	default:
		return "Incredible dedication! You're a wellness champion!"
	}
}

// TrendEmoji returns the chart glyph for a trend.
func TrendEmoji(t models.Trend) string {
	switch t {
	case models.TrendImproving:
		return "📈"
	case models.TrendDeclining:
		return "📉"
	default:
		return "➡️"
	}
}

// TrendDescription returns the encouragement shown next to a trend.
func TrendDescription(t models.Trend) string {
	switch t {
	case models.TrendImproving:
		return "Your mood is trending upward! 🌟"
	case models.TrendDeclining:
		return "Take care of yourself. You've got this! 💪"
	default:
		return "Your mood is steady. Keep up the good work! ✨"
	}
}
