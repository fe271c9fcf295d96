package catalog

import (
	"math/rand/v2"

	"github.com/julianstephens/heybuddy/internal/models"
)

var buddies = []models.Buddy{
	{
		ID:          "cheerful",
		Name:        "Sunny",
		Emoji:       "🌞",
		Color:       "#FFD700",
		Description: "Bright, optimistic, and always sees the good in everything",
		Messages: []string{
			"Good morning sunshine! ☀️ Ready to make today amazing?",
			"You're absolutely glowing today! ✨",
			"Every day with you is a gift! 🎁",
			"Your smile could light up the whole world! 😊",
		},
	},
	{
		ID:          "caring",
		Name:        "Luna",
		Emoji:       "🌙",
		Color:       "#9333EA",
		Description: "Gentle, nurturing, and always there when you need support",
		Messages: []string{
			"I'm here for you, always 💜",
			"Take your time, you're doing great 🤗",
			"Remember to be gentle with yourself 🌸",
			"You matter more than you know 💫",
		},
	},
	{
		ID:          "energetic",
		Name:        "Spark",
		Emoji:       "⚡",
		Color:       "#F59E0B",
		Description: "High-energy, motivational, and ready to conquer the world",
		Messages: []string{
			"Let's conquer this day together! 🚀",
			"You've got the power! 💪",
			"Energy level: MAXIMUM! ⚡",
			"Nothing can stop us today! 🔥",
		},
	},
	{
		ID:          "wise",
		Name:        "Sage",
		Emoji:       "🦉",
		Color:       "#059669",
		Description: "Thoughtful, wise, and offers deep insights",
		Messages: []string{
			"Every challenge is a chance to grow 🌱",
			"Wisdom comes from experience, and you're gaining both 📚",
			"Take a moment to reflect on how far you've come 🔮",
			"The journey is just as important as the destination 🛤️",
		},
	},
}

// Buddies returns a copy of the buddy catalog in display order.
func Buddies() []models.Buddy {
	out := make([]models.Buddy, len(buddies))
	for i, b := range buddies {
		out[i] = cloneBuddy(b)
	}
	return out
}

// DefaultBuddy returns the first buddy in the catalog.
func DefaultBuddy() models.Buddy {
	return cloneBuddy(buddies[0])
}

// BuddyByID looks up a buddy by its catalog id.
func BuddyByID(id string) (models.Buddy, bool) {
	for _, b := range buddies {
		if b.ID == id {
			return cloneBuddy(b), true
		}
	}
	return models.Buddy{}, false
}

// RandomMessage picks one of the buddy's messages uniformly at random.
func RandomMessage(b models.Buddy, r *rand.Rand) string {
	if len(b.Messages) == 0 {
		return ""
	}
	return b.Messages[intN(r, len(b.Messages))]
}

func cloneBuddy(b models.Buddy) models.Buddy {
	b.Messages = append([]string(nil), b.Messages...)
	return b
}

func intN(r *rand.Rand, n int) int {
	if r == nil {
		return rand.IntN(n)
	}
	return r.IntN(n)
}
