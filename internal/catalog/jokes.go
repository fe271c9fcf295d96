package catalog

import "math/rand/v2"

var jokes = []string{
	"Why don't skeletons fight each other? They don't have the guts! 💀😄",
	"What do you call a bear with no teeth? A gummy bear! 🐻🦷",
	"Why don't scientists trust atoms? Because they make up everything! ⚛️😂",
	"What's orange and sounds like a parrot? A carrot! 🥕🦜",
	"Why did the scarecrow win an award? He was outstanding in his field! 🌾🏆",
	"What do you call a fake noodle? An impasta! 🍝😆",
	"Why don't eggs tell jokes? They'd crack each other up! 🥚😂",
	"What's the best thing about Switzerland? I don't know, but the flag is a big plus! 🇨🇭➕",
}

// Jokes returns the full joke list.
func Jokes() []string {
	return append([]string(nil), jokes...)
}

// RandomJoke picks a joke uniformly at random.
func RandomJoke(r *rand.Rand) string {
	return jokes[intN(r, len(jokes))]
}
