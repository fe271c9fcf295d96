package catalog

import (
	"math/rand/v2"
	"slices"
	"testing"
)

func TestBuddiesCatalog(t *testing.T) {
	all := Buddies()
	if len(all) != 4 {
		t.Fatalf("expected 4 buddies, got %d", len(all))
	}

	wantOrder := []string{"Sunny", "Luna", "Spark", "Sage"}
	seen := make(map[string]bool)
	for i, b := range all {
		if b.Name != wantOrder[i] {
			t.Errorf("buddy %d = %s, want %s", i, b.Name, wantOrder[i])
		}
		if len(b.Messages) == 0 {
			t.Errorf("buddy %s has no messages", b.ID)
		}
		if seen[b.ID] {
			t.Errorf("duplicate buddy id %s", b.ID)
		}
		seen[b.ID] = true
	}

	if DefaultBuddy().ID != all[0].ID {
		t.Errorf("DefaultBuddy() = %s, want first catalog entry %s", DefaultBuddy().ID, all[0].ID)
	}
}

func TestBuddiesReturnsCopies(t *testing.T) {
	all := Buddies()
	all[0].Messages[0] = "mutated"

	b, ok := BuddyByID(all[0].ID)
	if !ok {
		t.Fatal("BuddyByID failed for catalog id")
	}
	if b.Messages[0] == "mutated" {
		t.Error("catalog was mutated through a returned copy")
	}
}

func TestBuddyByID(t *testing.T) {
	b, ok := BuddyByID("wise")
	if !ok || b.Name != "Sage" {
		t.Errorf("BuddyByID(wise) = %+v, %v", b, ok)
	}
	if _, ok := BuddyByID("grumpy"); ok {
		t.Error("BuddyByID(grumpy) should not be found")
	}
}

func TestRandomMessageMembership(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for _, b := range Buddies() {
		for i := 0; i < 20; i++ {
			msg := RandomMessage(b, r)
			if !slices.Contains(b.Messages, msg) {
				t.Fatalf("message %q not in %s's catalog", msg, b.Name)
			}
		}
	}

	// nil source falls back to the global generator
	b := DefaultBuddy()
	if !slices.Contains(b.Messages, RandomMessage(b, nil)) {
		t.Error("RandomMessage with nil rand returned a foreign message")
	}
}

func TestRandomJokeMembership(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	all := Jokes()
	for i := 0; i < 20; i++ {
		if joke := RandomJoke(r); !slices.Contains(all, joke) {
			t.Fatalf("joke %q not in catalog", joke)
		}
	}
}

func TestMoodPalette(t *testing.T) {
	palette := MoodPalette()
	if len(palette) != 10 {
		t.Fatalf("expected 10 moods, got %d", len(palette))
	}
	for i, m := range palette {
		if m.Intensity != i+1 {
			t.Errorf("mood %s intensity = %d, want %d", m.Emoji, m.Intensity, i+1)
		}
	}
}

func TestMoodByEmoji(t *testing.T) {
	tests := []struct {
		in        string
		intensity int
		ok        bool
	}{
		{"🤩", 8, true},
		{"happy", 6, true},
		{"TERRIBLE", 1, true},
		{"🐸", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m, ok := MoodByEmoji(tt.in)
			if ok != tt.ok {
				t.Fatalf("MoodByEmoji(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if m.Intensity != tt.intensity {
				t.Errorf("MoodByEmoji(%q) intensity = %d, want %d", tt.in, m.Intensity, tt.intensity)
			}
		})
	}
}
