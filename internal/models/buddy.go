package models

// Buddy is a selectable companion persona with a fixed message catalog
type Buddy struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Emoji       string   `json:"emoji"`
	Color       string   `json:"color"`
	Description string   `json:"description,omitempty"`
	Messages    []string `json:"messages"`
}

// MoodOption is one entry of the mood palette offered to the user
type MoodOption struct {
	Emoji     string
	Label     string
	Color     string
	Intensity int
}
