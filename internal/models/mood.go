package models

// MoodEntry represents one day's recorded emotional state
type MoodEntry struct {
	Date      string `json:"date"`  // YYYY-MM-DD format
	Emoji     string `json:"emoji"` // identifier from the mood palette
	Intensity int    `json:"intensity"`
	Note      string `json:"note,omitempty"`
}

// Trend classifies the short-term direction of mood intensity
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)
