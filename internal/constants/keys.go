package constants

// Persisted wellness keys. Each logical field lives under its own key so that
// writes for different fields never contend.
const (
	KeyStreak         = "streak"
	KeyLastCheckIn    = "lastCheckInDate"
	KeyBuddy          = "buddy"
	KeyMoodEntries    = "moodEntries"
	KeyMedsTaken      = "medsTaken"
	KeyMedsTakenDate  = "medsTakenDate"
	KeyTodaysMood     = "todaysMood"
	KeyTodaysMoodDate = "todaysMoodDate"

	// LegacyKeyLastCheckIn is the key older stores used for the last check-in date.
	LegacyKeyLastCheckIn = "lastCheckIn"
)

// WellnessKeys lists every key the ledger reads at startup.
var WellnessKeys = []string{
	KeyStreak,
	KeyLastCheckIn,
	KeyBuddy,
	KeyMoodEntries,
	KeyMedsTaken,
	KeyMedsTakenDate,
	KeyTodaysMood,
	KeyTodaysMoodDate,
}
