package models

// WellnessState is the persisted user wellness state owned by a ledger
type WellnessState struct {
	Streak      int
	LastCheckIn string // YYYY-MM-DD, empty until the first check-in
	BuddyID     string
	MoodEntries []MoodEntry // insertion order, at most one per date
	MedsTaken   *bool       // nil when unset for today
	TodaysMood  string
}

// Clone returns a deep copy of the state.
func (s WellnessState) Clone() WellnessState {
	out := s
	if s.MoodEntries != nil {
		out.MoodEntries = make([]MoodEntry, len(s.MoodEntries))
		copy(out.MoodEntries, s.MoodEntries)
	}
	if s.MedsTaken != nil {
		v := *s.MedsTaken
		out.MedsTaken = &v
	}
	return out
}

// Snapshot is a read-only view of the state handed to presentation layers
type Snapshot struct {
	WellnessState
	Buddy Buddy
	Today string // YYYY-MM-DD the snapshot was taken for
}
