package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/heybuddy/internal/catalog"
	"github.com/julianstephens/heybuddy/internal/constants"
	"github.com/julianstephens/heybuddy/internal/logger"
	"github.com/julianstephens/heybuddy/internal/models"
	"github.com/julianstephens/heybuddy/internal/utils"
)

// Fallback records a persisted field that could not be used
type Fallback struct {
	Key    string
	Reason string
}

// LoadReport describes what Load found
type LoadReport struct {
	Loaded    []string
	Fallbacks []Fallback
}

// OK reports whether every present field loaded cleanly.
func (r LoadReport) OK() bool {
	return len(r.Fallbacks) == 0
}

func (r *LoadReport) fallback(key, format string, args ...any) {
	reason := fmt.Sprintf(format, args...)
	r.Fallbacks = append(r.Fallbacks, Fallback{Key: key, Reason: reason})
	logger.Warn("Falling back to default for wellness field", "key", key, "reason", reason)
}

// Load replaces the in-memory state with the persisted fields. A field that
// cannot be read or decoded keeps its default and is listed in the report;
// Load itself never fails.
func (l *Ledger) Load(ctx context.Context) LoadReport {
	var report LoadReport

	values, err := l.store.GetAll(ctx)
	if err != nil {
		for _, key := range constants.WellnessKeys {
			report.fallback(key, "reading storage: %v", err)
		}
		values = map[string]string{}
	}

	state := models.WellnessState{
		BuddyID:     catalog.DefaultBuddy().ID,
		MoodEntries: []models.MoodEntry{},
	}
	var medsDate, moodDate string

	if v, ok := values[constants.KeyStreak]; ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		switch {
		case err != nil:
			report.fallback(constants.KeyStreak, "not an integer: %q", v)
		case n < 0:
			report.fallback(constants.KeyStreak, "negative streak %d", n)
		default:
			state.Streak = n
			report.Loaded = append(report.Loaded, constants.KeyStreak)
		}
	}

	lastKey := constants.KeyLastCheckIn
	v, ok := values[lastKey]
	if !ok {
		lastKey = constants.LegacyKeyLastCheckIn
		v, ok = values[lastKey]
	}
	if ok {
		if day, err := utils.NormalizeDay(strings.TrimSpace(v)); err != nil {
			report.fallback(lastKey, "%v", err)
		} else {
			state.LastCheckIn = day
			report.Loaded = append(report.Loaded, lastKey)
		}
	}

	if v, ok := values[constants.KeyBuddy]; ok {
		if id, err := decodeBuddyID(v); err != nil {
			report.fallback(constants.KeyBuddy, "%v", err)
		} else if _, known := catalog.BuddyByID(id); !known {
			report.fallback(constants.KeyBuddy, "unknown buddy %q", id)
		} else {
			state.BuddyID = id
			report.Loaded = append(report.Loaded, constants.KeyBuddy)
		}
	}

	if v, ok := values[constants.KeyMoodEntries]; ok {
		entries, dropped, err := decodeEntries(v)
		if err != nil {
			report.fallback(constants.KeyMoodEntries, "%v", err)
		} else {
			state.MoodEntries = entries
			report.Loaded = append(report.Loaded, constants.KeyMoodEntries)
			if dropped > 0 {
				report.fallback(constants.KeyMoodEntries, "dropped %d invalid entries", dropped)
			}
		}
	}

	if v, ok := values[constants.KeyMedsTaken]; ok && v != "null" {
		var taken bool
		if err := json.Unmarshal([]byte(v), &taken); err != nil {
			report.fallback(constants.KeyMedsTaken, "not a boolean: %q", v)
		} else {
			state.MedsTaken = &taken
			medsDate = values[constants.KeyMedsTakenDate]
			report.Loaded = append(report.Loaded, constants.KeyMedsTaken)
		}
	}

	if v, ok := values[constants.KeyTodaysMood]; ok {
		state.TodaysMood = v
		moodDate = values[constants.KeyTodaysMoodDate]
		report.Loaded = append(report.Loaded, constants.KeyTodaysMood)
	}

	l.mu.Lock()
	l.state = state
	l.medsDate = medsDate
	l.moodDate = moodDate
	snap := l.snapshotLocked()
	l.mu.Unlock()

	logger.Debug("Loaded wellness state", "streak", state.Streak, "entries", len(state.MoodEntries), "buddy", state.BuddyID)
	l.notify(snap)
	return report
}

// decodeBuddyID accepts a bare id, a JSON string, or the whole buddy record
// older versions stored.
func decodeBuddyID(v string) (string, error) {
	v = strings.TrimSpace(v)
	switch {
	case strings.HasPrefix(v, "{"):
		var record struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal([]byte(v), &record); err != nil {
			return "", fmt.Errorf("malformed buddy record: %w", err)
		}
		if record.ID == "" {
			return "", errors.New("buddy record has no id")
		}
		return record.ID, nil
	case strings.HasPrefix(v, `"`):
		var id string
		if err := json.Unmarshal([]byte(v), &id); err != nil {
			return "", fmt.Errorf("malformed buddy id: %w", err)
		}
		return id, nil
	default:
		return v, nil
	}
}

// decodeEntries parses the persisted history, dropping entries that would
// fail RecordMood validation. For duplicate dates the later entry wins.
func decodeEntries(v string) ([]models.MoodEntry, int, error) {
	var raw []models.MoodEntry
	if err := json.Unmarshal([]byte(v), &raw); err != nil {
		return nil, 0, fmt.Errorf("malformed mood history: %w", err)
	}

	out := make([]models.MoodEntry, 0, len(raw))
	dropped := 0
	for _, e := range raw {
		day, err := utils.NormalizeDay(e.Date)
		if err != nil || e.Emoji == "" || e.Intensity < constants.MinIntensity || e.Intensity > constants.MaxIntensity {
			dropped++
			continue
		}
		e.Date = day
		for i := range out {
			if out[i].Date == day {
				out = append(out[:i], out[i+1:]...)
				dropped++
				break
			}
		}
		out = append(out, e)
	}
	return out, dropped, nil
}
