// Package ledger owns the wellness state: the check-in streak, the mood
// history and the daily fields. Mutations update memory first, notify
// subscribers, then persist asynchronously through a storage.Provider.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/julianstephens/heybuddy/internal/catalog"
	"github.com/julianstephens/heybuddy/internal/constants"
	apperrors "github.com/julianstephens/heybuddy/internal/errors"
	"github.com/julianstephens/heybuddy/internal/models"
	"github.com/julianstephens/heybuddy/internal/stats"
	"github.com/julianstephens/heybuddy/internal/storage"
	"github.com/julianstephens/heybuddy/internal/utils"
)

// ErrUnknownBuddy is returned by SelectBuddy for ids outside the catalog
var ErrUnknownBuddy = errors.New("unknown buddy")

// StreakResult is the outcome of a check-in
type StreakResult struct {
	Streak  int
	Changed bool
	Commit  *Commit
}

// Summary bundles the derived statistics shown on the stats screen
type Summary struct {
	Streak            int
	StreakMessage     string
	StreakDescription string
	WeeklyAverage     float64
	Trend             models.Trend
	TotalCheckIns     int
	Achievements      []stats.Achievement
}

type Ledger struct {
	store        storage.Provider
	now          func() time.Time
	loc          *time.Location
	rng          *rand.Rand
	trendOrder   constants.TrendOrder
	writeTimeout time.Duration
	onWriteError func(WriteError)

	mu        sync.Mutex
	state     models.WellnessState
	medsDate  string
	moodDate  string
	subs      map[int]func(models.Snapshot)
	nextSubID int
	closed    bool

	persist *persister
}

// New creates a ledger over store with default state. Call Load to read the
// persisted fields.
func New(store storage.Provider, opts ...Option) *Ledger {
	l := &Ledger{
		store:        store,
		now:          time.Now,
		loc:          time.Local,
		trendOrder:   constants.DefaultTrendOrder,
		writeTimeout: constants.DefaultWriteTimeout,
		subs:         make(map[int]func(models.Snapshot)),
		state: models.WellnessState{
			BuddyID:     catalog.DefaultBuddy().ID,
			MoodEntries: []models.MoodEntry{},
		},
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.rng == nil {
		seed := uint64(time.Now().UnixNano())
		l.rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	l.persist = newPersister(store, l.writeTimeout, l.onWriteError)
	return l
}

// Today returns the current calendar day in the ledger's location.
func (l *Ledger) Today() string {
	return utils.DayString(l.now(), l.loc)
}

// CheckIn records a daily check-in. Repeating it on the same day changes
// nothing; checking in the day after the last check-in extends the streak;
// any other gap, a first check-in, or a last check-in dated in the future
// restarts the streak at 1.
func (l *Ledger) CheckIn(today time.Time) StreakResult {
	day := utils.DayString(today, l.loc)

	l.mu.Lock()
	if l.state.LastCheckIn == day {
		streak := l.state.Streak
		l.mu.Unlock()
		return StreakResult{Streak: streak, Changed: false, Commit: resolvedCommit(nil)}
	}

	yesterday, _ := utils.AddDays(day, -1)
	if l.state.LastCheckIn != "" && l.state.LastCheckIn == yesterday {
		l.state.Streak++
	} else {
		l.state.Streak = 1
	}
	l.state.LastCheckIn = day

	commit := l.enqueueLocked(
		write{constants.KeyStreak, strconv.Itoa(l.state.Streak)},
		write{constants.KeyLastCheckIn, day},
	)
	streak := l.state.Streak
	snap := l.snapshotLocked()
	l.mu.Unlock()

	l.notify(snap)
	return StreakResult{Streak: streak, Changed: true, Commit: commit}
}

// RecordMood stores the mood for date, replacing any entry already recorded
// for that date. The replacement moves to the end of the history.
func (l *Ledger) RecordMood(date, emoji string, intensity int, note string) (*Commit, error) {
	if intensity < constants.MinIntensity || intensity > constants.MaxIntensity {
		return nil, apperrors.Invalid("intensity", intensity, "must be between 1 and 10")
	}
	if _, err := utils.ParseDay(date); err != nil {
		return nil, apperrors.Invalid("date", date, "expected YYYY-MM-DD")
	}
	emoji = strings.TrimSpace(emoji)
	if emoji == "" {
		return nil, apperrors.Invalid("emoji", emoji, "must not be empty")
	}

	entry := models.MoodEntry{Date: date, Emoji: emoji, Intensity: intensity, Note: strings.TrimSpace(note)}

	l.mu.Lock()
	l.state.MoodEntries = slices.DeleteFunc(l.state.MoodEntries, func(e models.MoodEntry) bool {
		return e.Date == date
	})
	l.state.MoodEntries = append(l.state.MoodEntries, entry)

	writes := []write{{constants.KeyMoodEntries, encodeEntries(l.state.MoodEntries)}}
	if today := l.Today(); date == today {
		l.state.TodaysMood = emoji
		l.moodDate = today
		writes = append(writes,
			write{constants.KeyTodaysMood, emoji},
			write{constants.KeyTodaysMoodDate, today},
		)
	}

	commit := l.enqueueLocked(writes...)
	snap := l.snapshotLocked()
	l.mu.Unlock()

	l.notify(snap)
	return commit, nil
}

// MoodOnDate returns the entry recorded for date.
func (l *Ledger) MoodOnDate(date string) (models.MoodEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.state.MoodEntries {
		if e.Date == date {
			return e, true
		}
	}
	return models.MoodEntry{}, false
}

// MoodEntries returns a copy of the history in insertion order.
func (l *Ledger) MoodEntries() []models.MoodEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.state.MoodEntries)
}

// SelectBuddy makes id the active buddy.
func (l *Ledger) SelectBuddy(id string) (*Commit, error) {
	b, ok := catalog.BuddyByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBuddy, id)
	}

	l.mu.Lock()
	if l.state.BuddyID == b.ID {
		l.mu.Unlock()
		return resolvedCommit(nil), nil
	}
	l.state.BuddyID = b.ID
	commit := l.enqueueLocked(write{constants.KeyBuddy, b.ID})
	snap := l.snapshotLocked()
	l.mu.Unlock()

	l.notify(snap)
	return commit, nil
}

// BuddyMessage picks one of the active buddy's messages at random.
func (l *Ledger) BuddyMessage() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return catalog.RandomMessage(l.buddyLocked(), l.rng)
}

// SetMedsTaken records today's medication answer.
func (l *Ledger) SetMedsTaken(taken bool) *Commit {
	l.mu.Lock()
	today := l.Today()
	l.state.MedsTaken = &taken
	l.medsDate = today
	commit := l.enqueueLocked(
		write{constants.KeyMedsTaken, strconv.FormatBool(taken)},
		write{constants.KeyMedsTakenDate, today},
	)
	snap := l.snapshotLocked()
	l.mu.Unlock()

	l.notify(snap)
	return commit
}

// SetTodaysMood records the mood emoji shown on the home screen for today
// without touching the history.
func (l *Ledger) SetTodaysMood(emoji string) *Commit {
	emoji = strings.TrimSpace(emoji)

	l.mu.Lock()
	today := l.Today()
	l.state.TodaysMood = emoji
	l.moodDate = today
	commit := l.enqueueLocked(
		write{constants.KeyTodaysMood, emoji},
		write{constants.KeyTodaysMoodDate, today},
	)
	snap := l.snapshotLocked()
	l.mu.Unlock()

	l.notify(snap)
	return commit
}

// Snapshot returns a deep copy of the current state for today.
func (l *Ledger) Snapshot() models.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// Summary derives the statistics for the day containing now.
func (l *Ledger) Summary(now time.Time) Summary {
	today := utils.DayString(now, l.loc)

	l.mu.Lock()
	entries := slices.Clone(l.state.MoodEntries)
	streak := l.state.Streak
	l.mu.Unlock()

	return Summary{
		Streak:            streak,
		StreakMessage:     stats.StreakMessage(streak),
		StreakDescription: stats.StreakDescription(streak),
		WeeklyAverage:     stats.WeeklyAverage(entries, today),
		Trend:             stats.Trend(entries, l.trendOrder),
		TotalCheckIns:     stats.TotalCheckIns(entries),
		Achievements:      stats.Achievements(streak, entries),
	}
}

// Subscribe registers fn to receive a snapshot after every state change. fn
// runs synchronously before the mutating call returns. The returned func
// removes the subscription.
func (l *Ledger) Subscribe(fn func(models.Snapshot)) (cancel func()) {
	l.mu.Lock()
	id := l.nextSubID
	l.nextSubID++
	l.subs[id] = fn
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.subs, id)
		l.mu.Unlock()
	}
}

// FailedWrites counts key writes that did not reach storage.
func (l *Ledger) FailedWrites() int64 {
	return l.persist.failed.Load()
}

// Flush waits until every write queued so far has been attempted.
func (l *Ledger) Flush(ctx context.Context) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	barrier := l.enqueueLocked()
	l.mu.Unlock()
	return barrier.Wait(ctx)
}

// Close drains pending writes and stops the persistence goroutine. The
// storage provider is left open for the caller to close.
func (l *Ledger) Close(ctx context.Context) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	l.mu.Unlock()

	done := make(chan struct{})
	go func() {
		l.persist.close()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Ledger) enqueueLocked(writes ...write) *Commit {
	keys := make([]string, 0, len(writes))
	for _, w := range writes {
		keys = append(keys, w.key)
	}
	if l.closed {
		return resolvedCommit(ErrClosed, keys...)
	}
	c := newCommit(keys...)
	l.persist.enqueue(job{commit: c, writes: writes})
	return c
}

func (l *Ledger) snapshotLocked() models.Snapshot {
	today := l.Today()
	st := l.state.Clone()

	if l.medsDate != today {
		st.MedsTaken = nil
	}
	if l.moodDate != today {
		st.TodaysMood = ""
	}
	for _, e := range st.MoodEntries {
		if e.Date == today {
			st.TodaysMood = e.Emoji
			break
		}
	}

	return models.Snapshot{
		WellnessState: st,
		Buddy:         l.buddyLocked(),
		Today:         today,
	}
}

func (l *Ledger) buddyLocked() models.Buddy {
	if b, ok := catalog.BuddyByID(l.state.BuddyID); ok {
		return b
	}
	return catalog.DefaultBuddy()
}

func (l *Ledger) notify(snap models.Snapshot) {
	l.mu.Lock()
	subs := make([]func(models.Snapshot), 0, len(l.subs))
	for _, id := range sortedKeys(l.subs) {
		subs = append(subs, l.subs[id])
	}
	l.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func sortedKeys(m map[int]func(models.Snapshot)) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func encodeEntries(entries []models.MoodEntry) string {
	if entries == nil {
		entries = []models.MoodEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		// MoodEntry has only string and int fields
		panic(err)
	}
	return string(data)
}
