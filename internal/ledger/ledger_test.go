package ledger

import (
	"context"
	"errors"
	"math/rand/v2"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/heybuddy/internal/catalog"
	"github.com/julianstephens/heybuddy/internal/constants"
	apperrors "github.com/julianstephens/heybuddy/internal/errors"
	"github.com/julianstephens/heybuddy/internal/models"
	"github.com/julianstephens/heybuddy/internal/storage/sqlite"
)

// clock is a settable time source
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock(day string) *clock {
	t, err := time.ParseInLocation(constants.DateFormat, day, time.UTC)
	if err != nil {
		panic(err)
	}
	return &clock{now: t.Add(10 * time.Hour)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) advance(days int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.AddDate(0, 0, days)
}

func setupLedger(t *testing.T, store *memStore, day string, opts ...Option) (*Ledger, *clock) {
	t.Helper()
	clk := newClock(day)
	base := []Option{
		WithClock(clk.Now),
		WithLocation(time.UTC),
		WithRand(rand.New(rand.NewPCG(1, 2))),
	}
	l := New(store, append(base, opts...)...)
	t.Cleanup(func() { _ = l.Close(context.Background()) })
	return l, clk
}

func flush(t *testing.T, l *Ledger) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := l.Flush(ctx); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
}

func day(s string) time.Time {
	t, err := time.ParseInLocation(constants.DateFormat, s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t.Add(9 * time.Hour)
}

func TestCheckIn(t *testing.T) {
	tests := []struct {
		name        string
		streak      string
		last        string
		today       string
		wantStreak  int
		wantChanged bool
	}{
		{"first check-in", "", "", "2024-05-10", 1, true},
		{"same day is idempotent", "3", "2024-05-10", "2024-05-10", 3, false},
		{"consecutive day", "3", "2024-05-09", "2024-05-10", 4, true},
		{"across month end", "5", "2024-04-30", "2024-05-01", 6, true},
		{"gap of two days resets", "10", "2024-05-08", "2024-05-10", 1, true},
		{"future last check-in resets", "4", "2024-05-12", "2024-05-10", 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := map[string]string{}
			if tt.streak != "" {
				values[constants.KeyStreak] = tt.streak
				values[constants.KeyLastCheckIn] = tt.last
			}
			store := newMemStore(values)
			l, _ := setupLedger(t, store, tt.today)
			l.Load(context.Background())

			res := l.CheckIn(day(tt.today))
			if res.Streak != tt.wantStreak || res.Changed != tt.wantChanged {
				t.Errorf("CheckIn() = {%d %v}, want {%d %v}", res.Streak, res.Changed, tt.wantStreak, tt.wantChanged)
			}
			if err := res.Commit.Wait(context.Background()); err != nil {
				t.Fatalf("commit failed: %v", err)
			}

			snap := l.Snapshot()
			if snap.LastCheckIn != tt.today {
				t.Errorf("LastCheckIn = %q, want %q", snap.LastCheckIn, tt.today)
			}
			if tt.wantChanged {
				if v, _ := store.value(constants.KeyLastCheckIn); v != tt.today {
					t.Errorf("persisted lastCheckInDate = %q, want %q", v, tt.today)
				}
			}
		})
	}
}

func TestCheckInIgnoresTimeOfDay(t *testing.T) {
	l, _ := setupLedger(t, newMemStore(nil), "2024-05-10")

	morning := time.Date(2024, 5, 10, 0, 5, 0, 0, time.UTC)
	night := time.Date(2024, 5, 10, 23, 55, 0, 0, time.UTC)

	if res := l.CheckIn(morning); res.Streak != 1 {
		t.Fatalf("first CheckIn streak = %d", res.Streak)
	}
	if res := l.CheckIn(night); res.Changed {
		t.Error("second check-in on the same calendar day should not change state")
	}
}

func TestCheckInUsesLedgerLocation(t *testing.T) {
	loc := time.FixedZone("UTC-8", -8*60*60)
	l, _ := setupLedger(t, newMemStore(nil), "2024-05-10", WithLocation(loc))

	// 03:00 UTC on the 11th is still the 10th at UTC-8
	l.CheckIn(time.Date(2024, 5, 11, 3, 0, 0, 0, time.UTC))
	if got := l.Snapshot().LastCheckIn; got != "2024-05-10" {
		t.Errorf("LastCheckIn = %q, want 2024-05-10", got)
	}
}

func TestRecordMoodUpsert(t *testing.T) {
	store := newMemStore(nil)
	l, _ := setupLedger(t, store, "2024-05-10")

	mustRecord := func(date, emoji string, intensity int) {
		t.Helper()
		if _, err := l.RecordMood(date, emoji, intensity, ""); err != nil {
			t.Fatalf("RecordMood(%s) failed: %v", date, err)
		}
	}

	mustRecord("2024-05-08", "😊", 7)
	mustRecord("2024-05-09", "😢", 3)
	mustRecord("2024-05-08", "😡", 2)

	entries := l.MoodEntries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(entries), entries)
	}
	if entries[0].Date != "2024-05-09" || entries[1].Date != "2024-05-08" {
		t.Errorf("upserted entry should move to the end: %+v", entries)
	}

	got, ok := l.MoodOnDate("2024-05-08")
	if !ok || got.Emoji != "😡" || got.Intensity != 2 {
		t.Errorf("MoodOnDate = %+v, %v", got, ok)
	}
	if _, ok := l.MoodOnDate("2024-01-01"); ok {
		t.Error("MoodOnDate found an entry for an unrecorded day")
	}

	// Returned slice is a copy
	entries[0].Emoji = "x"
	if l.MoodEntries()[0].Emoji == "x" {
		t.Error("MoodEntries exposed internal state")
	}
}

func TestRecordMoodValidation(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		emoji     string
		intensity int
		field     string
	}{
		{"intensity zero", "2024-05-10", "😊", 0, "intensity"},
		{"intensity eleven", "2024-05-10", "😊", 11, "intensity"},
		{"bad date", "2024-13-01", "😊", 5, "date"},
		{"legacy date form", "Fri May 10 2024", "😊", 5, "date"},
		{"empty emoji", "2024-05-10", "  ", 5, "emoji"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := setupLedger(t, newMemStore(nil), "2024-05-10")
			notified := false
			l.Subscribe(func(models.Snapshot) { notified = true })

			_, err := l.RecordMood(tt.date, tt.emoji, tt.intensity, "")
			if !apperrors.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			var ve *apperrors.ValidationError
			if errors.As(err, &ve) && ve.Field != tt.field {
				t.Errorf("Field = %q, want %q", ve.Field, tt.field)
			}
			if len(l.MoodEntries()) != 0 {
				t.Error("state changed on invalid input")
			}
			if notified {
				t.Error("subscribers notified on invalid input")
			}
		})
	}
}

func TestRecordMoodBoundaryIntensities(t *testing.T) {
	l, _ := setupLedger(t, newMemStore(nil), "2024-05-10")
	for _, n := range []int{1, 10} {
		if _, err := l.RecordMood("2024-05-10", "😊", n, ""); err != nil {
			t.Errorf("RecordMood intensity %d: %v", n, err)
		}
	}
}

func TestRecordMoodTodaySetsTodaysMood(t *testing.T) {
	store := newMemStore(nil)
	l, _ := setupLedger(t, store, "2024-05-10")

	commit, err := l.RecordMood("2024-05-10", "🤩", 8, "sunny")
	if err != nil {
		t.Fatalf("RecordMood failed: %v", err)
	}
	if err := commit.Wait(context.Background()); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if !slices.Contains(commit.Keys, constants.KeyTodaysMood) {
		t.Errorf("commit keys %v should include todaysMood", commit.Keys)
	}
	if got := l.Snapshot().TodaysMood; got != "🤩" {
		t.Errorf("TodaysMood = %q, want 🤩", got)
	}
	if v, _ := store.value(constants.KeyTodaysMood); v != "🤩" {
		t.Errorf("persisted todaysMood = %q", v)
	}

	// A past date leaves today's mood alone
	commit, _ = l.RecordMood("2024-05-01", "😢", 2, "")
	if slices.Contains(commit.Keys, constants.KeyTodaysMood) {
		t.Error("recording a past day should not write todaysMood")
	}
	if got := l.Snapshot().TodaysMood; got != "🤩" {
		t.Errorf("TodaysMood = %q after past entry", got)
	}
}

func TestSelectBuddy(t *testing.T) {
	store := newMemStore(nil)
	l, _ := setupLedger(t, store, "2024-05-10")

	if got := l.Snapshot().Buddy.ID; got != catalog.DefaultBuddy().ID {
		t.Errorf("default buddy = %q", got)
	}

	if _, err := l.SelectBuddy("grumpy"); !errors.Is(err, ErrUnknownBuddy) {
		t.Errorf("SelectBuddy(unknown) error = %v, want ErrUnknownBuddy", err)
	}

	commit, err := l.SelectBuddy("wise")
	if err != nil {
		t.Fatalf("SelectBuddy failed: %v", err)
	}
	if err := commit.Wait(context.Background()); err != nil {
		t.Fatal(err)
	}
	if v, _ := store.value(constants.KeyBuddy); v != "wise" {
		t.Errorf("persisted buddy = %q, want wise", v)
	}

	snap := l.Snapshot()
	if snap.Buddy.Name != "Sage" {
		t.Errorf("resolved buddy = %+v", snap.Buddy)
	}
	for range 20 {
		msg := l.BuddyMessage()
		if !slices.Contains(snap.Buddy.Messages, msg) {
			t.Fatalf("BuddyMessage() = %q, not one of Sage's messages", msg)
		}
	}
}

func TestDailyFieldsRollOver(t *testing.T) {
	store := newMemStore(nil)
	l, clk := setupLedger(t, store, "2024-05-10")

	l.SetMedsTaken(true)
	l.SetTodaysMood("😌")

	snap := l.Snapshot()
	if snap.MedsTaken == nil || !*snap.MedsTaken {
		t.Fatalf("MedsTaken = %v, want true", snap.MedsTaken)
	}
	if snap.TodaysMood != "😌" {
		t.Fatalf("TodaysMood = %q", snap.TodaysMood)
	}
	flush(t, l)
	if v, _ := store.value(constants.KeyMedsTaken); v != "true" {
		t.Errorf("persisted medsTaken = %q", v)
	}
	if v, _ := store.value(constants.KeyMedsTakenDate); v != "2024-05-10" {
		t.Errorf("persisted medsTakenDate = %q", v)
	}

	clk.advance(1)
	snap = l.Snapshot()
	if snap.MedsTaken != nil {
		t.Errorf("MedsTaken should reset on a new day, got %v", *snap.MedsTaken)
	}
	if snap.TodaysMood != "" {
		t.Errorf("TodaysMood should reset on a new day, got %q", snap.TodaysMood)
	}

	// A reload on the next day also treats yesterday's answers as unset
	again, _ := setupLedger(t, store, "2024-05-11")
	again.Load(context.Background())
	if again.Snapshot().MedsTaken != nil {
		t.Error("reloaded MedsTaken from a previous day should be unset")
	}
}

func TestSubscribersNotifiedBeforeReturn(t *testing.T) {
	l, _ := setupLedger(t, newMemStore(nil), "2024-05-10")

	var got []models.Snapshot
	cancel := l.Subscribe(func(s models.Snapshot) { got = append(got, s) })

	l.CheckIn(day("2024-05-10"))
	if len(got) != 1 || got[0].Streak != 1 {
		t.Fatalf("expected one snapshot with streak 1 before CheckIn returned, got %+v", got)
	}

	// No-op check-in does not notify
	l.CheckIn(day("2024-05-10"))
	if len(got) != 1 {
		t.Errorf("idempotent check-in notified subscribers")
	}

	if _, err := l.RecordMood("2024-05-10", "😊", 6, ""); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || len(got[1].MoodEntries) != 1 {
		t.Fatalf("RecordMood did not notify with the new entry: %+v", got)
	}

	// Snapshots are independent copies
	got[1].MoodEntries[0].Intensity = 1
	if e, _ := l.MoodOnDate("2024-05-10"); e.Intensity != 6 {
		t.Error("mutating a snapshot changed ledger state")
	}

	cancel()
	l.SetMedsTaken(false)
	if len(got) != 2 {
		t.Error("cancelled subscriber still notified")
	}
}

func TestSubscriberMayReadLedger(t *testing.T) {
	l, _ := setupLedger(t, newMemStore(nil), "2024-05-10")
	var streak int
	l.Subscribe(func(models.Snapshot) { streak = l.Snapshot().Streak })
	l.CheckIn(day("2024-05-10"))
	if streak != 1 {
		t.Errorf("subscriber read streak %d, want 1", streak)
	}
}

func TestWriteFailureSurfacesOnCommit(t *testing.T) {
	store := newMemStore(nil)
	store.failKey(constants.KeyStreak)

	var mu sync.Mutex
	var handled []WriteError
	l, _ := setupLedger(t, store, "2024-05-10", WithWriteErrorHandler(func(e WriteError) {
		mu.Lock()
		handled = append(handled, e)
		mu.Unlock()
	}))

	res := l.CheckIn(day("2024-05-10"))
	err := res.Commit.Wait(context.Background())
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("commit error = %v, want disk full", err)
	}
	var werr *WriteError
	if !errors.As(err, &werr) || werr.Key != constants.KeyStreak || werr.CommitID != res.Commit.ID {
		t.Errorf("unexpected write error: %+v", werr)
	}
	if res.Commit.Err() == nil {
		t.Error("Err() should report the failure once done")
	}

	// In-memory state stays authoritative
	if l.Snapshot().Streak != 1 {
		t.Error("in-memory streak should survive a write failure")
	}
	// The other key of the commit was still written
	if v, _ := store.value(constants.KeyLastCheckIn); v != "2024-05-10" {
		t.Errorf("lastCheckInDate = %q, want it written independently", v)
	}

	if l.FailedWrites() != 1 {
		t.Errorf("FailedWrites() = %d, want 1", l.FailedWrites())
	}
	mu.Lock()
	defer mu.Unlock()
	if len(handled) != 1 || handled[0].Key != constants.KeyStreak {
		t.Errorf("handler calls = %+v", handled)
	}
}

func TestWritesPersistInOrder(t *testing.T) {
	store := newMemStore(nil)
	l, _ := setupLedger(t, store, "2024-05-10")

	for i := 1; i <= 10; i++ {
		l.SetMedsTaken(i%2 == 0)
	}
	flush(t, l)

	if v, _ := store.value(constants.KeyMedsTaken); v != "true" {
		t.Errorf("last write should win, medsTaken = %q", v)
	}
}

func TestMutationsDoNotWaitOnStalledStorage(t *testing.T) {
	store := newMemStore(nil)
	l, _ := setupLedger(t, store, "2024-05-10")
	release := store.stallWrites()
	t.Cleanup(release)

	const mutations = 200
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 1; i <= mutations; i++ {
			l.SetMedsTaken(i%2 == 0)
		}
		_ = l.Snapshot()
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("mutations blocked while storage was stalled")
	}

	snap := l.Snapshot()
	if snap.MedsTaken == nil || !*snap.MedsTaken {
		t.Errorf("in-memory medsTaken = %v, want true", snap.MedsTaken)
	}
	if _, ok := store.value(constants.KeyMedsTaken); ok {
		t.Error("nothing should reach storage before it is released")
	}

	release()
	flush(t, l)
	if v, _ := store.value(constants.KeyMedsTaken); v != "true" {
		t.Errorf("last write should win after release, medsTaken = %q", v)
	}
}

func TestCommitAfterClose(t *testing.T) {
	l, _ := setupLedger(t, newMemStore(nil), "2024-05-10")
	if err := l.Close(context.Background()); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	res := l.CheckIn(day("2024-05-10"))
	if !errors.Is(res.Commit.Err(), ErrClosed) {
		t.Errorf("commit after close error = %v, want ErrClosed", res.Commit.Err())
	}
	if res.Streak != 1 {
		t.Error("state should still update after close")
	}
	if err := l.Flush(context.Background()); err != nil {
		t.Errorf("Flush after close = %v", err)
	}
}

func TestSummary(t *testing.T) {
	l, _ := setupLedger(t, newMemStore(nil), "2024-05-10")
	for i, n := range []int{5, 5, 5, 8, 8, 8} {
		date := time.Date(2024, 5, 5+i, 0, 0, 0, 0, time.UTC).Format(constants.DateFormat)
		if _, err := l.RecordMood(date, "😊", n, ""); err != nil {
			t.Fatal(err)
		}
	}
	l.CheckIn(day("2024-05-10"))

	s := l.Summary(day("2024-05-10"))
	if s.Trend != models.TrendImproving {
		t.Errorf("Trend = %q", s.Trend)
	}
	if s.WeeklyAverage != 6.5 {
		t.Errorf("WeeklyAverage = %v, want 6.5", s.WeeklyAverage)
	}
	if s.TotalCheckIns != 6 || s.Streak != 1 || len(s.Achievements) != 1 {
		t.Errorf("unexpected summary: %+v", s)
	}
}

func TestEndToEndWithSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "heybuddy.db")
	store := sqlite.NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer store.Close()

	// Seed: streak 3, last check-in yesterday
	if err := store.Set(ctx, constants.KeyStreak, "3"); err != nil {
		t.Fatal(err)
	}
	if err := store.Set(ctx, constants.KeyLastCheckIn, "2024-05-09"); err != nil {
		t.Fatal(err)
	}

	clk := newClock("2024-05-10")
	l := New(store, WithClock(clk.Now), WithLocation(time.UTC))
	if report := l.Load(ctx); !report.OK() {
		t.Fatalf("unexpected fallbacks: %+v", report.Fallbacks)
	}

	if res := l.CheckIn(clk.Now()); res.Streak != 4 {
		t.Fatalf("first check-in streak = %d, want 4", res.Streak)
	}
	if res := l.CheckIn(clk.Now()); res.Streak != 4 || res.Changed {
		t.Fatalf("second check-in = %+v, want unchanged 4", res)
	}

	if _, err := l.RecordMood("2024-05-10", "🤩", 8, ""); err != nil {
		t.Fatal(err)
	}
	if l.Snapshot().TodaysMood != "🤩" {
		t.Error("TodaysMood should be 🤩")
	}
	if avg := l.Summary(clk.Now()).WeeklyAverage; avg != 8 {
		t.Errorf("WeeklyAverage = %v, want 8", avg)
	}

	if err := l.Close(ctx); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reloaded := New(store, WithClock(clk.Now), WithLocation(time.UTC))
	defer reloaded.Close(ctx)
	reloaded.Load(ctx)

	snap := reloaded.Snapshot()
	if snap.Streak != 4 || snap.LastCheckIn != "2024-05-10" || snap.TodaysMood != "🤩" {
		t.Errorf("reloaded snapshot = %+v", snap.WellnessState)
	}
	if e, ok := reloaded.MoodOnDate("2024-05-10"); !ok || e.Intensity != 8 {
		t.Errorf("reloaded mood = %+v, %v", e, ok)
	}
}
