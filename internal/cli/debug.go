package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/heybuddy/internal/ledger"
	"github.com/julianstephens/heybuddy/internal/models"
	"github.com/julianstephens/heybuddy/internal/storage"
)

type DebugCmd struct {
	DBPath DebugDBPathCmd `cmd:"" help:"Show the storage location."`
	Dump   DebugDumpCmd   `cmd:"" help:"Dump the wellness state as JSON."`
	Raw    DebugRawCmd    `cmd:"" help:"Dump the raw stored value of a key."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *Context) error {
	output := map[string]string{
		"kind": string(storage.DetectKind(ctx.Store.GetConfigPath())),
		"path": ctx.Store.GetConfigPath(),
	}
	return ctx.printJSON(output)
}

type DebugDumpCmd struct{}

type dump struct {
	Today       string             `json:"today"`
	Streak      int                `json:"streak"`
	LastCheckIn string             `json:"lastCheckInDate"`
	Buddy       string             `json:"buddy"`
	MedsTaken   *bool              `json:"medsTaken"`
	TodaysMood  string             `json:"todaysMood"`
	MoodEntries []models.MoodEntry `json:"moodEntries"`
	MoodHistory []models.MoodEntry `json:"moodHistory,omitempty"`
	Fallbacks   []ledger.Fallback  `json:"fallbacks,omitempty"`
}

func (cmd *DebugDumpCmd) Run(ctx *Context) error {
	bg := context.Background()
	l, report, err := ctx.OpenLedger(bg)
	if err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	defer ctx.CloseLedger(l)

	// SQL backends keep a date-ordered mirror of the mood array
	var history []models.MoodEntry
	if r, ok := ctx.Store.(storage.MoodHistoryReader); ok {
		if history, err = r.MoodHistory(bg); err != nil {
			return fmt.Errorf("failed to read mood history: %w", err)
		}
	}

	snap := l.Snapshot()
	return ctx.printJSON(dump{
		Today:       snap.Today,
		Streak:      snap.Streak,
		LastCheckIn: snap.LastCheckIn,
		Buddy:       snap.Buddy.ID,
		MedsTaken:   snap.MedsTaken,
		TodaysMood:  snap.TodaysMood,
		MoodEntries: snap.MoodEntries,
		MoodHistory: history,
		Fallbacks:   report.Fallbacks,
	})
}

type DebugRawCmd struct {
	Key string `arg:"" help:"Storage key, e.g. moodEntries."`
}

func (cmd *DebugRawCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	value, err := ctx.Store.Get(context.Background(), cmd.Key)
	if err != nil {
		return fmt.Errorf("failed to get %q: %w", cmd.Key, err)
	}
	ctx.println(value)
	return nil
}

func (c *Context) printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	c.println(string(jsonBytes))
	return nil
}
