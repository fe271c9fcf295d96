package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/heybuddy/internal/catalog"
	"github.com/julianstephens/heybuddy/internal/ledger"
	"github.com/julianstephens/heybuddy/internal/models"
)

type MoodCmd struct {
	Record MoodRecordCmd `cmd:"" help:"Record how you feel for a day."`
	Show   MoodShowCmd   `cmd:"" help:"Show the mood recorded for a day."`
	List   MoodListCmd   `cmd:"" help:"List recorded moods."`
	Today  MoodTodayCmd  `cmd:"" help:"Set today's mood without adding it to the history."`
}

type MoodRecordCmd struct {
	Mood      string `arg:"" help:"Mood emoji or label (e.g. 😊 or happy)."`
	Intensity *int   `short:"i" help:"Intensity 1-10. Defaults to the mood's own intensity."`
	Date      string `short:"d" help:"Date (YYYY-MM-DD, 'today' or 'yesterday')." default:"today"`
	Note      string `short:"n" help:"Optional note."`
}

// resolve maps the mood argument onto the palette. Emojis outside the
// palette are accepted when an explicit intensity is given.
func (c *MoodRecordCmd) resolve() (string, int, error) {
	if opt, ok := catalog.MoodByEmoji(strings.TrimSpace(c.Mood)); ok {
		if c.Intensity != nil {
			return opt.Emoji, *c.Intensity, nil
		}
		return opt.Emoji, opt.Intensity, nil
	}
	if c.Intensity == nil {
		return "", 0, fmt.Errorf("unknown mood %q, use one of %s or pass --intensity", c.Mood, paletteLabels())
	}
	return strings.TrimSpace(c.Mood), *c.Intensity, nil
}

func (c *MoodRecordCmd) Run(ctx *Context) error {
	emoji, intensity, err := c.resolve()
	if err != nil {
		return err
	}

	return ctx.withLedger(func(bg context.Context, l *ledger.Ledger) error {
		date, err := resolveDay(l, c.Date)
		if err != nil {
			return err
		}
		commit, err := l.RecordMood(date, emoji, intensity, c.Note)
		if err != nil {
			return err
		}
		if err := ctx.wait(bg, commit); err != nil {
			return err
		}
		ctx.printf("✓ Recorded %s (%d/10) for %s\n", emoji, intensity, date)
		return nil
	})
}

type MoodShowCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD, 'today' or 'yesterday')." default:"today"`
}

func (c *MoodShowCmd) Run(ctx *Context) error {
	return ctx.withLedger(func(_ context.Context, l *ledger.Ledger) error {
		date, err := resolveDay(l, c.Date)
		if err != nil {
			return err
		}
		entry, ok := l.MoodOnDate(date)
		if !ok {
			ctx.printf("No mood recorded for %s\n", date)
			return nil
		}
		ctx.println(formatEntry(entry))
		return nil
	})
}

type MoodListCmd struct {
	Last int `short:"l" help:"Only show the most recent N days."`
}

func (c *MoodListCmd) Run(ctx *Context) error {
	return ctx.withLedger(func(_ context.Context, l *ledger.Ledger) error {
		entries := l.MoodEntries()
		if len(entries) == 0 {
			ctx.println("No moods recorded yet")
			return nil
		}

		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Date < entries[j].Date
		})
		if c.Last > 0 && c.Last < len(entries) {
			entries = entries[len(entries)-c.Last:]
		}

		ctx.printf("Moods (%d):\n", len(entries))
		for _, e := range entries {
			ctx.printf("  %s\n", formatEntry(e))
		}
		return nil
	})
}

type MoodTodayCmd struct {
	Mood string `arg:"" help:"Mood emoji or label (e.g. 😊 or happy)."`
}

func (c *MoodTodayCmd) Run(ctx *Context) error {
	emoji := strings.TrimSpace(c.Mood)
	if opt, ok := catalog.MoodByEmoji(emoji); ok {
		emoji = opt.Emoji
	}
	if emoji == "" {
		return fmt.Errorf("mood must not be empty")
	}

	return ctx.withLedger(func(bg context.Context, l *ledger.Ledger) error {
		if err := ctx.wait(bg, l.SetTodaysMood(emoji)); err != nil {
			return err
		}
		ctx.printf("✓ Today's mood set to %s\n", emoji)
		return nil
	})
}

func formatEntry(e models.MoodEntry) string {
	label := ""
	if opt, ok := catalog.MoodByEmoji(e.Emoji); ok {
		label = " " + opt.Label
	}
	line := fmt.Sprintf("%s  %s%s (%d/10)", e.Date, e.Emoji, label, e.Intensity)
	if e.Note != "" {
		line += " - " + e.Note
	}
	return line
}

func paletteLabels() string {
	palette := catalog.MoodPalette()
	labels := make([]string, 0, len(palette))
	for _, m := range palette {
		labels = append(labels, strings.ToLower(m.Label))
	}
	return strings.Join(labels, ", ")
}
