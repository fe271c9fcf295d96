package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/heybuddy/internal/calendar"
	"github.com/julianstephens/heybuddy/internal/ledger"
	"github.com/julianstephens/heybuddy/internal/stats"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	return ctx.withLedger(func(_ context.Context, l *ledger.Ledger) error {
		s := l.Summary(ctx.now())

		ctx.printf("🔥 Streak:          %s\n", s.StreakMessage)
		ctx.printf("                    %s\n", s.StreakDescription)
		ctx.printf("📊 Weekly average:  %.1f/10\n", s.WeeklyAverage)
		ctx.printf("%s Trend:           %s (%s)\n", stats.TrendEmoji(s.Trend), s.Trend, stats.TrendDescription(s.Trend))
		ctx.printf("✅ Check-ins:       %d\n", s.TotalCheckIns)

		if len(s.Achievements) == 0 {
			ctx.println("🏆 Achievements:    none yet, keep going!")
			return nil
		}
		ctx.println("🏆 Achievements:")
		for _, a := range s.Achievements {
			ctx.printf("   %s %s\n", a.Emoji, a.Title)
		}
		return nil
	})
}

type CalendarCmd struct {
	Month string `short:"m" help:"Month to show (YYYY-MM). Defaults to the current month."`
}

func (c *CalendarCmd) Run(ctx *Context) error {
	return ctx.withLedger(func(_ context.Context, l *ledger.Ledger) error {
		today := l.Today()
		year, month, err := calendar.ParseMonth(today[:7])
		if err != nil {
			return err
		}
		if c.Month != "" {
			if year, month, err = calendar.ParseMonth(c.Month); err != nil {
				return err
			}
		}

		grid := calendar.Month(year, month, l.MoodEntries(), today)
		ctx.print(renderGrid(grid))
		return nil
	})
}

// renderGrid draws the month as text: each cell is the day number followed
// by the recorded emoji, with today marked by an asterisk when empty.
func renderGrid(g calendar.Grid) string {
	var b strings.Builder
	b.WriteString(g.Title() + "\n")
	for _, wd := range calendar.Weekdays {
		b.WriteString(" " + wd + " ")
	}
	b.WriteString("\n")

	for _, week := range g.Weeks {
		for _, cell := range week {
			b.WriteString(renderCell(cell))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(recordedLine(g.Recorded()))
	return b.String()
}

func renderCell(c calendar.Cell) string {
	if c.Blank() {
		return "     "
	}
	mark := "  "
	switch {
	case c.Mood != nil:
		// emoji are two columns wide
		mark = c.Mood.Emoji
	case c.IsToday:
		mark = "* "
	}
	return fmt.Sprintf("%2d%s ", c.Day, mark)
}

func recordedLine(n int) string {
	if n == 1 {
		return "1 day recorded\n"
	}
	return fmt.Sprintf("%d days recorded\n", n)
}
