// Package calendar lays out a month of mood entries as a Sunday-first grid.
package calendar

import (
	"fmt"
	"time"

	"github.com/julianstephens/heybuddy/internal/constants"
	"github.com/julianstephens/heybuddy/internal/models"
)

// Cell is one day of the grid. Blank cells pad the first and last week and
// have Day == 0.
type Cell struct {
	Day     int
	Date    string
	Mood    *models.MoodEntry
	IsToday bool
}

// Blank reports whether the cell is padding.
func (c Cell) Blank() bool {
	return c.Day == 0
}

// Grid is a month split into weeks of seven cells
type Grid struct {
	Year  int
	Month time.Month
	Weeks [][7]Cell
}

// Weekdays are the column headers, Sunday first.
var Weekdays = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Month builds the grid for year/month, attaching the entry recorded on each
// day and flagging today (YYYY-MM-DD).
func Month(year int, month time.Month, entries []models.MoodEntry, today string) Grid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	// Normalise overflowed months such as 13 or 0
	year, month = first.Year(), first.Month()
	daysInMonth := first.AddDate(0, 1, -1).Day()

	byDate := make(map[string]models.MoodEntry, len(entries))
	for _, e := range entries {
		byDate[e.Date] = e
	}

	g := Grid{Year: year, Month: month}
	var week [7]Cell
	col := int(first.Weekday())
	for day := 1; day <= daysInMonth; day++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
		cell := Cell{Day: day, Date: date, IsToday: date == today}
		if e, ok := byDate[date]; ok {
			cell.Mood = &e
		}
		week[col] = cell
		col++
		if col == 7 {
			g.Weeks = append(g.Weeks, week)
			week = [7]Cell{}
			col = 0
		}
	}
	if col > 0 {
		g.Weeks = append(g.Weeks, week)
	}
	return g
}

// ParseMonth reads a YYYY-MM value.
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse(constants.MonthFormat, s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q: expected YYYY-MM", s)
	}
	return t.Year(), t.Month(), nil
}

// Title is the month heading, e.g. "May 2024".
func (g Grid) Title() string {
	return fmt.Sprintf("%s %d", g.Month, g.Year)
}

// Prev returns the year and month before the grid's.
func (g Grid) Prev() (int, time.Month) {
	t := time.Date(g.Year, g.Month-1, 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

// Next returns the year and month after the grid's.
func (g Grid) Next() (int, time.Month) {
	t := time.Date(g.Year, g.Month+1, 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

// Recorded counts the days of the grid that carry a mood.
func (g Grid) Recorded() int {
	n := 0
	for _, w := range g.Weeks {
		for _, c := range w {
			if c.Mood != nil {
				n++
			}
		}
	}
	return n
}
