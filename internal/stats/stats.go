// Package stats derives read-only statistics from the mood history. Nothing here
// is cached: every call recomputes from the entries it is given.
package stats

import (
	"math"
	"sort"

	"github.com/julianstephens/heybuddy/internal/constants"
	"github.com/julianstephens/heybuddy/internal/models"
	"github.com/julianstephens/heybuddy/internal/utils"
)

// WeeklyAverage returns the mean intensity of entries dated on or after
// today minus seven days, rounded half-up to one decimal. It is 0 when no
// entry falls in the window.
func WeeklyAverage(entries []models.MoodEntry, today string) float64 {
	cutoff, err := utils.AddDays(today, -constants.WeeklyWindowDays)
	if err != nil {
		return 0
	}

	sum, count := 0, 0
	for _, e := range entries {
		if e.Date >= cutoff {
			sum += e.Intensity
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return roundTenths(float64(sum) / float64(count))
}

// Trend compares the mean intensity of the last three entries against the
// three before them. With the insertion order the windows follow arrival order;
// with the date order entries are sorted by date first.
func Trend(entries []models.MoodEntry, order constants.TrendOrder) models.Trend {
	if len(entries) < 2 {
		return models.TrendStable
	}

	ordered := entries
	if order == constants.TrendOrderDate {
		ordered = append([]models.MoodEntry(nil), entries...)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Date < ordered[j].Date
		})
	}

	n := len(ordered)
	w := constants.TrendWindowSize
	recent := ordered[max(0, n-w):]
	prior := ordered[max(0, n-2*w):max(0, n-w)]

	// An empty prior window has no mean to compare against
	if len(prior) == 0 {
		return models.TrendStable
	}

	recentMean := meanIntensity(recent)
	priorMean := meanIntensity(prior)

	switch {
	case recentMean > priorMean+constants.TrendThreshold:
		return models.TrendImproving
	case recentMean < priorMean-constants.TrendThreshold:
		return models.TrendDeclining
	default:
		return models.TrendStable
	}
}

// TotalCheckIns counts recorded mood days.
func TotalCheckIns(entries []models.MoodEntry) int {
	return len(entries)
}

func meanIntensity(entries []models.MoodEntry) float64 {
	sum := 0
	for _, e := range entries {
		sum += e.Intensity
	}
	return float64(sum) / float64(len(entries))
}

func roundTenths(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
