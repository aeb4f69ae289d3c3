package service

import (
	"strings"

	"studyhub/internal/modules/progress/domain"
)

// SummaryFromCounts fills every category, taking STREAK aside. Unknown keys
// are ignored.
func SummaryFromCounts(raw map[string]int) domain.Summary {
	summary := domain.ZeroSummary()
	for key, v := range raw {
		key = strings.ToUpper(strings.TrimSpace(key))
		if key == domain.StreakKey {
			summary.Streak = v
			summary.HasStreak = true
			continue
		}
		if c, err := domain.ParseCategory(key); err == nil {
			summary.Counts[c] = v
		}
	}
	return summary
}

// DayStreak prefers the dashboard value and falls back to the summary.
func DayStreak(stats domain.DashboardStats, summary domain.Summary) int {
	if stats.DayStreak > 0 {
		return stats.DayStreak
	}
	if summary.HasStreak {
		return summary.Streak
	}
	return 0
}
