package service_test

import (
	"testing"

	"studyhub/internal/modules/progress/domain"
	"studyhub/internal/modules/progress/service"
)

func TestSummaryFromCounts(t *testing.T) {
	t.Parallel()
	summary := service.SummaryFromCounts(map[string]int{"READING": 3, "speaking": 2, "STREAK": 5, "OTHER": 9})
	if summary.Counts[domain.CategoryReading] != 3 || summary.Counts[domain.CategorySpeaking] != 2 {
		t.Fatalf("unexpected counts %v", summary.Counts)
	}
	if _, ok := summary.Counts[domain.CategoryListening]; !ok {
		t.Fatalf("missing categories must be present as zero")
	}
	if !summary.HasStreak || summary.Streak != 5 {
		t.Fatalf("expected streak 5, got %+v", summary)
	}
	if len(summary.Counts) != len(domain.Categories) {
		t.Fatalf("unknown keys must be dropped, got %v", summary.Counts)
	}
}

func TestDayStreakFallback(t *testing.T) {
	t.Parallel()
	summary := domain.Summary{Streak: 4, HasStreak: true}
	if got := service.DayStreak(domain.DashboardStats{DayStreak: 7}, summary); got != 7 {
		t.Fatalf("dashboard streak wins, got %d", got)
	}
	if got := service.DayStreak(domain.DashboardStats{}, summary); got != 4 {
		t.Fatalf("summary streak is the fallback, got %d", got)
	}
	if got := service.DayStreak(domain.DashboardStats{}, domain.Summary{}); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestParseCategory(t *testing.T) {
	t.Parallel()
	if c, err := domain.ParseCategory(" listening "); err != nil || c != domain.CategoryListening {
		t.Fatalf("expected LISTENING, got %q %v", c, err)
	}
	if _, err := domain.ParseCategory("VOCABULARY"); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}
