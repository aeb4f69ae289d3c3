package domain

import (
	"fmt"
	"strings"
)

type Category string

const (
	CategoryReading   Category = "READING"
	CategoryListening Category = "LISTENING"
	CategoryWriting   Category = "WRITING"
	CategorySpeaking  Category = "SPEAKING"
)

// StreakKey is the optional summary entry holding the day streak.
const StreakKey = "STREAK"

var Categories = []Category{CategoryReading, CategoryListening, CategoryWriting, CategorySpeaking}

func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(raw)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", raw)
}

// Summary counts completions per category. Streak is only set when the
// backend reports one.
type Summary struct {
	Counts    map[Category]int
	Streak    int
	HasStreak bool
}

func ZeroSummary() Summary {
	counts := make(map[Category]int, len(Categories))
	for _, c := range Categories {
		counts[c] = 0
	}
	return Summary{Counts: counts}
}

type DashboardStats struct {
	ExercisesCompleted int
	HoursPracticed     float64
	VocabularyWords    int
	TestsCompleted     int
	DayStreak          int
}

type DailyGoal struct {
	ID                     *int64  `json:"id,omitempty"`
	Date                   *string `json:"date,omitempty"`
	ReadingMinutesTarget   int     `json:"readingMinutesTarget"`
	ListeningMinutesTarget int     `json:"listeningMinutesTarget"`
	WritingTasksTarget     int     `json:"writingTasksTarget"`
	VocabularyTarget       int     `json:"vocabularyTarget"`
	Completed              bool    `json:"completed"`
}

func (g DailyGoal) Validate() error {
	if g.ReadingMinutesTarget < 0 || g.ListeningMinutesTarget < 0 || g.WritingTasksTarget < 0 || g.VocabularyTarget < 0 {
		return fmt.Errorf("goal targets must be non-negative")
	}
	return nil
}
