package out

import (
	"studyhub/internal/modules/progress/domain"
	"studyhub/internal/platform/sheet"
)

type XLSXExporter struct{}

func (XLSXExporter) Export(path string, summary domain.Summary, stats domain.DashboardStats) error {
	rows := make([][]any, 0, len(domain.Categories)+1)
	for _, c := range domain.Categories {
		rows = append(rows, []any{string(c), summary.Counts[c]})
	}
	if summary.HasStreak {
		rows = append(rows, []any{domain.StreakKey, summary.Streak})
	}
	return sheet.Write(path,
		sheet.Table{Name: "Summary", Header: []string{"Category", "Completed"}, Rows: rows},
		sheet.Table{Name: "Dashboard", Header: []string{"Metric", "Value"}, Rows: [][]any{
			{"Exercises completed", stats.ExercisesCompleted},
			{"Hours practiced", stats.HoursPracticed},
			{"Vocabulary words", stats.VocabularyWords},
			{"Tests completed", stats.TestsCompleted},
			{"Day streak", stats.DayStreak},
		}},
	)
}
