package dto

type SummaryOutput struct {
	Reading   int
	Listening int
	Writing   int
	Speaking  int
	Streak    int
	HasStreak bool
}

type StatsOutput struct {
	ExercisesCompleted int
	HoursPracticed     float64
	VocabularyWords    int
	TestsCompleted     int
	DayStreak          int
}

type GoalInput struct {
	ReadingMinutesTarget   int
	ListeningMinutesTarget int
	WritingTasksTarget     int
	VocabularyTarget       int
	Completed              bool
}

type GoalOutput struct {
	ID                     int64
	Date                   string
	ReadingMinutesTarget   int
	ListeningMinutesTarget int
	WritingTasksTarget     int
	VocabularyTarget       int
	Completed              bool
}

type ExportOutput struct {
	Path string
}
