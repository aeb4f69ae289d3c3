package dto

import "time"

type PlaybackOutput struct {
	ExerciseID      string
	SectionID       string
	State           string
	Position        time.Duration
	Duration        time.Duration
	PendingAutoplay bool
	Blocked         bool
}

type SectionOutput struct {
	ID            string
	Title         string
	Instructions  string
	QuestionCount int
}

type QuestionOutput struct {
	ID     string
	Prompt string
}

type ExerciseOutput struct {
	ID        string
	Title     string
	Level     string
	Sections  []SectionOutput
	Questions []QuestionOutput
}

type SubmitInput struct {
	ExerciseID string
	Answers    map[string]string
}

type SubmitOutput struct {
	Correct int
	Total   int
	Band    float64
}
