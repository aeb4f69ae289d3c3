package service

import (
	"strings"

	"studyhub/internal/modules/listening/domain"
	scoredomain "studyhub/internal/modules/score/domain"
)

type Result struct {
	Correct int
	Total   int
	Band    float64
}

// Grade compares answers case-insensitively after trimming. The band scales
// the result onto a full paper.
func Grade(exercise domain.Exercise, answers map[string]string) Result {
	questions := exercise.Questions()
	correct := 0
	for _, q := range questions {
		if normalize(answers[q.ID]) == normalize(q.Answer) && normalize(q.Answer) != "" {
			correct++
		}
	}
	return Result{
		Correct: correct,
		Total:   len(questions),
		Band:    scoredomain.BandFromCorrect(correct, len(questions)),
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
