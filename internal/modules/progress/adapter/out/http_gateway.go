package out

import (
	"context"

	"studyhub/internal/modules/progress/domain"
	"studyhub/internal/modules/progress/service"
	"studyhub/internal/platform/httpapi"
)

type HTTPGateway struct {
	client *httpapi.Client
}

func NewHTTPGateway(client *httpapi.Client) *HTTPGateway {
	return &HTTPGateway{client: client}
}

func (g *HTTPGateway) Complete(ctx context.Context, category domain.Category) error {
	return g.client.Post(ctx, "/progress/complete", map[string]string{"contentType": string(category)}, nil)
}

func (g *HTTPGateway) Summary(ctx context.Context) (domain.Summary, error) {
	var raw map[string]int
	if err := g.client.Get(ctx, "/progress/summary", &raw); err != nil {
		return domain.Summary{}, err
	}
	return service.SummaryFromCounts(raw), nil
}

// statsWire accepts both the server field names and the older client names.
type statsWire struct {
	ExercisesCompleted float64 `json:"exercisesCompleted"`
	CompletedExercises float64 `json:"completedExercises"`
	HoursPracticed     float64 `json:"hoursPracticed"`
	PracticeTimeHours  float64 `json:"practiceTimeHours"`
	VocabularyWords    float64 `json:"vocabularyWords"`
	TestsCompleted     float64 `json:"testsCompleted"`
	DayStreak          float64 `json:"dayStreak"`
}

func (g *HTTPGateway) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	var wire statsWire
	if err := g.client.Get(ctx, "/progress/dashboard-stats", &wire); err != nil {
		return domain.DashboardStats{}, err
	}
	return domain.DashboardStats{
		ExercisesCompleted: int(firstNonZero(wire.ExercisesCompleted, wire.CompletedExercises)),
		HoursPracticed:     firstNonZero(wire.HoursPracticed, wire.PracticeTimeHours),
		VocabularyWords:    int(wire.VocabularyWords),
		TestsCompleted:     int(wire.TestsCompleted),
		DayStreak:          int(wire.DayStreak),
	}, nil
}

func (g *HTTPGateway) TodayGoal(ctx context.Context) (domain.DailyGoal, error) {
	var goal domain.DailyGoal
	err := g.client.Get(ctx, "/goals/today", &goal)
	return goal, err
}

func (g *HTTPGateway) UpdateTodayGoal(ctx context.Context, goal domain.DailyGoal) (domain.DailyGoal, error) {
	var updated domain.DailyGoal
	if err := g.client.Put(ctx, "/goals/today", goal, &updated); err != nil {
		return domain.DailyGoal{}, err
	}
	return updated, nil
}

func firstNonZero(values ...float64) float64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
