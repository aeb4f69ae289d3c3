package out

import (
	"context"

	"studyhub/internal/modules/progress/domain"
)

type Gateway interface {
	Complete(ctx context.Context, category domain.Category) error
	Summary(ctx context.Context) (domain.Summary, error)
	DashboardStats(ctx context.Context) (domain.DashboardStats, error)
	TodayGoal(ctx context.Context) (domain.DailyGoal, error)
	UpdateTodayGoal(ctx context.Context, goal domain.DailyGoal) (domain.DailyGoal, error)
}

type Exporter interface {
	Export(path string, summary domain.Summary, stats domain.DashboardStats) error
}
