package in

import (
	"context"

	"studyhub/internal/modules/progress/dto"
)

type Usecase interface {
	ReportCompletion(ctx context.Context, category string) error
	Summary(ctx context.Context) dto.SummaryOutput
	DashboardStats(ctx context.Context) dto.StatsOutput
	TodayGoal(ctx context.Context) (dto.GoalOutput, error)
	SetTodayGoal(ctx context.Context, input dto.GoalInput) (dto.GoalOutput, error)
	Export(ctx context.Context, path string) (dto.ExportOutput, error)
}
