package in

import (
	"context"

	progressdto "studyhub/internal/modules/progress/dto"
	progressin "studyhub/internal/modules/progress/port/in"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Complete(ctx context.Context, category string) error {
	return h.usecase.ReportCompletion(ctx, category)
}

func (h CLIHandler) Summary(ctx context.Context) progressdto.SummaryOutput {
	return h.usecase.Summary(ctx)
}

func (h CLIHandler) Stats(ctx context.Context) progressdto.StatsOutput {
	return h.usecase.DashboardStats(ctx)
}

func (h CLIHandler) TodayGoal(ctx context.Context) (progressdto.GoalOutput, error) {
	return h.usecase.TodayGoal(ctx)
}

func (h CLIHandler) SetTodayGoal(ctx context.Context, input progressdto.GoalInput) (progressdto.GoalOutput, error) {
	return h.usecase.SetTodayGoal(ctx, input)
}

func (h CLIHandler) Export(ctx context.Context, path string) (progressdto.ExportOutput, error) {
	return h.usecase.Export(ctx, path)
}
