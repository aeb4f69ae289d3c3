package usecase

import (
	"context"
	"fmt"
	"strings"

	hclog "github.com/hashicorp/go-hclog"

	"studyhub/internal/modules/progress/domain"
	progressdto "studyhub/internal/modules/progress/dto"
	progressin "studyhub/internal/modules/progress/port/in"
	progressout "studyhub/internal/modules/progress/port/out"
	"studyhub/internal/modules/progress/service"
	apperrors "studyhub/internal/platform/errors"
	"studyhub/internal/platform/events"
)

type Interactor struct {
	gateway   progressout.Gateway
	exporter  progressout.Exporter
	publisher events.Publisher
	logger    hclog.Logger
}

var _ progressin.Usecase = (*Interactor)(nil)

func NewInteractor(gateway progressout.Gateway, exporter progressout.Exporter, publisher events.Publisher, logger hclog.Logger) *Interactor {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Interactor{gateway: gateway, exporter: exporter, publisher: publisher, logger: logger.Named("progress")}
}

// ReportCompletion never fails because of the backend: delivery errors are
// logged and dropped. Only an unknown category is returned.
func (i *Interactor) ReportCompletion(ctx context.Context, category string) error {
	c, err := domain.ParseCategory(category)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := i.gateway.Complete(ctx, c); err != nil {
		i.logger.Warn("failed to report progress", "category", string(c), "error", err)
		return nil
	}
	i.logger.Debug("progress reported", "category", string(c))
	if i.publisher != nil {
		i.publisher.Publish(events.ProgressChanged)
	}
	return nil
}

func (i *Interactor) Summary(ctx context.Context) progressdto.SummaryOutput {
	return toSummaryOutput(i.summary(ctx))
}

func (i *Interactor) DashboardStats(ctx context.Context) progressdto.StatsOutput {
	stats, err := i.gateway.DashboardStats(ctx)
	if err != nil {
		i.logger.Warn("failed to fetch dashboard stats", "error", err)
		return progressdto.StatsOutput{}
	}
	return toStatsOutput(stats)
}

func (i *Interactor) TodayGoal(ctx context.Context) (progressdto.GoalOutput, error) {
	goal, err := i.gateway.TodayGoal(ctx)
	if err != nil {
		return progressdto.GoalOutput{}, fmt.Errorf("load today's goal: %w", err)
	}
	return toGoalOutput(goal), nil
}

func (i *Interactor) SetTodayGoal(ctx context.Context, input progressdto.GoalInput) (progressdto.GoalOutput, error) {
	goal := domain.DailyGoal{
		ReadingMinutesTarget:   input.ReadingMinutesTarget,
		ListeningMinutesTarget: input.ListeningMinutesTarget,
		WritingTasksTarget:     input.WritingTasksTarget,
		VocabularyTarget:       input.VocabularyTarget,
		Completed:              input.Completed,
	}
	if err := goal.Validate(); err != nil {
		return progressdto.GoalOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	updated, err := i.gateway.UpdateTodayGoal(ctx, goal)
	if err != nil {
		return progressdto.GoalOutput{}, fmt.Errorf("update today's goal: %w", err)
	}
	return toGoalOutput(updated), nil
}

func (i *Interactor) Export(ctx context.Context, path string) (progressdto.ExportOutput, error) {
	if strings.TrimSpace(path) == "" {
		return progressdto.ExportOutput{}, fmt.Errorf("%w: export path is required", apperrors.ErrInvalidInput)
	}
	summary := i.summary(ctx)
	stats, err := i.gateway.DashboardStats(ctx)
	if err != nil {
		i.logger.Warn("failed to fetch dashboard stats", "error", err)
		stats = domain.DashboardStats{}
	}
	stats.DayStreak = service.DayStreak(stats, summary)
	if err := i.exporter.Export(path, summary, stats); err != nil {
		return progressdto.ExportOutput{}, fmt.Errorf("export progress: %w", err)
	}
	return progressdto.ExportOutput{Path: path}, nil
}

func (i *Interactor) summary(ctx context.Context) domain.Summary {
	summary, err := i.gateway.Summary(ctx)
	if err != nil {
		i.logger.Warn("failed to fetch progress summary", "error", err)
		return domain.ZeroSummary()
	}
	return summary
}

func toSummaryOutput(s domain.Summary) progressdto.SummaryOutput {
	return progressdto.SummaryOutput{
		Reading:   s.Counts[domain.CategoryReading],
		Listening: s.Counts[domain.CategoryListening],
		Writing:   s.Counts[domain.CategoryWriting],
		Speaking:  s.Counts[domain.CategorySpeaking],
		Streak:    s.Streak,
		HasStreak: s.HasStreak,
	}
}

func toStatsOutput(s domain.DashboardStats) progressdto.StatsOutput {
	return progressdto.StatsOutput{
		ExercisesCompleted: s.ExercisesCompleted,
		HoursPracticed:     s.HoursPracticed,
		VocabularyWords:    s.VocabularyWords,
		TestsCompleted:     s.TestsCompleted,
		DayStreak:          s.DayStreak,
	}
}

func toGoalOutput(g domain.DailyGoal) progressdto.GoalOutput {
	out := progressdto.GoalOutput{
		ReadingMinutesTarget:   g.ReadingMinutesTarget,
		ListeningMinutesTarget: g.ListeningMinutesTarget,
		WritingTasksTarget:     g.WritingTasksTarget,
		VocabularyTarget:       g.VocabularyTarget,
		Completed:              g.Completed,
	}
	if g.ID != nil {
		out.ID = *g.ID
	}
	if g.Date != nil {
		out.Date = *g.Date
	}
	return out
}
