package usecase

import (
	"context"
	"fmt"
	"strings"

	hclog "github.com/hashicorp/go-hclog"

	"studyhub/internal/modules/listening/domain"
	listeningdto "studyhub/internal/modules/listening/dto"
	listeningin "studyhub/internal/modules/listening/port/in"
	listeningout "studyhub/internal/modules/listening/port/out"
	"studyhub/internal/modules/listening/service"
	apperrors "studyhub/internal/platform/errors"
)

const completionCategory = "LISTENING"

type Interactor struct {
	repo     listeningout.ExerciseRepository
	notifier listeningout.Notifier
	reporter listeningout.CompletionReporter
	logger   hclog.Logger
}

var _ listeningin.Usecase = (*Interactor)(nil)

func NewInteractor(repo listeningout.ExerciseRepository, notifier listeningout.Notifier, reporter listeningout.CompletionReporter, logger hclog.Logger) *Interactor {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Interactor{repo: repo, notifier: notifier, reporter: reporter, logger: logger.Named("listening")}
}

func (i *Interactor) ListExercises(ctx context.Context) ([]listeningdto.ExerciseOutput, error) {
	exercises, err := i.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]listeningdto.ExerciseOutput, 0, len(exercises))
	for _, e := range exercises {
		out = append(out, toExerciseOutput(e))
	}
	return out, nil
}

func (i *Interactor) GetExercise(ctx context.Context, id string) (listeningdto.ExerciseOutput, error) {
	exercise, err := i.repo.Get(ctx, strings.TrimSpace(id))
	if err != nil {
		return listeningdto.ExerciseOutput{}, err
	}
	return toExerciseOutput(exercise), nil
}

// Submit grades the answers locally. The notification and the completion
// report are best effort and never fail the submission.
func (i *Interactor) Submit(ctx context.Context, input listeningdto.SubmitInput) (listeningdto.SubmitOutput, error) {
	if strings.TrimSpace(input.ExerciseID) == "" {
		return listeningdto.SubmitOutput{}, fmt.Errorf("%w: exercise id is required", apperrors.ErrInvalidInput)
	}
	exercise, err := i.repo.Get(ctx, input.ExerciseID)
	if err != nil {
		return listeningdto.SubmitOutput{}, err
	}
	result := service.Grade(exercise, input.Answers)

	if i.notifier != nil {
		if err := i.notifier.Notify(ctx, "Completed listening: "+exercise.Title, "listening"); err != nil {
			i.logger.Warn("record completion notification", "error", err)
		}
	}
	if i.reporter != nil {
		if err := i.reporter.ReportCompletion(ctx, completionCategory); err != nil {
			i.logger.Warn("report completion", "error", err)
		}
	}
	return listeningdto.SubmitOutput{Correct: result.Correct, Total: result.Total, Band: result.Band}, nil
}

func toExerciseOutput(e domain.Exercise) listeningdto.ExerciseOutput {
	out := listeningdto.ExerciseOutput{ID: e.ID, Title: e.Title, Level: e.Level}
	for _, s := range e.Sections {
		out.Sections = append(out.Sections, listeningdto.SectionOutput{
			ID:            s.ID,
			Title:         s.Title,
			Instructions:  s.Instructions,
			QuestionCount: len(s.Questions),
		})
		for _, q := range s.Questions {
			out.Questions = append(out.Questions, listeningdto.QuestionOutput{ID: q.ID, Prompt: q.Prompt})
		}
	}
	return out
}
