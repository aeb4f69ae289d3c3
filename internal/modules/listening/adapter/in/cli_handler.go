package in

import (
	"context"

	listeningdto "studyhub/internal/modules/listening/dto"
	listeningin "studyhub/internal/modules/listening/port/in"
)

type CLIHandler struct {
	usecase listeningin.Usecase
}

func NewCLIHandler(usecase listeningin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]listeningdto.ExerciseOutput, error) {
	return h.usecase.ListExercises(ctx)
}

func (h CLIHandler) Get(ctx context.Context, id string) (listeningdto.ExerciseOutput, error) {
	return h.usecase.GetExercise(ctx, id)
}

func (h CLIHandler) Submit(ctx context.Context, exerciseID string, answers map[string]string) (listeningdto.SubmitOutput, error) {
	return h.usecase.Submit(ctx, listeningdto.SubmitInput{ExerciseID: exerciseID, Answers: answers})
}
