package in

import (
	"context"

	listeningdto "studyhub/internal/modules/listening/dto"
	listeningin "studyhub/internal/modules/listening/port/in"
)

// TUIHandler serves the interactive player: it opens exercises and submits
// answers once a section set has been heard.
type TUIHandler struct {
	opener  listeningin.Opener
	usecase listeningin.Usecase
}

func NewTUIHandler(opener listeningin.Opener, usecase listeningin.Usecase) TUIHandler {
	return TUIHandler{opener: opener, usecase: usecase}
}

func (h TUIHandler) Exercises(ctx context.Context) ([]listeningdto.ExerciseOutput, error) {
	return h.usecase.ListExercises(ctx)
}

func (h TUIHandler) Open(ctx context.Context, exerciseID string) (listeningin.Session, error) {
	return h.opener.Open(ctx, exerciseID)
}

func (h TUIHandler) Submit(ctx context.Context, exerciseID string, answers map[string]string) (listeningdto.SubmitOutput, error) {
	return h.usecase.Submit(ctx, listeningdto.SubmitInput{ExerciseID: exerciseID, Answers: answers})
}
