package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	listeningin "studyhub/internal/modules/listening/port/in"
	listeningout "studyhub/internal/modules/listening/port/out"
	apperrors "studyhub/internal/platform/errors"
)

// Opener builds a Player bound to a fresh audio resource for one exercise.
type Opener struct {
	repo   listeningout.ExerciseRepository
	driver listeningout.AudioDriver
	logger hclog.Logger
}

var _ listeningin.Opener = (*Opener)(nil)

func NewOpener(repo listeningout.ExerciseRepository, driver listeningout.AudioDriver, logger hclog.Logger) *Opener {
	return &Opener{repo: repo, driver: driver, logger: logger}
}

func (o *Opener) Open(ctx context.Context, exerciseID string) (listeningin.Session, error) {
	if strings.TrimSpace(exerciseID) == "" {
		return listeningin.Session{}, fmt.Errorf("%w: exercise id is required", apperrors.ErrInvalidInput)
	}
	exercise, err := o.repo.Get(ctx, exerciseID)
	if err != nil {
		return listeningin.Session{}, err
	}
	durations := make(map[string]time.Duration, len(exercise.Sections))
	for _, s := range exercise.Sections {
		durations[s.Audio] = s.Duration
	}
	audio := o.driver(durations)
	player, err := NewPlayer(exercise, audio, o.logger)
	if err != nil {
		return listeningin.Session{}, err
	}
	audio.Attach(player)
	return listeningin.Session{
		Exercise: toExerciseOutput(exercise),
		Player:   player,
		Advance:  audio.Advance,
	}, nil
}
