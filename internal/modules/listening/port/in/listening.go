package in

import (
	"context"
	"time"

	"studyhub/internal/modules/listening/dto"
)

// Player drives one exercise's playback. Calls come from a single goroutine.
type Player interface {
	LoadAndMaybePlay(sectionID string, autoplay bool) error
	TogglePlay() error
	Reset()
	Seek(position time.Duration) error
	Snapshot() dto.PlaybackOutput

	OnLoadedMetadata(duration time.Duration)
	OnTimeUpdate(position time.Duration)
	OnEnded()
}

type Usecase interface {
	ListExercises(ctx context.Context) ([]dto.ExerciseOutput, error)
	GetExercise(ctx context.Context, id string) (dto.ExerciseOutput, error)
	Submit(ctx context.Context, input dto.SubmitInput) (dto.SubmitOutput, error)
}

// Session is an opened exercise: its player and the clock driving its audio.
type Session struct {
	Exercise dto.ExerciseOutput
	Player   Player
	Advance  func(elapsed time.Duration)
}

type Opener interface {
	Open(ctx context.Context, exerciseID string) (Session, error)
}
