package out

import (
	"context"
	"time"

	"studyhub/internal/modules/listening/domain"
)

// AudioResource is the single playback handle of an open exercise. Load is
// asynchronous: the resource later reports metadata, time updates and the
// end of media through the player callbacks.
type AudioResource interface {
	Source() string
	Load(source string)
	Play() error
	Pause()
	Seek(position time.Duration)
}

type ExerciseRepository interface {
	List(ctx context.Context) ([]domain.Exercise, error)
	Get(ctx context.Context, id string) (domain.Exercise, error)
}

type Notifier interface {
	Notify(ctx context.Context, message, notificationType string) error
}

type CompletionReporter interface {
	ReportCompletion(ctx context.Context, category string) error
}

// PlaybackEvents are the callbacks an audio resource raises.
type PlaybackEvents interface {
	OnLoadedMetadata(duration time.Duration)
	OnTimeUpdate(position time.Duration)
	OnEnded()
}

// DrivenAudio is a resource whose clock is advanced by the caller.
type DrivenAudio interface {
	AudioResource
	Attach(events PlaybackEvents)
	Advance(elapsed time.Duration)
}

// AudioDriver builds a resource for the given per-source durations.
type AudioDriver func(durations map[string]time.Duration) DrivenAudio
