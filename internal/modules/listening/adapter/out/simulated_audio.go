package out

import (
	"fmt"
	"sync"
	"time"

	listeningout "studyhub/internal/modules/listening/port/out"
	apperrors "studyhub/internal/platform/errors"
)

var _ listeningout.DrivenAudio = (*SimulatedAudio)(nil)

// NewSimulatedDriver adapts NewSimulatedAudio to the driver factory port.
func NewSimulatedDriver(durations map[string]time.Duration) listeningout.DrivenAudio {
	return NewSimulatedAudio(durations)
}

// SimulatedAudio is a playback resource without an audio device: time only
// moves when Advance is called, typically from the UI tick. Durations come
// from the exercise manifest.
type SimulatedAudio struct {
	mu        sync.Mutex
	durations map[string]time.Duration
	listener  listeningout.PlaybackEvents
	blocked   bool

	source   string
	loaded   bool
	playing  bool
	position time.Duration
}

func NewSimulatedAudio(durations map[string]time.Duration) *SimulatedAudio {
	copied := make(map[string]time.Duration, len(durations))
	for k, v := range durations {
		copied[k] = v
	}
	return &SimulatedAudio{durations: copied}
}

func (a *SimulatedAudio) Attach(l listeningout.PlaybackEvents) {
	a.mu.Lock()
	a.listener = l
	a.mu.Unlock()
}

// Block makes Play fail, the way an environment that forbids autoplay does.
func (a *SimulatedAudio) Block(blocked bool) {
	a.mu.Lock()
	a.blocked = blocked
	a.mu.Unlock()
}

func (a *SimulatedAudio) Source() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.source
}

func (a *SimulatedAudio) Load(source string) {
	a.mu.Lock()
	a.source = source
	a.loaded = false
	a.playing = false
	a.position = 0
	a.mu.Unlock()
}

func (a *SimulatedAudio) Play() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.blocked {
		return apperrors.ErrPlaybackUnavailable
	}
	if a.source == "" {
		return fmt.Errorf("%w: no source loaded", apperrors.ErrPlaybackUnavailable)
	}
	a.playing = true
	return nil
}

func (a *SimulatedAudio) Pause() {
	a.mu.Lock()
	a.playing = false
	a.mu.Unlock()
}

func (a *SimulatedAudio) Seek(position time.Duration) {
	a.mu.Lock()
	a.position = position
	a.mu.Unlock()
}

func (a *SimulatedAudio) Playing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.playing
}

// Advance moves the clock by elapsed. A pending load completes first and
// consumes the step. Callbacks run after the internal lock is released.
func (a *SimulatedAudio) Advance(elapsed time.Duration) {
	a.mu.Lock()
	listener := a.listener
	if a.source == "" {
		a.mu.Unlock()
		return
	}
	if !a.loaded {
		a.loaded = true
		duration := a.durations[a.source]
		a.mu.Unlock()
		if listener != nil {
			listener.OnLoadedMetadata(duration)
		}
		return
	}
	if !a.playing {
		a.mu.Unlock()
		return
	}
	duration := a.durations[a.source]
	a.position += elapsed
	ended := duration > 0 && a.position >= duration
	if ended {
		a.position = duration
		a.playing = false
	}
	position := a.position
	a.mu.Unlock()

	if listener == nil {
		return
	}
	listener.OnTimeUpdate(position)
	if ended {
		listener.OnEnded()
	}
}
