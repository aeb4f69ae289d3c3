package usecase

import (
	"errors"
	"fmt"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"studyhub/internal/modules/listening/domain"
	listeningdto "studyhub/internal/modules/listening/dto"
	listeningin "studyhub/internal/modules/listening/port/in"
	listeningout "studyhub/internal/modules/listening/port/out"
	apperrors "studyhub/internal/platform/errors"
)

// Player owns the one audio resource of an exercise. LoadAndMaybePlay is the
// only way to change track, so a switch always stops the previous section
// before the next one is configured. Player is not safe for concurrent use.
type Player struct {
	exercise domain.Exercise
	audio    listeningout.AudioResource
	logger   hclog.Logger

	pb             domain.Playback
	loadedDuration time.Duration
}

var _ listeningin.Player = (*Player)(nil)

func NewPlayer(exercise domain.Exercise, audio listeningout.AudioResource, logger hclog.Logger) (*Player, error) {
	if err := exercise.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Player{
		exercise: exercise,
		audio:    audio,
		logger:   logger.Named("listening").With("exercise", exercise.ID),
		pb:       domain.Playback{SectionID: exercise.Sections[0].ID, State: domain.StateIdle},
	}, nil
}

func (p *Player) LoadAndMaybePlay(sectionID string, autoplay bool) error {
	section, ok := p.exercise.Section(sectionID)
	if !ok {
		return fmt.Errorf("%w: section %s", apperrors.ErrNotFound, sectionID)
	}
	play := p.pb.State == domain.StatePlaying || p.pb.PendingAutoplay || autoplay

	p.audio.Pause()
	p.audio.Seek(0)
	p.pb.SectionID = section.ID
	p.pb.Position = 0
	p.pb.Blocked = false

	if p.audio.Source() != section.Audio {
		p.audio.Load(section.Audio)
		p.loadedDuration = 0
		p.pb.Duration = 0
		p.pb.State = domain.StateLoading
		// Consumed by OnLoadedMetadata.
		p.pb.PendingAutoplay = play
		return nil
	}

	p.pb.Duration = p.loadedDuration
	p.pb.State = domain.StateReady
	p.pb.PendingAutoplay = false
	if play {
		return p.play()
	}
	return nil
}

func (p *Player) TogglePlay() error {
	switch p.pb.State {
	case domain.StateIdle:
		return p.LoadAndMaybePlay(p.pb.SectionID, true)
	case domain.StateLoading:
		p.pb.PendingAutoplay = !p.pb.PendingAutoplay
		return nil
	case domain.StatePlaying:
		p.audio.Pause()
		p.pb.State = domain.StatePaused
		return nil
	case domain.StateFinished:
		p.audio.Seek(0)
		p.pb.Position = 0
		return p.play()
	default:
		return p.play()
	}
}

// Reset rewinds and pauses. It has no effect before the first load or while
// a source is loading.
func (p *Player) Reset() {
	if p.pb.State == domain.StateLoading || p.pb.State == domain.StateIdle {
		return
	}
	p.audio.Pause()
	p.audio.Seek(0)
	p.pb.Position = 0
	p.pb.State = domain.StatePaused
}

// Seek moves within the loaded source. Landing on the end never finishes
// playback; only the resource's end-of-media callback does.
func (p *Player) Seek(position time.Duration) error {
	switch p.pb.State {
	case domain.StateIdle, domain.StateLoading:
		return fmt.Errorf("%w: cannot seek while %s", apperrors.ErrInvalidTransition, p.pb.State)
	}
	if position < 0 {
		position = 0
	}
	if p.pb.Duration > 0 && position > p.pb.Duration {
		position = p.pb.Duration
	}
	p.audio.Seek(position)
	p.pb.Position = position
	if p.pb.State == domain.StateFinished {
		p.pb.State = domain.StatePaused
	}
	return nil
}

func (p *Player) Snapshot() listeningdto.PlaybackOutput {
	return listeningdto.PlaybackOutput{
		ExerciseID:      p.exercise.ID,
		SectionID:       p.pb.SectionID,
		State:           string(p.pb.State),
		Position:        p.pb.Position,
		Duration:        p.pb.Duration,
		PendingAutoplay: p.pb.PendingAutoplay,
		Blocked:         p.pb.Blocked,
	}
}

func (p *Player) OnLoadedMetadata(duration time.Duration) {
	if duration < 0 {
		duration = 0
	}
	p.loadedDuration = duration
	p.pb.Duration = duration
	if p.pb.State != domain.StateLoading {
		return
	}
	p.pb.State = domain.StateReady
	play := p.pb.PendingAutoplay
	p.pb.PendingAutoplay = false
	if play {
		if err := p.play(); err != nil {
			p.logger.Warn("autoplay blocked", "section", p.pb.SectionID, "error", err)
		}
	}
}

func (p *Player) OnTimeUpdate(position time.Duration) {
	switch p.pb.State {
	case domain.StatePlaying, domain.StatePaused:
	default:
		return
	}
	if position < 0 {
		position = 0
	}
	if p.pb.Duration > 0 && position > p.pb.Duration {
		position = p.pb.Duration
	}
	p.pb.Position = position
}

func (p *Player) OnEnded() {
	if p.pb.State != domain.StatePlaying {
		return
	}
	p.pb.State = domain.StateFinished
	p.pb.Position = p.pb.Duration
}

// play leaves the player Paused when the resource refuses, so a manual
// retry goes through the same path.
func (p *Player) play() error {
	if err := p.audio.Play(); err != nil {
		p.pb.State = domain.StatePaused
		p.pb.Blocked = true
		if errors.Is(err, apperrors.ErrPlaybackUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %v", apperrors.ErrPlaybackUnavailable, err)
	}
	p.pb.State = domain.StatePlaying
	p.pb.Blocked = false
	return nil
}
