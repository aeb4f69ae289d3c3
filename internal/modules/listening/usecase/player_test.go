package usecase_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	listeningout "studyhub/internal/modules/listening/adapter/out"
	"studyhub/internal/modules/listening/domain"
	"studyhub/internal/modules/listening/usecase"
	apperrors "studyhub/internal/platform/errors"
)

type fakeAudio struct {
	source  string
	playing bool
	blocked bool
	calls   []string
}

func (f *fakeAudio) Source() string { return f.source }

func (f *fakeAudio) Load(source string) {
	f.calls = append(f.calls, "load "+source)
	f.source = source
	f.playing = false
}

func (f *fakeAudio) Play() error {
	f.calls = append(f.calls, "play")
	if f.blocked {
		return apperrors.ErrPlaybackUnavailable
	}
	f.playing = true
	return nil
}

func (f *fakeAudio) Pause() {
	f.calls = append(f.calls, "pause")
	f.playing = false
}

func (f *fakeAudio) Seek(position time.Duration) {
	f.calls = append(f.calls, fmt.Sprintf("seek %s", position))
}

func exercise() domain.Exercise {
	return domain.Exercise{ID: "marine", Title: "Marine", Sections: []domain.Section{
		{ID: "s1", Audio: "one.mp3"},
		{ID: "s2", Audio: "two.mp3"},
		{ID: "s2b", Audio: "two.mp3"},
	}}
}

func newPlayer(t *testing.T, audio *fakeAudio) *usecase.Player {
	t.Helper()
	p, err := usecase.NewPlayer(exercise(), audio, nil)
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	return p
}

func startPlaying(t *testing.T, p *usecase.Player) {
	t.Helper()
	if err := p.TogglePlay(); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	p.OnLoadedMetadata(4 * time.Minute)
	if got := p.Snapshot().State; got != string(domain.StatePlaying) {
		t.Fatalf("expected playing after load, got %s", got)
	}
}

func TestSwitchWhilePlayingRestartsNewSectionFromZero(t *testing.T) {
	t.Parallel()
	audio := &fakeAudio{}
	p := newPlayer(t, audio)
	startPlaying(t, p)
	p.OnTimeUpdate(90 * time.Second)

	audio.calls = nil
	if err := p.LoadAndMaybePlay("s2", false); err != nil {
		t.Fatalf("switch: %v", err)
	}
	if audio.playing {
		t.Fatalf("previous section must be stopped before the new one loads")
	}
	want := []string{"pause", "seek 0s", "load two.mp3"}
	if fmt.Sprint(audio.calls) != fmt.Sprint(want) {
		t.Fatalf("expected %v, got %v", want, audio.calls)
	}
	snap := p.Snapshot()
	if snap.State != string(domain.StateLoading) || snap.Position != 0 || snap.Duration != 0 || !snap.PendingAutoplay {
		t.Fatalf("unexpected snapshot while loading %+v", snap)
	}

	p.OnLoadedMetadata(3 * time.Minute)
	snap = p.Snapshot()
	if snap.State != string(domain.StatePlaying) || snap.SectionID != "s2" || snap.Position != 0 || snap.Duration != 3*time.Minute {
		t.Fatalf("new section should play from zero, got %+v", snap)
	}
	if snap.PendingAutoplay {
		t.Fatalf("autoplay flag must be consumed")
	}
}

func TestSwitchWhilePausedStaysPaused(t *testing.T) {
	t.Parallel()
	audio := &fakeAudio{}
	p := newPlayer(t, audio)
	startPlaying(t, p)
	_ = p.TogglePlay()

	if err := p.LoadAndMaybePlay("s2", false); err != nil {
		t.Fatalf("switch: %v", err)
	}
	p.OnLoadedMetadata(time.Minute)
	if snap := p.Snapshot(); snap.State != string(domain.StateReady) || audio.playing {
		t.Fatalf("expected ready and silent, got %+v", snap)
	}
}

func TestAutoplayRequestPlaysAfterLoad(t *testing.T) {
	t.Parallel()
	audio := &fakeAudio{}
	p := newPlayer(t, audio)
	if err := p.LoadAndMaybePlay("s2", true); err != nil {
		t.Fatalf("switch: %v", err)
	}
	if audio.playing {
		t.Fatalf("must not play before metadata")
	}
	p.OnLoadedMetadata(time.Minute)
	if !audio.playing || p.Snapshot().State != string(domain.StatePlaying) {
		t.Fatalf("expected playback after load")
	}
}

func TestSameSourceIsNotReloaded(t *testing.T) {
	t.Parallel()
	audio := &fakeAudio{}
	p := newPlayer(t, audio)
	_ = p.LoadAndMaybePlay("s2", true)
	p.OnLoadedMetadata(2 * time.Minute)
	p.OnTimeUpdate(40 * time.Second)

	audio.calls = nil
	if err := p.LoadAndMaybePlay("s2b", false); err != nil {
		t.Fatalf("switch: %v", err)
	}
	for _, c := range audio.calls {
		if c == "load two.mp3" {
			t.Fatalf("same source must not reload: %v", audio.calls)
		}
	}
	snap := p.Snapshot()
	if snap.State != string(domain.StatePlaying) || snap.Position != 0 || snap.Duration != 2*time.Minute {
		t.Fatalf("expected immediate playback from zero, got %+v", snap)
	}
}

func TestBlockedAutoplayLeavesPausedAndClearsFlag(t *testing.T) {
	t.Parallel()
	audio := &fakeAudio{blocked: true}
	p := newPlayer(t, audio)
	_ = p.LoadAndMaybePlay("s1", true)
	p.OnLoadedMetadata(time.Minute)
	snap := p.Snapshot()
	if snap.State != string(domain.StatePaused) || !snap.Blocked || snap.PendingAutoplay {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	if err := p.TogglePlay(); !errors.Is(err, apperrors.ErrPlaybackUnavailable) {
		t.Fatalf("expected playback unavailable, got %v", err)
	}
	audio.blocked = false
	if err := p.TogglePlay(); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if snap := p.Snapshot(); snap.State != string(domain.StatePlaying) || snap.Blocked {
		t.Fatalf("retry should play, got %+v", snap)
	}
}

func TestResetRewindsExceptWhileLoading(t *testing.T) {
	t.Parallel()
	audio := &fakeAudio{}
	p := newPlayer(t, audio)
	startPlaying(t, p)
	p.OnTimeUpdate(time.Minute)
	p.Reset()
	if snap := p.Snapshot(); snap.State != string(domain.StatePaused) || snap.Position != 0 || audio.playing {
		t.Fatalf("reset should pause at zero, got %+v", snap)
	}

	_ = p.LoadAndMaybePlay("s2", true)
	p.Reset()
	if snap := p.Snapshot(); snap.State != string(domain.StateLoading) || !snap.PendingAutoplay {
		t.Fatalf("reset must not affect a loading source, got %+v", snap)
	}
}

func TestSeekNeverFinishes(t *testing.T) {
	t.Parallel()
	audio := &fakeAudio{}
	p := newPlayer(t, audio)
	startPlaying(t, p)
	if err := p.Seek(10 * time.Minute); err != nil {
		t.Fatalf("seek: %v", err)
	}
	snap := p.Snapshot()
	if snap.State != string(domain.StatePlaying) || snap.Position != 4*time.Minute {
		t.Fatalf("seek to end must clamp and keep playing, got %+v", snap)
	}

	p.OnEnded()
	if got := p.Snapshot().State; got != string(domain.StateFinished) {
		t.Fatalf("end of media should finish, got %s", got)
	}
	if err := p.Seek(time.Minute); err != nil {
		t.Fatalf("seek after finish: %v", err)
	}
	if got := p.Snapshot().State; got != string(domain.StatePaused) {
		t.Fatalf("seek from finished should pause, got %s", got)
	}
}

func TestToggleFromFinishedReplays(t *testing.T) {
	t.Parallel()
	audio := &fakeAudio{}
	p := newPlayer(t, audio)
	startPlaying(t, p)
	p.OnEnded()
	if err := p.TogglePlay(); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if snap := p.Snapshot(); snap.State != string(domain.StatePlaying) || snap.Position != 0 {
		t.Fatalf("expected replay from zero, got %+v", snap)
	}
}

func TestSeekAndUnknownSectionErrors(t *testing.T) {
	t.Parallel()
	p := newPlayer(t, &fakeAudio{})
	if err := p.Seek(time.Second); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("seek while idle: %v", err)
	}
	if err := p.LoadAndMaybePlay("nope", true); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("unknown section: %v", err)
	}
}

func TestPlayerDrivenBySimulatedAudio(t *testing.T) {
	t.Parallel()
	audio := listeningout.NewSimulatedAudio(map[string]time.Duration{"one.mp3": 3 * time.Second, "two.mp3": 5 * time.Second})
	p, err := usecase.NewPlayer(exercise(), audio, nil)
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	audio.Attach(p)

	_ = p.TogglePlay()
	audio.Advance(time.Second)
	audio.Advance(time.Second)
	if snap := p.Snapshot(); snap.State != string(domain.StatePlaying) || snap.Position != time.Second || snap.Duration != 3*time.Second {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	_ = p.LoadAndMaybePlay("s2", false)
	if audio.Playing() {
		t.Fatalf("first section must be silent after switching")
	}
	audio.Advance(time.Second)
	audio.Advance(time.Second)
	if snap := p.Snapshot(); snap.SectionID != "s2" || snap.Position != time.Second {
		t.Fatalf("second section should play from zero, got %+v", snap)
	}
	for n := 0; n < 5; n++ {
		audio.Advance(time.Second)
	}
	if snap := p.Snapshot(); snap.State != string(domain.StateFinished) || snap.Position != 5*time.Second {
		t.Fatalf("expected finished, got %+v", snap)
	}
}
