package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"studyhub/internal/modules/timer/domain"
	"studyhub/internal/modules/timer/usecase"
	apperrors "studyhub/internal/platform/errors"
	"studyhub/internal/platform/events"
	"studyhub/internal/platform/schedule"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
	types    []string
}

func (n *recordingNotifier) Notify(_ context.Context, message, notificationType string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
	n.types = append(n.types, notificationType)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

func TestCountdownRunsToFinish(t *testing.T) {
	t.Parallel()
	sched := schedule.NewManual()
	notifier := &recordingNotifier{}
	bus := events.NewBus()
	changes := 0
	bus.Subscribe(events.TimerChanged, func() { changes++ })

	c := usecase.NewCountdown(3*time.Second, sched, notifier, bus, nil)
	out, err := c.Start()
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if out.State != string(domain.StateRunning) || out.Display != "00:03" {
		t.Fatalf("unexpected start snapshot: %+v", out)
	}

	sched.Fire()
	if got := c.Snapshot().Remaining; got != 2*time.Second {
		t.Fatalf("expected 2s remaining, got %s", got)
	}
	sched.Fire()
	sched.Fire()

	snap := c.Snapshot()
	if snap.State != string(domain.StateFinished) || snap.Remaining != 0 {
		t.Fatalf("expected finished at zero, got %+v", snap)
	}
	if sched.Active() != 0 {
		t.Fatalf("expected tick job cancelled, %d active", sched.Active())
	}
	if notifier.count() != 1 || notifier.messages[0] != "Timer finished" || notifier.types[0] != "test" {
		t.Fatalf("unexpected notifications: %+v %+v", notifier.messages, notifier.types)
	}
	// start + three ticks
	if changes != 4 {
		t.Fatalf("expected 4 change signals, got %d", changes)
	}

	sched.Fire()
	if notifier.count() != 1 {
		t.Fatal("finished countdown must not notify again")
	}
}

func TestCountdownStartWhileRunningKeepsOneJob(t *testing.T) {
	t.Parallel()
	sched := schedule.NewManual()
	c := usecase.NewCountdown(time.Minute, sched, nil, nil, nil)
	for i := 0; i < 3; i++ {
		if _, err := c.Start(); err != nil {
			t.Fatalf("start %d: %v", i, err)
		}
	}
	if sched.Active() != 1 {
		t.Fatalf("expected exactly one tick job, got %d", sched.Active())
	}
	sched.Fire()
	if got := c.Snapshot().Remaining; got != 59*time.Second {
		t.Fatalf("expected a single decrement, got %s", got)
	}
}

func TestCountdownStopResumeAndReset(t *testing.T) {
	t.Parallel()
	sched := schedule.NewManual()
	c := usecase.NewCountdown(10*time.Second, sched, nil, nil, nil)
	if _, err := c.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	sched.Fire()
	sched.Fire()

	stopped := c.Stop()
	if stopped.State != string(domain.StateStopped) || stopped.Remaining != 8*time.Second {
		t.Fatalf("unexpected stop snapshot: %+v", stopped)
	}
	if sched.Active() != 0 {
		t.Fatal("stop must cancel the tick job")
	}
	sched.Fire()
	if c.Snapshot().Remaining != 8*time.Second {
		t.Fatal("stopped countdown must not tick")
	}

	if _, err := c.Start(); err != nil {
		t.Fatalf("resume: %v", err)
	}
	sched.Fire()
	if c.Snapshot().Remaining != 7*time.Second {
		t.Fatalf("expected resume from 8s, got %s", c.Snapshot().Remaining)
	}

	reset := c.Reset()
	if reset.State != string(domain.StateIdle) || reset.Remaining != 10*time.Second {
		t.Fatalf("unexpected reset snapshot: %+v", reset)
	}
	if sched.Active() != 0 {
		t.Fatal("reset must cancel the tick job")
	}
}

func TestCountdownFinishedRequiresReset(t *testing.T) {
	t.Parallel()
	sched := schedule.NewManual()
	c := usecase.NewCountdown(time.Second, sched, nil, nil, nil)
	if _, err := c.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	sched.Fire()
	if _, err := c.Start(); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	c.Reset()
	if _, err := c.Start(); err != nil {
		t.Fatalf("start after reset: %v", err)
	}
}

func TestCountdownSetDuration(t *testing.T) {
	t.Parallel()
	c := usecase.NewCountdown(0, schedule.NewManual(), nil, nil, nil)
	if got := c.Snapshot(); got.Total != time.Hour || got.Display != "01:00:00" {
		t.Fatalf("expected one hour default, got %+v", got)
	}
	if _, err := c.SetDuration(0); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	out, err := c.SetDuration(90 * time.Second)
	if err != nil {
		t.Fatalf("set duration: %v", err)
	}
	if out.Remaining != 90*time.Second || out.Display != "01:30" {
		t.Fatalf("unexpected snapshot: %+v", out)
	}
}

func TestCountdownCloseCancelsJob(t *testing.T) {
	t.Parallel()
	sched := schedule.NewManual()
	c := usecase.NewCountdown(time.Minute, sched, nil, nil, nil)
	if _, err := c.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	c.Close()
	if sched.Active() != 0 {
		t.Fatal("close must cancel the tick job")
	}
}
