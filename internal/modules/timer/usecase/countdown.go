package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"studyhub/internal/modules/timer/domain"
	timerdto "studyhub/internal/modules/timer/dto"
	timerin "studyhub/internal/modules/timer/port/in"
	timerout "studyhub/internal/modules/timer/port/out"
	apperrors "studyhub/internal/platform/errors"
	"studyhub/internal/platform/events"
	"studyhub/internal/platform/schedule"
)

const finishedMessage = "Timer finished"

// Countdown is the exam timer. Ticks come from the scheduler goroutine; a
// job that was cancelled can still deliver one late tick, which gen drops.
type Countdown struct {
	scheduler schedule.Scheduler
	notifier  timerout.Notifier
	publisher events.Publisher
	logger    hclog.Logger

	mu        sync.Mutex
	state     domain.State
	total     time.Duration
	remaining time.Duration
	job       schedule.Job
	gen       uint64
}

var _ timerin.Usecase = (*Countdown)(nil)

func NewCountdown(total time.Duration, scheduler schedule.Scheduler, notifier timerout.Notifier, publisher events.Publisher, logger hclog.Logger) *Countdown {
	if total <= 0 {
		total = domain.DefaultMinutes * time.Minute
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Countdown{
		scheduler: scheduler,
		notifier:  notifier,
		publisher: publisher,
		logger:    logger.Named("timer"),
		state:     domain.StateIdle,
		total:     total,
		remaining: total,
	}
}

func (c *Countdown) Start() (timerdto.CountdownOutput, error) {
	c.mu.Lock()
	switch c.state {
	case domain.StateRunning:
		out := c.snapshotLocked()
		c.mu.Unlock()
		return out, nil
	case domain.StateFinished:
		c.mu.Unlock()
		return timerdto.CountdownOutput{}, fmt.Errorf("%w: timer finished, reset it first", apperrors.ErrInvalidTransition)
	}
	c.gen++
	gen := c.gen
	job, err := c.scheduler.Every(domain.Tick, func() { c.tick(gen) })
	if err != nil {
		c.mu.Unlock()
		return timerdto.CountdownOutput{}, fmt.Errorf("start timer: %w", err)
	}
	c.job = job
	c.state = domain.StateRunning
	out := c.snapshotLocked()
	c.mu.Unlock()
	c.publish()
	return out, nil
}

func (c *Countdown) Stop() timerdto.CountdownOutput {
	c.mu.Lock()
	c.cancelLocked()
	if c.state == domain.StateRunning {
		c.state = domain.StateStopped
	}
	out := c.snapshotLocked()
	c.mu.Unlock()
	c.publish()
	return out
}

func (c *Countdown) Reset() timerdto.CountdownOutput {
	c.mu.Lock()
	c.cancelLocked()
	c.state = domain.StateIdle
	c.remaining = c.total
	out := c.snapshotLocked()
	c.mu.Unlock()
	c.publish()
	return out
}

// SetDuration changes the full length and resets the countdown.
func (c *Countdown) SetDuration(total time.Duration) (timerdto.CountdownOutput, error) {
	if total < domain.Tick {
		return timerdto.CountdownOutput{}, fmt.Errorf("%w: duration must be at least one second", apperrors.ErrInvalidInput)
	}
	c.mu.Lock()
	c.total = total.Truncate(domain.Tick)
	c.mu.Unlock()
	return c.Reset(), nil
}

func (c *Countdown) Snapshot() timerdto.CountdownOutput {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Close cancels the tick job so nothing mutates the timer afterwards.
func (c *Countdown) Close() {
	c.mu.Lock()
	c.cancelLocked()
	if c.state == domain.StateRunning {
		c.state = domain.StateStopped
	}
	c.mu.Unlock()
}

func (c *Countdown) tick(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || c.state != domain.StateRunning {
		c.mu.Unlock()
		return
	}
	c.remaining -= domain.Tick
	finished := c.remaining <= 0
	if finished {
		c.remaining = 0
		c.state = domain.StateFinished
		c.cancelLocked()
	}
	c.mu.Unlock()

	if finished {
		c.logger.Info("countdown finished")
		if c.notifier != nil {
			if err := c.notifier.Notify(context.Background(), finishedMessage, "test"); err != nil {
				c.logger.Warn("record timer notification", "error", err)
			}
		}
	}
	c.publish()
}

func (c *Countdown) cancelLocked() {
	if c.job != nil {
		c.job.Cancel()
		c.job = nil
	}
	c.gen++
}

func (c *Countdown) snapshotLocked() timerdto.CountdownOutput {
	return timerdto.CountdownOutput{
		State:     string(c.state),
		Total:     c.total,
		Remaining: c.remaining,
		Display:   domain.Format(c.remaining),
	}
}

func (c *Countdown) publish() {
	if c.publisher != nil {
		c.publisher.Publish(events.TimerChanged)
	}
}
