// Package schedule runs periodic callbacks (countdown ticks, content checks)
// and guarantees they can be cancelled individually or all at once.
package schedule

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

// Job is a cancellable periodic callback. Cancel is idempotent.
type Job interface {
	Cancel()
}

type Scheduler interface {
	// Every runs fn each interval, first after one full interval.
	Every(interval time.Duration, fn func()) (Job, error)
	Stop()
}

type GocronScheduler struct {
	once sync.Once
	s    *gocron.Scheduler
}

func NewGocronScheduler() *GocronScheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &GocronScheduler{s: s}
}

func (g *GocronScheduler) Every(interval time.Duration, fn func()) (Job, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("interval must be positive, got %s", interval)
	}
	job, err := g.s.Every(interval).WaitForSchedule().Do(fn)
	if err != nil {
		return nil, fmt.Errorf("schedule job: %w", err)
	}
	g.once.Do(g.s.StartAsync)
	return &gocronJob{s: g.s, job: job}, nil
}

func (g *GocronScheduler) Stop() {
	g.s.Clear()
	if g.s.IsRunning() {
		g.s.Stop()
	}
}

type gocronJob struct {
	once sync.Once
	s    *gocron.Scheduler
	job  *gocron.Job
}

func (j *gocronJob) Cancel() {
	j.once.Do(func() { j.s.RemoveByReference(j.job) })
}
