package schedule

import (
	"sort"
	"sync"
	"time"
)

// Manual is a Scheduler whose jobs only run when Fire is called. Tests use it
// to drive countdowns and watchers tick by tick.
type Manual struct {
	mu     sync.Mutex
	nextID int
	jobs   map[int]*manualJob
}

func NewManual() *Manual {
	return &Manual{jobs: map[int]*manualJob{}}
}

type manualJob struct {
	id       int
	interval time.Duration
	fn       func()
	owner    *Manual
}

func (j *manualJob) Cancel() {
	j.owner.mu.Lock()
	delete(j.owner.jobs, j.id)
	j.owner.mu.Unlock()
}

func (m *Manual) Every(interval time.Duration, fn func()) (Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	job := &manualJob{id: m.nextID, interval: interval, fn: fn, owner: m}
	m.jobs[job.id] = job
	return job, nil
}

// Fire runs every live job once, in registration order.
func (m *Manual) Fire() {
	m.mu.Lock()
	ids := make([]int, 0, len(m.jobs))
	for id := range m.jobs {
		ids = append(ids, id)
	}
	m.mu.Unlock()
	sort.Ints(ids)
	for _, id := range ids {
		m.mu.Lock()
		job, ok := m.jobs[id]
		m.mu.Unlock()
		if ok {
			job.fn()
		}
	}
}

// Active reports how many jobs are still scheduled.
func (m *Manual) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.jobs)
}

func (m *Manual) Stop() {
	m.mu.Lock()
	m.jobs = map[int]*manualJob{}
	m.mu.Unlock()
}
