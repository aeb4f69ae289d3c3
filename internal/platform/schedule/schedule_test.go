package schedule_test

import (
	"sync/atomic"
	"testing"
	"time"

	"studyhub/internal/platform/schedule"
)

func TestGocronSchedulerRunsAndCancels(t *testing.T) {
	t.Parallel()
	s := schedule.NewGocronScheduler()
	defer s.Stop()

	var calls atomic.Int32
	job, err := s.Every(20*time.Millisecond, func() { calls.Add(1) })
	if err != nil {
		t.Fatalf("every: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if calls.Load() < 2 {
		t.Fatalf("expected at least two runs, got %d", calls.Load())
	}
	job.Cancel()
	job.Cancel()
	time.Sleep(50 * time.Millisecond)
	settled := calls.Load()
	time.Sleep(100 * time.Millisecond)
	if calls.Load() != settled {
		t.Fatalf("job kept running after cancel: %d -> %d", settled, calls.Load())
	}
}

func TestGocronSchedulerRejectsNonPositiveInterval(t *testing.T) {
	t.Parallel()
	s := schedule.NewGocronScheduler()
	defer s.Stop()
	if _, err := s.Every(0, func() {}); err == nil {
		t.Fatalf("expected error for zero interval")
	}
}

func TestManualFireAndCancel(t *testing.T) {
	t.Parallel()
	m := schedule.NewManual()
	var a, b int
	jobA, _ := m.Every(time.Second, func() { a++ })
	_, _ = m.Every(time.Second, func() { b++ })
	m.Fire()
	jobA.Cancel()
	m.Fire()
	if a != 1 || b != 2 {
		t.Fatalf("unexpected runs a=%d b=%d", a, b)
	}
	if m.Active() != 1 {
		t.Fatalf("expected one active job, got %d", m.Active())
	}
}
