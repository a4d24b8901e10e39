package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/x986x/CW6/internal/models"
	"go.uber.org/zap"
)

type fakeExecStore struct {
	mu    sync.Mutex
	execs []models.JobExecution
}

func (f *fakeExecStore) Record(_ context.Context, e *models.JobExecution) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.execs = append(f.execs, *e)
	return nil
}

func (f *fakeExecStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.execs)
}

func newTestScheduler(execs ExecutionStore) *Scheduler {
	return New(time.Minute, time.UTC, execs, zap.NewNop())
}

func TestTickRunsDueJobs(t *testing.T) {
	execs := &fakeExecStore{}
	s := newTestScheduler(execs)

	ran := make(chan struct{}, 1)
	s.AddJob("dispatch", EveryTick(), func(ctx context.Context) error {
		ran <- struct{}{}
		return nil
	})

	s.tick(context.Background(), time.Now())
	s.wg.Wait()

	select {
	case <-ran:
	default:
		t.Fatal("due job did not run")
	}
	if execs.count() != 1 {
		t.Errorf("executions recorded = %d, want 1", execs.count())
	}
	if execs.execs[0].Status != models.JobExecutionSuccess {
		t.Errorf("execution status = %q, want success", execs.execs[0].Status)
	}
}

func TestTickSkipsJobStillRunning(t *testing.T) {
	execs := &fakeExecStore{}
	s := newTestScheduler(execs)

	started := make(chan struct{})
	release := make(chan struct{})
	runs := 0
	var mu sync.Mutex

	s.AddJob("dispatch", EveryTick(), func(ctx context.Context) error {
		mu.Lock()
		runs++
		mu.Unlock()
		started <- struct{}{}
		<-release
		return nil
	})

	ctx := context.Background()
	s.tick(ctx, time.Now())
	<-started // first instance is now in flight

	s.tick(ctx, time.Now()) // must be skipped, not queued
	close(release)
	s.wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if runs != 1 {
		t.Errorf("runs = %d, want 1: overlapping tick must be skipped", runs)
	}
	if execs.count() != 1 {
		t.Errorf("executions recorded = %d, want 1", execs.count())
	}
}

func TestTickRecordsFailures(t *testing.T) {
	execs := &fakeExecStore{}
	s := newTestScheduler(execs)

	s.AddJob("dispatch", EveryTick(), func(ctx context.Context) error {
		return errors.New("db down")
	})

	s.tick(context.Background(), time.Now())
	s.wg.Wait()

	if execs.count() != 1 {
		t.Fatalf("executions recorded = %d, want 1", execs.count())
	}
	e := execs.execs[0]
	if e.Status != models.JobExecutionError {
		t.Errorf("status = %q, want error", e.Status)
	}
	if e.Error == nil || *e.Error != "db down" {
		t.Errorf("error = %v, want db down", e.Error)
	}
}

func TestAddJobReplacesByName(t *testing.T) {
	s := newTestScheduler(&fakeExecStore{})

	firstRan := false
	secondRan := false
	s.AddJob("dispatch", EveryTick(), func(ctx context.Context) error {
		firstRan = true
		return nil
	})
	s.AddJob("dispatch", EveryTick(), func(ctx context.Context) error {
		secondRan = true
		return nil
	})

	if len(s.jobs) != 1 {
		t.Fatalf("jobs = %d, want 1: same-name registration must replace", len(s.jobs))
	}

	s.tick(context.Background(), time.Now())
	s.wg.Wait()

	if firstRan {
		t.Error("replaced job body ran")
	}
	if !secondRan {
		t.Error("replacing job body did not run")
	}
}

func TestWeeklyAt(t *testing.T) {
	due := WeeklyAt(time.Monday, 0, 0)

	monday := time.Date(2024, time.January, 1, 0, 0, 30, 0, time.UTC) // Monday 00:00
	if !due(monday) {
		t.Error("expected due on Monday 00:00")
	}

	tests := []time.Time{
		time.Date(2024, time.January, 1, 0, 1, 0, 0, time.UTC),  // Monday 00:01
		time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC), // Monday 12:00
		time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),  // Tuesday 00:00
	}
	for _, now := range tests {
		if due(now) {
			t.Errorf("unexpectedly due at %v", now)
		}
	}
}

func TestSchedulerStartStop(t *testing.T) {
	execs := &fakeExecStore{}
	s := New(10*time.Millisecond, time.UTC, execs, zap.NewNop())

	ran := make(chan struct{})
	var once sync.Once
	s.AddJob("dispatch", EveryTick(), func(ctx context.Context) error {
		once.Do(func() { close(ran) })
		return nil
	})

	s.Start(context.Background())

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job never ran")
	}

	s.Stop() // must wait for in-flight work and return
}
