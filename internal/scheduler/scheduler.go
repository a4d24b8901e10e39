package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/x986x/CW6/internal/metrics"
	"github.com/x986x/CW6/internal/models"
	"go.uber.org/zap"
)

// JobFunc is the body of a scheduled job.
type JobFunc func(ctx context.Context) error

// ExecutionStore records scheduler run history.
// *repositories.JobExecutionRepo satisfies it.
type ExecutionStore interface {
	Record(ctx context.Context, e *models.JobExecution) error
}

type job struct {
	name    string
	due     func(now time.Time) bool
	run     JobFunc
	running atomic.Bool
}

// Scheduler drives registered jobs off a single recurring ticker. It is
// constructed once at process start and stopped at shutdown; a job whose
// previous instance is still running has its tick skipped, not queued.
type Scheduler struct {
	interval time.Duration
	loc      *time.Location
	execs    ExecutionStore
	log      *zap.Logger

	jobs   []*job
	wg     sync.WaitGroup
	cancel context.CancelFunc

	now func() time.Time
}

func New(interval time.Duration, loc *time.Location, execs ExecutionStore, log *zap.Logger) *Scheduler {
	return &Scheduler{
		interval: interval,
		loc:      loc,
		execs:    execs,
		log:      log,
		now:      time.Now,
	}
}

// AddJob registers a job under a fixed name. Registering the same name again
// replaces the previous registration.
func (s *Scheduler) AddJob(name string, due func(now time.Time) bool, run JobFunc) {
	for _, jb := range s.jobs {
		if jb.name == name {
			jb.due = due
			jb.run = run
			return
		}
	}
	s.jobs = append(s.jobs, &job{name: name, due: due, run: run})
}

// EveryTick schedules a job on every tick of the driver.
func EveryTick() func(time.Time) bool {
	return func(time.Time) bool { return true }
}

// WeeklyAt schedules a job for one minute of one weekday.
func WeeklyAt(day time.Weekday, hour, minute int) func(time.Time) bool {
	return func(now time.Time) bool {
		return now.Weekday() == day && now.Hour() == hour && now.Minute() == minute
	}
}

// Start launches the tick loop. It returns immediately; Stop halts the loop
// and waits for in-flight jobs to finish.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case t := <-ticker.C:
				s.tick(ctx, t.In(s.loc))
			}
		}
	}()

	s.log.Info("scheduler started",
		zap.Duration("interval", s.interval),
		zap.Int("jobs", len(s.jobs)),
	)
}

// Stop cancels the tick loop and waits for running jobs.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) tick(ctx context.Context, now time.Time) {
	for _, jb := range s.jobs {
		if !jb.due(now) {
			continue
		}

		if !jb.running.CompareAndSwap(false, true) {
			metrics.TicksSkipped.WithLabelValues(jb.name).Inc()
			s.log.Warn("tick skipped, previous instance still running", zap.String("job", jb.name))
			continue
		}

		s.wg.Add(1)
		go func(jb *job) {
			defer s.wg.Done()
			defer jb.running.Store(false)

			started := s.now()
			err := jb.run(ctx)
			finished := s.now()

			exec := models.JobExecution{
				JobName:    jb.name,
				StartedAt:  started,
				FinishedAt: finished,
				Status:     models.JobExecutionSuccess,
			}
			if err != nil {
				msg := err.Error()
				exec.Status = models.JobExecutionError
				exec.Error = &msg
				s.log.Error("job failed", zap.String("job", jb.name), zap.Error(err))
			}

			if recErr := s.execs.Record(ctx, &exec); recErr != nil {
				s.log.Error("failed to record job execution", zap.String("job", jb.name), zap.Error(recErr))
			}
		}(jb)
	}
}
