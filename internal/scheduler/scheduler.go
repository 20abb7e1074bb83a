// Package scheduler enqueues jobs onto a worker pool at fixed intervals.
package scheduler

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/kylasweb/IOC-Spinwheel/internal/logger"
	"github.com/kylasweb/IOC-Spinwheel/internal/worker"
)

// Scheduler manages scheduled jobs
type Scheduler struct {
	workerPool *worker.Pool
	quit       chan struct{}
	wg         sync.WaitGroup
	stopOnce   sync.Once
	dropped    atomic.Int64
}

// New creates a new scheduler
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
	}
}

// Schedule registers a job to run at a fixed interval, starting one interval from now
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.schedule(interval, job, false)
}

// ScheduleNow is Schedule with an extra run at registration, for jobs such as
// gauges that should report before the first tick
func (s *Scheduler) ScheduleNow(interval time.Duration, job worker.Job) {
	s.schedule(interval, job, true)
}

func (s *Scheduler) schedule(interval time.Duration, job worker.Job, immediate bool) {
	logger.Info(LogMsgJobScheduled, "job", job.Name(), "interval", interval.String(), "immediate", immediate)
	if immediate {
		s.enqueue(job)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.enqueue(job)
			case <-s.quit:
				return
			}
		}
	}()
}

// enqueue drops the tick when the queue is full; the next tick retries
func (s *Scheduler) enqueue(job worker.Job) {
	if !s.workerPool.Enqueue(job) {
		s.dropped.Add(1)
	}
}

// Dropped reports how many ticks found the pool full or stopped
func (s *Scheduler) Dropped() int64 {
	return s.dropped.Load()
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	s.wg.Wait()
}
