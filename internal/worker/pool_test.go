package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kylasweb/IOC-Spinwheel/internal/testing/leaktest"
)

type testJob struct {
	executed *int32
}

func (j *testJob) Name() string { return "test" }

func (j *testJob) Process(ctx context.Context) error {
	atomic.AddInt32(j.executed, 1)
	return nil
}

func TestPool(t *testing.T) {
	var executed int32
	pool := NewPool(TestWorkerCount, TestQueueSize)
	pool.Start()

	job := &testJob{executed: &executed}
	assert.True(t, pool.Enqueue(job))
	assert.True(t, pool.Enqueue(job))

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&executed) == TestExpectedJobCount
	}, time.Second, TestWorkerProcessWaitTime*time.Millisecond/10)

	pool.Stop()
}

func TestPool_EnqueueDropsWhenFull(t *testing.T) {
	var executed int32
	pool := NewPool(1, 1)

	job := &testJob{executed: &executed}
	assert.True(t, pool.Enqueue(job))
	assert.False(t, pool.Enqueue(job), "unstarted pool with full queue rejects")
}

func TestPool_EnqueueAfterStop(t *testing.T) {
	var executed int32
	pool := NewPool(1, 1)
	pool.Start()
	pool.Stop()
	pool.Stop()

	assert.False(t, pool.Enqueue(&testJob{executed: &executed}))
}

func TestPool_StopReleasesWorkers(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		var executed int32
		pool := NewPool(4, TestQueueSize)
		pool.Start()
		assert.True(t, pool.Enqueue(&testJob{executed: &executed}))
		pool.Stop()
	})
}

type blockingJob struct {
	started chan struct{}
}

func (j *blockingJob) Name() string { return "blocking" }

func (j *blockingJob) Process(ctx context.Context) error {
	close(j.started)
	<-ctx.Done()
	return ctx.Err()
}

func TestPool_StopCancelsRunningJobs(t *testing.T) {
	pool := NewPool(1, 1)
	pool.Start()

	job := &blockingJob{started: make(chan struct{})}
	assert.True(t, pool.Enqueue(job))
	<-job.started

	done := make(chan struct{})
	go func() {
		pool.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not cancel the running job")
	}
}
