package splitter

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func makeJobs(n int) []Job {
	jobs := make([]Job, n)
	for i := range jobs {
		jobs[i] = Job{TrackIndex: i, OutputPath: fmt.Sprintf("%02d_track.ogg", i+1)}
	}
	return jobs
}

func TestPoolBoundsConcurrency(t *testing.T) {
	const limit = 3
	var running, peak int32

	pool := NewPool(limit)
	pool.Runner = func(ctx context.Context, job Job) error {
		now := atomic.AddInt32(&running, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if now <= old || atomic.CompareAndSwapInt32(&peak, old, now) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return nil
	}

	result := pool.Run(context.Background(), makeJobs(20))
	if result.Succeeded != 20 || result.Failed != 0 {
		t.Fatalf("result = %+v, want 20 succeeded", result)
	}
	if got := atomic.LoadInt32(&peak); got > limit {
		t.Errorf("observed %d concurrent jobs, limit is %d", got, limit)
	}
}

func TestPoolRunsEveryJobDespiteFailures(t *testing.T) {
	var ran int32
	pool := NewPool(2)
	pool.Runner = func(ctx context.Context, job Job) error {
		atomic.AddInt32(&ran, 1)
		if job.TrackIndex == 0 {
			return fmt.Errorf("simulated encoder failure")
		}
		return nil
	}

	result := pool.Run(context.Background(), makeJobs(10))
	if got := atomic.LoadInt32(&ran); got != 10 {
		t.Errorf("%d jobs ran, want all 10 even after a failure", got)
	}
	if result.Failed != 1 || result.Succeeded != 9 {
		t.Errorf("result = %+v, want 9 succeeded / 1 failed", result)
	}
	if result.OK() {
		t.Error("OK() = true for a result with failures")
	}
}

func TestPoolOnCompleteFiresPerJob(t *testing.T) {
	var mu sync.Mutex
	completed := 0

	pool := NewPool(4)
	pool.Runner = func(ctx context.Context, job Job) error { return nil }
	pool.OnComplete = func(job Job, err error) {
		mu.Lock()
		completed++
		mu.Unlock()
	}

	pool.Run(context.Background(), makeJobs(7))
	if completed != 7 {
		t.Errorf("OnComplete fired %d times, want 7", completed)
	}
}

func TestNewPoolFloorsLimit(t *testing.T) {
	pool := NewPool(-5)
	if pool.limit != 1 {
		t.Errorf("limit = %d, want 1", pool.limit)
	}
}
