package splitter

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Result aggregates per-job exit statuses for one cuesheet's split step.
type Result struct {
	Succeeded int
	Failed    int
}

// OK reports whether every job completed with a zero exit status.
func (r Result) OK() bool {
	return r.Failed == 0
}

// Pool runs split jobs with a bounded number of concurrently running
// external processes. Workers block on their own process exit; there is no
// polling. A non-zero exit marks the result failed but never cancels the
// remaining jobs - the pool always runs every job to completion to maximize
// output even under partial failure.
type Pool struct {
	limit int

	// Runner executes a single job. Defaults to the real encoder
	// invocation; swapped out in tests.
	Runner func(ctx context.Context, job Job) error

	// OnComplete, when set, is invoked after each job reaches a terminal
	// state. Used for progress reporting.
	OnComplete func(job Job, err error)
}

// NewPool creates a pool bounded to limit concurrent processes. Limits
// below 1 are raised to 1.
func NewPool(limit int) *Pool {
	if limit < 1 {
		limit = 1
	}
	return &Pool{limit: limit, Runner: runCommand}
}

type jobError struct {
	Job Job
	Err error
}

// Run dispatches all jobs through the bounded pool and blocks until every
// job has reached a terminal state.
func (p *Pool) Run(ctx context.Context, jobs []Job) Result {
	var wg sync.WaitGroup
	sem := semaphore.NewWeighted(int64(p.limit))
	errChan := make(chan jobError, len(jobs))

	for _, job := range jobs {
		wg.Add(1)
		if err := sem.Acquire(ctx, 1); err != nil {
			errChan <- jobError{job, fmt.Errorf("failed to acquire worker slot: %w", err)}
			wg.Done()
			continue
		}

		go func(job Job) {
			defer wg.Done()
			defer sem.Release(1)

			err := p.Runner(ctx, job)
			if err != nil {
				errChan <- jobError{job, err}
			}
			if p.OnComplete != nil {
				p.OnComplete(job, err)
			}
		}(job)
	}

	wg.Wait()
	close(errChan)

	result := Result{Succeeded: len(jobs)}
	for range errChan {
		result.Failed++
		result.Succeeded--
	}
	return result
}

// runCommand executes one encoder invocation and verifies its output file.
func runCommand(ctx context.Context, job Job) error {
	cmd := exec.CommandContext(ctx, job.Args[0], job.Args[1:]...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("cut command failed: %w\nencoder output: %s", err, string(output))
	}
	if _, err := os.Stat(job.OutputPath); os.IsNotExist(err) {
		return fmt.Errorf("track file not found after cut: %s", job.OutputPath)
	}
	return nil
}
