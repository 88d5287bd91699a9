package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolProcessesTasks(t *testing.T) {
	var processed int64

	cfg := DefaultConfig()
	cfg.Workers = 4
	cfg.QueueSize = 16

	pool, err := New(cfg, func(ctx context.Context, task *Task) *Result {
		atomic.AddInt64(&processed, 1)
		return &Result{TaskID: task.ID, Success: true}
	}, nil)
	if err != nil {
		t.Fatalf("pool creation failed: %v", err)
	}

	pool.Start()
	for i := 0; i < 10; i++ {
		if err := pool.Submit(&Task{ID: "task"}); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}
	pool.Stop()

	if got := atomic.LoadInt64(&processed); got != 10 {
		t.Errorf("expected 10 processed tasks, got %d", got)
	}
	stats := pool.Stats()
	if stats.TasksCompleted != 10 || stats.TasksFailed != 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestPoolRetriesFailedTasks(t *testing.T) {
	var attempts int64

	cfg := DefaultConfig()
	cfg.Workers = 1
	cfg.MaxRetries = 2
	cfg.RetryDelay = time.Millisecond

	pool, err := New(cfg, func(ctx context.Context, task *Task) *Result {
		n := atomic.AddInt64(&attempts, 1)
		if n < 3 {
			return &Result{TaskID: task.ID, Success: false, Error: errors.New("transient")}
		}
		return &Result{TaskID: task.ID, Success: true}
	}, nil)
	if err != nil {
		t.Fatalf("pool creation failed: %v", err)
	}

	pool.Start()
	if err := pool.Submit(&Task{ID: "retry-me"}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	pool.Stop()

	if got := atomic.LoadInt64(&attempts); got != 3 {
		t.Errorf("expected 3 attempts, got %d", got)
	}
	stats := pool.Stats()
	if stats.TasksCompleted != 1 {
		t.Errorf("expected task to eventually succeed: %+v", stats)
	}
	if stats.TasksRetried != 2 {
		t.Errorf("expected 2 retries, got %d", stats.TasksRetried)
	}
}

func TestPoolExhaustsRetries(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 1
	cfg.MaxRetries = 1
	cfg.RetryDelay = time.Millisecond

	pool, err := New(cfg, func(ctx context.Context, task *Task) *Result {
		return &Result{TaskID: task.ID, Success: false, Error: errors.New("permanent")}
	}, nil)
	if err != nil {
		t.Fatalf("pool creation failed: %v", err)
	}

	pool.Start()
	if err := pool.Submit(&Task{ID: "doomed"}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	result := <-pool.Results()
	if result.Success {
		t.Error("expected failure after exhausted retries")
	}
	if result.Error == nil {
		t.Error("expected wrapped error")
	}
	pool.Stop()
}

func TestPoolRejectsWhenQueueFull(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 1
	cfg.QueueSize = 1

	release := make(chan struct{})
	pool, err := New(cfg, func(ctx context.Context, task *Task) *Result {
		<-release
		return &Result{TaskID: task.ID, Success: true}
	}, nil)
	if err != nil {
		t.Fatalf("pool creation failed: %v", err)
	}

	pool.Start()
	defer func() {
		close(release)
		pool.Stop()
	}()

	// First task occupies the worker, second fills the queue. Submitting
	// until rejection tolerates scheduling timing.
	var rejected bool
	for i := 0; i < 4; i++ {
		if err := pool.Submit(&Task{ID: "t"}); err != nil {
			rejected = true
			break
		}
	}
	if !rejected {
		t.Error("expected a submit to be rejected with a full queue")
	}
}

func TestNewRequiresWorkerFunc(t *testing.T) {
	if _, err := New(DefaultConfig(), nil, nil); err == nil {
		t.Error("expected error for nil worker function")
	}
}
