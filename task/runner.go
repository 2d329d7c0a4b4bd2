package task

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Func is the body of a task. It runs on its own goroutine but only while the
// runner has handed it control, so it may touch the same state as the caller
// of Step.
type Func func(t *Task) error

// Task is one suspended or running coroutine.
type Task struct {
	name   string
	ctx    context.Context
	resume chan struct{}
	yield  chan struct{}
	done   bool
	err    error
}

func (t *Task) Name() string { return t.name }

func (t *Task) Context() context.Context { return t.ctx }

// Done reports whether the task has returned.
func (t *Task) Done() bool { return t.done }

// Err returns the task's result once Done.
func (t *Task) Err() error { return t.err }

// Yield hands control back to the runner until the next Step.
func (t *Task) Yield() error {
	if t.ctx.Err() != nil {
		return ErrCancelled
	}
	t.yield <- struct{}{}
	<-t.resume
	if t.ctx.Err() != nil {
		return ErrCancelled
	}
	return nil
}

// Runner drives tasks cooperatively. Each Step resumes every live task once,
// one at a time, and waits for it to yield or finish before moving on.
type Runner struct {
	ctx    context.Context
	cancel context.CancelFunc
	tasks  []*Task
	log    *zap.Logger
}

func NewRunner(log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{ctx: ctx, cancel: cancel, log: log}
}

// Spawn registers fn. It first runs on the next Step.
func (r *Runner) Spawn(name string, fn Func) *Task {
	t := &Task{
		name:   name,
		ctx:    r.ctx,
		resume: make(chan struct{}),
		yield:  make(chan struct{}),
	}
	if r.ctx.Err() != nil {
		t.done = true
		t.err = ErrCancelled
		return t
	}

	go func() {
		<-t.resume
		defer func() {
			if p := recover(); p != nil {
				t.err = fmt.Errorf("task %s: panic: %v", t.name, p)
			}
			t.done = true
			t.yield <- struct{}{}
		}()
		t.err = fn(t)
	}()

	r.tasks = append(r.tasks, t)
	return t
}

// Step resumes every task spawned before this call exactly once.
func (r *Runner) Step() {
	pending := r.tasks
	r.tasks = nil
	var live []*Task
	for _, t := range pending {
		r.resume(t)
		if !t.done {
			live = append(live, t)
		}
	}
	r.tasks = append(live, r.tasks...)
}

func (r *Runner) resume(t *Task) {
	t.resume <- struct{}{}
	<-t.yield
	if t.done {
		r.finished(t)
	}
}

func (r *Runner) finished(t *Task) {
	switch {
	case t.err == nil:
		r.log.Debug("task finished", zap.String("task", t.name))
	case errors.Is(t.err, ErrCancelled):
		r.log.Debug("task cancelled", zap.String("task", t.name))
	default:
		r.log.Error("task failed", zap.String("task", t.name), zap.Error(t.err))
	}
}

// Len returns the number of unfinished tasks.
func (r *Runner) Len() int {
	return len(r.tasks)
}

// Close cancels every task and lets each unwind.
func (r *Runner) Close() {
	r.cancel()
	for len(r.tasks) > 0 {
		pending := r.tasks
		r.tasks = nil
		for _, t := range pending {
			r.resume(t)
			if !t.done {
				r.tasks = append(r.tasks, t)
			}
		}
	}
}
