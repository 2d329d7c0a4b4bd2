package task

import "errors"

// ErrCancelled is returned to a task whose awaited signal was cancelled or
// whose runner was closed. Tasks treat it as terminal.
var ErrCancelled = errors.New("task: cancelled")

// Signal is a one-shot value a task can await. It resolves at most once,
// either with a value or cancelled.
type Signal[T any] struct {
	resolved  bool
	cancelled bool
	value     T
}

func NewSignal[T any]() *Signal[T] {
	return &Signal[T]{}
}

// Send resolves the signal with v. It reports false if already resolved.
func (s *Signal[T]) Send(v T) bool {
	if s == nil || s.resolved {
		return false
	}
	s.resolved = true
	s.value = v
	return true
}

// Cancel resolves the signal as cancelled. It reports false if already resolved.
func (s *Signal[T]) Cancel() bool {
	if s == nil || s.resolved {
		return false
	}
	s.resolved = true
	s.cancelled = true
	return true
}

func (s *Signal[T]) Ready() bool {
	return s != nil && s.resolved
}

// Result returns the sent value, or ErrCancelled.
func (s *Signal[T]) Result() (T, error) {
	var zero T
	if s == nil || s.cancelled {
		return zero, ErrCancelled
	}
	return s.value, nil
}

// Await suspends t until s resolves and returns its result.
func Await[T any](t *Task, s *Signal[T]) (T, error) {
	return AwaitUnless(t, s, nil)
}

// AwaitUnless is Await that gives up with ErrCancelled as soon as stop
// resolves. A nil stop never fires.
func AwaitUnless[T any](t *Task, s *Signal[T], stop *Signal[struct{}]) (T, error) {
	var zero T
	for !s.Ready() {
		if err := t.Yield(); err != nil {
			return zero, err
		}
		if stop.Ready() && !s.Ready() {
			return zero, ErrCancelled
		}
	}
	return s.Result()
}

// Sleep suspends t for frames Steps, or until stop resolves.
func Sleep(t *Task, frames int, stop *Signal[struct{}]) error {
	for range frames {
		if err := t.Yield(); err != nil {
			return err
		}
		if stop.Ready() {
			return ErrCancelled
		}
	}
	return nil
}
