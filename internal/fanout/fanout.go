// Package fanout runs upstream calls concurrently or in fallback order.
package fanout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

var ErrExhausted = errors.New("all candidates failed")

type Task[T any] struct {
	Name string
	Run  func(ctx context.Context) ([]T, error)
}

type Outcome[T any] struct {
	Name     string
	Items    []T
	Err      error
	Duration time.Duration
}

// Settle runs every task concurrently and waits for all of them. Outcomes
// are returned in task order regardless of completion order. A failed or
// panicking task yields an outcome with Err set and no items; it never
// cancels its siblings.
func Settle[T any](ctx context.Context, tasks []Task[T]) []Outcome[T] {
	outcomes := make([]Outcome[T], len(tasks))

	var g errgroup.Group
	for i, task := range tasks {
		g.Go(func() error {
			start := time.Now()
			items, err := runSafe(ctx, task.Run)
			if err != nil {
				items = nil
			}
			outcomes[i] = Outcome[T]{
				Name:     task.Name,
				Items:    items,
				Err:      err,
				Duration: time.Since(start),
			}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func runSafe[T any](ctx context.Context, run func(ctx context.Context) ([]T, error)) (items []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return run(ctx)
}

// TryInOrder calls attempt for each candidate in turn, bounding every call by
// timeout, and returns the first non-empty result. Later candidates are not
// contacted once one succeeds.
func TryInOrder[C, T any](ctx context.Context, candidates []C, timeout time.Duration, attempt func(ctx context.Context, candidate C) ([]T, error)) ([]T, error) {
	var lastErr error
	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		items, err := tryOne(ctx, candidate, timeout, attempt)
		if err == nil && len(items) > 0 {
			return items, nil
		}
		if err != nil {
			lastErr = err
		}
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrExhausted, lastErr)
	}
	return nil, ErrExhausted
}

func tryOne[C, T any](ctx context.Context, candidate C, timeout time.Duration, attempt func(ctx context.Context, candidate C) ([]T, error)) ([]T, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return runSafe(ctx, func(ctx context.Context) ([]T, error) {
		return attempt(ctx, candidate)
	})
}
