package fanout

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestSettle_PreservesTaskOrder(t *testing.T) {
	tasks := []Task[string]{
		{Name: "slow", Run: func(ctx context.Context) ([]string, error) {
			time.Sleep(30 * time.Millisecond)
			return []string{"a"}, nil
		}},
		{Name: "fast", Run: func(ctx context.Context) ([]string, error) {
			return []string{"b", "c"}, nil
		}},
	}

	outcomes := Settle(context.Background(), tasks)
	if len(outcomes) != 2 {
		t.Fatalf("got %d outcomes", len(outcomes))
	}
	if outcomes[0].Name != "slow" || outcomes[0].Items[0] != "a" {
		t.Errorf("outcomes[0] = %+v", outcomes[0])
	}
	if outcomes[1].Name != "fast" || len(outcomes[1].Items) != 2 {
		t.Errorf("outcomes[1] = %+v", outcomes[1])
	}
}

func TestSettle_FailureIsolation(t *testing.T) {
	boom := errors.New("boom")
	tasks := []Task[int]{
		{Name: "error", Run: func(ctx context.Context) ([]int, error) {
			return []int{99}, boom
		}},
		{Name: "panic", Run: func(ctx context.Context) ([]int, error) {
			panic("upstream parser blew up")
		}},
		{Name: "ok", Run: func(ctx context.Context) ([]int, error) {
			return []int{1}, nil
		}},
	}

	outcomes := Settle(context.Background(), tasks)

	if !errors.Is(outcomes[0].Err, boom) || outcomes[0].Items != nil {
		t.Errorf("error outcome = %+v", outcomes[0])
	}
	if outcomes[1].Err == nil {
		t.Error("panic outcome should carry an error")
	}
	if outcomes[2].Err != nil || len(outcomes[2].Items) != 1 {
		t.Errorf("ok outcome = %+v", outcomes[2])
	}
}

func TestSettle_RunsConcurrently(t *testing.T) {
	var running, peak int32
	task := func(ctx context.Context) ([]int, error) {
		n := atomic.AddInt32(&running, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return nil, nil
	}

	tasks := make([]Task[int], 4)
	for i := range tasks {
		tasks[i] = Task[int]{Name: "t", Run: task}
	}
	Settle(context.Background(), tasks)

	if atomic.LoadInt32(&peak) < 2 {
		t.Errorf("peak concurrency = %d, want >= 2", peak)
	}
}

func TestTryInOrder_FirstNonEmptyWins(t *testing.T) {
	var called []string
	attempt := func(ctx context.Context, c string) ([]string, error) {
		called = append(called, c)
		switch c {
		case "down":
			return nil, errors.New("connection refused")
		case "empty":
			return nil, nil
		default:
			return []string{c + "-result"}, nil
		}
	}

	items, err := TryInOrder(context.Background(), []string{"down", "empty", "good", "never"}, time.Second, attempt)
	if err != nil {
		t.Fatalf("TryInOrder() error = %v", err)
	}
	if len(items) != 1 || items[0] != "good-result" {
		t.Errorf("items = %v", items)
	}
	if len(called) != 3 {
		t.Errorf("called = %v, later candidates must not be contacted", called)
	}
}

func TestTryInOrder_PerAttemptTimeout(t *testing.T) {
	attempt := func(ctx context.Context, c string) ([]string, error) {
		if c == "hang" {
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return []string{"ok"}, nil
	}

	start := time.Now()
	items, err := TryInOrder(context.Background(), []string{"hang", "fast"}, 50*time.Millisecond, attempt)
	if err != nil {
		t.Fatalf("TryInOrder() error = %v", err)
	}
	if len(items) != 1 {
		t.Errorf("items = %v", items)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("took %v, per-attempt timeout not applied", elapsed)
	}
}

func TestTryInOrder_Exhausted(t *testing.T) {
	attempt := func(ctx context.Context, c int) ([]int, error) {
		return nil, errors.New("nope")
	}

	_, err := TryInOrder(context.Background(), []int{1, 2, 3}, time.Second, attempt)
	if !errors.Is(err, ErrExhausted) {
		t.Errorf("error = %v, want ErrExhausted", err)
	}

	_, err = TryInOrder[int, int](context.Background(), nil, time.Second, attempt)
	if !errors.Is(err, ErrExhausted) {
		t.Errorf("empty candidates error = %v, want ErrExhausted", err)
	}
}

func TestTryInOrder_ParentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := TryInOrder(ctx, []int{1, 2}, time.Second, func(ctx context.Context, c int) ([]int, error) {
		calls++
		return []int{c}, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if calls != 0 {
		t.Errorf("calls = %d, want 0", calls)
	}
}
