package worker_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/qaforge/qaforge/pkg/textgen"
	"github.com/qaforge/qaforge/pkg/worker"
)

func TestProcessAll_RetriesTransient(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	calls := 0
	failUntil := 2

	fn := func(_ context.Context, _ string) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls <= failUntil {
			return "", &textgen.TransientError{Err: errors.New("try again")}
		}
		return "ok", nil
	}

	out, err := worker.ProcessAll(context.Background(), []string{"s1"}, fn, worker.Options{
		Workers:           1,
		MaxRetries:        3,
		RequestTimeout:    1 * time.Second,
		BackoffInitial:    1 * time.Millisecond,
		BackoffMax:        2 * time.Millisecond,
		BackoffJitterFrac: 0,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 output, got %d", len(out))
	}
	if out[0].Err != nil || out[0].Output != "ok" {
		t.Fatalf("unexpected output: %#v", out[0])
	}

	mu.Lock()
	defer mu.Unlock()
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestProcessAll_DoesNotRetryPermanent(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	calls := 0

	fn := func(_ context.Context, _ string) (string, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return "", errors.New("permanent")
	}

	out, err := worker.ProcessAll(context.Background(), []string{"s1"}, fn, worker.Options{
		Workers:           1,
		MaxRetries:        10,
		BackoffInitial:    1 * time.Millisecond,
		BackoffMax:        1 * time.Millisecond,
		BackoffJitterFrac: 0,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].Err == nil || out[0].Err.Error() != "permanent" {
		t.Fatalf("unexpected output: %#v", out[0])
	}

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestProcessAll_PreservesInputOrder(t *testing.T) {
	t.Parallel()

	items := make([]string, 20)
	for i := range items {
		items[i] = strconv.Itoa(i)
	}

	// Later items finish sooner; output must still be index-ordered.
	fn := func(_ context.Context, in string) (string, error) {
		n, _ := strconv.Atoi(in)
		time.Sleep(time.Duration(len(items)-n) * time.Millisecond)
		return "out-" + in, nil
	}

	out, err := worker.ProcessAll(context.Background(), items, fn, worker.Options{
		Workers: 8,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, res := range out {
		if res.Output != "out-"+strconv.Itoa(i) {
			t.Fatalf("result %d out of order: %#v", i, res)
		}
	}
}

func TestProcessAll_RecordsPerItemErrors(t *testing.T) {
	t.Parallel()

	fn := func(_ context.Context, in string) (string, error) {
		if in == "bad" {
			return "", errors.New("nope")
		}
		return "ok", nil
	}

	out, err := worker.ProcessAll(context.Background(), []string{"good", "bad", "good"}, fn, worker.Options{Workers: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].Err != nil || out[2].Err != nil {
		t.Fatalf("good items should succeed: %#v", out)
	}
	if out[1].Err == nil {
		t.Fatalf("bad item should record its error")
	}
}

func TestProcessAll_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fn := func(context.Context, string) (string, error) { return "ok", nil }
	_, err := worker.ProcessAll(ctx, []string{"a", "b"}, fn, worker.Options{Workers: 1})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
