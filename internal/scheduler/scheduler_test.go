package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type countingSweeper struct {
	mu    sync.Mutex
	calls []time.Time
	err   error
}

func (s *countingSweeper) CloseExpired(_ context.Context, asOf time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, asOf)
	return 0, s.err
}

func (s *countingSweeper) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func TestUntilNextAlignsToBoundary(t *testing.T) {
	at := time.Date(2026, 5, 1, 10, 17, 30, 0, time.UTC)
	if d := untilNext(at, time.Hour); d != 42*time.Minute+30*time.Second {
		t.Fatalf("expected 42m30s, got %s", d)
	}
	top := time.Date(2026, 5, 1, 11, 0, 0, 0, time.UTC)
	if d := untilNext(top, time.Hour); d != time.Hour {
		t.Fatalf("on the boundary the next run is a full interval away, got %s", d)
	}
}

func TestEverySweepsUntilCancelled(t *testing.T) {
	sweeper := &countingSweeper{err: errors.New("db down")}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		Every(ctx, sweeper, 10*time.Millisecond, time.Now)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for sweeper.count() < 3 {
		select {
		case <-deadline:
			t.Fatalf("expected at least 3 sweeps, got %d", sweeper.count())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Every did not stop after cancel")
	}
}
