package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MoisesFigueroaV/panorama-sub000/pkg/queue"
)

// blockingSource blocks in Dequeue until the context is cancelled, like a
// Redis BLPop with no pending jobs.
type blockingSource struct{}

func (blockingSource) Dequeue(ctx context.Context) (*queue.Job, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingSource) Retry(context.Context, *queue.Job) error { return nil }

// failingSource returns an error on every Dequeue, driving Run into its
// backoff path.
type failingSource struct{}

func (failingSource) Dequeue(context.Context) (*queue.Job, error) {
	return nil, errors.New("connection reset")
}

func (failingSource) Retry(context.Context, *queue.Job) error { return nil }

func TestRunReturnsOnCancelWhileDequeueBlocked(t *testing.T) {
	p := NewNotificationProcessor(nil, blockingSource{}, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunReturnsOnCancelDuringBackoff(t *testing.T) {
	p := NewNotificationProcessor(nil, failingSource{}, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	// let the loop hit the backoff sleep, then cancel; Run must return well
	// before the retry interval elapses
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel during backoff")
	}
}
