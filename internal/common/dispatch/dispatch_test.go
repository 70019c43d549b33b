package dispatch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInline_RunsOnCaller(t *testing.T) {
	ran := false
	Inline{}.Dispatch(func() { ran = true })
	assert.True(t, ran)
}

func TestQueue_FIFO(t *testing.T) {
	q := NewQueue(4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	var (
		mu  sync.Mutex
		got []int
		wg  sync.WaitGroup
	)
	for i := 0; i < 20; i++ {
		i := i
		wg.Add(1)
		q.Dispatch(func() {
			defer wg.Done()
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		})
	}
	wg.Wait()

	want := make([]int, 20)
	for i := range want {
		want[i] = i
	}
	assert.Equal(t, want, got)
}

func TestQueue_CloseDrainsAndIgnoresLateWork(t *testing.T) {
	q := NewQueue(0)
	count := 0
	q.Dispatch(func() { count++ })
	q.Dispatch(func() { count++ })
	q.Close()
	q.Close()

	q.Dispatch(func() { count += 100 })

	q.Run(context.Background())
	assert.Equal(t, 2, count)

	select {
	case <-q.Stopped():
	default:
		t.Fatal("expected Stopped to be closed after Run returns")
	}
}

func TestQueue_SurvivesPanickingTask(t *testing.T) {
	q := NewQueue(2)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	done := make(chan struct{})
	q.Dispatch(func() { panic("observer bug") })
	q.Dispatch(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("queue stopped after a panicking task")
	}
}

func TestQueue_StopsOnContextCancel(t *testing.T) {
	q := NewQueue(1)
	ctx, cancel := context.WithCancel(context.Background())
	q.Start(ctx)
	cancel()

	select {
	case <-q.Stopped():
	case <-time.After(time.Second):
		require.Fail(t, "queue did not stop on cancel")
	}
}

func TestQueue_DispatchAfterCancelDoesNotBlock(t *testing.T) {
	q := NewQueue(1)
	ctx, cancel := context.WithCancel(context.Background())
	q.Start(ctx)
	cancel()
	<-q.Stopped()

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		q.Dispatch(func() {})
		q.Dispatch(func() {})
		q.Dispatch(func() {})
		q.Close()
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		require.Fail(t, "dispatch or close blocked on a stopped queue")
	}
}

func TestQueue_CloseReleasesBlockedDispatch(t *testing.T) {
	q := NewQueue(1)
	q.Dispatch(func() {})

	released := make(chan struct{})
	go func() {
		defer close(released)
		q.Dispatch(func() {})
	}()

	select {
	case <-released:
		require.Fail(t, "dispatch should block while the buffer is full")
	case <-time.After(50 * time.Millisecond):
	}

	closed := make(chan struct{})
	go func() {
		q.Close()
		close(closed)
	}()

	for _, ch := range []chan struct{}{closed, released} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			require.Fail(t, "close deadlocked with a dispatch blocked on a full buffer")
		}
	}
}
