// Package loader implements the resource loader: one fetch, one decode, one
// terminal state published on the UI-affine dispatcher.
//
// A Loader starts fetching as soon as it is built and never retries. To try
// again, build a new Loader. State transitions are
//
//	Idle -> Loading -> Loaded | Failed
//
// and both Loaded and Failed are terminal.
package loader

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"travel-discovery/internal/common/dispatch"
	"travel-discovery/internal/common/errors"
	httpc "travel-discovery/internal/common/http"
	"travel-discovery/internal/common/logger"
)

// Decoder maps a response body to a payload. It must be pure: no I/O, no
// shared state, same bytes in, same result out.
type Decoder[T any] func(data []byte) (T, error)

const (
	outcomeLoaded = "loaded"
	outcomeFailed = "failed"
)

type Loader[T any] struct {
	id         string
	name       string
	req        Request
	target     string
	state      atomic.Pointer[State[T]]
	done       chan struct{}
	dispatcher dispatch.Dispatcher
	log        logger.Logger

	mu   sync.Mutex
	subs []func(State[T])
}

// New builds a loader for req and starts its single fetch on a new goroutine.
// It returns with the loader in Loading, or already Failed when the request
// target cannot be built, in which case nothing is sent.
//
// ctx is forwarded to the transport; cancelling it ends the attempt as a
// transport failure.
func New[T any](ctx context.Context, req Request, decode Decoder[T], opts ...Option) *Loader[T] {
	o := newOptions(opts)
	id := uuid.New().String()
	l := &Loader[T]{
		id:         id,
		name:       o.name,
		req:        req,
		done:       make(chan struct{}),
		dispatcher: o.dispatcher,
		log: o.log.With(map[string]interface{}{
			"loaderId": id,
			"resource": o.name,
		}),
	}
	l.set(idle[T]())

	target, err := req.Target()
	if err != nil {
		le := errors.NewRequestConstructionError(err)
		l.log.Warn("request target could not be built", map[string]interface{}{
			"endpoint":  req.Endpoint(),
			"errorCode": string(le.Code),
			"error":     err.Error(),
		})
		l.set(failed[T](le))
		close(l.done)
		return l
	}
	l.target = target

	l.set(loading[T]())
	go l.run(ctx, o.fetcher, o.instrument, decode)
	return l
}

// ID is a unique identifier for log correlation.
func (l *Loader[T]) ID() string {
	return l.id
}

func (l *Loader[T]) Name() string {
	return l.name
}

func (l *Loader[T]) Request() Request {
	return l.req
}

// State returns the current snapshot. Safe from any goroutine.
func (l *Loader[T]) State() State[T] {
	return *l.state.Load()
}

// Done is closed once the terminal state has been applied on the dispatcher.
func (l *Loader[T]) Done() <-chan struct{} {
	return l.done
}

// Subscribe registers fn to be called once, on the dispatcher, with the
// terminal state. Subscribing after completion still delivers it.
//
// Subscribers registered before completion run inside the dispatched terminal
// transition, in registration order; with dispatch.Inline that is the
// loader's fetch goroutine. A loader whose fetch never completes never calls
// fn, and holds no goroutine for it.
func (l *Loader[T]) Subscribe(fn func(State[T])) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	select {
	case <-l.done:
		l.mu.Unlock()
		l.dispatcher.Dispatch(func() { l.notify(fn, l.State()) })
	default:
		l.subs = append(l.subs, fn)
		l.mu.Unlock()
	}
}

// Wait blocks until the loader is terminal or ctx is done.
func (l *Loader[T]) Wait(ctx context.Context) (State[T], error) {
	select {
	case <-l.done:
		return l.State(), nil
	case <-ctx.Done():
		return l.State(), ctx.Err()
	}
}

func (l *Loader[T]) set(s State[T]) {
	l.state.Store(&s)
}

func (l *Loader[T]) run(ctx context.Context, fetcher httpc.Fetcher, in Instrument, decode Decoder[T]) {
	started := time.Now()
	l.log.Debug("fetch started", map[string]interface{}{"url": l.target})

	ctx, finish := in.Start(ctx, l.name, l.target)
	next := l.fetch(ctx, fetcher, decode)

	fields := map[string]interface{}{
		"url":        l.target,
		"status":     next.Status.String(),
		"durationMs": time.Since(started).Milliseconds(),
	}
	if next.Status == StatusFailed {
		finish(outcomeFailed, next.Err)
		fields["errorCode"] = string(next.Err.Code)
		fields["errorCategory"] = errors.GetErrorCategory(next.Err.Code)
		fields["retryable"] = next.Err.Retryable
		l.log.Warn("load failed", fields)
	} else {
		finish(outcomeLoaded, nil)
		l.log.Info("load completed", fields)
	}

	l.dispatcher.Dispatch(func() { l.complete(next) })
}

// complete applies the terminal state and notifies pending subscribers. It
// runs on the dispatcher.
func (l *Loader[T]) complete(s State[T]) {
	l.mu.Lock()
	l.set(s)
	close(l.done)
	subs := l.subs
	l.subs = nil
	l.mu.Unlock()

	for _, fn := range subs {
		l.notify(fn, s)
	}
}

// notify keeps one panicking subscriber from starving the rest.
func (l *Loader[T]) notify(fn func(State[T]), s State[T]) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error("subscriber panicked", map[string]interface{}{"panic": fmt.Sprint(r)})
		}
	}()
	fn(s)
}

func (l *Loader[T]) fetch(ctx context.Context, fetcher httpc.Fetcher, decode Decoder[T]) State[T] {
	resp, err := fetcher.Get(ctx, l.target)
	if err != nil {
		return failed[T](errors.NewTransportError(err))
	}
	if resp == nil {
		return failed[T](errors.NewTransportError(fmt.Errorf("no response received")))
	}
	if resp.StatusCode >= 400 {
		return failed[T](errors.NewHTTPStatusError(resp.StatusCode))
	}
	if len(resp.Body) == 0 {
		return failed[T](errors.NewEmptyBodyError(resp.StatusCode))
	}

	v, err := safeDecode(decode, resp.Body)
	if err != nil {
		return failed[T](errors.NewDecodeError(err))
	}
	return loaded(v)
}

// safeDecode turns a panicking decoder into a decode failure.
func safeDecode[T any](decode Decoder[T], body []byte) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decoder panicked: %v", r)
		}
	}()
	return decode(body)
}
