package main

import (
	"context"
	"sync"
	"sync/atomic"

	"travel-discovery/internal/common/errors"
	"travel-discovery/internal/common/logger"
	"travel-discovery/internal/discovery"
	"travel-discovery/internal/loader"
)

// screen tracks the loaders behind the discover screen. Subscribers run on
// the loaders' dispatcher, the stand-in for the app's main thread.
type screen struct {
	log    logger.Logger
	wg     sync.WaitGroup
	loaded atomic.Int32
	failed atomic.Int32
	done   chan struct{}

	// waits holds one Loader.Wait per tile.
	waits []func(context.Context) error
}

// loadDiscoverScreen starts one loader per tile the app shows: every category,
// every popular destination, restaurant and trending creator.
func loadDiscoverScreen(ctx context.Context, c *discovery.Client, cat *discovery.Catalog, log logger.Logger) *screen {
	s := &screen{log: log, done: make(chan struct{})}

	for _, category := range cat.Categories {
		watch(s, c.Category(ctx, category.Name), category.Name, func(places []discovery.Place) map[string]interface{} {
			return map[string]interface{}{"places": len(places)}
		})
	}
	for _, d := range cat.Destinations {
		watch(s, c.Destination(ctx, d.Name), d.Name, func(v discovery.DestinationDetails) map[string]interface{} {
			return map[string]interface{}{
				"photos":      len(v.Photos),
				"attractions": len(cat.AttractionsFor(d.Name)),
			}
		})
	}
	for _, r := range cat.Restaurants {
		watch(s, c.Restaurant(ctx, r.ID), r.Name, func(v discovery.RestaurantDetails) map[string]interface{} {
			return map[string]interface{}{
				"dishes":  len(v.PopularDishes),
				"reviews": len(v.Reviews),
			}
		})
	}
	for _, u := range cat.Creators {
		watch(s, c.User(ctx, u.ID), u.Name, func(v discovery.UserDetails) map[string]interface{} {
			return map[string]interface{}{
				"username":  v.Username,
				"followers": v.Followers,
				"posts":     len(v.Posts),
			}
		})
	}

	go func() {
		s.wg.Wait()
		close(s.done)
	}()
	return s
}

func watch[T any](s *screen, l *loader.Loader[T], title string, summarize func(T) map[string]interface{}) {
	s.wg.Add(1)
	s.waits = append(s.waits, func(ctx context.Context) error {
		_, err := l.Wait(ctx)
		return err
	})
	l.Subscribe(func(st loader.State[T]) {
		defer s.wg.Done()

		fields := map[string]interface{}{
			"loaderId": l.ID(),
			"resource": l.Name(),
			"title":    title,
			"url":      l.Request().String(),
		}
		if st.Status == loader.StatusFailed {
			s.failed.Add(1)
			fields["errorCode"] = string(st.Code())
			fields["message"] = st.Message
			fields["retryable"] = errors.IsRetryable(st.Err)
			if errors.HasCode(st.Err, errors.ErrCodeDecodeFailed) {
				s.log.Error("tile payload does not match its schema", fields)
				return
			}
			s.log.Warn("tile failed to load", fields)
			return
		}

		s.loaded.Add(1)
		for k, v := range summarize(st.Value) {
			fields[k] = v
		}
		s.log.Info("tile loaded", fields)
	})
}

// Done is closed once every tile reached a terminal state.
func (s *screen) Done() <-chan struct{} { return s.done }

// Unsettled waits for every tile until ctx is done and returns how many are
// still loading.
func (s *screen) Unsettled(ctx context.Context) int {
	n := 0
	for _, wait := range s.waits {
		if wait(ctx) != nil {
			n++
		}
	}
	return n
}

func (s *screen) Loaded() int { return int(s.loaded.Load()) }

func (s *screen) Failed() int { return int(s.failed.Load()) }
