// Package loops drives chain runs on an eventloop.Loop. Tasks only run
// while Run or Drain is active, one at a time on the event loop goroutine;
// anything posted in between is held until the next Run or Drain. Post,
// timers and future settle functions may be used from any goroutine.
package loops

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/joeycumines/go-eventloop"
)

type Loop struct {
	loop *eventloop.Loop
	js   *eventloop.JS

	mu      sync.Mutex
	queued  int
	timers  int
	running bool
	held    []func()
	err     error
	changed chan struct{}
	turn    atomic.Uint64
}

func New() *Loop {
	loop, err := eventloop.New(
		eventloop.WithStrictMicrotaskOrdering(true),
	)
	if err != nil {
		panic(err)
	}
	js, err := eventloop.NewJS(loop)
	if err != nil {
		panic(err)
	}
	l := &Loop{
		loop:    loop,
		js:      js,
		changed: make(chan struct{}, 1),
	}
	go func() {
		if err := loop.Run(context.Background()); err != nil {
			l.Fail(err)
		}
	}()
	return l
}

// Close stops the underlying event loop. Held tasks are dropped.
func (l *Loop) Close() error {
	return l.loop.Shutdown(context.Background())
}

// Post queues fn to run in a later turn.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.queued++
	l.mu.Unlock()
	if err := l.loop.Submit(func() {
		l.mu.Lock()
		l.queued--
		l.mu.Unlock()
		l.dispatch(fn)
	}); err != nil {
		l.mu.Lock()
		l.queued--
		l.mu.Unlock()
		l.Fail(err)
	}
}

// dispatch runs on the event loop goroutine.
func (l *Loop) dispatch(fn func()) {
	l.mu.Lock()
	if !l.running || l.err != nil {
		l.held = append(l.held, fn)
		l.mu.Unlock()
		l.notify()
		return
	}
	l.mu.Unlock()
	defer l.notify()
	l.turn.Add(1)
	fn()
}

func (l *Loop) notify() {
	select {
	case l.changed <- struct{}{}:
	default:
	}
}

// Fail records a fatal error. Run and Drain return it once the tasks queued
// before it are settled; tasks after it wait for the next run.
func (l *Loop) Fail(err error) {
	if err == nil {
		return
	}
	l.mu.Lock()
	l.err = errors.Join(l.err, err)
	l.mu.Unlock()
	l.notify()
}

// Turn counts the tasks run so far.
func (l *Loop) Turn() uint64 {
	return l.turn.Load()
}

// Run executes tasks until ctx is done or a fatal error is recorded.
func (l *Loop) Run(ctx context.Context) error {
	return l.run(ctx, false)
}

// Drain executes tasks until no task is queued and no timer is pending.
func (l *Loop) Drain(ctx context.Context) error {
	return l.run(ctx, true)
}

func (l *Loop) run(ctx context.Context, untilIdle bool) error {
	if err := l.onLoop(func() {
		l.mu.Lock()
		l.running = true
		held := l.held
		l.held = nil
		l.mu.Unlock()
		for _, fn := range held {
			l.dispatch(fn)
		}
	}); err != nil {
		return err
	}

	for {
		var (
			done bool
			ret  error
		)
		if err := l.onLoop(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			if l.queued > 0 {
				return
			}
			if l.err != nil {
				done, ret = true, l.err
				l.err = nil
			} else if untilIdle && l.timers == 0 {
				done = true
			}
			if done {
				l.running = false
			}
		}); err != nil {
			return err
		}
		if done {
			return ret
		}

		select {
		case <-ctx.Done():
			if err := l.onLoop(func() {
				l.mu.Lock()
				l.running = false
				l.mu.Unlock()
			}); err != nil {
				return errors.Join(ctx.Err(), err)
			}
			return ctx.Err()
		case <-l.changed:
		}
	}
}

// onLoop runs fn on the event loop goroutine and waits for it. Microtasks
// of earlier tasks have run by then.
func (l *Loop) onLoop(fn func()) error {
	done := make(chan struct{})
	if err := l.loop.Submit(func() {
		defer close(done)
		fn()
	}); err != nil {
		return err
	}
	<-done
	return nil
}
