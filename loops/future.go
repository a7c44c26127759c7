package loops

import (
	"github.com/joeycumines/go-eventloop"
)

type State uint8

const (
	Pending State = iota
	Fulfilled
	Rejected
)

// Future is a value that becomes available in a later loop turn, backed by
// an eventloop.ChainedPromise.
type Future struct {
	loop    *Loop
	promise *eventloop.ChainedPromise
	// locked is set once a settle function took effect, including adoption
	// of another future still pending.
	locked bool
	state  State
	value  any
	reason any
}

// NewFuture returns a pending future with its settle functions. The
// settle functions may be called from any goroutine; only the first call
// has any effect. Resolving with another *Future adopts its outcome.
func (l *Loop) NewFuture() (f *Future, resolve func(any), reject func(any)) {
	promise, resolvePromise, rejectPromise := l.js.NewChainedPromise()
	f = &Future{
		loop:    l,
		promise: promise,
	}
	l.Post(func() {
		promise.Then(
			func(v any) any {
				f.state = Fulfilled
				f.value = v
				return v
			},
			func(r any) any {
				f.state = Rejected
				f.reason = r
				return nil
			},
		)
	})

	resolve = func(v any) {
		l.Post(func() {
			if f.locked {
				return
			}
			f.locked = true
			other, ok := v.(*Future)
			if !ok {
				resolvePromise(v)
				return
			}
			if other == f {
				rejectPromise("err: future resolved with itself")
				return
			}
			other.Then(
				func(v any) {
					resolvePromise(v)
				},
				func(r any) {
					rejectPromise(r)
				},
			)
		})
	}
	reject = func(r any) {
		l.Post(func() {
			if f.locked {
				return
			}
			f.locked = true
			rejectPromise(r)
		})
	}
	return
}

func (l *Loop) Resolved(v any) *Future {
	f, resolve, _ := l.NewFuture()
	resolve(v)
	return f
}

func (l *Loop) Rejected(r any) *Future {
	f, _, reject := l.NewFuture()
	reject(r)
	return f
}

// Then registers callbacks for the outcome. They always run as loop tasks,
// never synchronously inside Then.
func (f *Future) Then(onFulfilled func(any), onRejected func(any)) {
	loop := f.loop
	loop.Post(func() {
		f.promise.Then(
			func(v any) any {
				if onFulfilled != nil {
					loop.Post(func() {
						onFulfilled(v)
					})
				}
				return nil
			},
			func(r any) any {
				if onRejected != nil {
					loop.Post(func() {
						onRejected(r)
					})
				}
				return nil
			},
		)
	})
}

func (f *Future) State() State {
	return f.state
}

func (f *Future) Value() any {
	return f.value
}

func (f *Future) Reason() any {
	return f.reason
}

func (f *Future) Loop() *Loop {
	return f.loop
}
