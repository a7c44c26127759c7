package loops

import "time"

type Timer struct {
	loop *Loop
	fn   func()
	id   uint64
	done bool
}

// AfterFunc runs fn as a loop task once d has elapsed.
func (l *Loop) AfterFunc(d time.Duration, fn func()) *Timer {
	t := &Timer{
		loop: l,
		fn:   fn,
	}
	l.mu.Lock()
	l.timers++
	l.mu.Unlock()
	id, err := l.js.SetTimeout(t.fire, int(d.Milliseconds()))
	l.mu.Lock()
	if err != nil {
		t.done = true
		l.timers--
	}
	t.id = id
	l.mu.Unlock()
	if err != nil {
		l.Fail(err)
	}
	return t
}

func (t *Timer) fire() {
	l := t.loop
	l.mu.Lock()
	if t.done {
		l.mu.Unlock()
		return
	}
	t.done = true
	l.timers--
	l.mu.Unlock()
	l.dispatch(t.fn)
}

// Stop prevents the timer from firing, reporting whether it was pending.
func (t *Timer) Stop() bool {
	if t == nil {
		return false
	}
	l := t.loop
	l.mu.Lock()
	if t.done {
		l.mu.Unlock()
		return false
	}
	t.done = true
	l.timers--
	id := t.id
	l.mu.Unlock()
	l.js.ClearTimeout(id)
	l.notify()
	return true
}
