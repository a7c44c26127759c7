package doms

import (
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/reusee/evchain/weaks"
	"golang.org/x/net/html"
)

type Phase uint8

const (
	PhaseNone Phase = iota
	PhaseCapture
	PhaseTarget
	PhaseBubble
)

type Event struct {
	Name       string
	Data       any
	Target     Element
	Bubbles    bool
	Cancelable bool
	Phase      Phase

	defaultPrevented bool
	stopped          bool
}

func NewEvent(name string, data any, bubbles, cancelable bool) *Event {
	return &Event{
		Name:       name,
		Data:       data,
		Bubbles:    bubbles,
		Cancelable: cancelable,
	}
}

func (e *Event) PreventDefault() {
	if e.Cancelable {
		e.defaultPrevented = true
	}
}

func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation keeps the event from reaching further elements.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Elo holds the elements of one handler invocation.
type Elo struct {
	// Origin is the element the event was dispatched to.
	Origin Element
	// Current is the element the handler is bound to.
	Current Element
	// Delegate is the element that matched the binding selector, or Current.
	Delegate Element
	Selector string
}

type Handler interface {
	HandleEvent(ev *Event, elo Elo) error
}

type HandlerFunc func(ev *Event, elo Elo) error

func (f HandlerFunc) HandleEvent(ev *Event, elo Elo) error {
	return f(ev, elo)
}

var nonBubbling = map[string]bool{
	"blur":         true,
	"focus":        true,
	"load":         true,
	"unload":       true,
	"error":        true,
	"scroll":       true,
	"mouseenter":   true,
	"mouseleave":   true,
	"pointerenter": true,
	"pointerleave": true,
	BoundEvent:     true,
}

// BoundEvent is dispatched on an element after its directives are bound.
const BoundEvent = "bound"

// DefaultCapture reports whether handlers for name listen in the capture
// phase when the directive does not say. Events that do not bubble are
// only seen by ancestors while capturing.
func DefaultCapture(name string) bool {
	return nonBubbling[name]
}

type listener struct {
	name     string
	selector string
	handler  Handler
	capture  bool
	once     bool
	removed  bool
}

// Events binds handlers to elements and dispatches events through the tree.
// Listener lists are weakly keyed by element.
type Events struct {
	listeners *weaks.Map[html.Node, []*listener]
}

func NewEvents() *Events {
	return &Events{
		listeners: weaks.NewMap[html.Node, []*listener](),
	}
}

func (e *Events) Bind(target Element, name string, selector string, handler Handler, capture bool) {
	e.bind(target, &listener{
		name:     name,
		selector: selector,
		handler:  handler,
		capture:  capture,
	})
}

// Once binds a handler that is removed after its first invocation.
func (e *Events) Once(target Element, name string, selector string, handler Handler, capture bool) {
	e.bind(target, &listener{
		name:     name,
		selector: selector,
		handler:  handler,
		capture:  capture,
		once:     true,
	})
}

func (e *Events) bind(target Element, l *listener) {
	e.listeners.Upsert(target, func(ls []*listener, _ bool) []*listener {
		for _, existing := range ls {
			if existing.same(l.name, l.selector, l.handler, l.capture) {
				// binding twice is a no-op
				return ls
			}
		}
		return append(ls, l)
	})
}

func (e *Events) Unbind(target Element, name string, selector string, handler Handler, capture bool) {
	ls, ok := e.listeners.Get(target)
	if !ok {
		return
	}
	ls = slices.DeleteFunc(ls, func(l *listener) bool {
		if l.same(name, selector, handler, capture) {
			l.removed = true
			return true
		}
		return false
	})
	if len(ls) == 0 {
		e.listeners.Delete(target)
		return
	}
	e.listeners.Set(target, ls)
}

// UnbindAll drops every handler of target.
func (e *Events) UnbindAll(target Element) {
	ls, _ := e.listeners.Get(target)
	for _, l := range ls {
		l.removed = true
	}
	e.listeners.Delete(target)
}

// Count returns the number of handlers bound to target.
func (e *Events) Count(target Element) int {
	ls, _ := e.listeners.Get(target)
	return len(ls)
}

func (l *listener) same(name, selector string, handler Handler, capture bool) bool {
	return l.name == name &&
		l.selector == selector &&
		l.capture == capture &&
		sameHandler(l.handler, handler)
}

func sameHandler(a, b Handler) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta != nil && ta.Comparable() {
		return a == b
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() == reflect.Func {
		return va.Pointer() == vb.Pointer()
	}
	return false
}

// Trigger dispatches a new event on target.
func (e *Events) Trigger(target Element, name string, data any, bubble bool, cancelable bool) error {
	return e.Dispatch(target, NewEvent(name, data, bubble, cancelable))
}

// Dispatch runs the capture phase from the root down to target's parent,
// the target phase, then the bubble phase back up when ev bubbles. Handler
// errors do not stop dispatch; they are joined in the result.
func (e *Events) Dispatch(target Element, ev *Event) error {
	if target == nil {
		return fmt.Errorf("dispatch %s: nil target", ev.Name)
	}
	ev.Target = target
	path := Path(target)
	var errs []error

	ev.Phase = PhaseCapture
	for _, n := range path[:len(path)-1] {
		errs = append(errs, e.invoke(n, ev, func(l *listener) bool {
			return l.capture
		})...)
		if ev.stopped {
			return errors.Join(errs...)
		}
	}

	ev.Phase = PhaseTarget
	errs = append(errs, e.invoke(target, ev, nil)...)
	if ev.stopped || !ev.Bubbles {
		ev.Phase = PhaseNone
		return errors.Join(errs...)
	}

	ev.Phase = PhaseBubble
	for i := len(path) - 2; i >= 0; i-- {
		errs = append(errs, e.invoke(path[i], ev, func(l *listener) bool {
			return !l.capture
		})...)
		if ev.stopped {
			break
		}
	}
	ev.Phase = PhaseNone
	return errors.Join(errs...)
}

func (e *Events) invoke(current Element, ev *Event, filter func(*listener) bool) (errs []error) {
	ls, ok := e.listeners.Get(current)
	if !ok {
		return nil
	}
	// handlers bound during dispatch wait for the next event
	ls = slices.Clone(ls)
	for _, l := range ls {
		if l.removed || l.name != ev.Name {
			continue
		}
		if filter != nil && !filter(l) {
			continue
		}
		elo := Elo{
			Origin:   ev.Target,
			Current:  current,
			Delegate: current,
			Selector: l.selector,
		}
		if l.selector != "" {
			delegate, err := Closest(ev.Target, l.selector, current)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if delegate == nil {
				continue
			}
			elo.Delegate = delegate
		}
		if l.once {
			e.Unbind(current, l.name, l.selector, l.handler, l.capture)
		}
		if err := l.handler.HandleEvent(ev, elo); err != nil {
			errs = append(errs, fmt.Errorf("%s handler: %w", ev.Name, err))
		}
	}
	return
}
