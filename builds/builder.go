// Package builds compiles element directives into chains and binds them.
package builds

import (
	"errors"
	"fmt"

	"github.com/reusee/e5"
	"github.com/reusee/evchain/cells"
	"github.com/reusee/evchain/descs"
	"github.com/reusee/evchain/doms"
	"github.com/reusee/evchain/insts"
)

var wrap = e5.Wrap.With(e5.WrapStacktrace)

var ErrDuplicateStore = errors.New("duplicate stored event")

type Builder struct {
	Env   *cells.Env
	Lib   *insts.Lib
	Store *Store
}

func NewBuilder(env *cells.Env, lib *insts.Lib, store *Store) *Builder {
	if env == nil {
		env = new(cells.Env)
	}
	if env.Events == nil {
		env.Events = doms.NewEvents()
	}
	if store == nil {
		store = NewStore()
	}
	lib.Define("invoke", store.Invoke())
	return &Builder{
		Env:   env,
		Lib:   lib,
		Store: store,
	}
}

// Build compiles the on, by and to texts of target. Every event of a group
// gets its own chain. Store-flagged events are filed in the Store, the
// others bound on target. BoundEvent is dispatched on target afterwards.
func (b *Builder) Build(target doms.Element, on, by, to string) error {
	groups, err := descs.ParseDirective(on, by, to)
	if err != nil {
		return wrap(err)
	}
	// stored chains are keyed by event name only
	stored := make(map[string]*descs.Event)
	for _, group := range groups {
		for _, event := range group.Events {
			if !event.Store {
				continue
			}
			if prev, ok := stored[event.ID()]; ok {
				return wrap(fmt.Errorf("%w: %q and %q", ErrDuplicateStore, prev.Text, event.Text))
			}
			stored[event.ID()] = event
		}
	}
	for _, group := range groups {
		body, err := b.Body(group)
		if err != nil {
			return wrap(err)
		}
		for _, event := range group.Events {
			b.bind(target, event, body)
		}
	}
	if err := b.Env.Events.Trigger(target, doms.BoundEvent, nil, false, false); err != nil {
		return wrap(err)
	}
	return nil
}

// Body compiles the cells a group's chains share: calls after the events,
// by calls, the query, the updates and the calls after the updates.
func (b *Builder) Body(group *descs.Group) (*cells.Chain, error) {
	body := cells.NewChain(b.Env, nil)
	add := func(calls ...*descs.Call) error {
		for _, call := range calls {
			cell, err := b.Lib.Cell(call)
			if err != nil {
				return err
			}
			body.Append(cell)
		}
		return nil
	}
	if err := add(group.Pre...); err != nil {
		return nil, err
	}
	if err := add(group.Calls...); err != nil {
		return nil, err
	}
	if group.Query != nil {
		body.Append(cells.NewCell("query", insts.Query(group.Query), nil))
	}
	for _, update := range group.Updates {
		if err := add(update.Call); err != nil {
			return nil, fmt.Errorf("update %q: %w", update.Text, err)
		}
	}
	if err := add(group.Post...); err != nil {
		return nil, err
	}
	return body, nil
}

func (b *Builder) bind(target doms.Element, event *descs.Event, body *cells.Chain) {
	chain := body.Clone()
	chain.Event = event
	chain.Cells = append([]*cells.Cell{
		cells.NewCell(event.ID(), insts.Pass, nil),
	}, chain.Cells...)

	if event.Store {
		b.Store.Put(target, event.ID(), chain)
		return
	}
	capture := doms.DefaultCapture(event.Name)
	if event.Capture != nil {
		capture = *event.Capture
	}
	if event.Once {
		b.Env.Events.Once(target, event.Name, event.Selector, chain, capture)
	} else {
		b.Env.Events.Bind(target, event.Name, event.Selector, chain, capture)
	}
}
