package cells

import (
	"context"
	"fmt"

	"github.com/reusee/evchain/doms"
	"github.com/reusee/evchain/evconfigs"
	"github.com/reusee/evchain/logs"
	"github.com/reusee/evchain/loops"
	"github.com/reusee/evchain/stacks"
	"github.com/reusee/evchain/vars"
)

// Evo is the state of one chain run, passed to every instruction.
type Evo struct {
	Event    *doms.Event
	Origin   doms.Element
	Current  doms.Element
	Delegate doms.Element
	// Data is the current value extracted for the running cell.
	Data any
	// Targets are the elements found by the query cell.
	Targets []doms.Element
	Chain   *Chain
	Cell    *Cell
	Loop    *loops.Loop
	Env     *Env

	ctx     context.Context
	stack   *stacks.Stack
	index   int
	next    int
	entry   int
	entries int
	turn    uint64
	stopped bool
}

func (e *Evo) Context() context.Context {
	return e.ctx
}

// Index returns the position of the running cell.
func (e *Evo) Index() int {
	return e.index
}

// Skip bypasses the n cells after the running one.
func (e *Evo) Skip(n int) {
	if n > 0 {
		e.next += n
	}
}

// Stop ends the run after the running cell.
func (e *Evo) Stop() {
	e.stopped = true
}

func (e *Evo) Stopped() bool {
	return e.stopped
}

// Entry marks the cell after the running one as the loop entry point.
func (e *Evo) Entry() {
	e.entry = e.index + 1
}

// Back continues the run at the entry point with v as incoming value.
func (e *Evo) Back(v any) (any, error) {
	if err := e.loopBack(); err != nil {
		return nil, err
	}
	return v, nil
}

// Reenter restarts the run at the entry point in a later loop turn.
func (e *Evo) Reenter(v any) (any, error) {
	if e.Loop == nil {
		return nil, Errorf("reenter without loop")
	}
	if err := e.loopBack(); err != nil {
		return nil, err
	}
	return e.Loop.Resolved(v), nil
}

func (e *Evo) loopBack() error {
	if e.entry < 0 {
		return Errorf("no entry point before %s", e.Cell.Name)
	}
	var turn uint64
	if e.Loop != nil {
		turn = e.Loop.Turn()
	}
	if turn != e.turn {
		e.turn = turn
		e.entries = 0
	}
	e.entries++
	if limit := vars.FirstNonZero(e.Env.EntryLimit, evconfigs.DefaultEntryLimit); limit > 0 && e.entries > limit {
		return fmt.Errorf("%w: %d in chain %s", ErrCycle, limit, e.Chain.Name())
	}
	e.next = e.entry
	return nil
}

// exec runs the chain from cell i. The result is the terminal value, or a
// future of it when a cell went async.
func (e *Evo) exec(i int, value any) (any, error) {
	cells := e.Chain.Cells
	for {
		if e.stopped {
			return nil, nil
		}
		if i >= len(cells) {
			return value, nil
		}
		cell := cells[i]
		e.index = i
		e.next = i + 1
		e.Cell = cell

		result, err := e.call(cell, value)
		if err != nil {
			if isFatal(err) {
				return nil, logs.WrapSpan(e.ctx, err)
			}
			e.reject(err)
			return nil, nil
		}
		if future, ok := result.(*loops.Future); ok {
			return e.await(future), nil
		}

		value = result
		i = e.next
	}
}

func (e *Evo) call(cell *Cell, value any) (any, error) {
	e.stack.Push(value)
	args := cell.arguments(e.stack)
	e.Data = nil
	if cell.Method.hasWant {
		e.Data = e.stack.Data(cell.Method.want)
	}
	return cell.Method.invoke(e, e.stack, args)
}

// await continues the run once future settles.
func (e *Evo) await(future *loops.Future) *loops.Future {
	loop := future.Loop()
	next := e.next
	out, resolve, reject := loop.NewFuture()
	future.Then(
		func(v any) {
			result, err := e.exec(next, v)
			if err != nil {
				loop.Fail(err)
				reject(err)
				return
			}
			resolve(result)
		},
		func(reason any) {
			if err, ok := reason.(error); ok && isFatal(err) {
				err = logs.WrapSpan(e.ctx, err)
				loop.Fail(err)
				reject(err)
				return
			}
			e.reject(reason)
			resolve(nil)
		},
	)
	return out
}

func (e *Evo) reject(reason any) {
	e.Env.route(e.ctx, reason)
}
