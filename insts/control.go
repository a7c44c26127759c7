package insts

import (
	"time"

	"github.com/reusee/evchain/cells"
	"github.com/reusee/evchain/doms"
	"github.com/reusee/evchain/loops"
	"github.com/reusee/evchain/stacks"
	"github.com/reusee/evchain/vars"
)

// Pass returns the current value. Chains start with it.
var Pass = cells.Func(func(evo *cells.Evo, args []any) (any, error) {
	return evo.Data, nil
}).Want(1).Named("pass")

func defineControl(lib *Lib) {

	// push(a, b, c) leaves a and b on the stack and yields c
	lib.Define("push", cells.Priv(func(evo *cells.Evo, stack *stacks.Stack, args []any) (any, error) {
		if len(args) == 0 {
			return nil, nil
		}
		stack.Push(args[:len(args)-1]...)
		return args[len(args)-1], nil
	}))

	lib.Define("pass", Pass)

	lib.Define("stop", cells.Func(func(evo *cells.Evo, args []any) (any, error) {
		if len(args) > 0 {
			if reason, ok := args[0].(string); ok {
				if diag, ok := cells.ParseDiagnostic(reason, cells.KindInfo); ok {
					return nil, diag
				}
			}
		}
		return nil, cells.ErrStop
	}))

	// stop the run when the current value is falsy
	lib.Define("when", cells.Func(func(evo *cells.Evo, args []any) (any, error) {
		if !vars.Truthy(evo.Data) {
			return nil, cells.ErrStop
		}
		return evo.Data, nil
	}).Want(1))

	// jump(n) skips the next n cells when the current value is falsy
	lib.Define("jump", cells.Func(func(evo *cells.Evo, args []any) (any, error) {
		n, err := argInt(args, 0, 1)
		if err != nil {
			return nil, err
		}
		if !vars.Truthy(evo.Data) {
			evo.Skip(n)
		}
		return evo.Data, nil
	}).Want(1))

	lib.Define("entry", cells.Func(func(evo *cells.Evo, args []any) (any, error) {
		evo.Entry()
		return evo.Data, nil
	}).Want(1))

	// loop goes back to the entry while the current value is truthy
	lib.Define("loop", cells.Func(func(evo *cells.Evo, args []any) (any, error) {
		if vars.Truthy(evo.Data) {
			return evo.Back(evo.Data)
		}
		return evo.Data, nil
	}).Want(1))

	// reenter is loop resuming in a later loop turn
	lib.Define("reenter", cells.Func(func(evo *cells.Evo, args []any) (any, error) {
		if vars.Truthy(evo.Data) {
			return evo.Reenter(evo.Data)
		}
		return evo.Data, nil
	}).Want(1))

	lib.Define("delay", cells.Func(func(evo *cells.Evo, args []any) (any, error) {
		ms, err := argInt(args, 0, 0)
		if err != nil {
			return nil, err
		}
		if evo.Loop == nil {
			return nil, cells.Errorf("delay without loop")
		}
		future, resolve, _ := evo.Loop.NewFuture()
		value := evo.Data
		evo.Loop.AfterFunc(time.Duration(ms)*time.Millisecond, func() {
			resolve(value)
		})
		return future, nil
	}).Want(1))

	// debounce(ms) lets a run continue only if no other run reaches this
	// cell within ms. Superseded runs stop silently.
	lib.Define("debounce", cells.Func(func(evo *cells.Evo, args []any) (any, error) {
		ms, err := argInt(args, 0, 0)
		if err != nil {
			return nil, err
		}
		if evo.Loop == nil {
			return nil, cells.Errorf("debounce without loop")
		}
		if pending, ok := evo.Cell.Slot.(*debounced); ok {
			pending.timer.Stop()
			pending.reject(nil)
		}
		future, resolve, reject := evo.Loop.NewFuture()
		value := evo.Data
		state := &debounced{
			reject: reject,
		}
		cell := evo.Cell
		state.timer = evo.Loop.AfterFunc(time.Duration(ms)*time.Millisecond, func() {
			if cell.Slot == state {
				cell.Slot = nil
			}
			resolve(value)
		})
		cell.Slot = state
		return future, nil
	}).Want(1))

	// evo("name") reads the run state
	lib.Define("evo", cells.Func(func(evo *cells.Evo, args []any) (any, error) {
		what, err := argString(args, 0)
		if err != nil {
			return nil, err
		}
		var ret any
		switch what {
		case "event":
			if evo.Event != nil {
				ret = evo.Event
			}
		case "data":
			if evo.Event != nil {
				ret = evo.Event.Data
			}
		case "name":
			ret = evo.Chain.Name()
		case "origin":
			ret = element(evo.Origin)
		case "current":
			ret = element(evo.Current)
		case "delegate":
			ret = element(evo.Delegate)
		case "targets":
			if evo.Targets != nil {
				ret = evo.Targets
			}
		default:
			return nil, cells.Errorf("unknown evo field %q", what)
		}
		if ret == nil {
			return stacks.Null, nil
		}
		return ret, nil
	}))
}

type debounced struct {
	timer  *loops.Timer
	reject func(any)
}

func element(n doms.Element) any {
	if n == nil {
		return nil
	}
	return n
}
