package insts

import (
	"github.com/reusee/evchain/cells"
	"github.com/reusee/evchain/doms"
	"github.com/reusee/evchain/stacks"
)

func runElement(evo *cells.Evo) doms.Element {
	if evo.Current != nil {
		return evo.Current
	}
	return evo.Origin
}

func defineEvents(lib *Lib) {

	// fire("name") dispatches a bubbling event carrying the current value
	// on the bound element. fire("name", data) carries data instead.
	lib.Define("fire", cells.Func(func(evo *cells.Evo, args []any) (any, error) {
		name, err := argString(args, 0)
		if err != nil {
			return nil, err
		}
		target := runElement(evo)
		if target == nil || evo.Env.Events == nil {
			return nil, cells.Warnf("fire %s: no element", name)
		}
		data := evo.Data
		if len(args) > 1 {
			data = args[1]
		}
		if err := evo.Env.Events.Trigger(target, name, data, true, true); err != nil {
			return nil, err
		}
		return evo.Data, nil
	}).Want(1))

	// tap opens the debug REPL over the run state
	lib.Define("tap", cells.Priv(func(evo *cells.Evo, stack *stacks.Stack, args []any) (any, error) {
		what := evo.Chain.Name()
		if len(args) > 0 {
			what = Text(args[0])
		}
		globals := map[string]any{
			"data":   doms.ExprValue(evo.Data),
			"stack":  doms.ExprValue(stack.Values()),
			"staged": doms.ExprValue(stack.Staged()),
		}
		if evo.Env.Tap != nil {
			evo.Env.Tap(evo.Context(), what, globals)
		} else if evo.Env.Logger != nil {
			evo.Env.Logger.InfoContext(evo.Context(), "tap: "+what,
				"data", globals["data"],
				"stack", globals["stack"],
			)
		}
		return evo.Data, nil
	}).Want(1))
}
