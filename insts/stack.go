package insts

import (
	"github.com/reusee/evchain/cells"
	"github.com/reusee/evchain/stacks"
)

func defineStack(lib *Lib) {

	lib.Define("pop", cells.Priv(func(evo *cells.Evo, stack *stacks.Stack, args []any) (any, error) {
		n, err := argInt(args, 0, 1)
		if err != nil {
			return nil, err
		}
		return stack.Pop(n), nil
	}))

	lib.Define("tpush", cells.Priv(func(evo *cells.Evo, stack *stacks.Stack, args []any) (any, error) {
		stack.TPush(args...)
		return nil, nil
	}))

	lib.Define("tpop", cells.Priv(func(evo *cells.Evo, stack *stacks.Stack, args []any) (any, error) {
		n, err := argInt(args, 0, 1)
		if err != nil {
			return nil, err
		}
		stack.TPop(n)
		return nil, nil
	}))

	lib.Define("tpops", cells.Priv(func(evo *cells.Evo, stack *stacks.Stack, args []any) (any, error) {
		n, err := argInt(args, 0, 1)
		if err != nil {
			return nil, err
		}
		stack.TPops(n)
		return nil, nil
	}))

	lib.Define("tindex", cells.Priv(func(evo *cells.Evo, stack *stacks.Stack, args []any) (any, error) {
		idxs, err := argInts(args)
		if err != nil {
			return nil, err
		}
		stack.TIndex(idxs...)
		return nil, nil
	}))

	lib.Define("tpick", cells.Priv(func(evo *cells.Evo, stack *stacks.Stack, args []any) (any, error) {
		idxs, err := argInts(args)
		if err != nil {
			return nil, err
		}
		stack.TPick(idxs...)
		return nil, nil
	}))

	// tsplice(start, count, values...)
	lib.Define("tsplice", cells.Priv(func(evo *cells.Evo, stack *stacks.Stack, args []any) (any, error) {
		start, err := argInt(args, 0, 0)
		if err != nil {
			return nil, err
		}
		count, err := argInt(args, 1, -1)
		if err != nil {
			return nil, err
		}
		var vals []any
		if len(args) > 2 {
			vals = args[2:]
		}
		stack.TSplice(start, count, vals...)
		return nil, nil
	}))

	lib.Define("tslice", cells.Priv(func(evo *cells.Evo, stack *stacks.Stack, args []any) (any, error) {
		begin, err := argInt(args, 0, 0)
		if err != nil {
			return nil, err
		}
		end, err := argInt(args, 1, stack.Size())
		if err != nil {
			return nil, err
		}
		stack.TSlice(begin, end)
		return nil, nil
	}))
}
