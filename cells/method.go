package cells

import (
	"github.com/reusee/evchain/stacks"
)

// Fn is an ordinary instruction.
type Fn func(evo *Evo, args []any) (any, error)

// PrivFn is a privileged instruction, given the chain's stack.
type PrivFn func(evo *Evo, stack *stacks.Stack, args []any) (any, error)

// Method is a bound instruction. A result of type *loops.Future suspends
// the chain until it settles.
type Method struct {
	name    string
	fn      Fn
	priv    PrivFn
	want    int
	hasWant bool
}

func Func(fn Fn) *Method {
	return &Method{
		fn: fn,
	}
}

func Priv(fn PrivFn) *Method {
	return &Method{
		priv: fn,
	}
}

// Want returns a copy of m that extracts stack.Data(n) into Evo.Data before
// each call.
func (m *Method) Want(n int) *Method {
	ret := *m
	ret.want = n
	ret.hasWant = true
	return &ret
}

func (m *Method) Named(name string) *Method {
	ret := *m
	ret.name = name
	return &ret
}

func (m *Method) Name() string {
	return m.name
}

func (m *Method) Privileged() bool {
	return m.priv != nil
}

func (m *Method) invoke(evo *Evo, stack *stacks.Stack, args []any) (any, error) {
	if m.priv != nil {
		return m.priv(evo, stack, args)
	}
	return m.fn(evo, args)
}
