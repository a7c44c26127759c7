package cells

import (
	"fmt"

	"github.com/reusee/evchain/descs"
	"github.com/reusee/evchain/stacks"
)

type Cell struct {
	Name   string
	Method *Method
	Args   []descs.Arg
	// Rest is the trailing pull marker of the argument template.
	Rest *descs.Arg
	// Slot is private to the instruction, reset by Clone.
	Slot any
}

// NewCell builds a cell. A trailing pull marker in args becomes the rest pull.
func NewCell(name string, method *Method, args []descs.Arg) *Cell {
	cell := &Cell{
		Name:   name,
		Method: method,
		Args:   args,
	}
	if n := len(args); n > 0 && args[n-1].IsPull {
		rest := args[n-1]
		cell.Rest = &rest
		cell.Args = args[:n-1]
	}
	return cell
}

func (c *Cell) clone() *Cell {
	return &Cell{
		Name:   c.Name,
		Method: c.Method,
		Args:   c.Args,
		Rest:   c.Rest,
	}
}

func (c *Cell) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// pull takes the values of a pull marker from the stack.
func pull(stack *stacks.Stack, arg descs.Arg, args []any) []any {
	if arg.Pull == 0 {
		switch v := stack.Data(1).(type) {
		case nil:
		case []any:
			args = append(args, v...)
		default:
			args = append(args, v)
		}
		return args
	}
	switch v := stack.Data(arg.Pull).(type) {
	case nil:
		return append(args, []any{})
	case []any:
		if arg.Pull == 1 {
			return append(args, []any{v})
		}
		return append(args, v)
	default:
		return append(args, []any{v})
	}
}

// arguments resolves the template against the stack.
func (c *Cell) arguments(stack *stacks.Stack) []any {
	args := make([]any, 0, len(c.Args)+1)
	for _, arg := range c.Args {
		if arg.IsPull {
			args = pull(stack, arg, args)
			continue
		}
		args = append(args, arg.Value)
	}
	if c.Rest != nil {
		args = pull(stack, *c.Rest, args)
	}
	return args
}
