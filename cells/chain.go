package cells

import (
	"context"

	"github.com/reusee/evchain/descs"
	"github.com/reusee/evchain/doms"
	"github.com/reusee/evchain/logs"
	"github.com/reusee/evchain/stacks"
)

// Chain is the program built for one event binding. Cells run by index.
// Runs of one chain share its Stack; Clone for overlapping runs.
type Chain struct {
	// Event is the descriptor of the binding, nil for detached chains.
	Event *descs.Event
	// Init is the incoming value of the first cell. Event runs use the event
	// data when it is nil.
	Init  any
	Cells []*Cell
	Stack *stacks.Stack
	Env   *Env
}

var _ doms.Handler = new(Chain)

func NewChain(env *Env, event *descs.Event, cells ...*Cell) *Chain {
	if env == nil {
		env = new(Env)
	}
	return &Chain{
		Event: event,
		Cells: cells,
		Stack: stacks.New(),
		Env:   env,
	}
}

func (c *Chain) Name() string {
	if c.Event != nil {
		return c.Event.Name
	}
	return "chain"
}

func (c *Chain) Append(cells ...*Cell) {
	c.Cells = append(c.Cells, cells...)
}

// Clone returns an independent chain with fresh cells and stack.
func (c *Chain) Clone() *Chain {
	cells := make([]*Cell, 0, len(c.Cells))
	for _, cell := range c.Cells {
		cells = append(cells, cell.clone())
	}
	return &Chain{
		Event: c.Event,
		Init:  c.Init,
		Cells: cells,
		Stack: stacks.New(),
		Env:   c.Env,
	}
}

// Run runs the chain detached from any event.
func (c *Chain) Run(init any) (any, error) {
	return c.RunEvent(nil, doms.Elo{}, init)
}

// RunEvent resets the stack and runs the chain from its first cell. The
// result is the terminal value, nil after a stop, or a *loops.Future when a
// cell went async. Only fatal errors are returned; rejections end the run
// and go to the diagnostics log.
func (c *Chain) RunEvent(ev *doms.Event, elo doms.Elo, init any) (any, error) {
	c.Stack.Reset()

	ctx := context.Background()
	if c.Env.NewSpan != nil {
		ctx, _ = c.Env.NewSpan(ctx, "", c.Name())
	} else {
		ctx = context.WithValue(ctx, logs.ChainKey, c.Name())
	}

	evo := &Evo{
		Event:    ev,
		Origin:   elo.Origin,
		Current:  elo.Current,
		Delegate: elo.Delegate,
		Chain:    c,
		Loop:     c.Env.Loop,
		Env:      c.Env,
		ctx:      ctx,
		stack:    c.Stack,
		entry:    -1,
	}
	if evo.Loop != nil {
		evo.turn = evo.Loop.Turn()
	}
	return evo.exec(0, init)
}

func (c *Chain) HandleEvent(ev *doms.Event, elo doms.Elo) error {
	init := c.Init
	if init == nil && ev != nil {
		init = ev.Data
	}
	_, err := c.RunEvent(ev, elo, init)
	return err
}

// CellNames lists the cell names in order.
func (c *Chain) CellNames() []string {
	names := make([]string, 0, len(c.Cells))
	for _, cell := range c.Cells {
		names = append(names, cell.Name)
	}
	return names
}
