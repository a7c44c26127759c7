// Package cells executes instruction chains.
//
// A chain is a slice of cells sharing one two-region stack. Each cell
// pushes its incoming value, resolves its arguments, extracts the current
// value it wants and calls its method; the result flows to the next cell.
// A method returning a *loops.Future suspends the run, which resumes in a
// later loop turn. Errors and rejected futures end the run quietly and are
// routed to the diagnostics log, except ErrCycle, which is returned.
package cells

import (
	"github.com/reusee/dscope"
	"github.com/reusee/evchain/debugs"
	"github.com/reusee/evchain/doms"
	"github.com/reusee/evchain/evconfigs"
	"github.com/reusee/evchain/logs"
	"github.com/reusee/evchain/loops"
)

type Module struct {
	dscope.Module
	Logs      logs.Module
	Loops     loops.Module
	Doms      doms.Module
	Debugs    debugs.Module
	EvConfigs evconfigs.Module
}

func (Module) Env(
	logger logs.Logger,
	newSpan logs.NewSpan,
	loop *loops.Loop,
	events *doms.Events,
	props *doms.Props,
	tap debugs.Tap,
	entryLimit evconfigs.EntryLimit,
	diagnostics evconfigs.Diagnostics,
) *Env {
	return &Env{
		Logger:      logger,
		NewSpan:     newSpan,
		Loop:        loop,
		Events:      events,
		Props:       props,
		Tap:         tap,
		EntryLimit:  int(entryLimit),
		Diagnostics: bool(diagnostics),
	}
}
