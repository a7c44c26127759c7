package cells

import (
	"github.com/reusee/evchain/debugs"
	"github.com/reusee/evchain/doms"
	"github.com/reusee/evchain/logs"
	"github.com/reusee/evchain/loops"
)

// Env holds what the chains of one document share.
type Env struct {
	Logger  logs.Logger
	NewSpan logs.NewSpan
	Loop    *loops.Loop
	Events  *doms.Events
	Props   *doms.Props
	Tap     debugs.Tap
	// EntryLimit caps loop-backs per run and loop turn. 0 means
	// evconfigs.DefaultEntryLimit, a negative value no limit.
	EntryLimit int
	// Diagnostics enables logging of rejections.
	Diagnostics bool
}
