package evconfigs

import (
	"github.com/reusee/evchain/cmds"
	"github.com/reusee/evchain/configs"
	"github.com/reusee/evchain/vars"
)

// EntryLimit caps the loop-backs of one chain run within one loop turn.
type EntryLimit int

var _ configs.Configurable = EntryLimit(0)

func (EntryLimit) ConfigExpr() string {
	return "entry_limit"
}

const DefaultEntryLimit = 1000

var entryLimitFlag = cmds.Var[int]("-entry-limit", "maximum loop-backs of a chain run per loop turn")

func (Module) EntryLimit(
	loader configs.Loader,
) EntryLimit {
	return EntryLimit(vars.FirstNonZero(
		*entryLimitFlag,
		configs.First[int](loader, "entry_limit"),
		DefaultEntryLimit,
	))
}
