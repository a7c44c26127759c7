// Package evconfigs provides the engine settings, read from evchain.cue
// files and command line flags.
package evconfigs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/evchain/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}
