// Package nets opens documents from files or over HTTP, honoring proxy settings.
package nets

import (
	"github.com/reusee/dscope"
	"github.com/reusee/evchain/evconfigs"
)

type Module struct {
	dscope.Module
	EvConfigs evconfigs.Module
}
