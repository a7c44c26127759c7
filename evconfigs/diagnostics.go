package evconfigs

import (
	"errors"

	"github.com/reusee/evchain/cmds"
	"github.com/reusee/evchain/configs"
)

// Diagnostics enables logging of chain rejections.
type Diagnostics bool

var _ configs.Configurable = Diagnostics(false)

func (Diagnostics) ConfigExpr() string {
	return "diagnostics"
}

var noDiagnosticsFlag = cmds.Switch("-no-diagnostics", "do not log chain rejections")

func (Module) Diagnostics(
	loader configs.Loader,
) Diagnostics {
	if *noDiagnosticsFlag {
		return false
	}
	var enabled bool
	if err := loader.AssignFirst("diagnostics", &enabled); err != nil {
		if errors.Is(err, configs.ErrValueNotFound) {
			return true
		}
		panic(err)
	}
	return Diagnostics(enabled)
}
