package evconfigs

import (
	"github.com/reusee/evchain/configs"
	"github.com/reusee/evchain/vars"
)

// Attrs names the directive attributes scanned on elements.
type Attrs struct {
	On string
	By string
	To string
}

func (Module) Attrs(
	loader configs.Loader,
) Attrs {
	return Attrs{
		On: vars.FirstNonZero(configs.First[string](loader, "attrs.on"), "on"),
		By: vars.FirstNonZero(configs.First[string](loader, "attrs.by"), "by"),
		To: vars.FirstNonZero(configs.First[string](loader, "attrs.to"), "to"),
	}
}

// KeepAttrs keeps directive attributes on elements after they are built.
type KeepAttrs bool

var _ configs.Configurable = KeepAttrs(false)

func (KeepAttrs) ConfigExpr() string {
	return "keep_attrs"
}

func (Module) KeepAttrs(
	loader configs.Loader,
) KeepAttrs {
	return KeepAttrs(configs.First[bool](loader, "keep_attrs"))
}
