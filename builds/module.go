package builds

import (
	"github.com/reusee/dscope"
	"github.com/reusee/evchain/cells"
	"github.com/reusee/evchain/evconfigs"
	"github.com/reusee/evchain/insts"
)

type Module struct {
	dscope.Module
	Cells cells.Module
	Insts insts.Module
}

func (Module) Store() *Store {
	return NewStore()
}

func (Module) Builder(
	env *cells.Env,
	lib *insts.Lib,
	store *Store,
) *Builder {
	return NewBuilder(env, lib, store)
}

func (Module) Scanner(
	builder *Builder,
	attrs evconfigs.Attrs,
	keep evconfigs.KeepAttrs,
) *Scanner {
	return &Scanner{
		Builder: builder,
		Attrs:   attrs,
		Keep:    bool(keep),
	}
}
