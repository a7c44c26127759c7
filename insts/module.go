package insts

import "github.com/reusee/dscope"

type Module struct {
	dscope.Module
}

func (Module) Lib() *Lib {
	return Builtins()
}
