package doms

import "github.com/reusee/dscope"

type Module struct {
	dscope.Module
}

func (Module) Events() *Events {
	return NewEvents()
}

func (Module) Props() *Props {
	return NewProps()
}
