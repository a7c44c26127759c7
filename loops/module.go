package loops

import "github.com/reusee/dscope"

type Module struct {
	dscope.Module
}

func (Module) Loop() *Loop {
	return New()
}
