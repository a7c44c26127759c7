package configs

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/reusee/dscope"
)

// Fork overrides every Configurable type in scope with the first value the
// loader holds at its ConfigExpr path. Types without a config value keep
// their provider.
func Fork(scope dscope.Scope, loader Loader) (ret dscope.Scope, err error) {
	var defs []any
	for t := range scope.AllTypes() {
		if !t.Implements(configurableType) {
			continue
		}
		expr := reflect.New(t).Elem().Interface().(Configurable).ConfigExpr()
		ptr := reflect.New(t)
		if err := loader.AssignFirst(expr, ptr.Interface()); err != nil {
			if errors.Is(err, ErrValueNotFound) {
				continue
			}
			return scope, fmt.Errorf("config %s: %w", expr, err)
		}
		defs = append(defs, ptr.Elem().Interface())
	}
	if len(defs) == 0 {
		return scope, nil
	}
	return scope.Fork(defs...), nil
}
