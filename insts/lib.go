// Package insts holds the instruction registry and the built-in
// instructions chains are compiled against.
package insts

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/reusee/evchain/cells"
	"github.com/reusee/evchain/descs"
)

// Lib maps dotted instruction names to methods.
type Lib struct {
	mu      sync.RWMutex
	methods map[string]*cells.Method
}

func NewLib() *Lib {
	return &Lib{
		methods: make(map[string]*cells.Method),
	}
}

func (l *Lib) Define(name string, method *cells.Method) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.methods[name] = method.Named(name)
}

func (l *Lib) Lookup(name string) (*cells.Method, bool) {
	if name == "" {
		name = "push"
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	method, ok := l.methods[name]
	return method, ok
}

func (l *Lib) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Sorted(maps.Keys(l.methods))
}

// Cell builds the cell for a call descriptor.
func (l *Lib) Cell(call *descs.Call) (*cells.Cell, error) {
	method, ok := l.Lookup(call.Name)
	if !ok {
		return nil, fmt.Errorf("unknown instruction %q in %q", call.Name, call.Text)
	}
	return cells.NewCell(method.Name(), method, call.Args), nil
}

// Builtins returns a library holding every built-in instruction.
func Builtins() *Lib {
	lib := NewLib()
	defineControl(lib)
	defineStack(lib)
	defineMath(lib)
	defineEvents(lib)
	defineUpdates(lib)
	defineJQ(lib)
	return lib
}
