// Package exprs evaluates the host expressions embedded in directives:
// argument literals and query filters. Expressions are Starlark.
package exprs

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var fileOptions = &syntax.FileOptions{
	Set: true,
}

// Eval evaluates one expression with the given globals.
func Eval(expr string, globals map[string]any) (any, error) {
	value, err := EvalStarlark(expr, globals)
	if err != nil {
		return nil, err
	}
	return FromStarlark(value)
}

// EvalStarlark evaluates one expression and returns the raw Starlark value.
func EvalStarlark(expr string, globals map[string]any) (starlark.Value, error) {
	env := make(starlark.StringDict, len(globals))
	for name, value := range globals {
		v, err := ToStarlark(value)
		if err != nil {
			return nil, fmt.Errorf("global %s: %w", name, err)
		}
		env[name] = v
	}
	thread := &starlark.Thread{
		Name: "expr",
	}
	value, err := starlark.EvalOptions(fileOptions, thread, "expr", expr, env)
	if err != nil {
		return nil, fmt.Errorf("eval %q: %w", expr, err)
	}
	return value, nil
}

// Predicate compiles expr for repeated truth tests.
type Predicate struct {
	expr string
}

func NewPredicate(expr string) (*Predicate, error) {
	if _, err := fileOptions.ParseExpr("filter", expr, 0); err != nil {
		return nil, fmt.Errorf("parse %q: %w", expr, err)
	}
	return &Predicate{
		expr: expr,
	}, nil
}

func (p *Predicate) Test(globals map[string]any) (bool, error) {
	value, err := EvalStarlark(p.expr, globals)
	if err != nil {
		return false, err
	}
	return bool(value.Truth()), nil
}

func (p *Predicate) String() string {
	return p.expr
}
