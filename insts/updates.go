package insts

import (
	"strings"

	"github.com/reusee/evchain/cells"
	"github.com/reusee/evchain/descs"
	"github.com/reusee/evchain/doms"
	"github.com/reusee/evchain/stacks"
)

// Query returns the method of a query cell. It stores the found elements in
// Evo.Targets and passes the current value on.
func Query(query *descs.Query) *cells.Method {
	return cells.Func(func(evo *cells.Evo, args []any) (any, error) {
		found, err := doms.Find(runElement(evo), query, evo.Data)
		if err != nil {
			return nil, cells.Errorf("query %s: %v", query.Text, err)
		}
		if found == nil {
			// no match still overrides the bound element
			found = []doms.Element{}
		}
		evo.Targets = found
		return evo.Data, nil
	}).Want(1).Named("query")
}

func targets(evo *cells.Evo) []doms.Element {
	if evo.Targets != nil {
		return evo.Targets
	}
	if n := runElement(evo); n != nil {
		return []doms.Element{n}
	}
	return nil
}

// update defines an instruction applying fn to every target with the
// current value, which is passed on.
func update(fn func(evo *cells.Evo, n doms.Element, args []any, value any) error) *cells.Method {
	return cells.Func(func(evo *cells.Evo, args []any) (any, error) {
		for _, n := range targets(evo) {
			if err := fn(evo, n, args, evo.Data); err != nil {
				return nil, err
			}
		}
		return evo.Data, nil
	}).Want(1)
}

func absent(v any) bool {
	return v == nil || stacks.IsNull(v) || v == false
}

func defineUpdates(lib *Lib) {

	lib.Define("attr", update(func(evo *cells.Evo, n doms.Element, args []any, value any) error {
		name, err := argString(args, 0)
		if err != nil {
			return err
		}
		switch {
		case absent(value):
			doms.RemoveAttr(n, name)
		case value == true:
			doms.SetAttr(n, name, "")
		default:
			doms.SetAttr(n, name, Text(value))
		}
		return nil
	}))

	lib.Define("prop", update(func(evo *cells.Evo, n doms.Element, args []any, value any) error {
		name, err := argString(args, 0)
		if err != nil {
			return err
		}
		if evo.Env.Props == nil {
			return cells.Warnf("prop %s: no property store", name)
		}
		if stacks.IsNull(value) {
			value = nil
		}
		evo.Env.Props.Set(n, name, value)
		return nil
	}))

	lib.Define("css", update(func(evo *cells.Evo, n doms.Element, args []any, value any) error {
		name, err := argString(args, 0)
		if err != nil {
			return err
		}
		doms.SetStyle(n, name, Text(value))
		return nil
	}))

	// toggle sets a boolean attribute from a bool value, otherwise flips it
	lib.Define("toggle", update(func(evo *cells.Evo, n doms.Element, args []any, value any) error {
		name, err := argString(args, 0)
		if err != nil {
			return err
		}
		on, ok := value.(bool)
		if !ok {
			_, has := doms.Attr(n, name)
			on = !has
		}
		if on {
			doms.SetAttr(n, name, "")
		} else {
			doms.RemoveAttr(n, name)
		}
		return nil
	}))

	lib.Define("text", update(func(evo *cells.Evo, n doms.Element, args []any, value any) error {
		doms.SetText(n, Text(value))
		return nil
	}))

	lib.Define("html", update(func(evo *cells.Evo, n doms.Element, args []any, value any) error {
		return doms.SetHTML(n, Text(value))
	}))

	classes := func(args []any, value any) []string {
		var ret []string
		for _, arg := range args {
			ret = append(ret, strings.Fields(Text(arg))...)
		}
		if len(ret) == 0 {
			ret = strings.Fields(Text(value))
		}
		return ret
	}

	lib.Define("addClass", update(func(evo *cells.Evo, n doms.Element, args []any, value any) error {
		doms.AddClass(n, classes(args, value)...)
		return nil
	}))

	lib.Define("removeClass", update(func(evo *cells.Evo, n doms.Element, args []any, value any) error {
		doms.RemoveClass(n, classes(args, value)...)
		return nil
	}))
}
