package doms

import (
	"fmt"

	"github.com/reusee/evchain/descs"
)

// Find resolves a query from the current element. Lookups search the whole
// tree current belongs to. value is bound as v in filter expressions.
func Find(current Element, query *descs.Query, value any) ([]Element, error) {
	if query.Selector == "" {
		if current == nil {
			return nil, nil
		}
		return []Element{current}, nil
	}
	root := Root(current)
	if root == nil {
		return nil, nil
	}

	if !query.Multi {
		n, err := Query(root, query.Selector)
		if err != nil {
			return nil, err
		}
		if n == nil {
			return nil, nil
		}
		return []Element{n}, nil
	}

	all, err := QueryAll(root, query.Selector)
	if err != nil {
		return nil, err
	}

	switch {

	case query.Positions != nil:
		var ret []Element
		for _, i := range query.Positions {
			if i < 0 {
				i += len(all)
			}
			if i < 0 || i >= len(all) {
				continue
			}
			ret = append(ret, all[i])
		}
		return ret, nil

	case query.Range != nil:
		begin, end := query.Range.Bounds(len(all))
		return all[begin:end], nil

	case query.Filter != nil:
		var ret []Element
		for i, n := range all {
			ok, err := query.Filter.Test(map[string]any{
				"e": View(n),
				"i": i,
				"v": ExprValue(value),
			})
			if err != nil {
				return nil, fmt.Errorf("filter %s: %w", query.Filter, err)
			}
			if ok {
				ret = append(ret, n)
			}
		}
		return ret, nil

	}

	return all, nil
}

// ExprValue replaces elements and events in v with plain views usable in
// expressions.
func ExprValue(v any) any {
	switch v := v.(type) {
	case Element:
		if v == nil {
			return nil
		}
		return View(v)
	case []Element:
		ret := make([]any, 0, len(v))
		for _, n := range v {
			ret = append(ret, View(n))
		}
		return ret
	case *Event:
		return map[string]any{
			"name": v.Name,
			"data": ExprValue(v.Data),
		}
	case []any:
		ret := make([]any, 0, len(v))
		for _, e := range v {
			ret = append(ret, ExprValue(e))
		}
		return ret
	}
	return v
}
