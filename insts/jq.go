package insts

import (
	"fmt"
	"sync"

	"github.com/itchyny/gojq"
	"github.com/reusee/evchain/cells"
	"github.com/reusee/evchain/stacks"
)

var jqQueries sync.Map

func parseJQ(src string) (*gojq.Query, error) {
	if v, ok := jqQueries.Load(src); ok {
		return v.(*gojq.Query), nil
	}
	query, err := gojq.Parse(src)
	if err != nil {
		return nil, err
	}
	jqQueries.Store(src, query)
	return query, nil
}

// jsonValue converts v to the value types jq operates on.
func jsonValue(v any) any {
	switch v := v.(type) {
	case nil, bool, string, int, float64:
		return v
	case int64:
		return int(v)
	case []any:
		ret := make([]any, len(v))
		for i, e := range v {
			ret[i] = jsonValue(e)
		}
		return ret
	case map[string]any:
		ret := make(map[string]any, len(v))
		for k, e := range v {
			ret[k] = jsonValue(e)
		}
		return ret
	}
	if stacks.IsNull(v) {
		return nil
	}
	return fmt.Sprint(v)
}

func defineJQ(lib *Lib) {

	// jq(".a.b") runs a jq query on the current value. Several outputs
	// yield a list, null yields Null, no output yields no value.
	lib.Define("jq", cells.Func(func(evo *cells.Evo, args []any) (any, error) {
		src, err := argString(args, 0)
		if err != nil {
			return nil, err
		}
		query, err := parseJQ(src)
		if err != nil {
			return nil, cells.Errorf("jq %s: %v", src, err)
		}
		var outputs []any
		iter := query.Run(jsonValue(evo.Data))
		for {
			v, ok := iter.Next()
			if !ok {
				break
			}
			if err, ok := v.(error); ok {
				return nil, cells.Errorf("jq %s: %v", src, err)
			}
			if v == nil {
				v = stacks.Null
			}
			outputs = append(outputs, v)
		}
		switch len(outputs) {
		case 0:
			return nil, nil
		case 1:
			return outputs[0], nil
		}
		return outputs, nil
	}).Want(1))
}
