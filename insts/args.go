package insts

import (
	"fmt"
	"math"

	"github.com/reusee/evchain/cells"
	"github.com/reusee/evchain/stacks"
)

func argInt(args []any, i int, def int) (int, error) {
	if i >= len(args) {
		return def, nil
	}
	switch v := args[i].(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v == math.Trunc(v) {
			return int(v), nil
		}
	}
	return 0, cells.Errorf("argument %d: not an integer: %v", i, args[i])
}

func argInts(args []any) ([]int, error) {
	ret := make([]int, 0, len(args))
	for i := range args {
		n, err := argInt(args, i, 0)
		if err != nil {
			return nil, err
		}
		ret = append(ret, n)
	}
	return ret, nil
}

func argString(args []any, i int) (string, error) {
	if i >= len(args) {
		return "", cells.Errorf("missing argument %d", i)
	}
	s, ok := args[i].(string)
	if !ok {
		return "", cells.Errorf("argument %d: not a string: %v", i, args[i])
	}
	return s, nil
}

// Text renders a value for markup. nil and Null render empty.
func Text(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	}
	if stacks.IsNull(v) {
		return ""
	}
	return fmt.Sprint(v)
}
