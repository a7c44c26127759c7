package insts

import (
	"github.com/reusee/evchain/cells"
)

func toNumber(v any) (i int, f float64, isInt bool, ok bool) {
	switch v := v.(type) {
	case int:
		return v, float64(v), true, true
	case int64:
		return int(v), float64(v), true, true
	case float64:
		return 0, v, false, true
	case bool:
		if v {
			return 1, 1, true, true
		}
		return 0, 0, true, true
	}
	return
}

// fold combines the current value with every argument.
func fold(
	intOp func(a, b int) int,
	floatOp func(a, b float64) float64,
) *cells.Method {
	return cells.Func(func(evo *cells.Evo, args []any) (any, error) {
		operands := args
		if evo.Data != nil {
			operands = append([]any{evo.Data}, args...)
		}
		if len(operands) == 0 {
			return nil, cells.Warnf("no operands")
		}
		accInt, accFloat, allInt, ok := toNumber(operands[0])
		if !ok {
			return nil, cells.Errorf("not a number: %v", operands[0])
		}
		for _, operand := range operands[1:] {
			i, f, isInt, ok := toNumber(operand)
			if !ok {
				return nil, cells.Errorf("not a number: %v", operand)
			}
			if allInt && isInt {
				accInt = intOp(accInt, i)
				accFloat = float64(accInt)
				continue
			}
			allInt = false
			accFloat = floatOp(accFloat, f)
		}
		if allInt {
			return accInt, nil
		}
		return accFloat, nil
	}).Want(1)
}

func defineMath(lib *Lib) {
	lib.Define("Math.add", fold(
		func(a, b int) int { return a + b },
		func(a, b float64) float64 { return a + b },
	))
	lib.Define("Math.mul", fold(
		func(a, b int) int { return a * b },
		func(a, b float64) float64 { return a * b },
	))
}
