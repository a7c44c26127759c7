package logs

import (
	"context"
	"errors"
	"fmt"
)

// WrapSpan annotates err with the run span and chain carried by ctx.
func WrapSpan(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if v := ctx.Value(SpanKey); v != nil {
		err = errors.Join(err, fmt.Errorf("span: %s", v.(Span)))
	}
	if v := ctx.Value(ChainKey); v != nil {
		err = errors.Join(err, fmt.Errorf("chain: %s", v.(string)))
	}
	return err
}
