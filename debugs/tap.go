package debugs

import (
	"context"
	"maps"
	"os"
	"slices"

	"github.com/reusee/evchain/exprs"
	"github.com/reusee/evchain/logs"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
	"golang.org/x/term"
)

// Tap opens a Starlark REPL over globals, blocking until the input ends.
// Without a terminal on stdin the globals are logged instead.
type Tap func(ctx context.Context, what string, globals map[string]any)

func (Module) Tap(
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, what string, globals map[string]any) {
		names := slices.Sorted(maps.Keys(globals))
		logger.InfoContext(ctx, "tap: "+what,
			"globals", names,
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		mappings := make(starlark.StringDict)
		for _, name := range names {
			value, err := exprs.ToStarlark(globals[name])
			if err != nil {
				logger.WarnContext(ctx, "tap: skip global",
					"name", name,
					"error", err,
				)
				continue
			}
			mappings[name] = value
		}

		if !term.IsTerminal(int(os.Stdin.Fd())) {
			for _, name := range names {
				logger.InfoContext(ctx, "tap: global",
					"name", name,
					"value", globals[name],
				)
			}
			return
		}

		thread := &starlark.Thread{
			Name: "tap",
		}
		repl.REPLOptions(&syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
		}, thread, mappings)
	}
}
