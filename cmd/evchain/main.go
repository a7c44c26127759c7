package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/reusee/dscope"
	"github.com/reusee/evchain/builds"
	"github.com/reusee/evchain/cells"
	"github.com/reusee/evchain/cmds"
	"github.com/reusee/evchain/descs"
	"github.com/reusee/evchain/doms"
	"github.com/reusee/evchain/insts"
	"github.com/reusee/evchain/logs"
	"github.com/reusee/evchain/loops"
	"github.com/reusee/evchain/modes"
	"github.com/reusee/evchain/nets"
	"github.com/reusee/evchain/tokens"
)

var (
	docFlag   = cmds.Var[string]("-doc", "HTML file path or URL, stdin when absent")
	fireFlags = cmds.Collect[string]("-fire", `dispatch an event: "selector event [data]"`)
	listFlag  = cmds.Switch("-list", "print the instruction names")
)

func main() {
	cmds.Execute(os.Args[1:])

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	scope.Call(run)
}

func run(
	logger logs.Logger,
	scanner *builds.Scanner,
	lib *insts.Lib,
	env *cells.Env,
	loop *loops.Loop,
	open nets.Open,
) {
	if *listFlag {
		for _, name := range lib.Names() {
			fmt.Println(name)
		}
		return
	}

	defer loop.Close()

	ctx := context.Background()
	var input io.Reader = os.Stdin
	if *docFlag != "" {
		r, err := open(ctx, *docFlag)
		ce(err)
		defer r.Close()
		input = r
	}
	doc, err := doms.Parse(input)
	ce(err)

	n, err := scanner.Scan(doc)
	ce(err)
	logger.Info("directives built", "elements", n)
	ce(loop.Drain(ctx))

	for _, spec := range *fireFlags {
		f, err := parseFire(doc, spec)
		ce(err)
		logger.Info("fire", "event", f.name, "target", f.selector)
		ce(env.Events.Trigger(f.target, f.name, f.data, true, true))
		ce(loop.Drain(ctx))
	}

	ce(doms.Render(os.Stdout, doc))
	fmt.Println()
}

type fire struct {
	selector string
	target   doms.Element
	name     string
	data     any
}

// parseFire parses "selector event [data]". data is an argument literal.
func parseFire(doc doms.Element, spec string) (*fire, error) {
	fields, err := tokens.NewDefault().Fields(spec)
	if err != nil {
		return nil, err
	}
	if len(fields) < 2 || len(fields) > 3 {
		return nil, fmt.Errorf("bad fire spec %q, want: selector event [data]", spec)
	}
	ret := &fire{
		selector: fields[0],
		name:     fields[1],
	}
	ret.target, err = doms.Query(doc, ret.selector)
	if err != nil {
		return nil, err
	}
	if ret.target == nil {
		return nil, fmt.Errorf("no element matches %s", ret.selector)
	}
	if len(fields) == 3 {
		args, err := descs.ParseArgs(fields[2])
		if err != nil {
			return nil, err
		}
		if len(args) != 1 || args[0].IsPull {
			return nil, fmt.Errorf("bad event data %q", fields[2])
		}
		ret.data = args[0].Value
	}
	return ret, nil
}
