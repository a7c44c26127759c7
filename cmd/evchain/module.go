package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/e5"
	"github.com/reusee/evchain/builds"
	"github.com/reusee/evchain/nets"
)

type Module struct {
	dscope.Module
	Builds builds.Module
	Nets   nets.Module
}

var wrap = e5.Wrap.With(e5.WrapStacktrace)

func ce(err error) {
	if err != nil {
		panic(wrap(err))
	}
}
