package insts

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/evchain/cells"
	"github.com/reusee/evchain/descs"
	"github.com/reusee/evchain/doms"
	"github.com/reusee/evchain/loops"
	"github.com/reusee/evchain/stacks"
)

func compile(t *testing.T, env *cells.Env, text string) *cells.Chain {
	lib := Builtins()
	calls, err := descs.ParseCalls(text)
	if err != nil {
		t.Fatal(err)
	}
	chain := cells.NewChain(env, nil, cells.NewCell("head", Pass, nil))
	for _, call := range calls {
		cell, err := lib.Cell(call)
		if err != nil {
			t.Fatal(err)
		}
		chain.Append(cell)
	}
	return chain
}

func run(t *testing.T, chain *cells.Chain, init any) any {
	result, err := chain.Run(init)
	if err != nil {
		t.Fatal(err)
	}
	return result
}

func TestLib(t *testing.T) {
	dscope.New(new(Module)).Call(func(
		lib *Lib,
	) {
		push, ok := lib.Lookup("")
		if !ok || push.Name() != "push" {
			t.Fatal()
		}
		names := lib.Names()
		if !slices.IsSorted(names) || !slices.Contains(names, "Math.add") {
			t.Fatalf("got %v", names)
		}
		_, err := lib.Cell(&descs.Call{Name: "nope", Text: "nope(1)"})
		if err == nil {
			t.Fatal("should error")
		}
	})
}

func TestMath(t *testing.T) {
	for text, expected := range map[string]any{
		"Math.add(1) Math.mul(2, 3)": 12,
		"Math.add(0.5)":              1.5,
		"Math.mul(true)":             1,
		`Math.add("x")`:              nil,
	} {
		if got := run(t, compile(t, nil, text), 1); got != expected {
			t.Fatalf("%s: got %v", text, got)
		}
	}
}

func TestPushPop(t *testing.T) {
	if got := run(t, compile(t, nil, "push(1, 2) pop(2)"), 10); fmt.Sprint(got) != "[1 2]" {
		t.Fatalf("got %v", got)
	}
	if got := run(t, compile(t, nil, `("x")`), 10); got != "x" {
		t.Fatalf("got %v", got)
	}
	if got := run(t, compile(t, nil, "push(1, 2) tpops(3) pass"), 9); fmt.Sprint(got) != "[9 1 2]" {
		t.Fatalf("got %v", got)
	}
	if got := run(t, compile(t, nil, "push(1, 2, 3) tslice(1, -1) pass"), nil); got != 2 {
		t.Fatalf("got %v", got)
	}
	if got := run(t, compile(t, nil, "push(1, 2) tindex(0, 5) pop(1) pass pass"), nil); !stacks.IsNull(got) {
		t.Fatalf("got %v", got)
	}
	if got := run(t, compile(t, nil, `push(1, 2) tsplice(0, 1, "x") pass`), nil); got != 1 {
		t.Fatalf("got %v", got)
	}
	if got := run(t, compile(t, nil, "push(1, 2, 3) tpick(-1) pass"), nil); got != 3 {
		t.Fatalf("got %v", got)
	}
	if got := run(t, compile(t, nil, "tpush(7) pass"), 1); got != 7 {
		t.Fatalf("got %v", got)
	}
	if got := run(t, compile(t, nil, "tpop(2) pop(1) pass"), 1); !stacks.IsNull(got) {
		t.Fatalf("got %v", got)
	}
}

func TestControl(t *testing.T) {
	if got := run(t, compile(t, nil, "stop Math.add(1)"), 1); got != nil {
		t.Fatalf("got %v", got)
	}
	if got := run(t, compile(t, nil, `stop("warn: x") Math.add(1)`), 1); got != nil {
		t.Fatalf("got %v", got)
	}
	if got := run(t, compile(t, nil, "when Math.add(1)"), 0); got != nil {
		t.Fatalf("got %v", got)
	}
	if got := run(t, compile(t, nil, "when Math.add(1)"), 1); got != 2 {
		t.Fatalf("got %v", got)
	}

	chain := compile(t, nil, `jump(1) ("taken") pass`)
	if got := run(t, chain, 0); got != 0 {
		t.Fatalf("got %v", got)
	}
	if got := run(t, chain, 1); got != "taken" {
		t.Fatalf("got %v", got)
	}

	if got := run(t, compile(t, &cells.Env{EntryLimit: 10}, "entry Math.add(-1) loop"), 3); got != 0 {
		t.Fatalf("got %v", got)
	}
	_, err := compile(t, &cells.Env{EntryLimit: 1}, "entry Math.add(-1) loop").Run(3)
	if !errors.Is(err, cells.ErrCycle) {
		t.Fatalf("got %v", err)
	}

	if got := run(t, compile(t, nil, `evo("name")`), nil); got != "chain" {
		t.Fatalf("got %v", got)
	}
	if got := run(t, compile(t, nil, `evo("origin")`), nil); !stacks.IsNull(got) {
		t.Fatalf("got %v", got)
	}
	if got := run(t, compile(t, nil, `evo("nope") pass`), nil); got != nil {
		t.Fatalf("got %v", got)
	}
}

func TestAsyncControl(t *testing.T) {
	loop := loops.New()
	env := &cells.Env{
		Loop:       loop,
		EntryLimit: 1,
	}

	delayed := run(t, compile(t, env, "delay(1) Math.add(1)"), 1).(*loops.Future)
	looped := run(t, compile(t, env, "entry Math.add(-1) reenter"), 3).(*loops.Future)
	if err := loop.Drain(t.Context()); err != nil {
		t.Fatal(err)
	}
	if delayed.Value() != 2 {
		t.Fatalf("got %v", delayed.Value())
	}
	if looped.Value() != 0 {
		t.Fatalf("got %v", looped.Value())
	}

	if got := run(t, compile(t, nil, "delay(1) Math.add(1)"), 1); got != nil {
		t.Fatalf("got %v", got)
	}
}

func TestDebounce(t *testing.T) {
	loop := loops.New()
	chain := compile(t, &cells.Env{Loop: loop}, "debounce(5) Math.add(1)")
	var futures []*loops.Future
	for i := range 3 {
		futures = append(futures, run(t, chain, i).(*loops.Future))
	}
	if err := loop.Drain(t.Context()); err != nil {
		t.Fatal(err)
	}
	var got []any
	for _, f := range futures {
		got = append(got, f.Value())
	}
	if fmt.Sprint(got) != "[<nil> <nil> 3]" {
		t.Fatalf("got %v", got)
	}
	if chain.Cells[1].Slot != nil {
		t.Fatal("slot should be cleared after firing")
	}
}

const testPage = `<div id="root"><p id="a" class="x">a</p><p id="b">b</p><span></span></div>`

func runAt(t *testing.T, env *cells.Env, query string, updates string, init any) doms.Element {
	doc, err := doms.ParseString(testPage)
	if err != nil {
		t.Fatal(err)
	}
	root, err := doms.Query(doc, "#root")
	if err != nil {
		t.Fatal(err)
	}
	chain := compile(t, env, "")
	q, err := descs.ParseQuery(query)
	if err != nil {
		t.Fatal(err)
	}
	chain.Append(cells.NewCell("query", Query(q), nil))
	us, err := descs.ParseUpdates(updates)
	if err != nil {
		t.Fatal(err)
	}
	lib := Builtins()
	for _, u := range us {
		cell, err := lib.Cell(u.Call)
		if err != nil {
			t.Fatal(err)
		}
		chain.Append(cell)
	}
	result, err := chain.RunEvent(nil, doms.Elo{Current: root}, init)
	if err != nil {
		t.Fatal(err)
	}
	if result != init {
		t.Fatalf("updates pass the value on, got %v", result)
	}
	return root
}

func render(t *testing.T, n doms.Element) string {
	s, err := doms.RenderString(n)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestUpdates(t *testing.T) {
	env := &cells.Env{
		Props: doms.NewProps(),
	}
	for _, test := range []struct {
		query, updates string
		init           any
		expected       string
	}{
		{"(p)", "@title", "hi", `<div id="root"><p id="a" class="x" title="hi">a</p><p id="b" title="hi">b</p><span></span></div>`},
		{"#b", "%color text", "red", `<div id="root"><p id="a" class="x">a</p><p id="b" style="color: red;">red</p><span></span></div>`},
		{"(p)[-1]", "^hidden", 1, `<div id="root"><p id="a" class="x">a</p><p id="b" hidden="">b</p><span></span></div>`},
		{"(p){e['id'] == 'a'}", "^hidden", false, testPage},
		{"span", "html", "<b>x</b>", `<div id="root"><p id="a" class="x">a</p><p id="b">b</p><span><b>x</b></span></div>`},
		{"(p)", `removeClass("x") addClass("y z")`, 0, `<div id="root"><p id="a" class="y z">a</p><p id="b" class="y z">b</p><span></span></div>`},
		{"#a", `attr("class")`, nil, `<div id="root"><p id="a">a</p><p id="b">b</p><span></span></div>`},
		{"", `@data-x`, true, `<div id="root" data-x=""><p id="a" class="x">a</p><p id="b">b</p><span></span></div>`},
		{"#nope", "@title", "x", testPage},
	} {
		root := runAt(t, env, test.query, test.updates, test.init)
		if got := render(t, root); got != test.expected {
			t.Fatalf("%s | %s: got %s", test.query, test.updates, got)
		}
	}

	root := runAt(t, env, "#a", "$value", 42)
	a, _ := doms.Query(root, "#a")
	if v, ok := env.Props.Get(a, "value"); !ok || v != 42 {
		t.Fatal()
	}
}

func TestFire(t *testing.T) {
	doc, err := doms.ParseString(testPage)
	if err != nil {
		t.Fatal(err)
	}
	a, _ := doms.Query(doc, "#a")
	root, _ := doms.Query(doc, "#root")
	events := doms.NewEvents()
	var got []any
	events.Bind(root, "done", "", doms.HandlerFunc(func(ev *doms.Event, elo doms.Elo) error {
		got = append(got, ev.Data, elo.Origin == a)
		return nil
	}), false)

	chain := compile(t, &cells.Env{Events: events}, `fire("done") fire("done", "explicit")`)
	result, err := chain.RunEvent(nil, doms.Elo{Current: a}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if result != 5 {
		t.Fatalf("got %v", result)
	}
	if fmt.Sprint(got) != "[5 true explicit true]" {
		t.Fatalf("got %v", got)
	}
}

func TestTap(t *testing.T) {
	var tapped map[string]any
	env := &cells.Env{
		Tap: func(ctx context.Context, what string, globals map[string]any) {
			if what != "here" {
				t.Fatalf("got %s", what)
			}
			tapped = globals
		},
	}
	if got := run(t, compile(t, env, `push(1, 2) tap("here")`), nil); got != 2 {
		t.Fatalf("got %v", got)
	}
	if tapped["data"] != 2 || fmt.Sprint(tapped["stack"]) != "[1]" {
		t.Fatalf("got %v", tapped)
	}
}

func TestJQ(t *testing.T) {
	for _, test := range []struct {
		calls    string
		init     any
		expected string
	}{
		{`jq(".a.b")`, map[string]any{"a": map[string]any{"b": 1}}, "1"},
		{`jq(".[] | . * 2")`, []any{1, 2}, "[2 4]"},
		{`jq(".x")`, map[string]any{}, "null"},
		{`jq("empty") pass`, 1, "<nil>"},
		{`jq("keys") pop`, map[string]any{"k": stacks.Null}, "[k]"},
		{`jq(".[")`, 1, "<nil>"},
		{`jq(".a")`, 1, "<nil>"},
	} {
		got := run(t, compile(t, nil, test.calls), test.init)
		if str := fmt.Sprint(got); str != test.expected {
			t.Fatalf("%s: got %s", test.calls, str)
		}
	}
}
