package descs

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/reusee/evchain/stacks"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		input  string
		output string
	}{
		{``, `[]`},
		{`1`, `[1]`},
		{`1, "a,b", [2, 3]`, `[1 "a,b" []interface {}{2, 3}]`},
		{`_`, `[_]`},
		{`1, _3`, `[1 _3]`},
		{`_, 2, _2`, `[_ 2 _2]`},
		{`{"k": (1, 2)}`, `[map[string]interface {}{"k":[]interface {}{1, 2}}]`},
		{`true, null, None`, `[true null null]`},
		{`1 + 2, "x" * 2,`, `[3 "xx"]`},
	}
	for _, test := range tests {
		args, err := ParseArgs(test.input)
		if err != nil {
			t.Fatalf("%s: %v", test.input, err)
		}
		strs := make([]string, 0, len(args))
		for _, arg := range args {
			if !arg.IsPull && stacks.IsNull(arg.Value) {
				strs = append(strs, "null")
				continue
			}
			strs = append(strs, arg.String())
		}
		if got := "[" + strings.Join(strs, " ") + "]"; got != test.output {
			t.Fatalf("%s: got %s", test.input, got)
		}
	}

	for _, input := range []string{
		`1,,2`,
		`foo`,
		`"a`,
		`_10`,
		`1 +`,
	} {
		if _, err := ParseArgs(input); !errors.Is(err, ErrSyntax) {
			t.Fatalf("%s: got %v", input, err)
		}
	}
}

func TestParseCall(t *testing.T) {
	call, err := ParseCall("Math.add(1, _)")
	if err != nil {
		t.Fatal(err)
	}
	if call.Name != "Math.add" || len(call.Args) != 2 || !call.Args[1].IsPull {
		t.Fatalf("got %+v", call)
	}
	if fmt.Sprint(call.Path()) != "[Math add]" {
		t.Fatalf("got %v", call.Path())
	}

	call, err = ParseCall("stop")
	if err != nil {
		t.Fatal(err)
	}
	if call.Name != "stop" || call.Args != nil {
		t.Fatalf("got %+v", call)
	}

	// empty name is push
	call, err = ParseCall(`("x")`)
	if err != nil {
		t.Fatal(err)
	}
	if call.Name != "" || call.Path()[0] != "push" || call.Args[0].Value != "x" {
		t.Fatalf("got %+v", call)
	}

	for _, input := range []string{
		"foo((",
		"foo)",
		"foo(1)x",
		"1foo",
		"a..b",
		"f(1)(2)",
	} {
		_, err := ParseCall(input)
		if !errors.Is(err, ErrSyntax) {
			t.Fatalf("%s: got %v", input, err)
		}
		if !strings.Contains(err.Error(), input) {
			t.Fatalf("error should name the fragment: %v", err)
		}
	}
}

func TestParseCalls(t *testing.T) {
	calls, err := ParseCalls(` a  b(1, "x y")  c.d(_) ("z")`)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, call := range calls {
		names = append(names, call.Name)
	}
	if fmt.Sprintf("%q", names) != `["a" "b" "c.d" ""]` {
		t.Fatalf("got %q", names)
	}
	if calls[1].Args[1].Value != "x y" {
		t.Fatal()
	}

	if _, err := ParseCalls("a foo(("); !errors.Is(err, ErrSyntax) {
		t.Fatalf("got %v", err)
	}
}

func TestParseEvent(t *testing.T) {
	tests := []struct {
		input    string
		name     string
		selector string
		capture  string
		once     bool
		store    bool
	}{
		{"click", "click", "", "nil", false, false},
		{"^click", "click", "", "nil", true, false},
		{"@load", "load", "", "nil", false, true},
		{"click(.item a)", "click", ".item a", "nil", false, false},
		{"focus(input!true)", "focus", "input", "true", false, false},
		{"focus(input !false)", "focus", "input", "false", false, false},
		{"blur(!true)", "blur", "", "true", false, false},
		{"my:custom-event", "my:custom-event", "", "nil", false, false},
		{`click(a[title="x)"])`, "click", `a[title="x)"]`, "nil", false, false},
	}
	for _, test := range tests {
		event, err := ParseEvent(test.input)
		if err != nil {
			t.Fatalf("%s: %v", test.input, err)
		}
		capture := "nil"
		if event.Capture != nil {
			capture = fmt.Sprint(*event.Capture)
		}
		if event.Name != test.name ||
			event.Selector != test.selector ||
			capture != test.capture ||
			event.Once != test.once ||
			event.Store != test.store {
			t.Fatalf("%s: got %+v capture %s", test.input, event, capture)
		}
		if event.ID() != test.name {
			t.Fatal()
		}
	}

	for _, input := range []string{
		"",
		"@^click",
		"click()",
		"click(.a",
		"click(.a)x",
	} {
		if _, err := ParseEvent(input); !errors.Is(err, ErrSyntax) {
			t.Fatalf("%s: got %v", input, err)
		}
	}
}

func TestParseQuery(t *testing.T) {
	query, err := ParseQuery("")
	if err != nil {
		t.Fatal(err)
	}
	if query.Selector != "" || query.Multi {
		t.Fatal()
	}

	query, err = ParseQuery("#out")
	if err != nil {
		t.Fatal(err)
	}
	if query.Selector != "#out" || query.Multi {
		t.Fatal()
	}

	query, err = ParseQuery("(li:not(.x))")
	if err != nil {
		t.Fatal(err)
	}
	if query.Selector != "li:not(.x)" || !query.Multi {
		t.Fatalf("got %+v", query)
	}

	query, err = ParseQuery("(li)[0, -1]")
	if err != nil {
		t.Fatal(err)
	}
	if fmt.Sprint(query.Positions) != "[0 -1]" {
		t.Fatalf("got %v", query.Positions)
	}

	query, err = ParseQuery("(li)[1:]")
	if err != nil {
		t.Fatal(err)
	}
	if b, e := query.Range.Bounds(5); b != 1 || e != 5 {
		t.Fatalf("got %d %d", b, e)
	}
	query, err = ParseQuery("(li)[:-1]")
	if err != nil {
		t.Fatal(err)
	}
	if b, e := query.Range.Bounds(5); b != 0 || e != 4 {
		t.Fatalf("got %d %d", b, e)
	}
	query, err = ParseQuery("(li)[4:2]")
	if err != nil {
		t.Fatal(err)
	}
	if b, e := query.Range.Bounds(3); b != 2 || e != 2 {
		t.Fatalf("got %d %d", b, e)
	}

	query, err = ParseQuery(`(li){i % 2 == 0}`)
	if err != nil {
		t.Fatal(err)
	}
	if query.Filter == nil || query.Filter.String() != "i % 2 == 0" {
		t.Fatal()
	}

	for _, input := range []string{
		"(li",
		"()",
		"(li)x",
		"(li)[a]",
		"(li)[1]x",
		"(li){(}",
		"a[href",
	} {
		if _, err := ParseQuery(input); !errors.Is(err, ErrSyntax) {
			t.Fatalf("%s: got %v", input, err)
		}
	}
}

func TestParseUpdates(t *testing.T) {
	updates, err := ParseUpdates(`@title $value %color ^hidden text addClass("on")`)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, update := range updates {
		got = append(got, fmt.Sprintf("%s%v", update.Call.Name, update.Call.Args))
	}
	expected := `["attr[\"title\"]" "prop[\"value\"]" "css[\"color\"]" "toggle[\"hidden\"]" "text[]" "addClass[\"on\"]"]`
	if str := fmt.Sprintf("%q", got); str != expected {
		t.Fatalf("got %s", str)
	}

	for _, input := range []string{"@", "foo((", "$ "} {
		if _, err := ParseUpdates(input); !errors.Is(err, ErrSyntax) {
			t.Fatalf("%s: got %v", input, err)
		}
	}
}

func TestParseDirective(t *testing.T) {
	groups, err := ParseDirective(
		`click(.item) ^keyup | check("x;y"); @load`,
		`Math.add(1)`,
		`(#out) | @title text | done ;`,
	)
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 2 {
		t.Fatalf("got %d", len(groups))
	}

	g := groups[0]
	if len(g.Events) != 2 || g.Events[0].Selector != ".item" || !g.Events[1].Once {
		t.Fatal()
	}
	if len(g.Pre) != 1 || g.Pre[0].Args[0].Value != "x;y" {
		t.Fatal()
	}
	if len(g.Calls) != 1 || g.Calls[0].Name != "Math.add" {
		t.Fatal()
	}
	if g.Query == nil || g.Query.Selector != "#out" || !g.Query.Multi {
		t.Fatal()
	}
	if len(g.Updates) != 2 || len(g.Post) != 1 || g.Post[0].Name != "done" {
		t.Fatal()
	}

	g = groups[1]
	if !g.Events[0].Store || g.Calls != nil || g.Query != nil {
		t.Fatalf("got %+v", g)
	}

	// trailing empty groups
	groups, err = ParseDirective("click;", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 1 || groups[0].Query != nil {
		t.Fatal()
	}

	for _, texts := range [][3]string{
		{"click", "a;b", ""},
		{"click", "", "a;b"},
		{";click", "a", ""},
		{"| foo", "", ""},
		{"click", "foo((", ""},
		{`click("`, "", ""},
	} {
		if _, err := ParseDirective(texts[0], texts[1], texts[2]); !errors.Is(err, ErrSyntax) {
			t.Fatalf("%q: got %v", texts, err)
		}
	}
}

func TestParseDirectiveShape(t *testing.T) {
	groups, err := ParseDirective(
		"click(li!true) | when; ^load",
		"Math.add(1, _)",
		"(p)[0, -1] | @title text | stop",
	)
	if err != nil {
		t.Fatal(err)
	}
	capture := true
	expected := []*Group{
		{
			Events: []*Event{
				{Name: "click", Selector: "li", Capture: &capture, Text: "click(li!true)"},
			},
			Pre: []*Call{
				{Name: "when", Text: "when"},
			},
			Calls: []*Call{
				{Name: "Math.add", Args: []Arg{Literal(1), Pull(0)}, Text: "Math.add(1, _)"},
			},
			Query: &Query{Selector: "p", Multi: true, Positions: []int{0, -1}, Text: "(p)[0, -1]"},
			Updates: []*Update{
				{Call: &Call{Name: "attr", Args: []Arg{Literal("title")}, Text: "@title"}, Text: "@title"},
				{Call: &Call{Name: "text", Text: "text"}, Text: "text"},
			},
			Post: []*Call{
				{Name: "stop", Text: "stop"},
			},
		},
		{
			Events: []*Event{
				{Name: "load", Once: true, Text: "^load"},
			},
		},
	}
	if diff := cmp.Diff(expected, groups, cmpopts.IgnoreFields(Query{}, "Filter")); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
