package tokens

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		input  string
		sep    rune
		output []string
	}{
		{"a b c", ' ', []string{"a", "b", "c"}},
		{"a;b;", ';', []string{"a", "b", ""}},
		{"", ';', []string{""}},
		{`foo("a;b");bar`, ';', []string{`foo("a;b")`, "bar"}},
		{`f(g(1, 2), 3) h`, ' ', []string{"f(g(1, 2), 3)", "h"}},
		{`f(")") x`, ' ', []string{`f(")")`, "x"}},
		{`'a\' b' c`, ' ', []string{`'a\' b'`, "c"}},
		{"`a b` c", ' ', []string{"`a b`", "c"}},
		{`(li)[1, 2] x`, ' ', []string{"(li)[1, 2]", "x"}},
		{`(li){i > 1 and e["tag"] != "a"} x`, ' ', []string{`(li){i > 1 and e["tag"] != "a"}`, "x"}},
		{`click(.a, .b)|x, y`, ',', []string{"click(.a, .b)|x", " y"}},
		{`[1, [2, 3]], 4`, ',', []string{"[1, [2, 3]]", " 4"}},
		{`"(", ")"`, ',', []string{`"("`, ` ")"`}},
	}
	tokenizer := NewDefault()
	for _, test := range tests {
		got, err := tokenizer.Split(test.input, test.sep)
		if err != nil {
			t.Fatalf("%s: %v", test.input, err)
		}
		if fmt.Sprintf("%q", got) != fmt.Sprintf("%q", test.output) {
			t.Fatalf("%s: got %q", test.input, got)
		}
	}
}

func TestSplitN(t *testing.T) {
	got, err := NewDefault().SplitN("a|b|c|d", '|', 3)
	if err != nil {
		t.Fatal(err)
	}
	if fmt.Sprintf("%q", got) != `["a" "b" "c|d"]` {
		t.Fatalf("got %q", got)
	}
}

func TestSplitRejoin(t *testing.T) {
	tokenizer := NewDefault()
	for _, input := range []string{
		"a,b,c",
		",,",
		"abc",
		"a, b ,c ,",
		",leading",
	} {
		parts, err := tokenizer.Split(input, ',')
		if err != nil {
			t.Fatal(err)
		}
		if got := strings.Join(parts, ","); got != input {
			t.Fatalf("got %q, want %q", got, input)
		}
	}
}

func TestSpanIntegrity(t *testing.T) {
	tokenizer := NewDefault()
	for _, input := range []string{
		`"a,b,c"`,
		`f(a, b)`,
		`[1,2]`,
		`{x, y}`,
		`'it''s,'`,
		`f("(,", [",", {1,2}])`,
	} {
		parts, err := tokenizer.Split(input, ',')
		if err != nil {
			t.Fatal(err)
		}
		if len(parts) != 1 || parts[0] != input {
			t.Fatalf("got %q", parts)
		}
	}
}

func TestUnclosed(t *testing.T) {
	tokenizer := NewDefault()
	for _, input := range []string{
		`foo((`,
		`"abc`,
		`f(")`,
		`[1, 2`,
		`a\`,
	} {
		_, err := tokenizer.Split(input, ' ')
		if input == `a\` {
			// backslash is only special inside strings
			if err != nil {
				t.Fatal(err)
			}
			continue
		}
		if !errors.Is(err, ErrUnclosed) {
			t.Fatalf("%s: got %v", input, err)
		}
		if !strings.Contains(err.Error(), input) {
			t.Fatalf("got %v", err)
		}
	}

	// state does not leak into the next call
	parts, err := tokenizer.Split("a b", ' ')
	if err != nil {
		t.Fatal(err)
	}
	if len(parts) != 2 {
		t.Fatalf("got %q", parts)
	}
}

func TestJudgeReady(t *testing.T) {
	judge := NewCallJudge()
	for _, r := range "f(a, (b)" {
		judge.Test(r)
	}
	if judge.Ready() {
		t.Fatal()
	}
	judge.Test(')')
	if !judge.Ready() {
		t.Fatal()
	}
	judge.Test('(')
	judge.Reset()
	if !judge.Ready() {
		t.Fatal()
	}

	str := NewStrJudge()
	if str.Test('a') {
		t.Fatal()
	}
	if !str.Test('"') || str.Ready() {
		t.Fatal()
	}
	str.Test('\\')
	str.Test('"')
	if str.Ready() {
		t.Fatal("escaped quote closes nothing")
	}
	str.Test('"')
	if !str.Ready() {
		t.Fatal()
	}
}

func TestSegments(t *testing.T) {
	segments, err := NewDefault().Segments(`total: sum(a, b) of "x y" end`)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, segment := range segments {
		got = append(got, fmt.Sprintf("%v:%s", segment.Span, segment.Text))
	}
	expected := []string{
		"false:total: sum",
		"true:(a, b)",
		"false: of ",
		`true:"x y"`,
		"false: end",
	}
	if fmt.Sprintf("%q", got) != fmt.Sprintf("%q", expected) {
		t.Fatalf("got %q", got)
	}

	if _, err := NewDefault().Segments(`a(`); !errors.Is(err, ErrUnclosed) {
		t.Fatalf("got %v", err)
	}
}

func TestFields(t *testing.T) {
	got, err := NewDefault().Fields(" a\tb(1, 2)\n  c ")
	if err != nil {
		t.Fatal(err)
	}
	if fmt.Sprintf("%q", got) != `["a" "b(1, 2)" "c"]` {
		t.Fatalf("got %q", got)
	}
}
