package main

import (
	"testing"

	"github.com/reusee/evchain/doms"
)

func TestParseFire(t *testing.T) {
	doc, err := doms.ParseString(`<button id="b"></button>`)
	if err != nil {
		t.Fatal(err)
	}
	f, err := parseFire(doc, `#b click "a b"`)
	if err != nil {
		t.Fatal(err)
	}
	if f.name != "click" || f.data != "a b" || f.target == nil {
		t.Fatalf("got %+v", f)
	}
	f, err = parseFire(doc, `button[id=b] go`)
	if err != nil {
		t.Fatal(err)
	}
	if f.data != nil {
		t.Fatalf("got %v", f.data)
	}
	for _, spec := range []string{
		"#b",
		"#nope click",
		"#b click 1 2",
		"#b click _",
		"#b click (",
	} {
		if _, err := parseFire(doc, spec); err == nil {
			t.Fatalf("%s: should error", spec)
		}
	}
}
