// Package tokens splits directive text while keeping quoted strings,
// call arguments and bracketed regions intact.
package tokens

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnclosed = errors.New("unclosed span")

// Tokenizer is not safe for concurrent use: judges keep scan state.
type Tokenizer struct {
	judges []Judge
	active Judge
}

func New(judges ...Judge) *Tokenizer {
	return &Tokenizer{
		judges: judges,
	}
}

// NewDefault recognizes strings, call parentheses, brackets and braces.
func NewDefault() *Tokenizer {
	return New(
		NewStrJudge(),
		NewCallJudge(),
		NewPairJudge('[', ']'),
		NewPairJudge('{', '}'),
	)
}

func (t *Tokenizer) reset() {
	t.active = nil
	for _, judge := range t.judges {
		judge.Reset()
	}
}

// opaque reports whether r is inside a span. The first judge that claims a
// rune owns the span until it is ready again.
func (t *Tokenizer) opaque(r rune) bool {
	if t.active != nil {
		t.active.Test(r)
		if t.active.Ready() {
			t.active = nil
		}
		return true
	}
	for _, judge := range t.judges {
		if judge.Test(r) {
			if !judge.Ready() {
				t.active = judge
			}
			return true
		}
	}
	return false
}

func (t *Tokenizer) ready() bool {
	if t.active != nil {
		return false
	}
	for _, judge := range t.judges {
		if !judge.Ready() {
			return false
		}
	}
	return true
}

// Split cuts s at every sep outside spans.
func (t *Tokenizer) Split(s string, sep rune) ([]string, error) {
	return t.SplitN(s, sep, -1)
}

// SplitN is Split returning at most n parts, the last holding the rest.
// n < 0 means no limit.
func (t *Tokenizer) SplitN(s string, sep rune, n int) ([]string, error) {
	t.reset()
	var ret []string
	var buf strings.Builder
	for _, r := range s {
		if t.opaque(r) {
			buf.WriteRune(r)
			continue
		}
		if r == sep && (n < 0 || len(ret) < n-1) {
			ret = append(ret, buf.String())
			buf.Reset()
			continue
		}
		buf.WriteRune(r)
	}
	if !t.ready() {
		return nil, fmt.Errorf("%w: %s", ErrUnclosed, s)
	}
	ret = append(ret, buf.String())
	return ret, nil
}

// Segment is a maximal run of text either outside or inside spans.
type Segment struct {
	Text string
	Span bool
}

// Segments returns alternating outside-span and inside-span chunks of s.
func (t *Tokenizer) Segments(s string) ([]Segment, error) {
	t.reset()
	var ret []Segment
	var buf strings.Builder
	inSpan := false
	flush := func() {
		if buf.Len() == 0 {
			return
		}
		ret = append(ret, Segment{
			Text: buf.String(),
			Span: inSpan,
		})
		buf.Reset()
	}
	for _, r := range s {
		opaque := t.opaque(r)
		if opaque != inSpan {
			flush()
			inSpan = opaque
		}
		buf.WriteRune(r)
	}
	if !t.ready() {
		return nil, fmt.Errorf("%w: %s", ErrUnclosed, s)
	}
	flush()
	return ret, nil
}

// Fields splits s at spaces outside spans, dropping empty parts.
func (t *Tokenizer) Fields(s string) ([]string, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r', '\f', '\v':
			return ' '
		}
		return r
	}, s)
	parts, err := t.Split(s, ' ')
	if err != nil {
		return nil, err
	}
	ret := parts[:0]
	for _, part := range parts {
		if part != "" {
			ret = append(ret, part)
		}
	}
	return ret, nil
}
