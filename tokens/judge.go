package tokens

// Judge tracks one kind of opaque span while a text is scanned rune by rune.
type Judge interface {
	// Test reports whether r belongs to a span, delimiters included,
	// updating the judge's state.
	Test(r rune) bool
	Reset()
	// Ready reports whether no span is open.
	Ready() bool
}

// StrJudge tracks quoted strings: '...', "..." and `...`, with backslash escapes.
type StrJudge struct {
	quote   rune
	escaped bool
}

var _ Judge = new(StrJudge)

func NewStrJudge() *StrJudge {
	return new(StrJudge)
}

func (j *StrJudge) Test(r rune) bool {
	if j.quote == 0 {
		switch r {
		case '\'', '"', '`':
			j.quote = r
			return true
		}
		return false
	}
	if j.escaped {
		j.escaped = false
		return true
	}
	switch r {
	case '\\':
		j.escaped = true
	case j.quote:
		j.quote = 0
	}
	return true
}

func (j *StrJudge) Reset() {
	j.quote = 0
	j.escaped = false
}

func (j *StrJudge) Ready() bool {
	return j.quote == 0
}

// PairJudge tracks balanced, nestable open/close pairs. Delimiters inside
// quoted strings within the span do not count.
type PairJudge struct {
	open, close rune
	depth       int
	str         StrJudge
}

var _ Judge = new(PairJudge)

func NewPairJudge(open, close rune) *PairJudge {
	return &PairJudge{
		open:  open,
		close: close,
	}
}

// NewCallJudge tracks call argument parentheses.
func NewCallJudge() *PairJudge {
	return NewPairJudge('(', ')')
}

func (j *PairJudge) Test(r rune) bool {
	if j.depth == 0 {
		if r == j.open {
			j.depth = 1
			return true
		}
		return false
	}
	if j.str.Test(r) {
		return true
	}
	switch r {
	case j.open:
		j.depth++
	case j.close:
		j.depth--
	}
	return true
}

func (j *PairJudge) Reset() {
	j.depth = 0
	j.str.Reset()
}

func (j *PairJudge) Ready() bool {
	return j.depth == 0 && j.str.Ready()
}
