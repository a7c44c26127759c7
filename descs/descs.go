// Package descs parses directive fragments into descriptors.
//
// A directive is three texts. on holds event names and gate calls, by holds
// transform calls, to holds the target query, its updates and post calls:
//
//	on="click(.item) | check"  by="Math.add(1)"  to="(#out) | @title | done"
//
// Groups are separated by ';' and phases by '|'.
package descs

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/reusee/evchain/exprs"
	"github.com/reusee/evchain/tokens"
)

var ErrSyntax = errors.New("syntax error")

func syntaxError(kind string, text string, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %s %q: %w", ErrSyntax, kind, text, err)
	}
	return fmt.Errorf("%w: %s %q", ErrSyntax, kind, text)
}

// Arg is one argument template entry: a literal value, or a pull of values
// from the stack at call time.
type Arg struct {
	Value  any
	Pull   int
	IsPull bool
}

func Literal(v any) Arg {
	return Arg{
		Value: v,
	}
}

// Pull returns a pull marker. n == 0 pulls one item and splices it into the
// arguments; n > 0 pulls n items as one list argument.
func Pull(n int) Arg {
	return Arg{
		Pull:   n,
		IsPull: true,
	}
}

func (a Arg) String() string {
	if a.IsPull {
		if a.Pull == 0 {
			return "_"
		}
		return "_" + strconv.Itoa(a.Pull)
	}
	return fmt.Sprintf("%#v", a.Value)
}

type Event struct {
	Name     string
	Selector string
	// Capture is nil when the directive leaves the phase to the event source.
	Capture *bool
	Once    bool
	Store   bool
	Text    string
}

// ID keys the event in a deferred-chain store.
func (e *Event) ID() string {
	return e.Name
}

type Call struct {
	// Name is a dotted path. The empty name is an alias of push.
	Name string
	Args []Arg
	Text string
}

func (c *Call) Path() []string {
	if c.Name == "" {
		return []string{"push"}
	}
	return strings.Split(c.Name, ".")
}

// Query locates the elements a chain updates.
type Query struct {
	// Selector is empty for the current element.
	Selector string
	Multi    bool
	// Positions picks results by index, negative counting from the end.
	Positions []int
	// Range is set for [begin:end] refinements.
	Range *Range
	// Filter keeps results for which the expression is true.
	Filter *exprs.Predicate
	Text   string
}

type Range struct {
	Begin, End       int
	HasBegin, HasEnd bool
}

// Bounds resolves the range against a result count.
func (r *Range) Bounds(n int) (begin, end int) {
	begin, end = 0, n
	if r.HasBegin {
		begin = r.Begin
		if begin < 0 {
			begin += n
		}
	}
	if r.HasEnd {
		end = r.End
		if end < 0 {
			end += n
		}
	}
	begin = max(0, min(begin, n))
	end = max(0, min(end, n))
	if begin > end {
		begin = end
	}
	return
}

// Update is a mutation applied to every queried element.
type Update struct {
	Call *Call
	Text string
}

var updatePrefixes = map[byte]string{
	'@': "attr",
	'$': "prop",
	'%': "css",
	'^': "toggle",
}

var (
	namePattern      = regexp.MustCompile(`^([A-Za-z_$][\w$-]*(\.[A-Za-z_$][\w$-]*)*)?$`)
	eventNamePattern = regexp.MustCompile(`^[\w$][\w$:.-]*$`)
	pullPattern      = regexp.MustCompile(`^_([1-9])?$`)
)

// splitCall separates `name(inner)` into its parts. The parenthesized part
// must close at the end of text.
func splitCall(text string) (name string, inner string, hasParens bool, err error) {
	idx := strings.IndexByte(text, '(')
	if idx < 0 {
		if strings.ContainsRune(text, ')') {
			return "", "", false, errors.New("unbalanced parenthesis")
		}
		return text, "", false, nil
	}
	end, err := closing(text[idx:], tokens.NewCallJudge())
	if err != nil {
		return "", "", false, err
	}
	end += idx
	if end != len(text)-1 {
		return "", "", false, fmt.Errorf("unexpected %q after arguments", text[end+1:])
	}
	return text[:idx], text[idx+1 : end], true, nil
}

// closing returns the byte index in s where the span opened by s[0] closes.
func closing(s string, judge tokens.Judge) (int, error) {
	for i, r := range s {
		judge.Test(r)
		if judge.Ready() {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", tokens.ErrUnclosed, s)
}
