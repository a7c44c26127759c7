package descs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/reusee/evchain/exprs"
	"github.com/reusee/evchain/stacks"
	"github.com/reusee/evchain/tokens"
)

var literalNames = map[string]any{
	"true":  true,
	"false": false,
	"null":  stacks.Null,
}

// ParseArgs evaluates a comma separated argument list. Each piece is an
// expression; `_` and `_1` to `_9` are pull markers.
func ParseArgs(text string) ([]Arg, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	pieces, err := tokens.NewDefault().Split(text, ',')
	if err != nil {
		return nil, syntaxError("arguments", text, err)
	}
	if len(pieces) > 1 && strings.TrimSpace(pieces[len(pieces)-1]) == "" {
		pieces = pieces[:len(pieces)-1]
	}
	args := make([]Arg, 0, len(pieces))
	for _, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			return nil, syntaxError("arguments", text, errors.New("empty argument"))
		}
		if m := pullPattern.FindStringSubmatch(piece); m != nil {
			n := 0
			if m[1] != "" {
				n, _ = strconv.Atoi(m[1])
			}
			args = append(args, Pull(n))
			continue
		}
		value, err := exprs.Eval(piece, literalNames)
		if err != nil {
			return nil, syntaxError("argument", piece, err)
		}
		args = append(args, Literal(value))
	}
	return args, nil
}

func ParseCall(text string) (*Call, error) {
	text = strings.TrimSpace(text)
	name, inner, hasParens, err := splitCall(text)
	if err != nil {
		return nil, syntaxError("call", text, err)
	}
	if !namePattern.MatchString(name) {
		return nil, syntaxError("call", text, fmt.Errorf("bad name %q", name))
	}
	if name == "" && !hasParens {
		return nil, syntaxError("call", text, errors.New("empty call"))
	}
	call := &Call{
		Name: name,
		Text: text,
	}
	if hasParens {
		call.Args, err = ParseArgs(inner)
		if err != nil {
			return nil, syntaxError("call", text, err)
		}
	}
	return call, nil
}

// ParseCalls parses whitespace separated calls.
func ParseCalls(text string) ([]*Call, error) {
	fields, err := tokens.NewDefault().Fields(text)
	if err != nil {
		return nil, syntaxError("calls", text, err)
	}
	var calls []*Call
	for _, field := range fields {
		call, err := ParseCall(field)
		if err != nil {
			return nil, err
		}
		calls = append(calls, call)
	}
	return calls, nil
}

func ParseEvent(text string) (*Event, error) {
	text = strings.TrimSpace(text)
	event := &Event{
		Text: text,
	}
	rest := text
	switch {
	case strings.HasPrefix(rest, "@"):
		event.Store = true
		rest = rest[1:]
	case strings.HasPrefix(rest, "^"):
		event.Once = true
		rest = rest[1:]
	}
	name, inner, hasParens, err := splitCall(rest)
	if err != nil {
		return nil, syntaxError("event", text, err)
	}
	if !eventNamePattern.MatchString(name) {
		return nil, syntaxError("event", text, fmt.Errorf("bad name %q", name))
	}
	event.Name = name
	if hasParens {
		inner = strings.TrimSpace(inner)
		for marker, capture := range map[string]bool{
			"!true":  true,
			"!false": false,
		} {
			if strings.HasSuffix(inner, marker) {
				event.Capture = &capture
				inner = strings.TrimSpace(strings.TrimSuffix(inner, marker))
				break
			}
		}
		if inner == "" && event.Capture == nil {
			return nil, syntaxError("event", text, errors.New("empty selector"))
		}
		event.Selector = inner
	}
	return event, nil
}

// ParseEvents parses whitespace separated event names.
func ParseEvents(text string) ([]*Event, error) {
	fields, err := tokens.NewDefault().Fields(text)
	if err != nil {
		return nil, syntaxError("events", text, err)
	}
	var events []*Event
	for _, field := range fields {
		event, err := ParseEvent(field)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

// ParseQuery parses a target locator:
//
//	(sel)        every match
//	(sel)[0,-1]  matches at the positions
//	(sel)[1:]    matches in the range
//	(sel){expr}  matches for which expr holds, with e, i and v bound
//	sel          the first match
//	             the current element when empty
func ParseQuery(text string) (*Query, error) {
	text = strings.TrimSpace(text)
	query := &Query{
		Text: text,
	}
	if text == "" {
		return query, nil
	}
	if !strings.HasPrefix(text, "(") {
		if _, err := tokens.NewDefault().Segments(text); err != nil {
			return nil, syntaxError("query", text, err)
		}
		query.Selector = text
		return query, nil
	}

	end, err := closing(text, tokens.NewCallJudge())
	if err != nil {
		return nil, syntaxError("query", text, err)
	}
	query.Multi = true
	query.Selector = strings.TrimSpace(text[1:end])
	if query.Selector == "" {
		return nil, syntaxError("query", text, errors.New("empty selector"))
	}
	rest := text[end+1:]
	if rest == "" {
		return query, nil
	}

	var judge tokens.Judge
	switch rest[0] {
	case '[':
		judge = tokens.NewPairJudge('[', ']')
	case '{':
		judge = tokens.NewPairJudge('{', '}')
	default:
		return nil, syntaxError("query", text, fmt.Errorf("unexpected %q", rest))
	}
	end, err = closing(rest, judge)
	if err != nil {
		return nil, syntaxError("query", text, err)
	}
	if end != len(rest)-1 {
		return nil, syntaxError("query", text, fmt.Errorf("unexpected %q", rest[end+1:]))
	}
	inner := rest[1:end]

	if rest[0] == '{' {
		query.Filter, err = exprs.NewPredicate(inner)
		if err != nil {
			return nil, syntaxError("query", text, err)
		}
		return query, nil
	}

	if begin, finish, ok := strings.Cut(inner, ":"); ok {
		r := new(Range)
		if s := strings.TrimSpace(begin); s != "" {
			r.Begin, err = strconv.Atoi(s)
			if err != nil {
				return nil, syntaxError("query", text, err)
			}
			r.HasBegin = true
		}
		if s := strings.TrimSpace(finish); s != "" {
			r.End, err = strconv.Atoi(s)
			if err != nil {
				return nil, syntaxError("query", text, err)
			}
			r.HasEnd = true
		}
		query.Range = r
		return query, nil
	}

	for piece := range strings.SplitSeq(inner, ",") {
		i, err := strconv.Atoi(strings.TrimSpace(piece))
		if err != nil {
			return nil, syntaxError("query", text, err)
		}
		query.Positions = append(query.Positions, i)
	}
	return query, nil
}

func ParseUpdate(text string) (*Update, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, syntaxError("update", text, errors.New("empty update"))
	}
	if name, ok := updatePrefixes[text[0]]; ok {
		arg := strings.TrimSpace(text[1:])
		if arg == "" {
			return nil, syntaxError("update", text, errors.New("missing name"))
		}
		return &Update{
			Call: &Call{
				Name: name,
				Args: []Arg{Literal(arg)},
				Text: text,
			},
			Text: text,
		}, nil
	}
	call, err := ParseCall(text)
	if err != nil {
		return nil, syntaxError("update", text, err)
	}
	return &Update{
		Call: call,
		Text: text,
	}, nil
}

// ParseUpdates parses whitespace separated updates.
func ParseUpdates(text string) ([]*Update, error) {
	fields, err := tokens.NewDefault().Fields(text)
	if err != nil {
		return nil, syntaxError("updates", text, err)
	}
	var updates []*Update
	for _, field := range fields {
		update, err := ParseUpdate(field)
		if err != nil {
			return nil, err
		}
		updates = append(updates, update)
	}
	return updates, nil
}
