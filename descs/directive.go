package descs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reusee/evchain/tokens"
)

// Group is one parallel binding of a directive.
type Group struct {
	Events []*Event
	// Pre calls follow the events in the on text.
	Pre   []*Call
	Calls []*Call
	// Query is nil when the group has no to text.
	Query   *Query
	Updates []*Update
	Post    []*Call
}

// ParseDirective parses the on, by and to texts of one element. Groups
// pair by position; by and to may have fewer groups than on.
func ParseDirective(on, by, to string) ([]*Group, error) {
	tokenizer := tokens.NewDefault()
	split := func(what, text string) ([]string, error) {
		if strings.TrimSpace(text) == "" {
			return nil, nil
		}
		parts, err := tokenizer.Split(text, ';')
		if err != nil {
			return nil, syntaxError(what, text, err)
		}
		return parts, nil
	}

	ons, err := split("on", on)
	if err != nil {
		return nil, err
	}
	bys, err := split("by", by)
	if err != nil {
		return nil, err
	}
	tos, err := split("to", to)
	if err != nil {
		return nil, err
	}
	if len(bys) > len(ons) {
		return nil, syntaxError("by", by, fmt.Errorf("%d groups for %d event groups", len(bys), len(ons)))
	}
	if len(tos) > len(ons) {
		return nil, syntaxError("to", to, fmt.Errorf("%d groups for %d event groups", len(tos), len(ons)))
	}

	var groups []*Group
	for i, onText := range ons {
		var byText, toText string
		if i < len(bys) {
			byText = bys[i]
		}
		if i < len(tos) {
			toText = tos[i]
		}
		if strings.TrimSpace(onText) == "" {
			if strings.TrimSpace(byText) != "" || strings.TrimSpace(toText) != "" {
				return nil, syntaxError("on", on, errors.New("group without events"))
			}
			continue
		}
		group, err := parseGroup(tokenizer, onText, byText, toText)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func parseGroup(tokenizer *tokens.Tokenizer, on, by, to string) (*Group, error) {
	group := new(Group)

	onParts, err := tokenizer.SplitN(on, '|', 2)
	if err != nil {
		return nil, syntaxError("on", on, err)
	}
	group.Events, err = ParseEvents(onParts[0])
	if err != nil {
		return nil, err
	}
	if len(group.Events) == 0 {
		return nil, syntaxError("on", on, errors.New("no event"))
	}
	if len(onParts) > 1 {
		group.Pre, err = ParseCalls(onParts[1])
		if err != nil {
			return nil, err
		}
	}

	group.Calls, err = ParseCalls(by)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(to) != "" {
		toParts, err := tokenizer.SplitN(to, '|', 3)
		if err != nil {
			return nil, syntaxError("to", to, err)
		}
		group.Query, err = ParseQuery(toParts[0])
		if err != nil {
			return nil, err
		}
		if len(toParts) > 1 {
			group.Updates, err = ParseUpdates(toParts[1])
			if err != nil {
				return nil, err
			}
		}
		if len(toParts) > 2 {
			group.Post, err = ParseCalls(toParts[2])
			if err != nil {
				return nil, err
			}
		}
	}

	return group, nil
}
