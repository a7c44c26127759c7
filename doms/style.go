package doms

import "strings"

type declaration struct {
	name, value string
}

func parseStyle(style string) []declaration {
	var ret []declaration
	for part := range strings.SplitSeq(style, ";") {
		name, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		ret = append(ret, declaration{
			name:  name,
			value: strings.TrimSpace(value),
		})
	}
	return ret
}

func Style(n Element, name string) (string, bool) {
	style, _ := Attr(n, "style")
	for _, decl := range parseStyle(style) {
		if decl.name == name {
			return decl.value, true
		}
	}
	return "", false
}

// SetStyle sets one style property. An empty value removes it.
func SetStyle(n Element, name, value string) {
	style, _ := Attr(n, "style")
	decls := parseStyle(style)
	found := false
	kept := decls[:0]
	for _, decl := range decls {
		if decl.name == name {
			found = true
			if value == "" {
				continue
			}
			decl.value = value
		}
		kept = append(kept, decl)
	}
	if !found && value != "" {
		kept = append(kept, declaration{
			name:  name,
			value: value,
		})
	}
	if len(kept) == 0 {
		RemoveAttr(n, "style")
		return
	}
	var b strings.Builder
	for i, decl := range kept {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(decl.name)
		b.WriteString(": ")
		b.WriteString(decl.value)
		b.WriteString(";")
	}
	SetAttr(n, "style", b.String())
}
