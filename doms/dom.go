// Package doms is the element tree chains operate on: parsing and rendering
// with golang.org/x/net/html, selector lookups, updates and event dispatch.
package doms

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type Element = *html.Node

func Parse(r io.Reader) (Element, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

func ParseString(s string) (Element, error) {
	return Parse(strings.NewReader(s))
}

func Render(w io.Writer, n Element) error {
	return html.Render(w, n)
}

func RenderString(n Element) (string, error) {
	var b strings.Builder
	if err := Render(&b, n); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Root returns the topmost ancestor of n.
func Root(n Element) Element {
	for n != nil && n.Parent != nil {
		n = n.Parent
	}
	return n
}

// Path returns n and its ancestors, root first.
func Path(n Element) []Element {
	var path []Element
	for ; n != nil; n = n.Parent {
		path = append(path, n)
	}
	slices.Reverse(path)
	return path
}

// Elements returns the element nodes under root in document order, root included.
func Elements(root Element) []Element {
	var ret []Element
	var walk func(Element)
	walk = func(n Element) {
		if n.Type == html.ElementNode {
			ret = append(ret, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return ret
}

func NewElement(tag string) Element {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

func Attr(n Element, name string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == name {
			return attr.Val, true
		}
	}
	return "", false
}

func SetAttr(n Element, name, value string) {
	for i, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{
		Key: name,
		Val: value,
	})
}

func RemoveAttr(n Element, name string) {
	n.Attr = slices.DeleteFunc(n.Attr, func(attr html.Attribute) bool {
		return attr.Namespace == "" && attr.Key == name
	})
}

func Classes(n Element) []string {
	value, _ := Attr(n, "class")
	return strings.Fields(value)
}

func HasClass(n Element, class string) bool {
	return slices.Contains(Classes(n), class)
}

func AddClass(n Element, classes ...string) {
	current := Classes(n)
	for _, class := range classes {
		if !slices.Contains(current, class) {
			current = append(current, class)
		}
	}
	SetAttr(n, "class", strings.Join(current, " "))
}

func RemoveClass(n Element, classes ...string) {
	current := slices.DeleteFunc(Classes(n), func(class string) bool {
		return slices.Contains(classes, class)
	})
	if len(current) == 0 {
		RemoveAttr(n, "class")
		return
	}
	SetAttr(n, "class", strings.Join(current, " "))
}

// Text returns the concatenated text content of n.
func Text(n Element) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	var walk func(Element)
	walk = func(n Element) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func removeChildren(n Element) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

// SetText replaces the children of n with one text node.
func SetText(n Element, text string) {
	removeChildren(n)
	n.AppendChild(&html.Node{
		Type: html.TextNode,
		Data: text,
	})
}

// SetHTML replaces the children of n with the parsed fragment.
func SetHTML(n Element, fragment string) error {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), n)
	if err != nil {
		return fmt.Errorf("parse fragment: %w", err)
	}
	removeChildren(n)
	for _, node := range nodes {
		n.AppendChild(node)
	}
	return nil
}

// View is the value an element presents to filter expressions.
func View(n Element) map[string]any {
	attrs := make(map[string]any, len(n.Attr))
	for _, attr := range n.Attr {
		attrs[attr.Key] = attr.Val
	}
	classes := make([]any, 0)
	for _, class := range Classes(n) {
		classes = append(classes, class)
	}
	id, _ := Attr(n, "id")
	return map[string]any{
		"tag":     n.Data,
		"id":      id,
		"text":    Text(n),
		"attrs":   attrs,
		"classes": classes,
	}
}
