package doms

import (
	"fmt"
	"sync"

	"github.com/andybalholm/cascadia"
)

var selectors sync.Map

func compile(selector string) (cascadia.SelectorGroup, error) {
	if v, ok := selectors.Load(selector); ok {
		return v.(cascadia.SelectorGroup), nil
	}
	group, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, fmt.Errorf("selector %q: %w", selector, err)
	}
	selectors.Store(selector, group)
	return group, nil
}

// QueryAll returns the descendants of root matching selector.
func QueryAll(root Element, selector string) ([]Element, error) {
	group, err := compile(selector)
	if err != nil {
		return nil, err
	}
	return cascadia.QueryAll(root, group), nil
}

// Query returns the first descendant of root matching selector, or nil.
func Query(root Element, selector string) (Element, error) {
	group, err := compile(selector)
	if err != nil {
		return nil, err
	}
	return cascadia.Query(root, group), nil
}

func Matches(n Element, selector string) (bool, error) {
	group, err := compile(selector)
	if err != nil {
		return false, err
	}
	return group.Match(n), nil
}

// Closest returns the nearest of n and its ancestors matching selector,
// stopping before limit.
func Closest(n Element, selector string, limit Element) (Element, error) {
	group, err := compile(selector)
	if err != nil {
		return nil, err
	}
	for ; n != nil && n != limit; n = n.Parent {
		if group.Match(n) {
			return n, nil
		}
	}
	return nil, nil
}
