package doms

import (
	"maps"

	"github.com/reusee/evchain/weaks"
	"golang.org/x/net/html"
)

// Props holds element properties, values that live beside the markup
// rather than in attributes.
type Props struct {
	values *weaks.Map[html.Node, map[string]any]
}

func NewProps() *Props {
	return &Props{
		values: weaks.NewMap[html.Node, map[string]any](),
	}
}

func (p *Props) Get(n Element, name string) (any, bool) {
	m, ok := p.values.Get(n)
	if !ok {
		return nil, false
	}
	v, ok := m[name]
	return v, ok
}

// Set stores a property. A nil value deletes it.
func (p *Props) Set(n Element, name string, value any) {
	p.values.Upsert(n, func(m map[string]any, _ bool) map[string]any {
		if value == nil {
			delete(m, name)
			return m
		}
		if m == nil {
			m = make(map[string]any)
		}
		m[name] = value
		return m
	})
}

func (p *Props) All(n Element) map[string]any {
	m, _ := p.values.Get(n)
	return maps.Clone(m)
}

// Drop forgets every property of n.
func (p *Props) Drop(n Element) {
	p.values.Delete(n)
}
