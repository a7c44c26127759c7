package builds

import (
	"maps"
	"slices"

	"github.com/reusee/evchain/cells"
	"github.com/reusee/evchain/doms"
	"github.com/reusee/evchain/weaks"
	"golang.org/x/net/html"
)

// Store holds chains of store-flagged events until they are invoked.
// Entries are weakly keyed by element and go away with it.
type Store struct {
	chains *weaks.Map[html.Node, map[string]*cells.Chain]
}

func NewStore() *Store {
	return &Store{
		chains: weaks.NewMap[html.Node, map[string]*cells.Chain](),
	}
}

func (s *Store) Put(target doms.Element, evid string, chain *cells.Chain) {
	s.chains.Upsert(target, func(m map[string]*cells.Chain, _ bool) map[string]*cells.Chain {
		if m == nil {
			m = make(map[string]*cells.Chain)
		}
		m[evid] = chain
		return m
	})
}

// Get returns the chain stored for evid on target. With clone, the chain is
// a copy with its own stack; otherwise the stored chain itself.
func (s *Store) Get(target doms.Element, evid string, clone bool) (*cells.Chain, bool) {
	m, ok := s.chains.Get(target)
	if !ok {
		return nil, false
	}
	chain, ok := m[evid]
	if !ok {
		return nil, false
	}
	if clone {
		return chain.Clone(), true
	}
	return chain, true
}

// Lookup finds the closest element from target up holding a chain for evid.
func (s *Store) Lookup(target doms.Element, evid string, clone bool) (doms.Element, *cells.Chain, bool) {
	for n := target; n != nil; n = n.Parent {
		if chain, ok := s.Get(n, evid, clone); ok {
			return n, chain, true
		}
	}
	return nil, nil, false
}

func (s *Store) IDs(target doms.Element) []string {
	m, _ := s.chains.Get(target)
	return slices.Sorted(maps.Keys(m))
}

// Drop removes every chain stored on target.
func (s *Store) Drop(target doms.Element) {
	s.chains.Delete(target)
}

// Invoke returns the method of the invoke instruction. invoke("evid") runs a
// copy of the stored chain found from the run element up, with the current
// value as input, and yields its result.
func (s *Store) Invoke() *cells.Method {
	return cells.Func(func(evo *cells.Evo, args []any) (any, error) {
		if len(args) == 0 {
			return nil, cells.Errorf("invoke: missing event id")
		}
		evid, ok := args[0].(string)
		if !ok {
			return nil, cells.Errorf("invoke: not an event id: %v", args[0])
		}
		from := evo.Current
		if from == nil {
			from = evo.Origin
		}
		owner, chain, ok := s.Lookup(from, evid, true)
		if !ok {
			return nil, cells.Warnf("invoke: no stored chain for %s", evid)
		}
		return chain.RunEvent(evo.Event, doms.Elo{
			Origin:   evo.Origin,
			Current:  owner,
			Delegate: owner,
		}, evo.Data)
	}).Want(1)
}
