// Package stacks implements the data carrier shared by the cells of one chain.
//
// A Stack has two regions. The main region is LIFO and receives every
// value a cell produces. The staging region is FIFO and holds values picked
// out for the next instruction's arguments; while it is not empty, reads
// prefer it over the main region.
package stacks

import "slices"

type nullValue struct{}

func (nullValue) IsNull() bool {
	return true
}

func (nullValue) String() string {
	return "null"
}

// Null is the placeholder for an addressed slot that does not exist. It is
// distinct from nil, which means no value at all and is never stored.
var Null any = nullValue{}

func IsNull(v any) bool {
	_, ok := v.(nullValue)
	return ok
}

type Stack struct {
	main []any
	temp []any
}

func New() *Stack {
	return &Stack{}
}

// Clone returns a stack holding copies of both regions.
func (s *Stack) Clone() *Stack {
	return &Stack{
		main: slices.Clone(s.main),
		temp: slices.Clone(s.temp),
	}
}

// Reset empties both regions.
func (s *Stack) Reset() {
	clear(s.main)
	clear(s.temp)
	s.main = s.main[:0]
	s.temp = s.temp[:0]
}

// Data extracts the current value for an instruction.
//
// n == 0 drains the whole staging region: one item is returned as is, more
// items as a []any, nothing as nil.
// n > 0 takes up to n items from the front of the staging region if it holds
// anything, otherwise n items from the top of the main region.
// n < 0 takes up to -n items from the staging region only.
// A single requested item is returned as is, several as a []any.
func (s *Stack) Data(n int) any {
	if n == 0 {
		return collapse(s.shiftTemp(len(s.temp)))
	}
	if n < 0 {
		return many(s.shiftTemp(-n), -n)
	}
	if len(s.temp) > 0 {
		return many(s.shiftTemp(n), n)
	}
	return many(s.pop(n), n)
}

func collapse(vals []any) any {
	switch len(vals) {
	case 0:
		return nil
	case 1:
		return vals[0]
	}
	return vals
}

func many(vals []any, n int) any {
	if n == 1 {
		if len(vals) == 0 {
			return nil
		}
		return vals[0]
	}
	if len(vals) == 0 {
		return nil
	}
	return vals
}

func (s *Stack) shiftTemp(n int) []any {
	n = min(n, len(s.temp))
	if n <= 0 {
		return nil
	}
	ret := slices.Clone(s.temp[:n])
	clear(s.temp[:n])
	s.temp = s.temp[n:]
	return ret
}

// pop removes up to n items from the top of the main region, keeping their order.
func (s *Stack) pop(n int) []any {
	n = min(n, len(s.main))
	if n <= 0 {
		return nil
	}
	start := len(s.main) - n
	ret := slices.Clone(s.main[start:])
	clear(s.main[start:])
	s.main = s.main[:start]
	return ret
}

// Push appends values to the main region. nil values are dropped.
func (s *Stack) Push(vals ...any) {
	for _, v := range vals {
		if v == nil {
			continue
		}
		s.main = append(s.main, v)
	}
}

// Pop removes n items from the top of the main region. One item is
// returned as is, several as a []any, and nil if the region is empty.
func (s *Stack) Pop(n int) any {
	return many(s.pop(n), n)
}

// Top returns the topmost item without removing it.
func (s *Stack) Top() any {
	if len(s.main) == 0 {
		return nil
	}
	return s.main[len(s.main)-1]
}

// Item returns the item at index i of the main region, counting from the
// end when negative, or Null when out of range.
func (s *Stack) Item(i int) any {
	i, ok := s.index(i)
	if !ok {
		return Null
	}
	return s.main[i]
}

func (s *Stack) Size() int {
	return len(s.main)
}

func (s *Stack) TSize() int {
	return len(s.temp)
}

func (s *Stack) index(i int) (int, bool) {
	if i < 0 {
		i += len(s.main)
	}
	if i < 0 || i >= len(s.main) {
		return 0, false
	}
	return i, true
}

func (s *Stack) bound(i int) int {
	if i < 0 {
		i += len(s.main)
	}
	return max(0, min(i, len(s.main)))
}

// TPush appends literal values to the staging region. nil values are kept
// as Null so that the staged count matches the argument count.
func (s *Stack) TPush(vals ...any) {
	for _, v := range vals {
		if v == nil {
			v = Null
		}
		s.temp = append(s.temp, v)
	}
}

// TPop moves n items from the top of the main region to the staging
// region as separate items.
func (s *Stack) TPop(n int) {
	vals := s.pop(n)
	if len(vals) < n {
		vals = padNull(vals, n)
	}
	s.temp = append(s.temp, vals...)
}

// TPops moves n items from the top of the main region to the staging
// region as one []any item.
func (s *Stack) TPops(n int) {
	s.temp = append(s.temp, s.pop(n))
}

func padNull(vals []any, n int) []any {
	for len(vals) < n {
		vals = append([]any{Null}, vals...)
	}
	return vals
}

// TIndex copies the items at the given main region indexes to the staging region.
func (s *Stack) TIndex(idxs ...int) {
	for _, i := range idxs {
		s.temp = append(s.temp, s.Item(i))
	}
}

// TPick moves the items at the given main region indexes to the staging
// region. Indexes address the region as it is before any removal. An index
// out of range or already picked stages Null.
func (s *Stack) TPick(idxs ...int) {
	picked := make(map[int]bool)
	for _, i := range idxs {
		j, ok := s.index(i)
		if !ok || picked[j] {
			s.temp = append(s.temp, Null)
			continue
		}
		s.temp = append(s.temp, s.main[j])
		picked[j] = true
	}
	if len(picked) == 0 {
		return
	}
	kept := s.main[:0]
	for j, v := range s.main {
		if !picked[j] {
			kept = append(kept, v)
		}
	}
	clear(s.main[len(kept):])
	s.main = kept
}

// TSplice removes count items from the main region starting at start,
// inserts vals there and moves the removed items to the staging region.
// A negative count removes everything after start. Nil vals are dropped.
func (s *Stack) TSplice(start, count int, vals ...any) {
	start = s.bound(start)
	if count < 0 || start+count > len(s.main) {
		count = len(s.main) - start
	}
	removed := slices.Clone(s.main[start : start+count])
	vals = slices.DeleteFunc(slices.Clone(vals), func(v any) bool {
		return v == nil
	})
	s.main = slices.Replace(s.main, start, start+count, vals...)
	s.temp = append(s.temp, removed...)
}

// TSlice copies the main region items in [begin, end) to the staging region.
func (s *Stack) TSlice(begin, end int) {
	begin, end = s.bound(begin), s.bound(end)
	if begin >= end {
		return
	}
	s.temp = append(s.temp, s.main[begin:end]...)
}

// Values returns a copy of the main region, bottom first.
func (s *Stack) Values() []any {
	return slices.Clone(s.main)
}

// Staged returns a copy of the staging region, front first.
func (s *Stack) Staged() []any {
	return slices.Clone(s.temp)
}
