package builds

import (
	"fmt"

	"github.com/reusee/evchain/doms"
	"github.com/reusee/evchain/evconfigs"
)

// Scanner builds every element of a tree carrying directive attributes.
type Scanner struct {
	Builder *Builder
	Attrs   evconfigs.Attrs
	// Keep leaves the directive attributes on built elements.
	Keep bool
}

// Scan returns the number of elements built under root.
func (s *Scanner) Scan(root doms.Element) (int, error) {
	built := 0
	for _, n := range doms.Elements(root) {
		on, ok := doms.Attr(n, s.Attrs.On)
		if !ok {
			continue
		}
		by, _ := doms.Attr(n, s.Attrs.By)
		to, _ := doms.Attr(n, s.Attrs.To)
		if !s.Keep {
			doms.RemoveAttr(n, s.Attrs.On)
			doms.RemoveAttr(n, s.Attrs.By)
			doms.RemoveAttr(n, s.Attrs.To)
		}
		if err := s.Builder.Build(n, on, by, to); err != nil {
			return built, fmt.Errorf("build <%s>: %w", n.Data, err)
		}
		built++
	}
	return built, nil
}
