package linkbase

import (
	"xbrlcore/internal/taxonomy"
	"xbrlcore/internal/xbrlns"
	"xbrlcore/internal/xlink"
)

// Calculation is the calculation linkbase: summation-item arcs carrying
// weights.
type Calculation struct {
	*Linkbase
}

// NewCalculation creates an empty calculation linkbase.
func NewCalculation() *Calculation {
	return &Calculation{Linkbase: New(KindCalculation)}
}

// Calculations returns the summand concepts and weights of the calculation
// network sourced at the given concept within one extended link role. The
// map is empty when no rules exist.
func (c *Calculation) Calculations(concept *taxonomy.Concept, extendedLinkRole string) map[*taxonomy.Concept]float64 {
	out := make(map[*taxonomy.Concept]float64)
	for _, a := range c.ArcBaseSet(xbrlns.ArcroleSummationItem, extendedLinkRole) {
		src := xlink.ConceptOf(a.Source)
		if src == nil || !src.Equal(concept) {
			continue
		}
		if tgt := xlink.ConceptOf(a.Target); tgt != nil {
			out[tgt] = a.Weight
		}
	}
	return out
}
