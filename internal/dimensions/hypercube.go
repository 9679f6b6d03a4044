package dimensions

import (
	"xbrlcore/internal/taxonomy"
	"xbrlcore/internal/xlink"
)

// Hypercube is a collection of dimensions bound to a hypercubeItem concept.
// It describes which dimension/domain-member coordinates a primary item may
// be reported for.
type Hypercube struct {
	Concept          *taxonomy.Concept
	ExtendedLinkRole string

	dims []*Dimension
}

// NewHypercube creates an empty hypercube for the given concept. A nil
// concept is allowed for scratch cubes built during evaluation.
func NewHypercube(concept *taxonomy.Concept) *Hypercube {
	return &Hypercube{Concept: concept}
}

// AddDimension attaches a dimension to the cube.
func (h *Hypercube) AddDimension(d *Dimension) {
	h.dims = append(h.dims, d)
}

// Dimensions returns the cube's dimensions in insertion order.
func (h *Hypercube) Dimensions() []*Dimension {
	return h.dims
}

// Dimension returns the cube's dimension for the given concept, or nil.
func (h *Hypercube) Dimension(concept *taxonomy.Concept) *Dimension {
	for _, d := range h.dims {
		if d.Concept.Equal(concept) {
			return d
		}
	}
	return nil
}

// ContainsDimension reports whether the concept is one of the cube's axes.
func (h *Hypercube) ContainsDimension(concept *taxonomy.Concept) bool {
	return h.Dimension(concept) != nil
}

// DimensionDomain returns the domain-member network of the given dimension,
// or nil if the dimension is not part of the cube.
func (h *Hypercube) DimensionDomain(dimension *taxonomy.Concept) []xlink.ExtendedLinkElement {
	if d := h.Dimension(dimension); d != nil {
		return d.DomainMembers()
	}
	return nil
}

// ContainsDimensionDomain reports whether the (dimension, domain member)
// pair is part of the cube, ignoring the usable flag. Typed dimensions
// accept every member.
func (h *Hypercube) ContainsDimensionDomain(dimension, domainMember *taxonomy.Concept) bool {
	d := h.Dimension(dimension)
	if d == nil {
		return false
	}
	if d.Typed {
		// TODO: validate the member against the typed domain's schema type
		return true
	}
	return d.ContainsDomainMember(domainMember, false)
}

// ContainsUsableDimensionDomain is ContainsDimensionDomain restricted to
// members whose locator is still usable.
func (h *Hypercube) ContainsUsableDimensionDomain(dimension, domainMember *taxonomy.Concept) bool {
	d := h.Dimension(dimension)
	if d == nil {
		return false
	}
	if d.Typed {
		return true
	}
	return d.ContainsDomainMember(domainMember, true)
}

// AddHypercube unions another cube into this one. Dimensions already present
// merge their domain-member networks; new dimensions are cloned and added.
func (h *Hypercube) AddHypercube(other *Hypercube) {
	for _, od := range other.Dimensions() {
		if existing := h.Dimension(od.Concept); existing != nil {
			existing.AddDomainMembers(od.DomainMembers())
		} else {
			h.AddDimension(od.Clone())
		}
	}
}

// HasDimensionCombination reports whether the cube covers exactly the
// coordinates of the given MDT: the same number of dimensions, and every
// (dimension, member) pair present as a usable member.
func (h *Hypercube) HasDimensionCombination(mdt *MultipleDimensionType) bool {
	pairs := mdt.AllSingleDimensionTypes()
	if len(pairs) != len(h.dims) {
		return false
	}
	for _, sdt := range pairs {
		if !h.ContainsUsableDimensionDomain(sdt.Dimension, sdt.Member) {
			return false
		}
	}
	return true
}

// Equal compares concept, extended link role and the dimension sets.
func (h *Hypercube) Equal(other *Hypercube) bool {
	if h == other {
		return true
	}
	if h == nil || other == nil {
		return false
	}
	if !h.Concept.Equal(other.Concept) || h.ExtendedLinkRole != other.ExtendedLinkRole {
		return false
	}
	if len(h.dims) != len(other.dims) {
		return false
	}
	for _, d := range h.dims {
		od := other.Dimension(d.Concept)
		if od == nil || !d.Equal(od) {
			return false
		}
	}
	return true
}
