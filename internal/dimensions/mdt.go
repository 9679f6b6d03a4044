package dimensions

import (
	"xbrlcore/internal/taxonomy"
	"xbrlcore/internal/xmldom"
)

// SingleDimensionType is one (dimension, domain member) coordinate. For
// typed dimensions the member concept is nil and TypedContent carries the
// member's first child element verbatim.
type SingleDimensionType struct {
	Dimension    *taxonomy.Concept
	Member       *taxonomy.Concept
	TypedContent *xmldom.Element
}

// NewSingleDimensionType creates an explicit coordinate.
func NewSingleDimensionType(dimension, member *taxonomy.Concept) *SingleDimensionType {
	return &SingleDimensionType{Dimension: dimension, Member: member}
}

// NewTypedDimensionType creates a typed coordinate.
func NewTypedDimensionType(dimension *taxonomy.Concept, content *xmldom.Element) *SingleDimensionType {
	return &SingleDimensionType{Dimension: dimension, TypedContent: content}
}

// Equal compares dimension and member; typed content compares by identity.
func (s *SingleDimensionType) Equal(other *SingleDimensionType) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil {
		return false
	}
	return s.Dimension.Equal(other.Dimension) &&
		s.Member.Equal(other.Member) &&
		s.TypedContent == other.TypedContent
}

// Clone returns a copy of the coordinate.
func (s *SingleDimensionType) Clone() *SingleDimensionType {
	cp := *s
	return &cp
}

// MultipleDimensionType is the full dimensional coordinate of a fact: one
// current (dimension, member) pair plus an unordered set of previous pairs.
type MultipleDimensionType struct {
	current  *SingleDimensionType
	previous []*SingleDimensionType
}

// NewMultipleDimensionType creates an MDT whose current coordinate is sdt.
func NewMultipleDimensionType(sdt *SingleDimensionType) *MultipleDimensionType {
	return &MultipleDimensionType{current: sdt}
}

// NewExplicitMDT is shorthand for an MDT seeded with one explicit pair.
func NewExplicitMDT(dimension, member *taxonomy.Concept) *MultipleDimensionType {
	return NewMultipleDimensionType(NewSingleDimensionType(dimension, member))
}

// Clone deep-copies the MDT.
func (m *MultipleDimensionType) Clone() *MultipleDimensionType {
	out := NewMultipleDimensionType(m.current.Clone())
	for _, sdt := range m.previous {
		out.AddPredecessor(sdt.Clone())
	}
	return out
}

// Current returns the current coordinate.
func (m *MultipleDimensionType) Current() *SingleDimensionType {
	return m.current
}

// Predecessors returns the previous coordinates.
func (m *MultipleDimensionType) Predecessors() []*SingleDimensionType {
	return m.previous
}

// AddPredecessor unions one coordinate into the previous set.
func (m *MultipleDimensionType) AddPredecessor(sdt *SingleDimensionType) {
	for _, p := range m.previous {
		if p.Equal(sdt) {
			return
		}
	}
	m.previous = append(m.previous, sdt)
}

// AddPredecessorMDT unions every coordinate of another MDT (current and
// previous) into this MDT's previous set. The current pair of this MDT is
// unchanged.
func (m *MultipleDimensionType) AddPredecessorMDT(other *MultipleDimensionType) {
	m.AddPredecessor(other.current)
	for _, p := range other.previous {
		m.AddPredecessor(p)
	}
}

// Shuffle pushes the current coordinate into the previous set and makes sdt
// the new current one.
func (m *MultipleDimensionType) Shuffle(sdt *SingleDimensionType) {
	m.AddPredecessor(m.current)
	m.current = sdt
}

// Activate promotes the coordinate of the given dimension from the previous
// set to current, pushing the old current pair into the previous set. It
// reports whether the dimension was found.
func (m *MultipleDimensionType) Activate(dimension *taxonomy.Concept) bool {
	for i, p := range m.previous {
		if p.Dimension.Equal(dimension) {
			old := m.current
			m.previous = append(m.previous[:i], m.previous[i+1:]...)
			m.current = p
			m.AddPredecessor(old)
			return true
		}
	}
	return false
}

// Override replaces the coordinate of sdt's dimension, wherever it sits,
// leaving its position (current vs. previous) unchanged. A dimension not
// present is ignored.
func (m *MultipleDimensionType) Override(sdt *SingleDimensionType) {
	if m.current.Dimension.Equal(sdt.Dimension) {
		m.current = sdt
		return
	}
	for i, p := range m.previous {
		if p.Dimension.Equal(sdt.Dimension) {
			m.previous[i] = sdt
			return
		}
	}
}

// ContainsDimension reports whether the dimension appears in the MDT.
func (m *MultipleDimensionType) ContainsDimension(dimension *taxonomy.Concept) bool {
	return m.SingleDimensionTypeFor(dimension) != nil
}

// SingleDimensionTypeFor returns the coordinate of the given dimension, or
// nil. The current pair shadows previous pairs of the same dimension.
func (m *MultipleDimensionType) SingleDimensionTypeFor(dimension *taxonomy.Concept) *SingleDimensionType {
	if m.current.Dimension.Equal(dimension) {
		return m.current
	}
	for _, p := range m.previous {
		if p.Dimension.Equal(dimension) {
			return p
		}
	}
	return nil
}

// DomainMember returns the domain member reported for the dimension, or nil.
func (m *MultipleDimensionType) DomainMember(dimension *taxonomy.Concept) *taxonomy.Concept {
	if sdt := m.SingleDimensionTypeFor(dimension); sdt != nil {
		return sdt.Member
	}
	return nil
}

// AllDimensions returns every dimension concept, current first.
func (m *MultipleDimensionType) AllDimensions() []*taxonomy.Concept {
	out := []*taxonomy.Concept{m.current.Dimension}
	for _, p := range m.previous {
		out = append(out, p.Dimension)
	}
	return out
}

// AllSingleDimensionTypes returns one coordinate per dimension, the current
// pair shadowing previous pairs of the same dimension.
func (m *MultipleDimensionType) AllSingleDimensionTypes() []*SingleDimensionType {
	out := []*SingleDimensionType{m.current}
	for _, p := range m.previous {
		shadowed := false
		for _, seen := range out {
			if seen.Dimension.Equal(p.Dimension) {
				shadowed = true
				break
			}
		}
		if !shadowed {
			out = append(out, p)
		}
	}
	return out
}

// AllDimensionDomains returns every (dimension, domain member) pair as a
// map, the current pair shadowing previous pairs of the same dimension.
// Typed coordinates map to a nil member.
func (m *MultipleDimensionType) AllDimensionDomains() map[*taxonomy.Concept]*taxonomy.Concept {
	out := make(map[*taxonomy.Concept]*taxonomy.Concept)
	for _, sdt := range m.AllSingleDimensionTypes() {
		out[sdt.Dimension] = sdt.Member
	}
	return out
}

// Equal reports whether both MDTs have equal current pairs and equal
// previous sets, ignoring previous-set order.
func (m *MultipleDimensionType) Equal(other *MultipleDimensionType) bool {
	if m == other {
		return true
	}
	if m == nil || other == nil {
		return false
	}
	if !m.current.Equal(other.current) {
		return false
	}
	if len(m.previous) != len(other.previous) {
		return false
	}
	for _, p := range m.previous {
		found := false
		for _, op := range other.previous {
			if p.Equal(op) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
