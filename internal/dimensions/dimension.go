// Package dimensions implements the XBRL Dimensions 1.0 structures the
// definition linkbase produces: dimensions, hypercubes and the
// dimension/domain-member coordinates of a fact.
package dimensions

import (
	"xbrlcore/internal/taxonomy"
	"xbrlcore/internal/xlink"
)

// Dimension is an axis declared with substitution group xbrldt:dimensionItem.
// Explicit dimensions carry the locators of their domain-member network;
// typed dimensions carry none.
type Dimension struct {
	Concept *taxonomy.Concept
	Typed   bool

	domainMembers []xlink.ExtendedLinkElement
}

// NewDimension creates a dimension stub for the given concept.
func NewDimension(concept *taxonomy.Concept) *Dimension {
	return &Dimension{Concept: concept}
}

// SetDomainMembers replaces the domain-member network.
func (d *Dimension) SetDomainMembers(members []xlink.ExtendedLinkElement) {
	d.domainMembers = members
}

// AddDomainMembers unions further members into the network, skipping
// locators whose concept is already present.
func (d *Dimension) AddDomainMembers(members []xlink.ExtendedLinkElement) {
	for _, m := range members {
		c := xlink.ConceptOf(m)
		if c != nil && d.memberLocator(c) != nil {
			continue
		}
		d.domainMembers = append(d.domainMembers, m)
	}
}

// DomainMembers returns the domain-member network in insertion order.
func (d *Dimension) DomainMembers() []xlink.ExtendedLinkElement {
	return d.domainMembers
}

func (d *Dimension) memberLocator(concept *taxonomy.Concept) *xlink.Locator {
	for _, m := range d.domainMembers {
		if loc, ok := m.(*xlink.Locator); ok && loc.Concept.Equal(concept) {
			return loc
		}
	}
	return nil
}

// ContainsDomainMember reports whether the concept appears in the
// domain-member network. With usableOnly set, members whose locator was
// switched unusable by an arc do not count.
func (d *Dimension) ContainsDomainMember(concept *taxonomy.Concept, usableOnly bool) bool {
	loc := d.memberLocator(concept)
	if loc == nil {
		return false
	}
	if usableOnly {
		return loc.Usable
	}
	return true
}

// Clone returns a copy sharing the member locators but not the slice.
func (d *Dimension) Clone() *Dimension {
	members := make([]xlink.ExtendedLinkElement, len(d.domainMembers))
	copy(members, d.domainMembers)
	return &Dimension{Concept: d.Concept, Typed: d.Typed, domainMembers: members}
}

// Equal compares concept, typed flag and the member concept sets.
func (d *Dimension) Equal(other *Dimension) bool {
	if d == other {
		return true
	}
	if d == nil || other == nil {
		return false
	}
	if !d.Concept.Equal(other.Concept) || d.Typed != other.Typed {
		return false
	}
	if len(d.domainMembers) != len(other.domainMembers) {
		return false
	}
	for _, m := range d.domainMembers {
		c := xlink.ConceptOf(m)
		if c != nil && other.memberLocator(c) == nil {
			return false
		}
	}
	return true
}
