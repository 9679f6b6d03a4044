// Package linkbase implements the extended-link/arc store shared by the four
// XBRL linkbase kinds and the derived structures built on top of it
// (presentation trees, hypercubes, calculation networks, labels).
package linkbase

import (
	"fmt"
	"sort"

	"xbrlcore/internal/taxonomy"
	"xbrlcore/internal/xlink"
)

// Kind names a linkbase flavor.
type Kind string

const (
	// KindPresentation is the presentation linkbase
	KindPresentation Kind = "presentation"
	// KindLabel is the label linkbase
	KindLabel Kind = "label"
	// KindDefinition is the definition linkbase
	KindDefinition Kind = "definition"
	// KindCalculation is the calculation linkbase
	KindCalculation Kind = "calculation"
)

// Linkbase is the generic arc/element store indexed by extended link role.
// It is populated during DTS construction and frozen afterward.
type Linkbase struct {
	kind Kind

	arcs     []*xlink.Arc
	elements []xlink.ExtendedLinkElement

	resourcesByID map[string]*xlink.Resource
	frozen        bool
}

// New creates an empty store for the given linkbase kind.
func New(kind Kind) *Linkbase {
	return &Linkbase{
		kind:          kind,
		resourcesByID: make(map[string]*xlink.Resource),
	}
}

// Kind returns the linkbase flavor.
func (lb *Linkbase) Kind() Kind {
	return lb.kind
}

// AddExtendedLinkElement appends a locator or resource in document order.
func (lb *Linkbase) AddExtendedLinkElement(e xlink.ExtendedLinkElement) error {
	if lb.frozen {
		return fmt.Errorf("%s linkbase is frozen", lb.kind)
	}
	lb.elements = append(lb.elements, e)
	if res, ok := e.(*xlink.Resource); ok && res.IDAttr != "" {
		lb.resourcesByID[res.IDAttr] = res
	}
	return nil
}

// AddArc appends an arc in document order.
func (lb *Linkbase) AddArc(a *xlink.Arc) error {
	if lb.frozen {
		return fmt.Errorf("%s linkbase is frozen", lb.kind)
	}
	lb.arcs = append(lb.arcs, a)
	return nil
}

// Freeze makes the store immutable.
func (lb *Linkbase) Freeze() {
	lb.frozen = true
}

// Resource returns the resource registered under the given id, or nil.
func (lb *Linkbase) Resource(id string) *xlink.Resource {
	return lb.resourcesByID[id]
}

// ExtendedLinkRoles returns every extended link role that appears on at
// least one arc, in insertion order.
func (lb *Linkbase) ExtendedLinkRoles() []string {
	var roles []string
	seen := make(map[string]bool)
	for _, a := range lb.arcs {
		if !seen[a.XbrlExtendedLinkRole] {
			seen[a.XbrlExtendedLinkRole] = true
			roles = append(roles, a.XbrlExtendedLinkRole)
		}
	}
	return roles
}

// ExtendedLinkElements resolves an arc endpoint: every element carrying the
// given xlink label within the extended link role and linkbase file.
// One-to-many endpoints are permitted.
func (lb *Linkbase) ExtendedLinkElements(label, extendedLinkRole, sourceFile string) []xlink.ExtendedLinkElement {
	var out []xlink.ExtendedLinkElement
	for _, e := range lb.elements {
		if e.Label() == label && e.ExtendedLinkRole() == extendedLinkRole && e.SourceFile() == sourceFile {
			out = append(out, e)
		}
	}
	return out
}

// ElementsInRole returns the locators and resources of one extended link
// role in document order.
func (lb *Linkbase) ElementsInRole(extendedLinkRole string) []xlink.ExtendedLinkElement {
	var out []xlink.ExtendedLinkElement
	for _, e := range lb.elements {
		if e.ExtendedLinkRole() == extendedLinkRole {
			out = append(out, e)
		}
	}
	return out
}

// ArcBaseSet returns the arcs of one (arc role, extended link role) base
// set, with equivalent arcs collapsed by (priority, use). Order is document
// order of the surviving arcs.
func (lb *Linkbase) ArcBaseSet(arcRole, extendedLinkRole string) []*xlink.Arc {
	return lb.ArcBaseSetMulti([]string{arcRole}, extendedLinkRole)
}

// ArcBaseSetMulti is ArcBaseSet over the union of several arc roles.
func (lb *Linkbase) ArcBaseSetMulti(arcRoles []string, extendedLinkRole string) []*xlink.Arc {
	wanted := make(map[string]bool, len(arcRoles))
	for _, r := range arcRoles {
		wanted[r] = true
	}
	var filtered []*xlink.Arc
	for _, a := range lb.arcs {
		if a.XbrlExtendedLinkRole == extendedLinkRole && wanted[a.Arcrole] {
			filtered = append(filtered, a)
		}
	}
	return collapse(filtered)
}

// arcsInRole returns the collapsed arcs of one extended link role across all
// arc roles.
func (lb *Linkbase) arcsInRole(extendedLinkRole string) []*xlink.Arc {
	var filtered []*xlink.Arc
	for _, a := range lb.arcs {
		if a.XbrlExtendedLinkRole == extendedLinkRole {
			filtered = append(filtered, a)
		}
	}
	return collapse(filtered)
}

// collapse resolves equivalent arcs by (priority, use): the highest priority
// wins, and a prohibiting arc at the winning priority suppresses the whole
// group.
func collapse(arcs []*xlink.Arc) []*xlink.Arc {
	type group struct {
		winner   *xlink.Arc
		priority int
		dead     bool
	}
	groups := make(map[string]*group)
	var order []string

	for _, a := range arcs {
		key := a.EquivalenceKey()
		g, ok := groups[key]
		if !ok {
			groups[key] = &group{winner: a, priority: a.Priority, dead: a.Prohibited()}
			order = append(order, key)
			continue
		}
		switch {
		case a.Priority > g.priority:
			g.winner = a
			g.priority = a.Priority
			g.dead = a.Prohibited()
		case a.Priority == g.priority && a.Prohibited():
			g.dead = true
		}
	}

	var out []*xlink.Arc
	for _, key := range order {
		if g := groups[key]; !g.dead {
			out = append(out, g.winner)
		}
	}
	return out
}

// SourceExtendedLinkElements returns the elements that are sources of arcs
// whose target locator points at the given concept, within one extended
// link role.
func (lb *Linkbase) SourceExtendedLinkElements(concept *taxonomy.Concept, extendedLinkRole string) []xlink.ExtendedLinkElement {
	var out []xlink.ExtendedLinkElement
	for _, a := range lb.arcsInRole(extendedLinkRole) {
		if c := xlink.ConceptOf(a.Target); c != nil && c.Equal(concept) {
			out = append(out, a.Source)
		}
	}
	return out
}

// TargetExtendedLinkElements returns the elements targeted by arcs sourced
// at the given concept, within one extended link role, ordered by arc order
// (document order breaking ties).
func (lb *Linkbase) TargetExtendedLinkElements(concept *taxonomy.Concept, extendedLinkRole string) []xlink.ExtendedLinkElement {
	var matching []*xlink.Arc
	for _, a := range lb.arcsInRole(extendedLinkRole) {
		if c := xlink.ConceptOf(a.Source); c != nil && c.Equal(concept) {
			matching = append(matching, a)
		}
	}
	sort.SliceStable(matching, func(i, j int) bool {
		return matching[i].Order < matching[j].Order
	})
	out := make([]xlink.ExtendedLinkElement, 0, len(matching))
	for _, a := range matching {
		out = append(out, a.Target)
	}
	return out
}

// BuildTargetNetwork computes the transitive closure of elements reachable
// from the given concept inside one extended link role. arcRole filters the
// traversed arcs; the empty string traverses every arc role. Arcs carrying
// xbrldt:targetRole continue the walk in that role. Cyclic linkbases are
// tolerated.
func (lb *Linkbase) BuildTargetNetwork(concept *taxonomy.Concept, arcRole, extendedLinkRole string) []xlink.ExtendedLinkElement {
	type frontier struct {
		concept *taxonomy.Concept
		role    string
	}

	var out []xlink.ExtendedLinkElement
	seenElement := make(map[xlink.ExtendedLinkElement]bool)
	visited := make(map[string]bool)

	queue := []frontier{{concept, extendedLinkRole}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		visitKey := cur.concept.SchemaName + "\x00" + cur.concept.ID + "\x00" + cur.role
		if visited[visitKey] {
			continue
		}
		visited[visitKey] = true

		for _, a := range lb.arcsInRole(cur.role) {
			if arcRole != "" && a.Arcrole != arcRole {
				continue
			}
			src := xlink.ConceptOf(a.Source)
			if src == nil || !src.Equal(cur.concept) {
				continue
			}
			if !seenElement[a.Target] {
				seenElement[a.Target] = true
				out = append(out, a.Target)
			}
			if next := xlink.ConceptOf(a.Target); next != nil {
				nextRole := cur.role
				if a.TargetRole != "" {
					nextRole = a.TargetRole
				}
				queue = append(queue, frontier{next, nextRole})
			}
		}
	}
	return out
}
