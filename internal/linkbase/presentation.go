package linkbase

import (
	"fmt"

	"xbrlcore/internal/errors"
	"xbrlcore/internal/taxonomy"
	"xbrlcore/internal/xbrlns"
	"xbrlcore/internal/xlink"
)

// PresentationElement is one node of the hierarchical presentation tree of
// an extended link role.
type PresentationElement struct {
	Locator          *xlink.Locator
	Concept          *taxonomy.Concept
	ExtendedLinkRole string

	// Successors are the direct child concepts ordered by arc order.
	Successors []*taxonomy.Concept
	// Parent is the single parent concept within the link role; nil for
	// roots.
	Parent *taxonomy.Concept
	// Level is 1 for roots and 1 + parent level otherwise.
	Level int
	// NumSuccessorAtDeepestLevel counts the leaves beneath this node.
	NumSuccessorAtDeepestLevel int
	// PositionDeepestLevel is the left-to-right index assigned during
	// depth-first traversal to leaves and non-abstract nodes; -1 otherwise.
	PositionDeepestLevel int
}

// NumDirectSuccessors returns the number of direct children.
func (p *PresentationElement) NumDirectSuccessors() int {
	return len(p.Successors)
}

// Presentation is the presentation linkbase together with the tree metadata
// derived from its parent-child arcs.
type Presentation struct {
	*Linkbase

	// StrictParents rejects concepts with more than one parent in a link
	// role instead of silently keeping the first.
	StrictParents bool

	byRole map[string][]*PresentationElement
}

// NewPresentation creates an empty presentation linkbase.
func NewPresentation() *Presentation {
	return &Presentation{
		Linkbase: New(KindPresentation),
		byRole:   make(map[string][]*PresentationElement),
	}
}

// Build derives the per-role presentation trees. It must run once, after all
// arcs have been added.
func (p *Presentation) Build() error {
	for _, elr := range p.ExtendedLinkRoles() {
		var list []*PresentationElement

		for _, e := range p.ElementsInRole(elr) {
			loc, ok := e.(*xlink.Locator)
			if !ok || loc.Concept == nil {
				continue
			}
			elem := &PresentationElement{
				Locator:              loc,
				Concept:              loc.Concept,
				ExtendedLinkRole:     elr,
				PositionDeepestLevel: -1,
			}

			for _, succ := range p.TargetExtendedLinkElements(loc.Concept, elr) {
				if c := xlink.ConceptOf(succ); c != nil {
					elem.Successors = append(elem.Successors, c)
				}
			}

			parents := p.SourceExtendedLinkElements(loc.Concept, elr)
			if len(parents) > 1 && p.StrictParents {
				return errors.NewTaxonomyCreationError(fmt.Sprintf(
					"concept %s has %d parents in presentation link role %s",
					loc.Concept.ID, len(parents), elr))
			}
			if len(parents) > 0 {
				elem.Parent = xlink.ConceptOf(parents[0])
			}

			elem.Level = p.levelOf(loc.Concept, elr)
			if len(elem.Successors) > 0 {
				elem.NumSuccessorAtDeepestLevel = p.countLeaves(loc.Concept, elr, make(map[string]bool))
			}

			list = append(list, elem)
		}
		p.byRole[elr] = list

		// Assign deepest-level positions in depth-first document order.
		pos := 0
		for _, root := range p.Roots(elr) {
			pos = p.assignPositions(root, elr, pos, make(map[*PresentationElement]bool))
		}
	}
	return nil
}

func (p *Presentation) assignPositions(elem *PresentationElement, elr string, pos int, onPath map[*PresentationElement]bool) int {
	if onPath[elem] {
		return pos
	}
	onPath[elem] = true
	defer delete(onPath, elem)

	if elem.NumDirectSuccessors() == 0 || !elem.Concept.Abstract {
		elem.PositionDeepestLevel = pos
		pos++
	}
	for _, succ := range elem.Successors {
		if next := p.ElementFor(succ, elr); next != nil {
			pos = p.assignPositions(next, elr, pos, onPath)
		}
	}
	return pos
}

// levelOf walks the single-parent chain up to a root. Roots have level 1.
func (p *Presentation) levelOf(concept *taxonomy.Concept, elr string) int {
	level := 0
	seen := make(map[string]bool)
	for cur := concept; cur != nil; {
		key := cur.SchemaName + "\x00" + cur.ID
		if seen[key] {
			break
		}
		seen[key] = true
		level++
		parents := p.SourceExtendedLinkElements(cur, elr)
		if len(parents) == 0 {
			break
		}
		cur = xlink.ConceptOf(parents[0])
	}
	return level
}

// countLeaves counts the concepts without successors beneath a node.
func (p *Presentation) countLeaves(concept *taxonomy.Concept, elr string, seen map[string]bool) int {
	key := concept.SchemaName + "\x00" + concept.ID
	if seen[key] {
		return 0
	}
	seen[key] = true

	succ := p.TargetExtendedLinkElements(concept, elr)
	if len(succ) == 0 {
		return 1
	}
	n := 0
	for _, s := range succ {
		if c := xlink.ConceptOf(s); c != nil {
			n += p.countLeaves(c, elr, seen)
		}
	}
	return n
}

// ElementFor returns the presentation element of a concept within one
// extended link role, or nil. An empty role means the default link role.
func (p *Presentation) ElementFor(concept *taxonomy.Concept, extendedLinkRole string) *PresentationElement {
	if extendedLinkRole == "" {
		extendedLinkRole = xbrlns.DefaultLinkRole
	}
	for _, e := range p.byRole[extendedLinkRole] {
		if e.Concept.ID == concept.ID {
			return e
		}
	}
	return nil
}

// Roots returns the elements without parent in one extended link role.
func (p *Presentation) Roots(extendedLinkRole string) []*PresentationElement {
	if extendedLinkRole == "" {
		extendedLinkRole = xbrlns.DefaultLinkRole
	}
	var out []*PresentationElement
	for _, e := range p.byRole[extendedLinkRole] {
		if e.Parent == nil {
			out = append(out, e)
		}
	}
	return out
}

// ElementsForTaxonomy returns the presentation elements of an extended link
// role in depth-first, order-respecting traversal from the roots, optionally
// filtered to concepts of one taxonomy schema. Empty taxonomyName means the
// whole DTS; empty role means the default link role.
func (p *Presentation) ElementsForTaxonomy(taxonomyName, extendedLinkRole string) []*PresentationElement {
	if extendedLinkRole == "" {
		extendedLinkRole = xbrlns.DefaultLinkRole
	}
	var ordered []*PresentationElement
	for _, root := range p.Roots(extendedLinkRole) {
		ordered = p.collect(root, extendedLinkRole, ordered, make(map[*PresentationElement]bool))
	}

	if taxonomyName == "" {
		return ordered
	}
	var filtered []*PresentationElement
	for _, e := range ordered {
		if e.Concept.SchemaName == taxonomyName {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// SubtreeFor returns the presentation tree below a concept (inclusive) in
// depth-first order, or nil when the concept is not in the link role.
func (p *Presentation) SubtreeFor(concept *taxonomy.Concept, extendedLinkRole string) []*PresentationElement {
	if extendedLinkRole == "" {
		extendedLinkRole = xbrlns.DefaultLinkRole
	}
	root := p.ElementFor(concept, extendedLinkRole)
	if root == nil {
		return nil
	}
	return p.collect(root, extendedLinkRole, nil, make(map[*PresentationElement]bool))
}

func (p *Presentation) collect(elem *PresentationElement, elr string, list []*PresentationElement, onPath map[*PresentationElement]bool) []*PresentationElement {
	if onPath[elem] {
		return list
	}
	onPath[elem] = true
	defer delete(onPath, elem)

	list = append(list, elem)
	for _, succ := range elem.Successors {
		if next := p.ElementFor(succ, elr); next != nil {
			list = p.collect(next, elr, list, onPath)
		}
	}
	return list
}
