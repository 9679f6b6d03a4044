package linkbase

import (
	"fmt"

	"xbrlcore/internal/dimensions"
	"xbrlcore/internal/errors"
	"xbrlcore/internal/taxonomy"
	"xbrlcore/internal/xbrlns"
	"xbrlcore/internal/xlink"
)

// ConceptIndex is the registry view the definition build needs.
type ConceptIndex interface {
	ConceptsBySubstitutionGroup(group string) []*taxonomy.Concept
}

// Definition is the definition linkbase together with the hypercubes and
// dimensions derived from its dimensional arcs.
type Definition struct {
	*Linkbase

	hypercubes        []*dimensions.Hypercube
	dimensionConcepts []*taxonomy.Concept
}

// NewDefinition creates an empty definition linkbase.
func NewDefinition() *Definition {
	return &Definition{Linkbase: New(KindDefinition)}
}

// Build derives the hypercube and dimension structures. It must run once,
// after all arcs have been added.
func (d *Definition) Build(idx ConceptIndex) error {
	for _, c := range idx.ConceptsBySubstitutionGroup(xbrlns.SubstDimensionItem) {
		d.addDimensionConcept(c)
	}
	for _, c := range idx.ConceptsBySubstitutionGroup(xbrlns.SubstHypercubeItem) {
		d.hypercubes = append(d.hypercubes, dimensions.NewHypercube(c))
	}

	for _, elr := range d.ExtendedLinkRoles() {
		for _, arc := range d.ArcBaseSet(xbrlns.ArcroleHypercubeDimension, elr) {
			cubeConcept := xlink.ConceptOf(arc.Source)
			if cubeConcept == nil || cubeConcept.SubstitutionGroup != xbrlns.SubstHypercubeItem {
				return errors.NewTaxonomyCreationError(fmt.Sprintf(
					"hypercube-dimension arc in %s: source %s is not a hypercubeItem", elr, describe(arc.Source)))
			}
			cube := d.Hypercube(cubeConcept)

			dimConcept := xlink.ConceptOf(arc.Target)
			if dimConcept == nil || dimConcept.SubstitutionGroup != xbrlns.SubstDimensionItem {
				return errors.NewTaxonomyCreationError(fmt.Sprintf(
					"hypercube-dimension arc in %s: target %s is not a dimensionItem", elr, describe(arc.Target)))
			}
			d.addDimensionConcept(dimConcept)

			dim := dimensions.NewDimension(dimConcept)
			if dimConcept.IsTypedDimension() {
				dim.Typed = true
			} else {
				// The domain-member network may live in another link role
				// when the arc carries xbrldt:targetRole.
				memberRole := elr
				if arc.TargetRole != "" {
					memberRole = arc.TargetRole
				}
				network := d.BuildTargetNetwork(dimConcept, "", memberRole)
				if len(network) == 0 {
					return errors.NewTaxonomyCreationError(fmt.Sprintf(
						"explicit dimension %s has no domain-member network in link role %s", dimConcept.ID, memberRole))
				}
				dim.SetDomainMembers(network)
			}
			cube.AddDimension(dim)
		}
	}
	return nil
}

func describe(e xlink.ExtendedLinkElement) string {
	if c := xlink.ConceptOf(e); c != nil {
		return c.ID
	}
	return e.Label()
}

func (d *Definition) addDimensionConcept(c *taxonomy.Concept) {
	for _, existing := range d.dimensionConcepts {
		if existing.Equal(c) {
			return
		}
	}
	d.dimensionConcepts = append(d.dimensionConcepts, c)
}

// Hypercube returns the hypercube built for the given concept, or nil.
func (d *Definition) Hypercube(concept *taxonomy.Concept) *dimensions.Hypercube {
	for _, h := range d.hypercubes {
		if h.Concept.Equal(concept) {
			return h
		}
	}
	return nil
}

// Hypercubes returns every hypercube of the DTS.
func (d *Definition) Hypercubes() []*dimensions.Hypercube {
	return d.hypercubes
}

// DimensionConcepts returns every dimension concept of the DTS.
func (d *Definition) DimensionConcepts() []*taxonomy.Concept {
	return d.dimensionConcepts
}

// DimensionAllowed reports whether a primary item may be reported for the
// dimensional coordinates of mdt in the given context element. Link roles
// are checked one by one: within a role, notAll hypercubes veto, and the
// union of all-hypercubes must cover the coordinates exactly.
func (d *Definition) DimensionAllowed(primary *taxonomy.Concept, mdt *dimensions.MultipleDimensionType, contextElement xlink.ContextElement) bool {
	hasHypercubeRoles := []string{xbrlns.ArcroleAll, xbrlns.ArcroleNotAll}

nextRole:
	for _, elr := range d.ExtendedLinkRoles() {
		type binding struct {
			cube    *dimensions.Hypercube
			arcrole string
		}
		var bindings []binding

		for _, arc := range d.ArcBaseSetMulti(hasHypercubeRoles, elr) {
			if arc.ContextElement != contextElement {
				continue
			}
			srcConcept := xlink.ConceptOf(arc.Source)
			if srcConcept == nil {
				continue
			}

			inDomain := srcConcept.Equal(primary)
			if !inDomain {
				for _, member := range d.BuildTargetNetwork(srcConcept, xbrlns.ArcroleDomainMember, elr) {
					if c := xlink.ConceptOf(member); c != nil && c.Equal(primary) {
						inDomain = true
						break
					}
				}
			}
			if !inDomain {
				continue
			}

			cubeConcept := xlink.ConceptOf(arc.Target)
			if cubeConcept == nil {
				continue
			}
			if cube := d.Hypercube(cubeConcept); cube != nil {
				bindings = append(bindings, binding{cube, arc.Arcrole})
			}
		}

		relevant := dimensions.NewHypercube(nil)
		sawAll := false
		for _, b := range bindings {
			switch b.arcrole {
			case xbrlns.ArcroleAll:
				relevant.AddHypercube(b.cube)
				sawAll = true
			case xbrlns.ArcroleNotAll:
				if b.cube.HasDimensionCombination(mdt) {
					continue nextRole
				}
			}
		}
		if !sawAll {
			continue
		}
		if relevant.HasDimensionCombination(mdt) {
			return true
		}
	}
	return false
}

// DimensionSchemaNames returns the schema file names that contribute domain
// concepts to the given dimension, discovered via dimension-domain arcs in
// any link role.
func (d *Definition) DimensionSchemaNames(dimension *taxonomy.Concept) []string {
	if dimension.SubstitutionGroup != xbrlns.SubstDimensionItem {
		return nil
	}
	var out []string
	seen := make(map[string]bool)
	for _, elr := range d.ExtendedLinkRoles() {
		for _, arc := range d.ArcBaseSet(xbrlns.ArcroleDimensionDomain, elr) {
			src := xlink.ConceptOf(arc.Source)
			tgt := xlink.ConceptOf(arc.Target)
			if src == nil || tgt == nil || !src.Equal(dimension) {
				continue
			}
			if !seen[tgt.SchemaName] {
				seen[tgt.SchemaName] = true
				out = append(out, tgt.SchemaName)
			}
		}
	}
	return out
}

// DimensionForDomain returns the explicit dimension a domain concept belongs
// to, found by scanning the hypercubes, or nil.
func (d *Definition) DimensionForDomain(domain *taxonomy.Concept) *taxonomy.Concept {
	if domain == nil {
		return nil
	}
	for _, cube := range d.hypercubes {
		for _, dim := range cube.Dimensions() {
			if !dim.Typed && cube.ContainsDimensionDomain(dim.Concept, domain) {
				return dim.Concept
			}
		}
	}
	return nil
}

// UsableDomainMember reports whether member is a usable domain member of
// dimension in a hypercube bound through an all arc in any link role.
func (d *Definition) UsableDomainMember(dimension, member *taxonomy.Concept) bool {
	for _, cube := range d.hypercubes {
		if !cube.ContainsUsableDimensionDomain(dimension, member) {
			continue
		}
		for _, elr := range d.ExtendedLinkRoles() {
			for _, arc := range d.ArcBaseSet(xbrlns.ArcroleAll, elr) {
				if c := xlink.ConceptOf(arc.Target); c != nil && c.Equal(cube.Concept) {
					return true
				}
			}
		}
	}
	return false
}
