// Package dts builds and holds a discoverable taxonomy set: the closed set
// of taxonomy schemas reachable by import from a root schema, plus the four
// linkbases layered over them.
package dts

import (
	"fmt"

	"xbrlcore/internal/errors"
	"xbrlcore/internal/linkbase"
	"xbrlcore/internal/taxonomy"
)

// DTS is a discoverable taxonomy set. It owns its schemas and concepts and
// is immutable once built.
type DTS struct {
	top     *taxonomy.Schema
	schemas []*taxonomy.Schema

	schemaByName map[string]*taxonomy.Schema
	conceptByID  map[string]*taxonomy.Concept

	presentation *linkbase.Presentation
	label        *linkbase.Label
	definition   *linkbase.Definition
	calculation  *linkbase.Calculation
}

func newDTS() *DTS {
	return &DTS{
		schemaByName: make(map[string]*taxonomy.Schema),
		conceptByID:  make(map[string]*taxonomy.Concept),
	}
}

// addSchema registers a schema and its concepts. Concept ids must be unique
// across the whole DTS.
func (d *DTS) addSchema(s *taxonomy.Schema) error {
	if _, ok := d.schemaByName[s.Name]; ok {
		return errors.NewTaxonomyCreationError(fmt.Sprintf("schema %s registered twice", s.Name))
	}
	for _, c := range s.Concepts() {
		if dup, ok := d.conceptByID[c.ID]; ok {
			return errors.NewTaxonomyCreationError(fmt.Sprintf(
				"duplicate concept id %q in schemas %s and %s", c.ID, dup.SchemaName, s.Name))
		}
	}
	d.schemas = append(d.schemas, s)
	d.schemaByName[s.Name] = s
	for _, c := range s.Concepts() {
		d.conceptByID[c.ID] = c
	}
	return nil
}

// TopTaxonomy returns the root schema the DTS was discovered from.
func (d *DTS) TopTaxonomy() *taxonomy.Schema {
	return d.top
}

// Schemas returns every schema of the set in discovery order.
func (d *DTS) Schemas() []*taxonomy.Schema {
	return d.schemas
}

// Schema returns the schema with the given file name, or nil.
func (d *DTS) Schema(name string) *taxonomy.Schema {
	return d.schemaByName[name]
}

// ConceptByID looks a concept up by its document-wide unique id.
func (d *DTS) ConceptByID(id string) *taxonomy.Concept {
	return d.conceptByID[id]
}

// ConceptByName returns the first concept with the given element name across
// the set's schemas, in discovery order.
func (d *DTS) ConceptByName(name string) *taxonomy.Concept {
	for _, s := range d.schemas {
		if c := s.ConceptByName(name); c != nil {
			return c
		}
	}
	return nil
}

// ConceptByNameNS returns the concept with the given element name declared
// by the schema targeting the given namespace URI, or nil.
func (d *DTS) ConceptByNameNS(namespaceURI, name string) *taxonomy.Concept {
	for _, s := range d.schemas {
		if s.NamespaceURI == namespaceURI {
			if c := s.ConceptByName(name); c != nil {
				return c
			}
		}
	}
	return nil
}

// SchemaForURI returns the schema whose target namespace is the given URI,
// or nil.
func (d *DTS) SchemaForURI(namespaceURI string) *taxonomy.Schema {
	for _, s := range d.schemas {
		if s.NamespaceURI == namespaceURI {
			return s
		}
	}
	return nil
}

// ConceptsBySubstitutionGroup returns every concept declared with the given
// substitution group (expanded "uri#local" form), in discovery order.
func (d *DTS) ConceptsBySubstitutionGroup(group string) []*taxonomy.Concept {
	var out []*taxonomy.Concept
	for _, s := range d.schemas {
		for _, c := range s.Concepts() {
			if c.SubstitutionGroup == group {
				out = append(out, c)
			}
		}
	}
	return out
}

// NumConcepts returns the number of concepts across all schemas.
func (d *DTS) NumConcepts() int {
	return len(d.conceptByID)
}

// PresentationLinkbase returns the presentation linkbase.
func (d *DTS) PresentationLinkbase() *linkbase.Presentation {
	return d.presentation
}

// LabelLinkbase returns the label linkbase.
func (d *DTS) LabelLinkbase() *linkbase.Label {
	return d.label
}

// DefinitionLinkbase returns the definition linkbase.
func (d *DTS) DefinitionLinkbase() *linkbase.Definition {
	return d.definition
}

// CalculationLinkbase returns the calculation linkbase.
func (d *DTS) CalculationLinkbase() *linkbase.Calculation {
	return d.calculation
}
