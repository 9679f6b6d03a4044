package instance

import (
	"xbrlcore/internal/taxonomy"
)

// Fact is one reported value: a concept, its lexical value, the context it
// is reported in, and an optional unit and precision information.
type Fact struct {
	Concept *taxonomy.Concept
	Value   string
	Context *Context
	Unit    *Unit

	Decimals  string
	Precision string
}

// NewFact creates a fact for the given concept.
func NewFact(concept *taxonomy.Concept) *Fact {
	return &Fact{Concept: concept}
}

// IsNumeric reports whether the fact's concept declares a numeric item type.
func (f *Fact) IsNumeric() bool {
	return f.Concept != nil && f.Concept.IsNumericItem()
}
