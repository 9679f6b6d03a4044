// Package instance models XBRL instance documents: facts bound to contexts
// and units, the loader that binds them to a DTS, and the validators that
// check them.
package instance

import (
	"xbrlcore/internal/dimensions"
	"xbrlcore/internal/xlink"
)

// Period is the reporting period of a context: either a start/end pair, an
// instant, or forever.
type Period struct {
	StartDate string
	EndDate   string
	Instant   string
	Forever   bool
}

// IsSet reports whether any period information is present.
func (p Period) IsSet() bool {
	return p.Forever || p.Instant != "" || (p.StartDate != "" && p.EndDate != "")
}

// Context is one xbrli:context: entity identifier, period and up to two
// dimensional coordinates (scenario and segment).
type Context struct {
	ID               string
	IdentifierScheme string
	Identifier       string
	Period           Period

	scenario *dimensions.MultipleDimensionType
	segment  *dimensions.MultipleDimensionType
}

// NewContext creates a context with the given id.
func NewContext(id string) *Context {
	return &Context{ID: id}
}

// SetDimensionalInformation stores the coordinates of one slot.
func (c *Context) SetDimensionalInformation(mdt *dimensions.MultipleDimensionType, slot xlink.ContextElement) {
	switch slot {
	case xlink.ContextScenario:
		c.scenario = mdt
	case xlink.ContextSegment:
		c.segment = mdt
	}
}

// DimensionalInformation returns the coordinates of one slot, or nil.
func (c *Context) DimensionalInformation(slot xlink.ContextElement) *dimensions.MultipleDimensionType {
	switch slot {
	case xlink.ContextScenario:
		return c.scenario
	case xlink.ContextSegment:
		return c.segment
	}
	return nil
}

// Equal compares id, identifier, period and both dimensional slots.
func (c *Context) Equal(other *Context) bool {
	if c == other {
		return true
	}
	if c == nil || other == nil {
		return false
	}
	if c.ID != other.ID || c.IdentifierScheme != other.IdentifierScheme ||
		c.Identifier != other.Identifier || c.Period != other.Period {
		return false
	}
	return mdtEqual(c.scenario, other.scenario) && mdtEqual(c.segment, other.segment)
}

func mdtEqual(a, b *dimensions.MultipleDimensionType) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(b)
}
