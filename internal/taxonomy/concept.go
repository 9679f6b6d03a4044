// Package taxonomy models XBRL taxonomy schemas and the concepts they
// declare.
package taxonomy

import (
	"strings"

	"xbrlcore/internal/xbrlns"
)

// PeriodType is the xbrli:periodType of a concept.
type PeriodType string

const (
	// PeriodInstant marks concepts reported for a point in time
	PeriodInstant PeriodType = "instant"
	// PeriodDuration marks concepts reported for a period
	PeriodDuration PeriodType = "duration"
	// PeriodUnset marks concepts without a periodType attribute
	PeriodUnset PeriodType = ""
)

// Concept is the declaration of a single schema element. Type and
// SubstitutionGroup are stored in expanded "uri#local" form.
type Concept struct {
	Name              string
	ID                string
	Type              string
	SubstitutionGroup string
	PeriodType        PeriodType
	Abstract          bool
	Nillable          bool
	TypedDomainRef    string
	SchemaName        string
	NamespacePrefix   string
	NamespaceURI      string
}

// Equal reports structural equality: same name, same id, same owning schema.
func (c *Concept) Equal(other *Concept) bool {
	if c == other {
		return true
	}
	if c == nil || other == nil {
		return false
	}
	return c.Name == other.Name && c.ID == other.ID && c.SchemaName == other.SchemaName
}

// IsTypedDimension reports whether the concept declares a typed dimension.
func (c *Concept) IsTypedDimension() bool {
	return c.SubstitutionGroup == xbrlns.SubstDimensionItem && c.TypedDomainRef != ""
}

// IsExplicitDimension reports whether the concept declares an explicit
// dimension.
func (c *Concept) IsExplicitDimension() bool {
	return c.SubstitutionGroup == xbrlns.SubstDimensionItem && c.TypedDomainRef == ""
}

// numericItemTypes lists the xbrli item types whose lexical space is numeric.
var numericItemTypes = map[string]bool{
	"monetaryItemType":           true,
	"sharesItemType":             true,
	"pureItemType":               true,
	"decimalItemType":            true,
	"floatItemType":              true,
	"doubleItemType":             true,
	"integerItemType":            true,
	"nonPositiveIntegerItemType": true,
	"negativeIntegerItemType":    true,
	"longItemType":               true,
	"intItemType":                true,
	"shortItemType":              true,
	"byteItemType":               true,
	"nonNegativeIntegerItemType": true,
	"unsignedLongItemType":       true,
	"unsignedIntItemType":        true,
	"unsignedShortItemType":      true,
	"unsignedByteItemType":       true,
	"positiveIntegerItemType":    true,
	"fractionItemType":           true,
	"percentItemType":            true,
	"perShareItemType":           true,
}

// IsNumericItem reports whether facts of this concept carry numeric values.
// It is derived from the declared item type rather than assumed.
func (c *Concept) IsNumericItem() bool {
	uri, local, ok := strings.Cut(c.Type, "#")
	if !ok {
		return false
	}
	return uri == xbrlns.XBRLI && numericItemTypes[local]
}

// String returns the concept id.
func (c *Concept) String() string {
	return c.ID
}
