package instance

import (
	"xbrlcore/internal/xbrlns"
)

// Unit is one xbrli:unit: a measure value qualified by a namespace URI.
type Unit struct {
	ID           string
	NamespaceURI string
	Value        string
}

// NewUnit creates a unit with the given id.
func NewUnit(id string) *Unit {
	return &Unit{ID: id}
}

// Equal compares all fields.
func (u *Unit) Equal(other *Unit) bool {
	if u == other {
		return true
	}
	if u == nil || other == nil {
		return false
	}
	return *u == *other
}

// UnitEUR returns the ISO 4217 euro unit.
func UnitEUR() *Unit {
	return &Unit{ID: "EUR", NamespaceURI: xbrlns.ISO4217, Value: "EUR"}
}

// UnitPure returns the xbrli pure unit.
func UnitPure() *Unit {
	return &Unit{ID: "PURE", NamespaceURI: xbrlns.XBRLI, Value: "pure"}
}
