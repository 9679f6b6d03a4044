package taxonomy

import (
	"testing"

	"xbrlcore/internal/xbrlns"
)

func TestConceptEqual(t *testing.T) {
	a := &Concept{ID: "A", Name: "Assets", SchemaName: "t.xsd"}
	b := &Concept{ID: "A", Name: "Assets", SchemaName: "t.xsd"}
	c := &Concept{ID: "A", Name: "Assets", SchemaName: "other.xsd"}

	if !a.Equal(b) {
		t.Error("expected concepts with same id/name/schema to be equal")
	}
	if a.Equal(c) {
		t.Error("expected concepts from different schemas to differ")
	}
	if a.Equal(nil) {
		t.Error("expected concept not to equal nil")
	}
}

func TestConceptIsNumericItem(t *testing.T) {
	tests := []struct {
		name    string
		typ     string
		numeric bool
	}{
		{"monetary", xbrlns.XBRLI + "#monetaryItemType", true},
		{"decimal", xbrlns.XBRLI + "#decimalItemType", true},
		{"shares", xbrlns.XBRLI + "#sharesItemType", true},
		{"pure", xbrlns.XBRLI + "#pureItemType", true},
		{"string", xbrlns.XBRLI + "#stringItemType", false},
		{"date", xbrlns.XBRLI + "#dateItemType", false},
		{"foreign namespace", "http://example.com/ns#monetaryItemType", false},
		{"unset", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Concept{Type: tt.typ}
			if got := c.IsNumericItem(); got != tt.numeric {
				t.Errorf("IsNumericItem() = %v for type %q, want %v", got, tt.typ, tt.numeric)
			}
		})
	}
}

func TestConceptDimensionKinds(t *testing.T) {
	typed := &Concept{SubstitutionGroup: xbrlns.SubstDimensionItem, TypedDomainRef: "#someType"}
	explicit := &Concept{SubstitutionGroup: xbrlns.SubstDimensionItem}
	item := &Concept{SubstitutionGroup: xbrlns.SubstItem}

	if !typed.IsTypedDimension() || typed.IsExplicitDimension() {
		t.Error("concept with typedDomainRef must be a typed dimension only")
	}
	if !explicit.IsExplicitDimension() || explicit.IsTypedDimension() {
		t.Error("concept without typedDomainRef must be an explicit dimension only")
	}
	if item.IsTypedDimension() || item.IsExplicitDimension() {
		t.Error("plain item must not be a dimension")
	}
}

func TestSchemaAddConcept(t *testing.T) {
	s := NewSchema("t.xsd")
	s.NamespacePrefix = "t"
	s.NamespaceURI = "http://example.com/t"

	c := &Concept{ID: "A", Name: "Assets"}
	if err := s.AddConcept(c); err != nil {
		t.Fatalf("AddConcept failed: %v", err)
	}
	if c.SchemaName != "t.xsd" || c.NamespaceURI != "http://example.com/t" {
		t.Error("AddConcept must stamp schema name and namespace onto the concept")
	}
	if s.ConceptByName("Assets") != c {
		t.Error("ConceptByName must return the registered concept")
	}

	dup := &Concept{ID: "B", Name: "Assets"}
	if err := s.AddConcept(dup); err == nil {
		t.Error("expected duplicate concept name to be rejected")
	}
}
