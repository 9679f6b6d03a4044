package dts

import (
	"os"
	"path/filepath"
	"testing"

	"xbrlcore/internal/taxonomy"
	"xbrlcore/internal/xbrlns"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("writing fixture %s: %v", name, err)
		}
	}
	return dir
}

const schemaHeader = `<?xml version="1.0" encoding="UTF-8"?>
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema"
    xmlns:xbrli="http://www.xbrl.org/2003/instance"
    xmlns:xbrldt="http://xbrl.org/2005/xbrldt"
    xmlns:link="http://www.xbrl.org/2003/linkbase"
    xmlns:xlink="http://www.w3.org/1999/xlink"
`

func TestBuildSingleSchemaConceptLookup(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"t.xsd": schemaHeader + `    xmlns:t="http://example.com/t"
    targetNamespace="http://example.com/t">
  <xsd:element id="A" name="Assets" substitutionGroup="xbrli:item"
      xbrli:periodType="instant" type="xbrli:monetaryItemType" nillable="true"/>
  <xsd:element id="Abs" name="AbstractHead" substitutionGroup="xbrli:item"
      abstract="true" type="xbrli:stringItemType"/>
</xsd:schema>`,
	})

	d, err := NewBuilder(nil).Build(filepath.Join(dir, "t.xsd"))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	c := d.ConceptByID("A")
	if c == nil {
		t.Fatal("ConceptByID(A) returned nil")
	}
	if c.Name != "Assets" {
		t.Errorf("concept name = %q, want Assets", c.Name)
	}
	if !c.IsNumericItem() {
		t.Error("monetary item must be numeric")
	}
	if c.PeriodType != taxonomy.PeriodInstant {
		t.Errorf("period type = %q, want instant", c.PeriodType)
	}
	if !c.Nillable {
		t.Error("expected nillable concept")
	}
	if c.SubstitutionGroup != xbrlns.SubstItem {
		t.Errorf("substitution group = %q, want %q", c.SubstitutionGroup, xbrlns.SubstItem)
	}

	// registry invariants
	schema := d.Schema("t.xsd")
	if schema == nil {
		t.Fatal("Schema(t.xsd) returned nil")
	}
	if schema.ConceptByName("Assets") != c {
		t.Error("ConceptByName must return the same concept as ConceptByID")
	}
	if schema.NamespacePrefix != "t" {
		t.Errorf("namespace prefix = %q, want t", schema.NamespacePrefix)
	}

	abstract := d.ConceptByID("Abs")
	if abstract == nil || !abstract.Abstract {
		t.Error("expected abstract concept")
	}
	if abstract.IsNumericItem() {
		t.Error("string item must not be numeric")
	}
}

func TestBuildFollowsImports(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"root.xsd": schemaHeader + `    targetNamespace="http://example.com/root">
  <xsd:import namespace="http://example.com/base" schemaLocation="base.xsd"/>
  <xsd:element id="R" name="Report" substitutionGroup="xbrli:item" type="xbrli:stringItemType"/>
</xsd:schema>`,
		"base.xsd": schemaHeader + `    targetNamespace="http://example.com/base">
  <xsd:import namespace="http://example.com/root" schemaLocation="root.xsd"/>
  <xsd:element id="B" name="Base" substitutionGroup="xbrli:item" type="xbrli:stringItemType"/>
</xsd:schema>`,
	})

	d, err := NewBuilder(nil).Build(filepath.Join(dir, "root.xsd"))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(d.Schemas()) != 2 {
		t.Fatalf("expected 2 schemas despite the import cycle, got %d", len(d.Schemas()))
	}
	if d.TopTaxonomy().Name != "root.xsd" {
		t.Errorf("top taxonomy = %s, want root.xsd", d.TopTaxonomy().Name)
	}
	if d.ConceptByID("B") == nil {
		t.Error("imported concept must be registered")
	}
	if got := d.Schema("root.xsd").Imports; len(got) != 1 || got[0] != "base.xsd" {
		t.Errorf("unexpected import list: %v", got)
	}
	if d.ConceptByNameNS("http://example.com/base", "Base") == nil {
		t.Error("lookup by namespace and name must find the imported concept")
	}
}

func TestBuildDuplicateConceptID(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"root.xsd": schemaHeader + `    targetNamespace="http://example.com/root">
  <xsd:import namespace="http://example.com/base" schemaLocation="base.xsd"/>
  <xsd:element id="X" name="First" substitutionGroup="xbrli:item" type="xbrli:stringItemType"/>
</xsd:schema>`,
		"base.xsd": schemaHeader + `    targetNamespace="http://example.com/base">
  <xsd:element id="X" name="Second" substitutionGroup="xbrli:item" type="xbrli:stringItemType"/>
</xsd:schema>`,
	})

	if _, err := NewBuilder(nil).Build(filepath.Join(dir, "root.xsd")); err == nil {
		t.Error("expected duplicate concept id across schemas to fail the build")
	}
}

func TestBuildLabelLinkbase(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"t.xsd": schemaHeader + `    xmlns:t="http://example.com/t"
    targetNamespace="http://example.com/t">
  <xsd:annotation>
    <xsd:appinfo>
      <link:linkbaseRef xlink:type="simple"
          xlink:role="http://www.xbrl.org/2003/role/labelLinkbaseRef"
          xlink:href="t-label.xml"/>
    </xsd:appinfo>
  </xsd:annotation>
  <xsd:element id="A" name="Assets" substitutionGroup="xbrli:item" type="xbrli:monetaryItemType"/>
</xsd:schema>`,
		"t-label.xml": `<?xml version="1.0" encoding="UTF-8"?>
<link:linkbase xmlns:link="http://www.xbrl.org/2003/linkbase"
    xmlns:xlink="http://www.w3.org/1999/xlink">
  <link:labelLink xlink:type="extended" xlink:role="http://www.xbrl.org/2003/role/link">
    <link:loc xlink:type="locator" xlink:href="t.xsd#A" xlink:label="loc_A"/>
    <link:label xlink:type="resource" xlink:label="res_A" id="lab_A"
        xlink:role="http://www.xbrl.org/2003/role/label" xml:lang="en">Total assets</link:label>
    <link:label xlink:type="resource" xlink:label="res_A" id="lab_A_de"
        xlink:role="http://www.xbrl.org/2003/role/label" xml:lang="de">Summe Aktiva</link:label>
    <link:labelArc xlink:type="arc"
        xlink:arcrole="http://www.xbrl.org/2003/arcrole/concept-label"
        xlink:from="loc_A" xlink:to="res_A"/>
  </link:labelLink>
</link:linkbase>`,
	})

	d, err := NewBuilder(nil).Build(filepath.Join(dir, "t.xsd"))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	assets := d.ConceptByID("A")
	if got := d.LabelLinkbase().LabelFor(assets, "", "en"); got != "Total assets" {
		t.Errorf("english label = %q, want %q", got, "Total assets")
	}
	if got := d.LabelLinkbase().LabelFor(assets, "", "de"); got != "Summe Aktiva" {
		t.Errorf("german label = %q, want %q", got, "Summe Aktiva")
	}
	if got := d.LabelLinkbase().LabelFor(assets, "", ""); got != "Total assets" {
		t.Errorf("any-language label = %q, want first resource", got)
	}
}

func TestBuildUnresolvedLocator(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"t.xsd": schemaHeader + `    targetNamespace="http://example.com/t">
  <xsd:annotation>
    <xsd:appinfo>
      <link:linkbaseRef xlink:type="simple"
          xlink:role="http://www.xbrl.org/2003/role/presentationLinkbaseRef"
          xlink:href="t-pre.xml"/>
    </xsd:appinfo>
  </xsd:annotation>
  <xsd:element id="A" name="Assets" substitutionGroup="xbrli:item" type="xbrli:monetaryItemType"/>
</xsd:schema>`,
		"t-pre.xml": `<?xml version="1.0" encoding="UTF-8"?>
<link:linkbase xmlns:link="http://www.xbrl.org/2003/linkbase"
    xmlns:xlink="http://www.w3.org/1999/xlink">
  <link:presentationLink xlink:type="extended" xlink:role="http://www.xbrl.org/2003/role/link">
    <link:loc xlink:type="locator" xlink:href="t.xsd#NoSuchConcept" xlink:label="loc_missing"/>
  </link:presentationLink>
</link:linkbase>`,
	})

	if _, err := NewBuilder(nil).Build(filepath.Join(dir, "t.xsd")); err == nil {
		t.Error("expected an unresolved locator target to fail the build")
	}
}

func TestBuildPresentationFromFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"t.xsd": schemaHeader + `    xmlns:t="http://example.com/t"
    targetNamespace="http://example.com/t">
  <xsd:annotation>
    <xsd:appinfo>
      <link:linkbaseRef xlink:type="simple"
          xlink:role="http://www.xbrl.org/2003/role/presentationLinkbaseRef"
          xlink:href="t-pre.xml"/>
    </xsd:appinfo>
  </xsd:annotation>
  <xsd:element id="A" name="Assets" substitutionGroup="xbrli:item" type="xbrli:monetaryItemType"/>
  <xsd:element id="C" name="Current" substitutionGroup="xbrli:item" type="xbrli:monetaryItemType"/>
  <xsd:element id="N" name="NonCurrent" substitutionGroup="xbrli:item" type="xbrli:monetaryItemType"/>
</xsd:schema>`,
		"t-pre.xml": `<?xml version="1.0" encoding="UTF-8"?>
<link:linkbase xmlns:link="http://www.xbrl.org/2003/linkbase"
    xmlns:xlink="http://www.w3.org/1999/xlink">
  <link:presentationLink xlink:type="extended" xlink:role="http://www.xbrl.org/2003/role/link">
    <link:loc xlink:type="locator" xlink:href="t.xsd#A" xlink:label="loc_A"/>
    <link:loc xlink:type="locator" xlink:href="t.xsd#C" xlink:label="loc_C"/>
    <link:loc xlink:type="locator" xlink:href="t.xsd#N" xlink:label="loc_N"/>
    <link:presentationArc xlink:type="arc"
        xlink:arcrole="http://www.xbrl.org/2003/arcrole/parent-child"
        xlink:from="loc_A" xlink:to="loc_N" order="2"/>
    <link:presentationArc xlink:type="arc"
        xlink:arcrole="http://www.xbrl.org/2003/arcrole/parent-child"
        xlink:from="loc_A" xlink:to="loc_C" order="1"/>
  </link:presentationLink>
</link:linkbase>`,
	})

	d, err := NewBuilder(nil).Build(filepath.Join(dir, "t.xsd"))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	ordered := d.PresentationLinkbase().ElementsForTaxonomy("", "")
	var names []string
	for _, e := range ordered {
		names = append(names, e.Concept.Name)
	}
	want := []string{"Assets", "Current", "NonCurrent"}
	if len(names) != len(want) {
		t.Fatalf("traversal = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("traversal = %v, want %v (arc order must win over document order)", names, want)
		}
	}
}
