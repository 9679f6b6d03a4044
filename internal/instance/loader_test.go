package instance

import (
	"os"
	"path/filepath"
	"testing"

	"xbrlcore/internal/xlink"
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

// balanceSheetFixture is a taxonomy with a calculation network
// Assets = Current + NonCurrent, a region dimension, and a label linkbase.
func balanceSheetFixture() map[string]string {
	return map[string]string{
		"t.xsd": `<?xml version="1.0" encoding="UTF-8"?>
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema"
    xmlns:xbrli="http://www.xbrl.org/2003/instance"
    xmlns:xbrldt="http://xbrl.org/2005/xbrldt"
    xmlns:link="http://www.xbrl.org/2003/linkbase"
    xmlns:xlink="http://www.w3.org/1999/xlink"
    xmlns:t="http://example.com/t"
    targetNamespace="http://example.com/t">
  <xsd:annotation>
    <xsd:appinfo>
      <link:linkbaseRef xlink:type="simple"
          xlink:role="http://www.xbrl.org/2003/role/calculationLinkbaseRef"
          xlink:href="t-calc.xml"/>
    </xsd:appinfo>
  </xsd:annotation>
  <xsd:element id="A" name="Assets" substitutionGroup="xbrli:item"
      xbrli:periodType="instant" type="xbrli:monetaryItemType"/>
  <xsd:element id="C" name="Current" substitutionGroup="xbrli:item"
      xbrli:periodType="instant" type="xbrli:monetaryItemType"/>
  <xsd:element id="N" name="NonCurrent" substitutionGroup="xbrli:item"
      xbrli:periodType="instant" type="xbrli:monetaryItemType"/>
  <xsd:element id="D" name="RegionDim" substitutionGroup="xbrldt:dimensionItem" abstract="true"/>
  <xsd:element id="M" name="North" substitutionGroup="xbrli:item" type="xbrli:stringItemType"/>
</xsd:schema>`,
		"t-calc.xml": `<?xml version="1.0" encoding="UTF-8"?>
<link:linkbase xmlns:link="http://www.xbrl.org/2003/linkbase"
    xmlns:xlink="http://www.w3.org/1999/xlink">
  <link:calculationLink xlink:type="extended" xlink:role="http://www.xbrl.org/2003/role/link">
    <link:loc xlink:type="locator" xlink:href="t.xsd#A" xlink:label="loc_A"/>
    <link:loc xlink:type="locator" xlink:href="t.xsd#C" xlink:label="loc_C"/>
    <link:loc xlink:type="locator" xlink:href="t.xsd#N" xlink:label="loc_N"/>
    <link:calculationArc xlink:type="arc"
        xlink:arcrole="http://www.xbrl.org/2003/arcrole/summation-item"
        xlink:from="loc_A" xlink:to="loc_C" weight="1" order="1"/>
    <link:calculationArc xlink:type="arc"
        xlink:arcrole="http://www.xbrl.org/2003/arcrole/summation-item"
        xlink:from="loc_A" xlink:to="loc_N" weight="1" order="2"/>
  </link:calculationLink>
</link:linkbase>`,
	}
}

const instanceHeader = `<?xml version="1.0" encoding="UTF-8"?>
<xbrli:xbrl xmlns:xbrli="http://www.xbrl.org/2003/instance"
    xmlns:link="http://www.xbrl.org/2003/linkbase"
    xmlns:xlink="http://www.w3.org/1999/xlink"
    xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
    xmlns:xbrldi="http://xbrl.org/2006/xbrldi"
    xmlns:iso4217="http://www.xbrl.org/2003/iso4217"
    xmlns:t="http://example.com/t"
    xsi:schemaLocation="http://example.com/t t.xsd">
  <link:schemaRef xlink:type="simple" xlink:href="t.xsd"/>
  <xbrli:context id="c1">
    <xbrli:entity>
      <xbrli:identifier scheme="http://example.com/entities">ACME</xbrli:identifier>
    </xbrli:entity>
    <xbrli:period>
      <xbrli:instant>2025-12-31</xbrli:instant>
    </xbrli:period>
    <xbrli:scenario>
      <xbrldi:explicitMember dimension="t:RegionDim">t:North</xbrldi:explicitMember>
    </xbrli:scenario>
  </xbrli:context>
  <xbrli:unit id="u1">
    <xbrli:measure>iso4217:EUR</xbrli:measure>
  </xbrli:unit>
`

func loadFixtureInstance(t *testing.T, factLines string) *Instance {
	t.Helper()
	files := balanceSheetFixture()
	files["report.xml"] = instanceHeader + factLines + "</xbrli:xbrl>"
	dir := writeFiles(t, files)

	in, err := NewLoader(nil).Load(filepath.Join(dir, "report.xml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return in
}

func TestLoaderBindsInstance(t *testing.T) {
	in := loadFixtureInstance(t, `  <t:Assets contextRef="c1" unitRef="u1" decimals="0">100</t:Assets>
  <t:Current contextRef="c1" unitRef="u1">40</t:Current>
  <t:NonCurrent contextRef="c1" unitRef="u1">60</t:NonCurrent>
`)

	if in.NumFacts() != 3 {
		t.Fatalf("expected 3 facts, got %d", in.NumFacts())
	}
	if in.NumContexts() != 1 {
		t.Fatalf("expected 1 context, got %d", in.NumContexts())
	}
	if len(in.DTSSet()) != 1 {
		t.Fatalf("expected 1 DTS, got %d", len(in.DTSSet()))
	}

	ctx := in.Context("c1")
	if ctx == nil {
		t.Fatal("missing context c1")
	}
	if ctx.Identifier != "ACME" || ctx.IdentifierScheme != "http://example.com/entities" {
		t.Errorf("unexpected entity: %s / %s", ctx.IdentifierScheme, ctx.Identifier)
	}
	if ctx.Period.Instant != "2025-12-31" {
		t.Errorf("unexpected period: %+v", ctx.Period)
	}

	mdt := ctx.DimensionalInformation(xlink.ContextScenario)
	if mdt == nil {
		t.Fatal("missing scenario coordinates")
	}
	if mdt.Current().Dimension.Name != "RegionDim" || mdt.Current().Member.Name != "North" {
		t.Errorf("unexpected scenario coordinates: %v -> %v",
			mdt.Current().Dimension, mdt.Current().Member)
	}

	unit := in.Unit("u1")
	if unit == nil || unit.Value != "EUR" || unit.NamespaceURI != "http://www.xbrl.org/2003/iso4217" {
		t.Errorf("unexpected unit: %+v", unit)
	}

	assets := in.DTSSet()[0].ConceptByID("A")
	fact := in.Fact(assets, ctx)
	if fact == nil || fact.Value != "100" || fact.Decimals != "0" {
		t.Errorf("unexpected Assets fact: %+v", fact)
	}
	if fact.Unit == nil || fact.Unit.ID != "u1" {
		t.Error("fact must be bound to its unit")
	}

	if got := in.SchemaLocations(); len(got) != 1 || got[0][0] != "http://example.com/t" || got[0][1] != "t.xsd" {
		t.Errorf("unexpected schema locations: %v", got)
	}
}

func TestLoaderUnknownFactElement(t *testing.T) {
	files := balanceSheetFixture()
	files["report.xml"] = instanceHeader + `  <t:Bogus contextRef="c1">1</t:Bogus>
</xbrli:xbrl>`
	dir := writeFiles(t, files)

	if _, err := NewLoader(nil).Load(filepath.Join(dir, "report.xml")); err == nil {
		t.Error("expected an unknown fact element to fail the load")
	}
}

func TestLoaderMissingContextRef(t *testing.T) {
	files := balanceSheetFixture()
	files["report.xml"] = instanceHeader + `  <t:Assets unitRef="u1">100</t:Assets>
</xbrli:xbrl>`
	dir := writeFiles(t, files)

	if _, err := NewLoader(nil).Load(filepath.Join(dir, "report.xml")); err == nil {
		t.Error("expected a fact without contextRef to fail the load")
	}
}

func TestLoaderForeverPeriod(t *testing.T) {
	files := balanceSheetFixture()
	files["report.xml"] = `<?xml version="1.0" encoding="UTF-8"?>
<xbrli:xbrl xmlns:xbrli="http://www.xbrl.org/2003/instance"
    xmlns:link="http://www.xbrl.org/2003/linkbase"
    xmlns:xlink="http://www.w3.org/1999/xlink"
    xmlns:t="http://example.com/t">
  <link:schemaRef xlink:type="simple" xlink:href="t.xsd"/>
  <xbrli:context id="c1">
    <xbrli:entity>
      <xbrli:identifier scheme="http://example.com/entities">ACME</xbrli:identifier>
    </xbrli:entity>
    <xbrli:period>
      <xbrli:forever/>
    </xbrli:period>
  </xbrli:context>
  <t:North contextRef="c1">yes</t:North>
</xbrli:xbrl>`
	dir := writeFiles(t, files)

	in, err := NewLoader(nil).Load(filepath.Join(dir, "report.xml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !in.Context("c1").Period.Forever {
		t.Error("expected a forever period")
	}
}
