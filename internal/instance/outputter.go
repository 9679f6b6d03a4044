package instance

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"xbrlcore/internal/dimensions"
	"xbrlcore/internal/xbrlns"
	"xbrlcore/internal/xlink"
)

// Outputter serializes an Instance back to XBRL instance XML. The output
// round-trips through the Loader.
type Outputter struct {
	instance *Instance

	prefixes map[string]string // namespace URI -> prefix
}

// NewOutputter creates an outputter for the given instance.
func NewOutputter(in *Instance) *Outputter {
	return &Outputter{instance: in}
}

// XMLString returns the serialized document.
func (o *Outputter) XMLString() string {
	var b strings.Builder
	o.Write(&b)
	return b.String()
}

// WriteFile serializes the document to a file.
func (o *Outputter) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.WriteString(f, o.XMLString())
	return err
}

// Write serializes the document to w.
func (o *Outputter) Write(w io.Writer) {
	in := o.instance
	o.collectPrefixes()

	fmt.Fprintf(w, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")

	root := in.InstanceNamespace()
	fmt.Fprintf(w, "<%s:xbrl xmlns:%s=\"%s\"", root.Prefix, root.Prefix, escape(root.URI))
	fmt.Fprintf(w, " xmlns:link=\"%s\" xmlns:xlink=\"%s\" xmlns:xsi=\"%s\" xmlns:xbrldi=\"%s\"",
		xbrlns.Link, xbrlns.XLink, xbrlns.XSI, xbrlns.XBRLDI)
	for uri, prefix := range o.prefixes {
		if uri == root.URI || fixedPrefixes[uri] != "" {
			continue
		}
		fmt.Fprintf(w, " xmlns:%s=\"%s\"", prefix, escape(uri))
	}
	if locs := in.SchemaLocations(); len(locs) > 0 {
		var parts []string
		for _, pair := range locs {
			parts = append(parts, pair[0], pair[1])
		}
		fmt.Fprintf(w, " xsi:schemaLocation=\"%s\"", escape(strings.Join(parts, " ")))
	}
	fmt.Fprint(w, ">\n")

	for _, d := range in.DTSSet() {
		if top := d.TopTaxonomy(); top != nil {
			fmt.Fprintf(w, "  <link:schemaRef xlink:type=\"simple\" xlink:href=\"%s\"/>\n", escape(top.Name))
		}
	}

	for _, ctx := range in.Contexts() {
		o.writeContext(w, ctx, root.Prefix)
	}
	for _, u := range in.Units() {
		fmt.Fprintf(w, "  <%s:unit id=\"%s\">\n", root.Prefix, escape(u.ID))
		fmt.Fprintf(w, "    <%s:measure>%s:%s</%s:measure>\n",
			root.Prefix, o.prefixFor(u.NamespaceURI), escape(u.Value), root.Prefix)
		fmt.Fprintf(w, "  </%s:unit>\n", root.Prefix)
	}

	for _, f := range in.Facts() {
		prefix := o.prefixFor(f.Concept.NamespaceURI)
		fmt.Fprintf(w, "  <%s:%s contextRef=\"%s\"", prefix, f.Concept.Name, escape(f.Context.ID))
		if f.Unit != nil {
			fmt.Fprintf(w, " unitRef=\"%s\"", escape(f.Unit.ID))
		}
		if f.Decimals != "" {
			fmt.Fprintf(w, " decimals=\"%s\"", escape(f.Decimals))
		}
		if f.Precision != "" {
			fmt.Fprintf(w, " precision=\"%s\"", escape(f.Precision))
		}
		fmt.Fprintf(w, ">%s</%s:%s>\n", escape(f.Value), prefix, f.Concept.Name)
	}

	fmt.Fprintf(w, "</%s:xbrl>\n", root.Prefix)
}

func (o *Outputter) writeContext(w io.Writer, ctx *Context, xp string) {
	fmt.Fprintf(w, "  <%s:context id=\"%s\">\n", xp, escape(ctx.ID))
	fmt.Fprintf(w, "    <%s:entity>\n", xp)
	fmt.Fprintf(w, "      <%s:identifier scheme=\"%s\">%s</%s:identifier>\n",
		xp, escape(ctx.IdentifierScheme), escape(ctx.Identifier), xp)
	if segment := ctx.DimensionalInformation(xlink.ContextSegment); segment != nil {
		fmt.Fprintf(w, "      <%s:segment>\n", xp)
		o.writeMembers(w, segment, "        ")
		fmt.Fprintf(w, "      </%s:segment>\n", xp)
	}
	fmt.Fprintf(w, "    </%s:entity>\n", xp)

	fmt.Fprintf(w, "    <%s:period>\n", xp)
	switch {
	case ctx.Period.Forever:
		fmt.Fprintf(w, "      <%s:forever/>\n", xp)
	case ctx.Period.Instant != "":
		fmt.Fprintf(w, "      <%s:instant>%s</%s:instant>\n", xp, escape(ctx.Period.Instant), xp)
	default:
		fmt.Fprintf(w, "      <%s:startDate>%s</%s:startDate>\n", xp, escape(ctx.Period.StartDate), xp)
		fmt.Fprintf(w, "      <%s:endDate>%s</%s:endDate>\n", xp, escape(ctx.Period.EndDate), xp)
	}
	fmt.Fprintf(w, "    </%s:period>\n", xp)

	if scenario := ctx.DimensionalInformation(xlink.ContextScenario); scenario != nil {
		fmt.Fprintf(w, "    <%s:scenario>\n", xp)
		o.writeMembers(w, scenario, "      ")
		fmt.Fprintf(w, "    </%s:scenario>\n", xp)
	}
	fmt.Fprintf(w, "  </%s:context>\n", xp)
}

func (o *Outputter) writeMembers(w io.Writer, mdt *dimensions.MultipleDimensionType, indent string) {
	for _, sdt := range append([]*dimensions.SingleDimensionType{mdt.Current()}, mdt.Predecessors()...) {
		dimQName := o.prefixFor(sdt.Dimension.NamespaceURI) + ":" + sdt.Dimension.Name
		if sdt.TypedContent != nil {
			fmt.Fprintf(w, "%s<xbrldi:typedMember dimension=\"%s\">%s</xbrldi:typedMember>\n",
				indent, escape(dimQName), sdt.TypedContent.XMLString())
			continue
		}
		memberQName := o.prefixFor(sdt.Member.NamespaceURI) + ":" + sdt.Member.Name
		fmt.Fprintf(w, "%s<xbrldi:explicitMember dimension=\"%s\">%s</xbrldi:explicitMember>\n",
			indent, escape(dimQName), escape(memberQName))
	}
}

// fixedPrefixes are always declared on the root element.
var fixedPrefixes = map[string]string{
	xbrlns.Link:   "link",
	xbrlns.XLink:  "xlink",
	xbrlns.XSI:    "xsi",
	xbrlns.XBRLDI: "xbrldi",
}

// collectPrefixes assigns a prefix to every namespace URI the document
// mentions: taxonomy schema namespaces, unit namespaces and additional
// declarations of the source document.
func (o *Outputter) collectPrefixes() {
	o.prefixes = make(map[string]string)
	used := map[string]bool{"link": true, "xlink": true, "xsi": true, "xbrldi": true}
	for uri, prefix := range fixedPrefixes {
		o.prefixes[uri] = prefix
	}

	assign := func(uri, preferred string) {
		if uri == "" {
			return
		}
		if _, ok := o.prefixes[uri]; ok {
			return
		}
		prefix := preferred
		for i := 2; prefix == "" || used[prefix]; i++ {
			prefix = fmt.Sprintf("ns%d", i)
		}
		used[prefix] = true
		o.prefixes[uri] = prefix
	}

	in := o.instance
	assign(in.InstanceNamespace().URI, in.InstanceNamespace().Prefix)
	assign(xbrlns.ISO4217, "iso4217")
	for _, d := range in.DTSSet() {
		for _, s := range d.Schemas() {
			assign(s.NamespaceURI, s.NamespacePrefix)
		}
	}
	for _, ns := range in.AdditionalNamespaces() {
		assign(ns.URI, ns.Prefix)
	}
	for _, u := range in.Units() {
		assign(u.NamespaceURI, "")
	}
}

func (o *Outputter) prefixFor(uri string) string {
	if prefix, ok := o.prefixes[uri]; ok {
		return prefix
	}
	return o.instance.InstanceNamespace().Prefix
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
