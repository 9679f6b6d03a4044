package xmldom

import (
	"encoding/xml"
	"strings"
)

// XMLString renders the element subtree back to XML. Element names are
// written unprefixed with an xmlns declaration carrying their namespace;
// attribute namespaces are not preserved.
func (e *Element) XMLString() string {
	var b strings.Builder
	e.write(&b, "")
	return b.String()
}

func (e *Element) write(b *strings.Builder, inheritedNS string) {
	b.WriteByte('<')
	b.WriteString(e.Local)
	if e.Space != "" && e.Space != inheritedNS {
		b.WriteString(` xmlns="`)
		xml.EscapeText(b, []byte(e.Space))
		b.WriteByte('"')
	}
	for _, a := range e.attrs {
		b.WriteByte(' ')
		b.WriteString(a.Local)
		b.WriteString(`="`)
		xml.EscapeText(b, []byte(a.Value))
		b.WriteByte('"')
	}

	text := e.Text()
	if len(e.children) == 0 && text == "" {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	if text != "" {
		xml.EscapeText(b, []byte(text))
	}
	for _, c := range e.children {
		c.write(b, e.Space)
	}
	b.WriteString("</")
	b.WriteString(e.Local)
	b.WriteByte('>')
}
