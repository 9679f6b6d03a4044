package xlink

// ContextElement selects the part of an instance context a dimensional arc
// applies to.
type ContextElement string

const (
	// ContextScenario targets the <scenario> element
	ContextScenario ContextElement = "scenario"
	// ContextSegment targets the <segment> element
	ContextSegment ContextElement = "segment"
	// ContextUnset is used on arcs without xbrldt:contextElement
	ContextUnset ContextElement = ""
)

// Use is the xlink:use attribute of an arc.
type Use string

const (
	// UseOptional is the default
	UseOptional Use = "optional"
	// UseProhibited hides equivalent optional arcs of lower or equal priority
	UseProhibited Use = "prohibited"
)

// Arc is a directed, labeled edge between two extended-link elements within
// one extended link role.
type Arc struct {
	Source ExtendedLinkElement
	Target ExtendedLinkElement

	Arcrole              string
	XbrlExtendedLinkRole string
	ContextElement       ContextElement
	TargetRole           string
	Order                float64
	Weight               float64
	Priority             int
	UseAttr              Use

	// Attributes is the free-form attribute bag (local name -> value) of
	// everything else found on the arc element.
	Attributes map[string]string
}

// NewArc creates an arc inside the given extended link role with the
// defaults the XLink spec assigns.
func NewArc(extendedLinkRole string) *Arc {
	return &Arc{
		XbrlExtendedLinkRole: extendedLinkRole,
		Weight:               1,
		UseAttr:              UseOptional,
	}
}

// Prohibited reports whether the arc carries use="prohibited".
func (a *Arc) Prohibited() bool {
	return a.UseAttr == UseProhibited
}

// endpointKey identifies an arc endpoint for equivalence checks. Locators
// pointing at the same concept are equivalent endpoints regardless of which
// linkbase file declared them.
func endpointKey(e ExtendedLinkElement) string {
	if c := ConceptOf(e); c != nil {
		return "c\x00" + c.SchemaName + "\x00" + c.ID
	}
	// resources may share an xlink label; the id tells them apart
	if e.ID() != "" {
		return "e\x00" + e.SourceFile() + "\x00" + e.ID()
	}
	return "e\x00" + e.SourceFile() + "\x00" + e.Label()
}

// EquivalenceKey groups equivalent arcs: same resolved source, same resolved
// target, same arc role, same extended link role.
func (a *Arc) EquivalenceKey() string {
	return endpointKey(a.Source) + "\x00" + endpointKey(a.Target) + "\x00" + a.Arcrole + "\x00" + a.XbrlExtendedLinkRole
}
