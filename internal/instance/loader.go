package instance

import (
	"fmt"
	"path/filepath"
	"strings"

	"xbrlcore/internal/dimensions"
	"xbrlcore/internal/dts"
	"xbrlcore/internal/errors"
	"xbrlcore/internal/logging"
	"xbrlcore/internal/taxonomy"
	"xbrlcore/internal/xbrlns"
	"xbrlcore/internal/xlink"
	"xbrlcore/internal/xmldom"
)

// Loader parses an instance document, builds the taxonomy sets it references
// and binds facts, contexts and units to them. A Loader is single-use per
// Load call and not safe for concurrent use.
type Loader struct {
	// StrictPresentationParents is passed through to the DTS builder.
	StrictPresentationParents bool

	logger *logging.Logger

	basePath string
	doc      *xmldom.Document
	instance *Instance
}

// NewLoader creates a loader logging through the given logger. A nil logger
// discards output.
func NewLoader(logger *logging.Logger) *Loader {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Loader{logger: logger}
}

// Load parses the instance file at path.
func (l *Loader) Load(path string) (*Instance, error) {
	doc, err := xmldom.ParseFile(path)
	if err != nil {
		return nil, errors.NewXMLParseError(filepath.Base(path), err)
	}
	l.basePath = filepath.Dir(path)
	l.doc = doc

	in, err := l.build(filepath.Base(path))
	if err != nil {
		return nil, err
	}
	return in, nil
}

// LoadWithDTS binds a pre-parsed document against already-built taxonomy
// sets.
func (l *Loader) LoadWithDTS(doc *xmldom.Document, fileName string, dtsSet []*dts.DTS) (*Instance, error) {
	l.doc = doc
	l.instance = New(dtsSet)
	l.instance.FileName = fileName
	return l.finish()
}

func (l *Loader) build(fileName string) (*Instance, error) {
	var dtsSet []*dts.DTS
	for _, ref := range l.schemaRefs() {
		builder := dts.NewBuilder(l.logger)
		builder.StrictPresentationParents = l.StrictPresentationParents
		d, err := builder.Build(filepath.Join(l.basePath, ref))
		if err != nil {
			return nil, err
		}
		dtsSet = append(dtsSet, d)
	}

	l.instance = New(dtsSet)
	l.instance.FileName = fileName
	return l.finish()
}

func (l *Loader) finish() (*Instance, error) {
	l.setNamespaces()
	l.setSchemaLocations()
	if err := l.setUnits(); err != nil {
		return nil, err
	}
	if err := l.setContexts(); err != nil {
		return nil, err
	}
	if err := l.setFacts(); err != nil {
		return nil, err
	}
	l.logger.Info("Instance loaded", map[string]interface{}{
		"file":     l.instance.FileName,
		"facts":    l.instance.NumFacts(),
		"contexts": l.instance.NumContexts(),
	})
	return l.instance, nil
}

// schemaRefs returns the link:schemaRef hrefs of the document.
func (l *Loader) schemaRefs() []string {
	var out []string
	seen := make(map[string]bool)
	for _, ref := range l.doc.Root.ChildrenNS(xbrlns.Link, "schemaRef") {
		href := ref.Attr(xbrlns.XLink, "href")
		if href != "" && !seen[href] {
			seen[href] = true
			out = append(out, href)
		}
	}
	return out
}

func (l *Loader) setNamespaces() {
	root := l.doc.Root
	instanceNS := Namespace{URI: root.Space}
	for prefix, uri := range root.Declarations() {
		if uri == root.Space && prefix != "" {
			instanceNS.Prefix = prefix
		}
	}
	if instanceNS.Prefix == "" {
		instanceNS.Prefix = "xbrli"
	}
	l.instance.SetInstanceNamespace(instanceNS)

	for prefix, uri := range root.Declarations() {
		if uri == root.Space || prefix == "" {
			continue
		}
		l.instance.AddNamespace(Namespace{Prefix: prefix, URI: uri})
	}
	for _, ref := range l.doc.Root.ChildrenNS(xbrlns.Link, "schemaRef") {
		for prefix, uri := range ref.Declarations() {
			if prefix != "" {
				l.instance.AddNamespace(Namespace{Prefix: prefix, URI: uri})
			}
		}
	}
}

func (l *Loader) setSchemaLocations() {
	value := l.doc.Root.Attr(xbrlns.XSI, "schemaLocation")
	fields := strings.Fields(value)
	for i := 0; i+1 < len(fields); i += 2 {
		l.instance.AddSchemaLocation(fields[i], fields[i+1])
	}
}

func (l *Loader) setUnits() error {
	for _, el := range l.doc.Root.ChildrenNS(xbrlns.XBRLI, "unit") {
		id := el.Attr("", "id")
		if id == "" {
			return errors.NewInstanceLoadError("unit without id")
		}
		unit := NewUnit(id)

		measure := el.ChildNS(xbrlns.XBRLI, "measure")
		if measure == nil {
			return errors.NewInstanceLoadError(fmt.Sprintf("unit %q without measure", id))
		}
		prefix, value, ok := strings.Cut(measure.Text(), ":")
		if !ok {
			value = prefix
			prefix = ""
		}
		unit.Value = value
		if uri := measure.NamespaceForPrefix(prefix); uri != "" {
			unit.NamespaceURI = uri
		} else {
			unit.NamespaceURI = l.instance.NamespaceURI(prefix)
		}

		if err := l.instance.AddUnit(unit); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) setContexts() error {
	for _, el := range l.doc.Root.ChildrenNS(xbrlns.XBRLI, "context") {
		id := el.Attr("", "id")
		if id == "" {
			return errors.NewInstanceLoadError("context without id")
		}
		ctx := NewContext(id)

		entity := el.ChildNS(xbrlns.XBRLI, "entity")
		if entity == nil {
			return errors.NewInstanceLoadError(fmt.Sprintf("context %q without entity", id))
		}
		identifier := entity.ChildNS(xbrlns.XBRLI, "identifier")
		if identifier == nil {
			return errors.NewInstanceLoadError(fmt.Sprintf("context %q without entity identifier", id))
		}
		ctx.IdentifierScheme = identifier.Attr("", "scheme")
		ctx.Identifier = identifier.Text()

		if period := el.ChildNS(xbrlns.XBRLI, "period"); period != nil {
			switch {
			case period.ChildNS(xbrlns.XBRLI, "forever") != nil:
				ctx.Period.Forever = true
			case period.ChildNS(xbrlns.XBRLI, "instant") != nil:
				ctx.Period.Instant = period.ChildNS(xbrlns.XBRLI, "instant").Text()
			default:
				if start := period.ChildNS(xbrlns.XBRLI, "startDate"); start != nil {
					ctx.Period.StartDate = start.Text()
				}
				if end := period.ChildNS(xbrlns.XBRLI, "endDate"); end != nil {
					ctx.Period.EndDate = end.Text()
				}
			}
		}

		slots := []struct {
			el   *xmldom.Element
			slot xlink.ContextElement
		}{
			{el.ChildNS(xbrlns.XBRLI, "scenario"), xlink.ContextScenario},
			{entity.ChildNS(xbrlns.XBRLI, "segment"), xlink.ContextSegment},
		}
		for _, s := range slots {
			if s.el == nil {
				continue
			}
			mdt, err := l.parseMembers(s.el, id)
			if err != nil {
				return err
			}
			if mdt != nil {
				ctx.SetDimensionalInformation(mdt, s.slot)
			}
		}

		if err := l.instance.AddContext(ctx); err != nil {
			return err
		}
	}
	return nil
}

// parseMembers accumulates the xbrldi members of one scenario or segment
// element into an MDT. The first member seeds the current pair, every
// further member goes into the previous set.
func (l *Loader) parseMembers(parent *xmldom.Element, contextID string) (*dimensions.MultipleDimensionType, error) {
	var mdt *dimensions.MultipleDimensionType

	add := func(sdt *dimensions.SingleDimensionType) {
		if mdt == nil {
			mdt = dimensions.NewMultipleDimensionType(sdt)
		} else {
			mdt.AddPredecessor(sdt)
		}
	}

	for _, member := range parent.ChildrenNS(xbrlns.XBRLDI, "explicitMember") {
		dimension, err := l.resolveDimension(member, contextID)
		if err != nil {
			return nil, err
		}
		_, memberName, ok := strings.Cut(member.Text(), ":")
		if !ok {
			memberName = member.Text()
		}
		domainMember := l.instance.ConceptByName(memberName)
		if domainMember == nil {
			return nil, errors.NewInstanceLoadError(fmt.Sprintf(
				"cannot resolve domain member %q in context %q", member.Text(), contextID))
		}
		add(dimensions.NewSingleDimensionType(dimension, domainMember))
	}

	for _, member := range parent.ChildrenNS(xbrlns.XBRLDI, "typedMember") {
		dimension, err := l.resolveDimension(member, contextID)
		if err != nil {
			return nil, err
		}
		children := member.Children()
		if len(children) == 0 {
			return nil, errors.NewInstanceLoadError(fmt.Sprintf(
				"typed member of dimension %s in context %q has no content", dimension.Name, contextID))
		}
		add(dimensions.NewTypedDimensionType(dimension, children[0]))
	}

	return mdt, nil
}

func (l *Loader) resolveDimension(member *xmldom.Element, contextID string) (*taxonomy.Concept, error) {
	qname := member.Attr("", "dimension")
	prefix, name, ok := strings.Cut(qname, ":")
	if !ok {
		name = qname
		prefix = ""
	}

	var schema *taxonomy.Schema
	if uri := member.NamespaceForPrefix(prefix); uri != "" {
		schema = l.instance.SchemaForURI(uri)
	}
	if schema == nil {
		schema = l.instance.SchemaForPrefix(prefix)
	}
	if schema == nil {
		return nil, errors.NewInstanceLoadError(fmt.Sprintf(
			"cannot resolve dimension %q in context %q", qname, contextID))
	}
	dimension := schema.ConceptByName(name)
	if dimension == nil {
		return nil, errors.NewInstanceLoadError(fmt.Sprintf(
			"cannot resolve dimension %q in context %q", qname, contextID))
	}
	return dimension, nil
}

func (l *Loader) setFacts() error {
	for _, el := range l.doc.Root.Children() {
		if el.Space == xbrlns.XBRLI && (el.Local == "context" || el.Local == "unit") {
			continue
		}
		if el.Space == xbrlns.Link && el.Local == "schemaRef" {
			continue
		}

		schema := l.instance.SchemaForURI(el.Space)
		var concept *taxonomy.Concept
		if schema != nil {
			concept = schema.ConceptByName(el.Local)
		}
		if concept == nil {
			return errors.NewInstanceLoadError(fmt.Sprintf("unknown fact element %s", el.Local))
		}

		fact := NewFact(concept)
		contextRef := el.Attr("", "contextRef")
		if contextRef == "" {
			return errors.NewInstanceLoadError(fmt.Sprintf("fact %s without contextRef", el.Local))
		}
		ctx := l.instance.Context(contextRef)
		if ctx == nil {
			return errors.NewInstanceLoadError(fmt.Sprintf(
				"fact %s references unknown context %q", el.Local, contextRef))
		}
		fact.Context = ctx
		if unitRef := el.Attr("", "unitRef"); unitRef != "" {
			fact.Unit = l.instance.Unit(unitRef)
		}
		fact.Decimals = el.Attr("", "decimals")
		fact.Precision = el.Attr("", "precision")
		fact.Value = el.Text()

		if err := l.instance.AddFact(fact); err != nil {
			return err
		}
	}
	return nil
}
