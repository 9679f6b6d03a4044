package instance

import (
	"fmt"

	"xbrlcore/internal/dimensions"
	"xbrlcore/internal/dts"
	"xbrlcore/internal/errors"
	"xbrlcore/internal/taxonomy"
	"xbrlcore/internal/xbrlns"
	"xbrlcore/internal/xlink"
)

// Namespace is a (prefix, URI) pair of the instance document.
type Namespace struct {
	Prefix string
	URI    string
}

// Instance is one XBRL instance document bound to the taxonomy sets it
// references.
type Instance struct {
	FileName string
	Comment  string

	dtsSet []*dts.DTS

	instanceNamespace    Namespace
	additionalNamespaces []Namespace

	schemaLocationOrder []string
	schemaLocations     map[string]string // namespace URI -> schema file name

	contextOrder []string
	contexts     map[string]*Context

	unitOrder []string
	units     map[string]*Unit

	facts []*Fact
}

// New creates an empty instance over the given taxonomy sets.
func New(dtsSet []*dts.DTS) *Instance {
	return &Instance{
		dtsSet:            dtsSet,
		instanceNamespace: Namespace{Prefix: "xbrli", URI: xbrlns.XBRLI},
		schemaLocations:   make(map[string]string),
		contexts:          make(map[string]*Context),
		units:             make(map[string]*Unit),
	}
}

// AddDTS adds another taxonomy set to the instance.
func (in *Instance) AddDTS(d *dts.DTS) {
	in.dtsSet = append(in.dtsSet, d)
}

// DTSSet returns the taxonomy sets the instance refers to.
func (in *Instance) DTSSet() []*dts.DTS {
	return in.dtsSet
}

// InstanceNamespace returns the namespace of the document root.
func (in *Instance) InstanceNamespace() Namespace {
	return in.instanceNamespace
}

// SetInstanceNamespace replaces the namespace of the document root.
func (in *Instance) SetInstanceNamespace(ns Namespace) {
	in.instanceNamespace = ns
}

// AddNamespace records an additional namespace declaration. Duplicate URIs
// are ignored.
func (in *Instance) AddNamespace(ns Namespace) {
	if in.NamespaceByURI(ns.URI) != nil {
		return
	}
	in.additionalNamespaces = append(in.additionalNamespaces, ns)
}

// AdditionalNamespaces returns the additional namespaces in insertion order.
func (in *Instance) AdditionalNamespaces() []Namespace {
	return in.additionalNamespaces
}

// NamespaceURI resolves a prefix against the instance's namespace table.
func (in *Instance) NamespaceURI(prefix string) string {
	if in.instanceNamespace.Prefix == prefix {
		return in.instanceNamespace.URI
	}
	for _, ns := range in.additionalNamespaces {
		if ns.Prefix == prefix {
			return ns.URI
		}
	}
	return ""
}

// NamespaceByURI returns the namespace with the given URI, or nil.
func (in *Instance) NamespaceByURI(uri string) *Namespace {
	if in.instanceNamespace.URI == uri {
		return &in.instanceNamespace
	}
	for i := range in.additionalNamespaces {
		if in.additionalNamespaces[i].URI == uri {
			return &in.additionalNamespaces[i]
		}
	}
	return nil
}

// SchemaForPrefix returns the taxonomy schema whose target namespace the
// given prefix is bound to, or nil.
func (in *Instance) SchemaForPrefix(prefix string) *taxonomy.Schema {
	uri := in.NamespaceURI(prefix)
	if uri == "" {
		return nil
	}
	return in.SchemaForURI(uri)
}

// SchemaForURI returns the taxonomy schema with the given target namespace
// across all referenced taxonomy sets, or nil.
func (in *Instance) SchemaForURI(uri string) *taxonomy.Schema {
	for _, d := range in.dtsSet {
		if s := d.SchemaForURI(uri); s != nil {
			return s
		}
	}
	return nil
}

// ConceptByName returns the first concept with the given element name across
// all referenced taxonomy sets, or nil.
func (in *Instance) ConceptByName(name string) *taxonomy.Concept {
	for _, d := range in.dtsSet {
		if c := d.ConceptByName(name); c != nil {
			return c
		}
	}
	return nil
}

// AddSchemaLocation records one xsi:schemaLocation pair.
func (in *Instance) AddSchemaLocation(namespaceURI, schemaName string) {
	if _, ok := in.schemaLocations[namespaceURI]; !ok {
		in.schemaLocationOrder = append(in.schemaLocationOrder, namespaceURI)
	}
	in.schemaLocations[namespaceURI] = schemaName
}

// SchemaLocations returns the namespace -> schema file map in insertion
// order as pairs.
func (in *Instance) SchemaLocations() [][2]string {
	out := make([][2]string, 0, len(in.schemaLocationOrder))
	for _, uri := range in.schemaLocationOrder {
		out = append(out, [2]string{uri, in.schemaLocations[uri]})
	}
	return out
}

// AddContext registers a context. A context id may only be registered once;
// re-adding an equal context is a no-op, a different context under the same
// id is an error.
func (in *Instance) AddContext(ctx *Context) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	if existing, ok := in.contexts[ctx.ID]; ok {
		if existing.Equal(ctx) {
			return nil
		}
		return errors.NewInstanceLoadError(fmt.Sprintf("context id %q registered twice with different content", ctx.ID))
	}
	in.contexts[ctx.ID] = ctx
	in.contextOrder = append(in.contextOrder, ctx.ID)
	return nil
}

// AddUnit registers a unit. A unit id may only be registered once;
// re-adding an equal unit is a no-op, a different unit under the same id is
// an error.
func (in *Instance) AddUnit(u *Unit) error {
	if err := checkUnit(u); err != nil {
		return err
	}
	if existing, ok := in.units[u.ID]; ok {
		if existing.Equal(u) {
			return nil
		}
		return errors.NewInstanceLoadError(fmt.Sprintf("unit id %q registered twice with different content", u.ID))
	}
	in.units[u.ID] = u
	in.unitOrder = append(in.unitOrder, u.ID)
	return nil
}

// AddFact adds a fact, registering its context and unit along the way. A
// fact already reported for the same (concept, context) has its value
// overwritten. Numeric facts must carry a unit.
func (in *Instance) AddFact(f *Fact) error {
	if err := checkFact(f); err != nil {
		return err
	}
	if err := checkContext(f.Context); err != nil {
		return err
	}
	if f.Unit != nil {
		if err := checkUnit(f.Unit); err != nil {
			return err
		}
	}

	if existing := in.Fact(f.Concept, f.Context); existing != nil {
		existing.Value = f.Value
		return nil
	}
	if err := in.AddContext(f.Context); err != nil {
		return err
	}
	if f.Unit != nil {
		if err := in.AddUnit(f.Unit); err != nil {
			return err
		}
	}
	in.facts = append(in.facts, f)
	return nil
}

// RemoveFact removes a fact from the instance.
func (in *Instance) RemoveFact(f *Fact) {
	for i, existing := range in.facts {
		if existing == f {
			in.facts = append(in.facts[:i], in.facts[i+1:]...)
			return
		}
	}
}

// Context returns the context with the given id, or nil.
func (in *Instance) Context(id string) *Context {
	return in.contexts[id]
}

// Contexts returns every context in insertion order.
func (in *Instance) Contexts() []*Context {
	out := make([]*Context, 0, len(in.contextOrder))
	for _, id := range in.contextOrder {
		out = append(out, in.contexts[id])
	}
	return out
}

// ContextByMDT returns the context whose coordinates in the given slot equal
// mdt, or nil.
func (in *Instance) ContextByMDT(mdt *dimensions.MultipleDimensionType, slot xlink.ContextElement) *Context {
	if mdt == nil {
		return nil
	}
	for _, id := range in.contextOrder {
		ctx := in.contexts[id]
		if info := ctx.DimensionalInformation(slot); info != nil && info.Equal(mdt) {
			return ctx
		}
	}
	return nil
}

// Unit returns the unit with the given id, or nil.
func (in *Instance) Unit(id string) *Unit {
	return in.units[id]
}

// Units returns every unit in insertion order.
func (in *Instance) Units() []*Unit {
	out := make([]*Unit, 0, len(in.unitOrder))
	for _, id := range in.unitOrder {
		out = append(out, in.units[id])
	}
	return out
}

// Facts returns every fact in document order.
func (in *Instance) Facts() []*Fact {
	return in.facts
}

// FactsForContext returns the facts reported in the context with the given
// id.
func (in *Instance) FactsForContext(contextID string) []*Fact {
	var out []*Fact
	for _, f := range in.facts {
		if f.Context != nil && f.Context.ID == contextID {
			out = append(out, f)
		}
	}
	return out
}

// Fact returns the fact reported for a concept in a context, or nil.
func (in *Instance) Fact(concept *taxonomy.Concept, ctx *Context) *Fact {
	for _, f := range in.facts {
		if f.Concept.Equal(concept) && f.Context.Equal(ctx) {
			return f
		}
	}
	return nil
}

// FactByMDT returns the fact reported for a concept under the dimensional
// coordinates mdt in the given slot. A nil mdt matches facts whose context
// carries no coordinates in that slot.
func (in *Instance) FactByMDT(concept *taxonomy.Concept, mdt *dimensions.MultipleDimensionType, slot xlink.ContextElement) *Fact {
	for _, f := range in.facts {
		if !f.Concept.Equal(concept) {
			continue
		}
		info := f.Context.DimensionalInformation(slot)
		if mdt == nil && info == nil {
			return f
		}
		if mdt != nil && info != nil && info.Equal(mdt) {
			return f
		}
	}
	return nil
}

// NumFacts returns the number of facts.
func (in *Instance) NumFacts() int {
	return len(in.facts)
}

// NumContexts returns the number of contexts.
func (in *Instance) NumContexts() int {
	return len(in.contexts)
}

func checkFact(f *Fact) error {
	if f == nil || f.Concept == nil {
		return errors.NewInstanceLoadError("fact without concept")
	}
	if f.Value == "" {
		return errors.NewInstanceLoadError(fmt.Sprintf("fact %s without value", f.Concept.Name))
	}
	if f.Context == nil {
		return errors.NewInstanceLoadError(fmt.Sprintf("fact %s without context", f.Concept.Name))
	}
	if f.IsNumeric() && f.Unit == nil {
		return errors.NewInstanceLoadError(fmt.Sprintf("numeric fact %s without unit", f.Concept.Name))
	}
	return nil
}

func checkContext(ctx *Context) error {
	if ctx == nil {
		return errors.NewInstanceLoadError("fact without context")
	}
	if ctx.ID == "" {
		return errors.NewInstanceLoadError("context without id")
	}
	if ctx.Identifier == "" || ctx.IdentifierScheme == "" {
		return errors.NewInstanceLoadError(fmt.Sprintf("context %q without entity identifier", ctx.ID))
	}
	if !ctx.Period.IsSet() {
		return errors.NewInstanceLoadError(fmt.Sprintf("context %q without period", ctx.ID))
	}
	return nil
}

func checkUnit(u *Unit) error {
	if u == nil {
		return errors.NewInstanceLoadError("unit missing")
	}
	if u.ID == "" {
		return errors.NewInstanceLoadError("unit without id")
	}
	if u.NamespaceURI == "" || u.Value == "" {
		return errors.NewInstanceLoadError(fmt.Sprintf("unit %q without measure", u.ID))
	}
	return nil
}
