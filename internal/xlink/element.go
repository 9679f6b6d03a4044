// Package xlink models the XLink building blocks of XBRL linkbases:
// locators, resources and the arcs connecting them.
package xlink

import (
	"xbrlcore/internal/taxonomy"
)

// ExtendedLinkElement is either a Locator or a Resource inside an extended
// link.
type ExtendedLinkElement interface {
	// Label is the arc endpoint id of the element within its linkbase file.
	Label() string
	// Role is the xlink:role of the element.
	Role() string
	// Title is the xlink:title of the element.
	Title() string
	// ID is the element's own id attribute.
	ID() string
	// SourceFile is the linkbase file the element was read from.
	SourceFile() string
	// ExtendedLinkRole is the role of the extended link containing the
	// element.
	ExtendedLinkRole() string
	// IsLocator distinguishes the two variants.
	IsLocator() bool
}

// Locator points at a concept (or, as a fallback, at a resource) via its
// xlink:href.
type Locator struct {
	label            string
	sourceFile       string
	extendedLinkRole string

	RoleAttr  string
	TitleAttr string
	IDAttr    string

	// Concept is the resolved target. Nil when the locator resolved to a
	// resource instead.
	Concept *taxonomy.Concept
	// Resource is the fallback target for locators whose href names a
	// resource id in the same linkbase.
	Resource *Resource
	// Usable is switched off by arcs carrying xbrldt:usable="false".
	Usable bool
}

// NewLocator creates a locator with the given endpoint label and source file.
func NewLocator(label, sourceFile string) *Locator {
	return &Locator{label: label, sourceFile: sourceFile, Usable: true}
}

// Label returns the arc endpoint id.
func (l *Locator) Label() string { return l.label }

// Role returns the xlink:role.
func (l *Locator) Role() string { return l.RoleAttr }

// Title returns the xlink:title.
func (l *Locator) Title() string { return l.TitleAttr }

// ID returns the element id.
func (l *Locator) ID() string { return l.IDAttr }

// SourceFile returns the linkbase file name.
func (l *Locator) SourceFile() string { return l.sourceFile }

// ExtendedLinkRole returns the containing extended link's role.
func (l *Locator) ExtendedLinkRole() string { return l.extendedLinkRole }

// SetExtendedLinkRole records the containing extended link's role.
func (l *Locator) SetExtendedLinkRole(role string) { l.extendedLinkRole = role }

// IsLocator reports true.
func (l *Locator) IsLocator() bool { return true }

// Resource carries a literal value, typically a human-readable label.
type Resource struct {
	label            string
	sourceFile       string
	extendedLinkRole string

	RoleAttr  string
	TitleAttr string
	IDAttr    string
	Lang      string
	Value     string
}

// NewResource creates a resource with the given endpoint label and source
// file.
func NewResource(label, sourceFile string) *Resource {
	return &Resource{label: label, sourceFile: sourceFile}
}

// Label returns the arc endpoint id.
func (r *Resource) Label() string { return r.label }

// Role returns the xlink:role.
func (r *Resource) Role() string { return r.RoleAttr }

// Title returns the xlink:title.
func (r *Resource) Title() string { return r.TitleAttr }

// ID returns the element id.
func (r *Resource) ID() string { return r.IDAttr }

// SourceFile returns the linkbase file name.
func (r *Resource) SourceFile() string { return r.sourceFile }

// ExtendedLinkRole returns the containing extended link's role.
func (r *Resource) ExtendedLinkRole() string { return r.extendedLinkRole }

// SetExtendedLinkRole records the containing extended link's role.
func (r *Resource) SetExtendedLinkRole(role string) { r.extendedLinkRole = role }

// IsLocator reports false.
func (r *Resource) IsLocator() bool { return false }

// ConceptOf returns the concept a locator element points at, or nil for
// resources and resource-targeted locators.
func ConceptOf(e ExtendedLinkElement) *taxonomy.Concept {
	if loc, ok := e.(*Locator); ok {
		return loc.Concept
	}
	return nil
}
