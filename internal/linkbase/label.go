package linkbase

import (
	"xbrlcore/internal/taxonomy"
	"xbrlcore/internal/xbrlns"
	"xbrlcore/internal/xlink"
)

// Label is the label linkbase: it connects concepts to human-readable
// resources via concept-label arcs.
type Label struct {
	*Linkbase
}

// NewLabel creates an empty label linkbase.
func NewLabel() *Label {
	return &Label{Linkbase: New(KindLabel)}
}

// LabelFor returns the label text of a concept for the given resource role
// and language. An empty role means the standard label role; an empty lang
// matches any language. Returns "" when no label exists.
func (l *Label) LabelFor(concept *taxonomy.Concept, role, lang string) string {
	if role == "" {
		role = xbrlns.StandardLabelRole
	}
	for _, res := range l.ResourcesFor(concept) {
		if res.RoleAttr != role {
			continue
		}
		if lang != "" && res.Lang != lang {
			continue
		}
		return res.Value
	}
	return ""
}

// ResourcesFor returns every label resource attached to the concept across
// all extended link roles, in document order.
func (l *Label) ResourcesFor(concept *taxonomy.Concept) []*xlink.Resource {
	var out []*xlink.Resource
	for _, elr := range l.ExtendedLinkRoles() {
		for _, a := range l.ArcBaseSet(xbrlns.ArcroleConceptLabel, elr) {
			src := xlink.ConceptOf(a.Source)
			if src == nil || !src.Equal(concept) {
				continue
			}
			if res, ok := a.Target.(*xlink.Resource); ok {
				out = append(out, res)
			}
		}
	}
	return out
}
