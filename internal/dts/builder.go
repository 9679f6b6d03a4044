package dts

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"xbrlcore/internal/errors"
	"xbrlcore/internal/linkbase"
	"xbrlcore/internal/logging"
	"xbrlcore/internal/taxonomy"
	"xbrlcore/internal/xbrlns"
	"xbrlcore/internal/xlink"
	"xbrlcore/internal/xmldom"
)

// Builder discovers and assembles a DTS from a root schema file. A Builder
// is single-use per Build call and not safe for concurrent use.
type Builder struct {
	// StrictPresentationParents rejects presentation networks where a
	// concept has more than one parent in a link role.
	StrictPresentationParents bool

	logger *logging.Logger

	basePath string
	docs     map[string]*xmldom.Document
	order    []string
}

// NewBuilder creates a builder logging through the given logger. A nil
// logger discards output.
func NewBuilder(logger *logging.Logger) *Builder {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Builder{logger: logger}
}

// Build creates the DTS rooted at the given schema file, loading every
// transitively imported schema and the linkbases they reference.
func (b *Builder) Build(rootSchemaPath string) (*DTS, error) {
	b.basePath = filepath.Dir(rootSchemaPath)
	b.docs = make(map[string]*xmldom.Document)
	b.order = nil

	rootName := filepath.Base(rootSchemaPath)
	b.logger.Info("Processing discoverable taxonomy set", map[string]interface{}{"root": rootName})

	if err := b.collectSchemas(rootName); err != nil {
		return nil, err
	}

	d := newDTS()
	if err := b.buildSchemas(d); err != nil {
		return nil, err
	}
	d.top = d.Schema(rootName)

	d.presentation = linkbase.NewPresentation()
	d.presentation.StrictParents = b.StrictPresentationParents
	d.label = linkbase.NewLabel()
	d.definition = linkbase.NewDefinition()
	d.calculation = linkbase.NewCalculation()

	kinds := []struct {
		refRole string
		linkEl  string
		arcEl   string
		store   *linkbase.Linkbase
	}{
		{xbrlns.PresentationLinkbaseRef, "presentationLink", "presentationArc", d.presentation.Linkbase},
		{xbrlns.LabelLinkbaseRef, "labelLink", "labelArc", d.label.Linkbase},
		{xbrlns.DefinitionLinkbaseRef, "definitionLink", "definitionArc", d.definition.Linkbase},
		{xbrlns.CalculationLinkbaseRef, "calculationLink", "calculationArc", d.calculation.Linkbase},
	}

	for _, k := range kinds {
		files, err := b.linkbaseFiles(k.refRole)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if err := b.buildLinkbaseElements(d, k.store, f, k.linkEl); err != nil {
				return nil, err
			}
		}
		for _, f := range files {
			if err := b.buildLinkbaseArcs(k.store, f, k.linkEl, k.arcEl); err != nil {
				return nil, err
			}
		}
	}

	if err := d.presentation.Build(); err != nil {
		return nil, err
	}
	if err := d.definition.Build(d); err != nil {
		return nil, err
	}

	d.presentation.Freeze()
	d.label.Freeze()
	d.definition.Freeze()
	d.calculation.Freeze()

	b.logger.Info("DTS built", map[string]interface{}{
		"root":     rootName,
		"schemas":  len(d.schemas),
		"concepts": d.NumConcepts(),
	})
	return d, nil
}

// collectSchemas walks the import graph breadth-first from the root,
// deduplicating by file name. Import cycles are tolerated.
func (b *Builder) collectSchemas(rootName string) error {
	queue := []string{rootName}
	visited := map[string]bool{rootName: true}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		doc, err := xmldom.ParseFile(filepath.Join(b.basePath, name))
		if err != nil {
			return errors.NewXMLParseError(name, err)
		}
		b.docs[name] = doc
		b.order = append(b.order, name)

		for _, imp := range doc.Root.ChildrenNS(xbrlns.XSD, "import") {
			loc := imp.Attr("", "schemaLocation")
			if loc == "" {
				continue
			}
			impName := filepath.Base(loc)
			if !visited[impName] {
				visited[impName] = true
				queue = append(queue, impName)
			}
		}
	}
	return nil
}

func (b *Builder) buildSchemas(d *DTS) error {
	for _, name := range b.order {
		b.logger.Info("Processing taxonomy schema", map[string]interface{}{"schema": name})
		doc := b.docs[name]
		root := doc.Root

		schema := taxonomy.NewSchema(name)
		targetNS := root.Attr("", "targetNamespace")
		schema.NamespaceURI = targetNS
		schema.NamespacePrefix = declaredPrefix(root, targetNS)
		if schema.NamespacePrefix == "" {
			schema.NamespacePrefix = "ns_" + targetNS[strings.LastIndex(targetNS, "/")+1:]
		}

		for _, imp := range root.ChildrenNS(xbrlns.XSD, "import") {
			if loc := imp.Attr("", "schemaLocation"); loc != "" {
				schema.Imports = append(schema.Imports, filepath.Base(loc))
			}
		}

		for _, el := range root.ChildrenNS(xbrlns.XSD, "element") {
			if el.Attr("", "id") == "" {
				continue
			}
			concept := &taxonomy.Concept{
				Name:              el.Attr("", "name"),
				ID:                el.Attr("", "id"),
				Type:              expandQName(el.Attr("", "type"), el),
				SubstitutionGroup: expandQName(el.Attr("", "substitutionGroup"), el),
				Abstract:          el.Attr("", "abstract") == "true",
				Nillable:          el.Attr("", "nillable") == "true",
				TypedDomainRef:    el.Attr(xbrlns.XBRLDT, "typedDomainRef"),
			}
			switch el.Attr(xbrlns.XBRLI, "periodType") {
			case "instant":
				concept.PeriodType = taxonomy.PeriodInstant
			case "duration":
				concept.PeriodType = taxonomy.PeriodDuration
			}
			if err := schema.AddConcept(concept); err != nil {
				return errors.NewTaxonomyCreationError(err.Error())
			}
		}

		if err := d.addSchema(schema); err != nil {
			return err
		}
	}
	return nil
}

// declaredPrefix returns the prefix bound to the given namespace URI on the
// element, "" when only the default declaration (or none) binds it.
func declaredPrefix(el *xmldom.Element, uri string) string {
	for prefix, declared := range el.Declarations() {
		if declared == uri && prefix != "" {
			return prefix
		}
	}
	return ""
}

// expandQName resolves a lexical QName against the namespace scope of el
// into the expanded "uri#local" form.
func expandQName(q string, el *xmldom.Element) string {
	if q == "" {
		return ""
	}
	prefix, local, ok := strings.Cut(q, ":")
	if !ok {
		return xbrlns.Expand(el.NamespaceForPrefix(""), q)
	}
	return xbrlns.Expand(el.NamespaceForPrefix(prefix), local)
}

// linkbaseFiles returns the linkbase documents referenced with the given
// xlink:role across all schemas, in discovery order, parsed and memoized.
func (b *Builder) linkbaseFiles(refRole string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, name := range b.order {
		root := b.docs[name].Root
		annotation := root.ChildNS(xbrlns.XSD, "annotation")
		if annotation == nil {
			continue
		}
		appinfo := annotation.ChildNS(xbrlns.XSD, "appinfo")
		if appinfo == nil {
			continue
		}
		for _, ref := range appinfo.ChildrenNS(xbrlns.Link, "linkbaseRef") {
			if ref.Attr(xbrlns.XLink, "role") != refRole {
				continue
			}
			href := ref.Attr(xbrlns.XLink, "href")
			if href == "" || seen[href] {
				continue
			}
			seen[href] = true

			if _, ok := b.docs[href]; !ok {
				b.logger.Info("Building linkbase document", map[string]interface{}{"linkbase": href})
				doc, err := xmldom.ParseFile(filepath.Join(b.basePath, href))
				if err != nil {
					return nil, errors.NewXMLParseError(href, err)
				}
				b.docs[href] = doc
			}
			files = append(files, href)
		}
	}
	return files, nil
}

// buildLinkbaseElements runs the locator/resource pass over one linkbase
// file.
func (b *Builder) buildLinkbaseElements(d *DTS, store *linkbase.Linkbase, file, linkEl string) error {
	for _, link := range b.docs[file].Root.ChildrenNS(xbrlns.Link, linkEl) {
		elr := link.Attr(xbrlns.XLink, "role")

		for _, el := range link.Children() {
			switch el.Attr(xbrlns.XLink, "type") {
			case "locator":
				label := el.Attr(xbrlns.XLink, "label")
				if label == "" {
					return errors.NewTaxonomyCreationError(fmt.Sprintf(
						"locator without xlink:label in linkbase %s", file))
				}
				loc := xlink.NewLocator(label, file)
				loc.SetExtendedLinkRole(elr)
				loc.RoleAttr = el.Attr(xbrlns.XLink, "role")
				loc.TitleAttr = el.Attr(xbrlns.XLink, "title")
				loc.IDAttr = el.Attr("", "id")

				href := el.Attr(xbrlns.XLink, "href")
				if href == "" {
					return errors.NewTaxonomyCreationError(fmt.Sprintf(
						"locator %s without xlink:href in linkbase %s", label, file))
				}
				// href has the form taxonomy#elementID; only the id matters.
				id := href[strings.Index(href, "#")+1:]
				if concept := d.ConceptByID(id); concept != nil {
					loc.Concept = concept
				} else if res := store.Resource(id); res != nil {
					loc.Resource = res
				} else {
					return errors.NewTaxonomyCreationError(fmt.Sprintf(
						"locator target %q cannot be resolved in linkbase %s", id, file))
				}
				if err := store.AddExtendedLinkElement(loc); err != nil {
					return errors.NewTaxonomyCreationError(err.Error())
				}

			case "resource":
				label := el.Attr(xbrlns.XLink, "label")
				if label == "" {
					return errors.NewTaxonomyCreationError(fmt.Sprintf(
						"resource without xlink:label in linkbase %s", file))
				}
				res := xlink.NewResource(label, file)
				res.SetExtendedLinkRole(elr)
				res.RoleAttr = el.Attr(xbrlns.XLink, "role")
				res.TitleAttr = el.Attr(xbrlns.XLink, "title")
				res.IDAttr = el.Attr("", "id")
				res.Lang = el.Attr(xbrlns.XML, "lang")
				res.Value = el.Text()
				if err := store.AddExtendedLinkElement(res); err != nil {
					return errors.NewTaxonomyCreationError(err.Error())
				}
			}
		}
	}
	return nil
}

// buildLinkbaseArcs runs the arc pass over one linkbase file. Endpoints may
// resolve one-to-many; an arc is created for each endpoint pair.
func (b *Builder) buildLinkbaseArcs(store *linkbase.Linkbase, file, linkEl, arcEl string) error {
	for _, link := range b.docs[file].Root.ChildrenNS(xbrlns.Link, linkEl) {
		elr := link.Attr(xbrlns.XLink, "role")

		for _, el := range link.ChildrenNS(xbrlns.Link, arcEl) {
			fromElements := store.ExtendedLinkElements(el.Attr(xbrlns.XLink, "from"), elr, file)
			toElements := store.ExtendedLinkElements(el.Attr(xbrlns.XLink, "to"), elr, file)

			for _, from := range fromElements {
				for _, to := range toElements {
					arc := xlink.NewArc(elr)
					arc.Source = from
					arc.Target = to
					arc.Arcrole = el.Attr(xbrlns.XLink, "arcrole")
					arc.TargetRole = el.Attr(xbrlns.XBRLDT, "targetRole")
					arc.ContextElement = xlink.ContextElement(el.Attr(xbrlns.XBRLDT, "contextElement"))

					if v := el.Attr("", "order"); v != "" {
						order, err := strconv.ParseFloat(v, 64)
						if err != nil {
							return errors.NewTaxonomyCreationError(fmt.Sprintf(
								"invalid order %q on %s in linkbase %s", v, arcEl, file))
						}
						arc.Order = order
					}
					if v := el.Attr("", "use"); v != "" {
						arc.UseAttr = xlink.Use(v)
					}
					if v := el.Attr("", "priority"); v != "" {
						priority, err := strconv.Atoi(v)
						if err != nil {
							return errors.NewTaxonomyCreationError(fmt.Sprintf(
								"invalid priority %q on %s in linkbase %s", v, arcEl, file))
						}
						arc.Priority = priority
					}
					if v := el.Attr("", "weight"); v != "" {
						weight, err := strconv.ParseFloat(v, 64)
						if err != nil {
							return errors.NewTaxonomyCreationError(fmt.Sprintf(
								"invalid weight %q on %s in linkbase %s", v, arcEl, file))
						}
						arc.Weight = weight
					}
					if el.Attr(xbrlns.XBRLDT, "usable") == "false" {
						if loc, ok := to.(*xlink.Locator); ok {
							loc.Usable = false
						}
					}

					arc.Attributes = make(map[string]string)
					for _, a := range el.Attrs() {
						arc.Attributes[a.Local] = a.Value
					}

					if err := store.AddArc(arc); err != nil {
						return errors.NewTaxonomyCreationError(err.Error())
					}
				}
			}
		}
	}
	return nil
}
