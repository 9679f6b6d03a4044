package linkbase

import (
	"testing"

	"xbrlcore/internal/taxonomy"
	"xbrlcore/internal/xbrlns"
)

// buildBalanceTree wires the presentation network
//
//	Root (abstract)
//	  Assets
//	    Current
//	    NonCurrent
//	  Liabilities
func buildBalanceTree(t *testing.T) (*Presentation, map[string]*taxonomy.Concept) {
	t.Helper()
	p := NewPresentation()

	concepts := map[string]*taxonomy.Concept{
		"Root":        {ID: "R", Name: "Root", SchemaName: "t.xsd", Abstract: true},
		"Assets":      {ID: "A", Name: "Assets", SchemaName: "t.xsd"},
		"Current":     {ID: "C", Name: "Current", SchemaName: "t.xsd"},
		"NonCurrent":  {ID: "N", Name: "NonCurrent", SchemaName: "t.xsd"},
		"Liabilities": {ID: "L", Name: "Liabilities", SchemaName: "t.xsd"},
	}

	locRoot := locatorFor(t, p.Linkbase, concepts["Root"], testRole)
	locAssets := locatorFor(t, p.Linkbase, concepts["Assets"], testRole)
	locCurrent := locatorFor(t, p.Linkbase, concepts["Current"], testRole)
	locNonCurrent := locatorFor(t, p.Linkbase, concepts["NonCurrent"], testRole)
	locLiabilities := locatorFor(t, p.Linkbase, concepts["Liabilities"], testRole)

	addArc(t, p.Linkbase, locRoot, locAssets, xbrlns.ArcroleParentChild, testRole).Order = 1
	addArc(t, p.Linkbase, locRoot, locLiabilities, xbrlns.ArcroleParentChild, testRole).Order = 2
	addArc(t, p.Linkbase, locAssets, locCurrent, xbrlns.ArcroleParentChild, testRole).Order = 1
	addArc(t, p.Linkbase, locAssets, locNonCurrent, xbrlns.ArcroleParentChild, testRole).Order = 2

	if err := p.Build(); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return p, concepts
}

func TestPresentationTree(t *testing.T) {
	p, concepts := buildBalanceTree(t)

	root := p.ElementFor(concepts["Root"], testRole)
	if root == nil {
		t.Fatal("missing presentation element for Root")
	}
	if root.Level != 1 {
		t.Errorf("root level = %d, want 1", root.Level)
	}
	if root.Parent != nil {
		t.Error("root must have no parent")
	}
	if root.NumSuccessorAtDeepestLevel != 3 {
		t.Errorf("root leaf count = %d, want 3", root.NumSuccessorAtDeepestLevel)
	}

	// level invariant: each element is one below its parent
	for _, name := range []string{"Assets", "Current", "NonCurrent", "Liabilities"} {
		elem := p.ElementFor(concepts[name], testRole)
		if elem == nil {
			t.Fatalf("missing presentation element for %s", name)
		}
		parent := p.ElementFor(elem.Parent, testRole)
		if elem.Level != parent.Level+1 {
			t.Errorf("%s: level = %d, want parent level %d + 1", name, elem.Level, parent.Level)
		}
	}

	assets := p.ElementFor(concepts["Assets"], testRole)
	if len(assets.Successors) != 2 ||
		assets.Successors[0].Name != "Current" || assets.Successors[1].Name != "NonCurrent" {
		t.Errorf("unexpected successors for Assets: %v", assets.Successors)
	}
	if assets.NumSuccessorAtDeepestLevel != 2 {
		t.Errorf("Assets leaf count = %d, want 2", assets.NumSuccessorAtDeepestLevel)
	}

	roots := p.Roots(testRole)
	if len(roots) != 1 || roots[0].Concept.Name != "Root" {
		t.Errorf("unexpected roots: %v", roots)
	}
}

func TestPresentationTraversalOrder(t *testing.T) {
	p, concepts := buildBalanceTree(t)

	ordered := p.ElementsForTaxonomy("", testRole)
	var names []string
	for _, e := range ordered {
		names = append(names, e.Concept.Name)
	}
	want := []string{"Root", "Assets", "Current", "NonCurrent", "Liabilities"}
	if len(names) != len(want) {
		t.Fatalf("traversal returned %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("traversal returned %v, want %v", names, want)
		}
	}

	subtree := p.SubtreeFor(concepts["Assets"], testRole)
	if len(subtree) != 3 || subtree[0].Concept.Name != "Assets" {
		t.Errorf("unexpected subtree for Assets: %v", subtree)
	}
}

func TestPresentationDeepestLevelPositions(t *testing.T) {
	p, concepts := buildBalanceTree(t)

	// the abstract root gets no deepest-level position, the others count up
	// in depth-first order
	root := p.ElementFor(concepts["Root"], testRole)
	if root.PositionDeepestLevel != -1 {
		t.Errorf("abstract root position = %d, want -1", root.PositionDeepestLevel)
	}
	assets := p.ElementFor(concepts["Assets"], testRole)
	current := p.ElementFor(concepts["Current"], testRole)
	nonCurrent := p.ElementFor(concepts["NonCurrent"], testRole)
	liabilities := p.ElementFor(concepts["Liabilities"], testRole)
	if assets.PositionDeepestLevel != 0 || current.PositionDeepestLevel != 1 ||
		nonCurrent.PositionDeepestLevel != 2 || liabilities.PositionDeepestLevel != 3 {
		t.Errorf("unexpected deepest-level positions: %d %d %d %d",
			assets.PositionDeepestLevel, current.PositionDeepestLevel,
			nonCurrent.PositionDeepestLevel, liabilities.PositionDeepestLevel)
	}
}

func TestPresentationStrictParents(t *testing.T) {
	p := NewPresentation()
	p.StrictParents = true

	shared := concept("S", "Shared")
	parentOne := concept("P1", "ParentOne")
	parentTwo := concept("P2", "ParentTwo")

	locShared := locatorFor(t, p.Linkbase, shared, testRole)
	locOne := locatorFor(t, p.Linkbase, parentOne, testRole)
	locTwo := locatorFor(t, p.Linkbase, parentTwo, testRole)

	addArc(t, p.Linkbase, locOne, locShared, xbrlns.ArcroleParentChild, testRole)
	addArc(t, p.Linkbase, locTwo, locShared, xbrlns.ArcroleParentChild, testRole)

	if err := p.Build(); err == nil {
		t.Error("expected strict parent mode to reject a concept with two parents")
	}
}

func TestPresentationFirstParentWinsByDefault(t *testing.T) {
	p := NewPresentation()

	shared := concept("S", "Shared")
	parentOne := concept("P1", "ParentOne")
	parentTwo := concept("P2", "ParentTwo")

	locShared := locatorFor(t, p.Linkbase, shared, testRole)
	locOne := locatorFor(t, p.Linkbase, parentOne, testRole)
	locTwo := locatorFor(t, p.Linkbase, parentTwo, testRole)

	addArc(t, p.Linkbase, locOne, locShared, xbrlns.ArcroleParentChild, testRole)
	addArc(t, p.Linkbase, locTwo, locShared, xbrlns.ArcroleParentChild, testRole)

	if err := p.Build(); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	elem := p.ElementFor(shared, testRole)
	if elem.Parent == nil || elem.Parent.Name != "ParentOne" {
		t.Errorf("expected the first parent to win, got %v", elem.Parent)
	}
}
