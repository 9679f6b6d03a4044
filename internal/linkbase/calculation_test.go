package linkbase

import (
	"testing"

	"xbrlcore/internal/xbrlns"
)

func TestCalculationsPriorityWins(t *testing.T) {
	calc := NewCalculation()
	a := concept("A", "Assets")
	b := concept("B", "Current")
	locA := locatorFor(t, calc.Linkbase, a, testRole)
	locB := locatorFor(t, calc.Linkbase, b, testRole)

	low := addArc(t, calc.Linkbase, locA, locB, xbrlns.ArcroleSummationItem, testRole)
	low.Weight = 1
	high := addArc(t, calc.Linkbase, locA, locB, xbrlns.ArcroleSummationItem, testRole)
	high.Weight = 2
	high.Priority = 1

	rules := calc.Calculations(a, testRole)
	if len(rules) != 1 {
		t.Fatalf("expected 1 calculation rule, got %d", len(rules))
	}
	if weight, ok := rules[b]; !ok || weight != 2.0 {
		t.Errorf("expected {B -> 2.0}, got %v", rules)
	}
}

func TestCalculationsMultipleSummands(t *testing.T) {
	calc := NewCalculation()
	assets := concept("A", "Assets")
	current := concept("C", "Current")
	nonCurrent := concept("N", "NonCurrent")

	locAssets := locatorFor(t, calc.Linkbase, assets, testRole)
	locCurrent := locatorFor(t, calc.Linkbase, current, testRole)
	locNonCurrent := locatorFor(t, calc.Linkbase, nonCurrent, testRole)

	addArc(t, calc.Linkbase, locAssets, locCurrent, xbrlns.ArcroleSummationItem, testRole)
	weighted := addArc(t, calc.Linkbase, locAssets, locNonCurrent, xbrlns.ArcroleSummationItem, testRole)
	weighted.Weight = -1

	rules := calc.Calculations(assets, testRole)
	if len(rules) != 2 {
		t.Fatalf("expected 2 calculation rules, got %d", len(rules))
	}
	if rules[current] != 1 || rules[nonCurrent] != -1 {
		t.Errorf("unexpected weights: %v", rules)
	}

	if rules := calc.Calculations(current, testRole); len(rules) != 0 {
		t.Errorf("expected no rules for a leaf concept, got %v", rules)
	}
}
