package service

import (
	"testing"

	"github.com/google/uuid"
)

func TestResolveParentLink_ExplicitReferenceWinsOverPosition(t *testing.T) {
	// Batch: [MainA, RawX, MainB, RawY(parent=old id of MainA)]
	oldMainA := uuid.New()
	newMainA := uuid.New()
	newMainB := uuid.New()

	links := newMainItemLinks()
	links.remap[oldMainA] = newMainA
	links.byPosition[0] = newMainA
	links.byPosition[2] = newMainB

	// RawY at position 3 explicitly names MainA. MainB is nearer in the
	// batch but the explicit reference must win.
	got, ok := resolveParentLink(&oldMainA, 3, links)
	if !ok {
		t.Fatal("expected a resolved parent")
	}
	if got != newMainA {
		t.Fatalf("expected remapped MainA id %s, got %s", newMainA, got)
	}
}

func TestResolveParentLink_NearestPrecedingMainItem(t *testing.T) {
	newMainA := uuid.New()
	newMainB := uuid.New()

	links := newMainItemLinks()
	links.byPosition[0] = newMainA
	links.byPosition[2] = newMainB

	// RawX at position 1 gave no parent: nearest preceding main item is
	// MainA at position 0
	got, ok := resolveParentLink(nil, 1, links)
	if !ok {
		t.Fatal("expected a resolved parent")
	}
	if got != newMainA {
		t.Fatalf("expected MainA id %s, got %s", newMainA, got)
	}

	// A raw at position 3 resolves to MainB, the closer one
	got, ok = resolveParentLink(nil, 3, links)
	if !ok {
		t.Fatal("expected a resolved parent")
	}
	if got != newMainB {
		t.Fatalf("expected MainB id %s, got %s", newMainB, got)
	}
}

func TestResolveParentLink_StaleReferenceFallsBackToPosition(t *testing.T) {
	newMainA := uuid.New()
	staleRef := uuid.New() // references a main item absent from this batch

	links := newMainItemLinks()
	links.byPosition[0] = newMainA

	got, ok := resolveParentLink(&staleRef, 1, links)
	if !ok {
		t.Fatal("expected positional fallback to resolve")
	}
	if got != newMainA {
		t.Fatalf("expected MainA id %s, got %s", newMainA, got)
	}
}

func TestResolveParentLink_NoPrecedingMainItem(t *testing.T) {
	// Batch: [RawZ], no parent given, nothing precedes it
	links := newMainItemLinks()

	if _, ok := resolveParentLink(nil, 0, links); ok {
		t.Fatal("expected no resolution for a lone raw material")
	}
}

func TestResolveParentLink_RawBeforeFirstMainItem(t *testing.T) {
	links := newMainItemLinks()
	links.byPosition[1] = uuid.New() // main item comes after the raw

	if _, ok := resolveParentLink(nil, 0, links); ok {
		t.Fatal("expected no resolution, main items after the raw must not match")
	}
}
