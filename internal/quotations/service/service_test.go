package service

import (
	"testing"
	"time"

	"erp_backend/internal/quotations/repository"
	"erp_backend/internal/quotations/transport"
	"erp_backend/platform/logger"

	"github.com/google/uuid"
)

func newTestService() *Service {
	return New(nil, logger.New("development"))
}

func TestBuildReplacementLines_ConcreteScenario(t *testing.T) {
	// Batch: [MainA, RawX(no parent), MainB, RawY(parent=id-of-MainA)]
	oldMainA := uuid.New()
	svc := newTestService()

	batch := []transport.QuotationLineRequest{
		{ID: &oldMainA, Description: "MainA", Quantity: i64(1), UnitPriceCents: i64(10000)},
		{Description: "RawX", IsRawMaterial: true, Quantity: i64(2), UnitPriceCents: i64(500)},
		{Description: "MainB", Quantity: i64(1), UnitPriceCents: i64(20000)},
		{Description: "RawY", IsRawMaterial: true, ParentItemID: &oldMainA, Quantity: i64(3), UnitPriceCents: i64(250)},
	}

	mains, raws, unresolved := svc.buildReplacementLines(uuid.New(), batch, nil, time.Now())

	if len(mains) != 2 || len(raws) != 2 {
		t.Fatalf("expected 2 mains and 2 raws, got %d and %d", len(mains), len(raws))
	}
	if len(unresolved) != 0 {
		t.Fatalf("expected no resolution gaps, got %d", len(unresolved))
	}

	newMainA := mains[0].ID
	if mains[0].Description != "MainA" || mains[1].Description != "MainB" {
		t.Fatalf("mains out of order: %s, %s", mains[0].Description, mains[1].Description)
	}

	// RawX had no parent reference: nearest preceding main item is MainA
	if raws[0].ParentItemID == nil || *raws[0].ParentItemID != newMainA {
		t.Fatalf("RawX: expected parent %s, got %v", newMainA, raws[0].ParentItemID)
	}
	// RawY named MainA by its old id: the explicit reference wins over
	// MainB which sits closer in the batch
	if raws[1].ParentItemID == nil || *raws[1].ParentItemID != newMainA {
		t.Fatalf("RawY: expected remapped parent %s, got %v", newMainA, raws[1].ParentItemID)
	}

	// Main items never carry a parent
	for _, m := range mains {
		if m.ParentItemID != nil {
			t.Fatalf("main item %s has a parent", m.Description)
		}
	}
}

func TestBuildReplacementLines_LoneRawMaterialHasGap(t *testing.T) {
	svc := newTestService()

	batch := []transport.QuotationLineRequest{
		{Description: "RawZ", IsRawMaterial: true, Quantity: i64(1), UnitPriceCents: i64(100)},
	}

	mains, raws, unresolved := svc.buildReplacementLines(uuid.New(), batch, nil, time.Now())

	if len(mains) != 0 || len(raws) != 1 {
		t.Fatalf("expected 0 mains and 1 raw, got %d and %d", len(mains), len(raws))
	}
	if raws[0].ParentItemID != nil {
		t.Fatalf("expected null parent, got %v", raws[0].ParentItemID)
	}
	// The gap is reported, not fatal: the line is still persisted
	if len(unresolved) != 1 || unresolved[0] != raws[0].ID {
		t.Fatalf("expected the raw line flagged as unresolved, got %v", unresolved)
	}
}

func TestBuildReplacementLines_SequenceFollowsBatchOrder(t *testing.T) {
	svc := newTestService()

	batch := []transport.QuotationLineRequest{
		{Description: "first"},
		{Description: "second", IsRawMaterial: true},
		{Description: "third"},
	}

	mains, raws, _ := svc.buildReplacementLines(uuid.New(), batch, nil, time.Now())

	if mains[0].Sequence != 0 || raws[0].Sequence != 1 || mains[1].Sequence != 2 {
		t.Fatalf("expected sequences 0,1,2 by batch position, got %d,%d,%d",
			mains[0].Sequence, raws[0].Sequence, mains[1].Sequence)
	}
}

func TestBuildReplacementLines_ExplicitSequenceKept(t *testing.T) {
	svc := newTestService()
	seq := 42

	batch := []transport.QuotationLineRequest{
		{Description: "pinned", Sequence: &seq},
	}

	mains, _, _ := svc.buildReplacementLines(uuid.New(), batch, nil, time.Now())

	if mains[0].Sequence != 42 {
		t.Fatalf("expected explicit sequence 42, got %d", mains[0].Sequence)
	}
}

func TestBuildReplacementLines_CarriesRemovedFlagForward(t *testing.T) {
	svc := newTestService()
	quotationID := uuid.New()
	removedID := uuid.New()

	existing := []repository.QuotationLine{
		{ID: removedID, QuotationID: quotationID, Description: "soft-deleted line", Removed: true},
	}

	batch := []transport.QuotationLineRequest{
		// Re-submitted without the removed flag: must stay removed
		{ID: &removedID, Description: "soft-deleted line"},
		// Explicit restore
		{ID: &removedID, Description: "restored copy", Removed: boolPtr(false)},
	}

	mains, _, _ := svc.buildReplacementLines(quotationID, batch, existing, time.Now())

	if !mains[0].Removed {
		t.Fatal("expected removed flag carried forward")
	}
	if mains[1].Removed {
		t.Fatal("expected explicit removed=false to override")
	}
}

func TestBuildReplacementLines_TotalsRecomputed(t *testing.T) {
	svc := newTestService()

	batch := []transport.QuotationLineRequest{
		{Description: "line", Quantity: i64(3), UnitPriceCents: i64(3333)},
	}

	mains, _, _ := svc.buildReplacementLines(uuid.New(), batch, nil, time.Now())

	if mains[0].TotalCents != 9999 {
		t.Fatalf("expected total 9999, got %d", mains[0].TotalCents)
	}
}
