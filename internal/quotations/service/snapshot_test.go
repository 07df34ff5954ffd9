package service

import (
	"encoding/json"
	"testing"
	"time"

	"erp_backend/internal/quotations/repository"

	"github.com/google/uuid"
)

func TestBuildSnapshotPayload_IncludesRemovedLinesInOrder(t *testing.T) {
	q := &repository.Quotation{ID: uuid.New(), Name: "kitchen remodel"}
	parentID := uuid.New()

	lines := []repository.QuotationLine{
		{ID: uuid.New(), Description: "L2", Quantity: 1, UnitPriceCents: 5000, TotalCents: 5000, Removed: true, Sequence: 1},
		{ID: parentID, Description: "L1", Quantity: 3, UnitPriceCents: 3333, TotalCents: 9999, Removed: false, Sequence: 0},
		{ID: uuid.New(), Description: "L3", Quantity: 2, UnitPriceCents: 100, TotalCents: 200, IsRawMaterial: true, ParentItemID: &parentID, Removed: false, Sequence: 2},
	}

	capturedAt := time.Now()
	data, err := buildSnapshotPayload(q, lines, capturedAt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var payload snapshotPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}

	if payload.QuotationID != q.ID {
		t.Fatalf("expected quotation id %s, got %s", q.ID, payload.QuotationID)
	}
	if payload.Status != "FINALIZED" {
		t.Fatalf("expected status FINALIZED, got %s", payload.Status)
	}
	if len(payload.Lines) != 3 {
		t.Fatalf("expected 3 lines including the removed one, got %d", len(payload.Lines))
	}

	// Ordered by sequence regardless of input order
	if payload.Lines[0].Description != "L1" || payload.Lines[1].Description != "L2" || payload.Lines[2].Description != "L3" {
		t.Fatalf("lines out of order: %s, %s, %s",
			payload.Lines[0].Description, payload.Lines[1].Description, payload.Lines[2].Description)
	}

	// The removed line keeps its flag inside the snapshot
	if !payload.Lines[1].Removed {
		t.Fatal("expected L2 to stay removed in the snapshot")
	}

	// Money as exact decimal text
	if payload.Lines[0].UnitPrice != "33.33" || payload.Lines[0].Total != "99.99" {
		t.Fatalf("expected exact decimal text, got unitPrice=%s total=%s",
			payload.Lines[0].UnitPrice, payload.Lines[0].Total)
	}

	// Parent link survives serialization
	if payload.Lines[2].ParentItemID == nil || *payload.Lines[2].ParentItemID != parentID {
		t.Fatalf("expected parent %s, got %v", parentID, payload.Lines[2].ParentItemID)
	}
}

func TestBuildSnapshotPayload_ReflectsLinesAsGiven(t *testing.T) {
	// The payload is built from the line set read inside the finalize
	// transaction. An edit committed after an earlier read must show
	// up when the freshly read lines are handed over.
	q := &repository.Quotation{ID: uuid.New(), Name: "office fitout"}
	line := repository.QuotationLine{
		ID: uuid.New(), Description: "desks",
		Quantity: 2, UnitPriceCents: 10000, TotalCents: 20000,
	}

	if _, err := buildSnapshotPayload(q, []repository.QuotationLine{line}, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The edit that landed in between
	line.Quantity = 5
	line.TotalCents = 50000

	data, err := buildSnapshotPayload(q, []repository.QuotationLine{line}, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var payload snapshotPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if payload.Lines[0].Quantity != 5 {
		t.Fatalf("expected edited quantity 5, got %d", payload.Lines[0].Quantity)
	}
	if payload.Lines[0].Total != "500.00" {
		t.Fatalf("expected edited total 500.00, got %s", payload.Lines[0].Total)
	}
}

func TestBuildSnapshotPayload_EmptyLineSet(t *testing.T) {
	q := &repository.Quotation{ID: uuid.New(), Name: "empty"}

	data, err := buildSnapshotPayload(q, nil, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var payload snapshotPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if len(payload.Lines) != 0 {
		t.Fatalf("expected no lines, got %d", len(payload.Lines))
	}
}
