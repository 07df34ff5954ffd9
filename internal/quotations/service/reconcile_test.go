package service

import (
	"testing"

	"github.com/google/uuid"
)

func boolPtr(v bool) *bool { return &v }

func TestReconcileRemoved_ExplicitFlagWins(t *testing.T) {
	existingID := uuid.New()
	existing := map[uuid.UUID]bool{existingID: true}

	// Explicit false overrides the stored true
	if got := reconcileRemoved(boolPtr(false), &existingID, existing); got != false {
		t.Fatalf("expected explicit false to win, got %v", got)
	}
	// Explicit true on a brand-new line sticks
	if got := reconcileRemoved(boolPtr(true), nil, existing); got != true {
		t.Fatalf("expected explicit true to win, got %v", got)
	}
}

func TestReconcileRemoved_CarriesForwardStoredFlag(t *testing.T) {
	removedID := uuid.New()
	keptID := uuid.New()
	existing := map[uuid.UUID]bool{removedID: true, keptID: false}

	// Re-submitting a soft-deleted line without the flag must not
	// resurrect it
	if got := reconcileRemoved(nil, &removedID, existing); got != true {
		t.Fatalf("expected removed=true carried forward, got %v", got)
	}
	if got := reconcileRemoved(nil, &keptID, existing); got != false {
		t.Fatalf("expected removed=false carried forward, got %v", got)
	}
}

func TestReconcileRemoved_UnknownIDDefaultsFalse(t *testing.T) {
	staleID := uuid.New()
	existing := map[uuid.UUID]bool{uuid.New(): true}

	if got := reconcileRemoved(nil, &staleID, existing); got != false {
		t.Fatalf("expected stale id to default false, got %v", got)
	}
}

func TestReconcileRemoved_NewLineDefaultsFalse(t *testing.T) {
	if got := reconcileRemoved(nil, nil, map[uuid.UUID]bool{}); got != false {
		t.Fatalf("expected new line to default false, got %v", got)
	}
}
