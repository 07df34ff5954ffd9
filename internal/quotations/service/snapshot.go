package service

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"erp_backend/internal/quotations/repository"

	"github.com/google/uuid"
)

// snapshotLine is one line as frozen into a snapshot payload. Money is
// rendered as exact decimal text so the document stands on its own
// without knowledge of the cent encoding.
type snapshotLine struct {
	ID            uuid.UUID  `json:"id"`
	Description   string     `json:"description"`
	Quantity      int64      `json:"quantity"`
	UnitPrice     string     `json:"unitPrice"`
	Total         string     `json:"total"`
	IsRawMaterial bool       `json:"isRawMaterial"`
	ParentItemID  *uuid.UUID `json:"parentItemId"`
	RawID         *uuid.UUID `json:"rawId"`
	Removed       bool       `json:"removed"`
	Sequence      int        `json:"sequence"`
}

// snapshotPayload is the self-describing document written at finalize
// time. It contains every line, removed ones included, in display order.
type snapshotPayload struct {
	QuotationID uuid.UUID      `json:"quotationId"`
	Name        string         `json:"name"`
	Status      string         `json:"status"`
	CapturedAt  time.Time      `json:"capturedAt"`
	Lines       []snapshotLine `json:"lines"`
}

// buildSnapshotPayload serializes the quotation's full line set into an
// immutable snapshot document, ordered by sequence.
func buildSnapshotPayload(q *repository.Quotation, lines []repository.QuotationLine, capturedAt time.Time) ([]byte, error) {
	ordered := make([]repository.QuotationLine, len(lines))
	copy(ordered, lines)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Sequence < ordered[j].Sequence
	})

	payload := snapshotPayload{
		QuotationID: q.ID,
		Name:        q.Name,
		Status:      "FINALIZED",
		CapturedAt:  capturedAt,
		Lines:       make([]snapshotLine, len(ordered)),
	}
	for i, l := range ordered {
		payload.Lines[i] = snapshotLine{
			ID:            l.ID,
			Description:   l.Description,
			Quantity:      l.Quantity,
			UnitPrice:     FormatCents(l.UnitPriceCents),
			Total:         FormatCents(l.TotalCents),
			IsRawMaterial: l.IsRawMaterial,
			ParentItemID:  l.ParentItemID,
			RawID:         l.RawID,
			Removed:       l.Removed,
			Sequence:      l.Sequence,
		}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize snapshot payload: %w", err)
	}
	return data, nil
}
