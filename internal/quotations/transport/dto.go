package transport

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// QuotationStatus defines the lifecycle state of a quotation
type QuotationStatus string

const (
	QuotationStatusDraft     QuotationStatus = "DRAFT"
	QuotationStatusFinalized QuotationStatus = "FINALIZED"
	QuotationStatusExpired   QuotationStatus = "EXPIRED"
)

// =============================================================================
// Requests
// =============================================================================

// QuotationLineRequest is the input for a single line in a creation or
// full-replacement batch. ID references an existing persisted line when
// the client re-submits one; Removed is tri-state so an absent flag can
// be told apart from an explicit false.
type QuotationLineRequest struct {
	ID             *uuid.UUID `json:"id"`
	Description    string     `json:"description" validate:"required,min=1,max=2000"`
	Quantity       *int64     `json:"quantity" validate:"omitempty,min=0"`
	UnitPriceCents *int64     `json:"unitPriceCents" validate:"omitempty,min=0"`
	IsRawMaterial  bool       `json:"isRawMaterial"`
	ParentItemID   *uuid.UUID `json:"parentItemId"`
	RawID          *uuid.UUID `json:"rawId"`
	Removed        *bool      `json:"removed"`
	Sequence       *int       `json:"sequence" validate:"omitempty,min=0"`
}

// CreateQuotationRequest is the request body for creating a quotation
type CreateQuotationRequest struct {
	Name       string                 `json:"name" validate:"required,min=1,max=255"`
	Date       *time.Time             `json:"date"`
	ExpiryDate *time.Time             `json:"expiryDate"`
	CustomerID *uuid.UUID             `json:"customerId"`
	CatalogIDs []uuid.UUID            `json:"catalogIds"`
	Lines      []QuotationLineRequest `json:"lines" validate:"omitempty,dive"`
}

// UpdateQuotationRequest is the request body for updating a quotation.
// When Lines is present it is a full replacement of the line set; nil
// leaves the existing lines untouched.
type UpdateQuotationRequest struct {
	Name       *string                 `json:"name" validate:"omitempty,min=1,max=255"`
	Date       *time.Time              `json:"date"`
	ExpiryDate *time.Time              `json:"expiryDate"`
	CustomerID *uuid.UUID              `json:"customerId"`
	CatalogIDs *[]uuid.UUID            `json:"catalogIds"`
	Lines      *[]QuotationLineRequest `json:"lines" validate:"omitempty,dive"`
}

// EditLineRequest is the request body for an in-place edit of one line.
// Only description, quantity and unit price can change this way.
type EditLineRequest struct {
	Description    *string `json:"description" validate:"omitempty,min=1,max=2000"`
	Quantity       *int64  `json:"quantity" validate:"omitempty,min=0"`
	UnitPriceCents *int64  `json:"unitPriceCents" validate:"omitempty,min=0"`
}

// ListQuotationsRequest defines the query parameters for listing quotations
type ListQuotationsRequest struct {
	Status    string `form:"status" validate:"omitempty,oneof=DRAFT FINALIZED EXPIRED"`
	Search    string `form:"search"`
	SortBy    string `form:"sortBy" validate:"omitempty,oneof=name status expiryDate createdAt"`
	SortOrder string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

// =============================================================================
// Responses
// =============================================================================

// QuotationLineResponse is the response shape for a single line. Money
// fields carry both the cent amount and an exact decimal rendering.
type QuotationLineResponse struct {
	ID             uuid.UUID  `json:"id"`
	Description    string     `json:"description"`
	Quantity       int64      `json:"quantity"`
	UnitPriceCents int64      `json:"unitPriceCents"`
	UnitPrice      string     `json:"unitPrice"`
	TotalCents     int64      `json:"totalCents"`
	Total          string     `json:"total"`
	IsRawMaterial  bool       `json:"isRawMaterial"`
	ParentItemID   *uuid.UUID `json:"parentItemId"`
	RawID          *uuid.UUID `json:"rawId"`
	Removed        bool       `json:"removed"`
	Sequence       int        `json:"sequence"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// CustomerSummary is the outward-facing view of an optional customer
type CustomerSummary struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email,omitempty"`
	Mobile string    `json:"mobile,omitempty"`
}

// CatalogSummary is the outward-facing view of a linked catalog
type CatalogSummary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	FileName string    `json:"fileName,omitempty"`
}

// QuotationResponse is the full quotation view. UnresolvedParents lists
// raw-material line ids that were persisted without a parent because no
// main item could be matched. A data-quality signal, not an error.
type QuotationResponse struct {
	ID                uuid.UUID               `json:"id"`
	Name              string                  `json:"name"`
	Date              *time.Time              `json:"date"`
	ExpiryDate        *time.Time              `json:"expiryDate"`
	Status            QuotationStatus         `json:"status"`
	Customer          *CustomerSummary        `json:"customer,omitempty"`
	Catalogs          []CatalogSummary        `json:"catalogs"`
	Lines             []QuotationLineResponse `json:"lines"`
	TotalCents        int64                   `json:"totalCents"`
	Total             string                  `json:"total"`
	UnresolvedParents []uuid.UUID             `json:"unresolvedParents,omitempty"`
	CreatedAt         time.Time               `json:"createdAt"`
	UpdatedAt         time.Time               `json:"updatedAt"`
}

// QuotationListResponse is the paginated list response
type QuotationListResponse struct {
	Items      []QuotationResponse `json:"items"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"pageSize"`
	TotalPages int                 `json:"totalPages"`
}

// SnapshotResponse is the response shape for an immutable finalize-time
// snapshot. Payload is the self-describing JSON document as written.
type SnapshotResponse struct {
	ID          uuid.UUID       `json:"id"`
	QuotationID uuid.UUID       `json:"quotationId"`
	Payload     json.RawMessage `json:"payload"`
	CreatedAt   time.Time       `json:"createdAt"`
}
