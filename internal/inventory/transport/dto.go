package transport

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Items
// =============================================================================

// CreateItemRequest is the request body for creating an item
type CreateItemRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Code        string `json:"code" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	PriceCents  int64  `json:"priceCents" validate:"min=0"`
}

// UpdateItemRequest is the request body for updating an item
type UpdateItemRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Code        *string `json:"code" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	PriceCents  *int64  `json:"priceCents" validate:"omitempty,min=0"`
}

// ItemResponse is the outward-facing item shape
type ItemResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description *string   `json:"description"`
	PriceCents  int64     `json:"priceCents"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// =============================================================================
// Raw Materials
// =============================================================================

// CreateRawMaterialRequest is the request body for creating a raw
// material master record
type CreateRawMaterialRequest struct {
	ItemID         *uuid.UUID `json:"itemId"`
	SupplierID     *uuid.UUID `json:"supplierId"`
	Name           string     `json:"name" validate:"required,min=1,max=255"`
	Code           string     `json:"code" validate:"required,min=1,max=100"`
	PriceCents     int64      `json:"priceCents" validate:"min=0"`
	AddInQuotation bool       `json:"addInQuotation"`
}

// UpdateRawMaterialRequest is the request body for updating a raw
// material master record
type UpdateRawMaterialRequest struct {
	ItemID         *uuid.UUID `json:"itemId"`
	SupplierID     *uuid.UUID `json:"supplierId"`
	Name           *string    `json:"name" validate:"omitempty,min=1,max=255"`
	Code           *string    `json:"code" validate:"omitempty,min=1,max=100"`
	PriceCents     *int64     `json:"priceCents" validate:"omitempty,min=0"`
	AddInQuotation *bool      `json:"addInQuotation"`
}

// ListRawMaterialsRequest defines query parameters for listing raw
// materials
type ListRawMaterialsRequest struct {
	ItemID        string `form:"itemId" validate:"omitempty,uuid"`
	QuotationOnly bool   `form:"quotationOnly"`
}

// RawMaterialResponse is the outward-facing raw material shape
type RawMaterialResponse struct {
	ID             uuid.UUID  `json:"id"`
	ItemID         *uuid.UUID `json:"itemId"`
	SupplierID     *uuid.UUID `json:"supplierId"`
	Name           string     `json:"name"`
	Code           string     `json:"code"`
	PriceCents     int64      `json:"priceCents"`
	AddInQuotation bool       `json:"addInQuotation"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}
