package service

import (
	"context"
	"time"

	"erp_backend/internal/inventory/repository"
	"erp_backend/internal/inventory/transport"
	"erp_backend/platform/apperr"

	"github.com/google/uuid"
)

// Service provides business logic for items and raw materials
type Service struct {
	repo *repository.Repository
}

// New creates a new inventory service
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// =============================================================================
// Items
// =============================================================================

// CreateItem registers a new sellable item
func (s *Service) CreateItem(ctx context.Context, req transport.CreateItemRequest) (*transport.ItemResponse, error) {
	now := time.Now()
	it := repository.Item{
		ID:          uuid.New(),
		Name:        req.Name,
		Code:        req.Code,
		Description: nilIfEmpty(req.Description),
		PriceCents:  req.PriceCents,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateItem(ctx, &it); err != nil {
		return nil, err
	}
	return buildItemResponse(&it), nil
}

// GetItemByID retrieves one item
func (s *Service) GetItemByID(ctx context.Context, id uuid.UUID) (*transport.ItemResponse, error) {
	it, err := s.repo.GetItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return buildItemResponse(it), nil
}

// ListItems retrieves items matching an optional search
func (s *Service) ListItems(ctx context.Context, search string) ([]transport.ItemResponse, error) {
	items, err := s.repo.ListItems(ctx, search)
	if err != nil {
		return nil, err
	}

	resp := make([]transport.ItemResponse, len(items))
	for i := range items {
		resp[i] = *buildItemResponse(&items[i])
	}
	return resp, nil
}

// UpdateItem applies partial changes to an item
func (s *Service) UpdateItem(ctx context.Context, id uuid.UUID, req transport.UpdateItemRequest) (*transport.ItemResponse, error) {
	it, err := s.repo.GetItemByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		it.Name = *req.Name
	}
	if req.Code != nil {
		it.Code = *req.Code
	}
	if req.Description != nil {
		it.Description = req.Description
	}
	if req.PriceCents != nil {
		it.PriceCents = *req.PriceCents
	}
	it.UpdatedAt = time.Now()

	if err := s.repo.UpdateItem(ctx, it); err != nil {
		return nil, err
	}
	return buildItemResponse(it), nil
}

// DeleteItem removes an item
func (s *Service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteItem(ctx, id)
}

// =============================================================================
// Raw Materials
// =============================================================================

// CreateRawMaterial registers a raw material master record. When an
// owning item is named it must exist.
func (s *Service) CreateRawMaterial(ctx context.Context, req transport.CreateRawMaterialRequest) (*transport.RawMaterialResponse, error) {
	if req.ItemID != nil {
		if _, err := s.repo.GetItemByID(ctx, *req.ItemID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	rm := repository.RawMaterial{
		ID:             uuid.New(),
		ItemID:         req.ItemID,
		SupplierID:     req.SupplierID,
		Name:           req.Name,
		Code:           req.Code,
		PriceCents:     req.PriceCents,
		AddInQuotation: req.AddInQuotation,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.CreateRawMaterial(ctx, &rm); err != nil {
		return nil, err
	}
	return buildRawMaterialResponse(&rm), nil
}

// GetRawMaterialByID retrieves one raw material
func (s *Service) GetRawMaterialByID(ctx context.Context, id uuid.UUID) (*transport.RawMaterialResponse, error) {
	rm, err := s.repo.GetRawMaterialByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return buildRawMaterialResponse(rm), nil
}

// ListRawMaterials retrieves raw materials, optionally scoped to one
// item or limited to those flagged for quotation use
func (s *Service) ListRawMaterials(ctx context.Context, req transport.ListRawMaterialsRequest) ([]transport.RawMaterialResponse, error) {
	var itemID *uuid.UUID
	if req.ItemID != "" {
		parsed, err := uuid.Parse(req.ItemID)
		if err != nil {
			return nil, apperr.BadRequest("invalid itemId format")
		}
		itemID = &parsed
	}

	materials, err := s.repo.ListRawMaterials(ctx, itemID, req.QuotationOnly)
	if err != nil {
		return nil, err
	}

	resp := make([]transport.RawMaterialResponse, len(materials))
	for i := range materials {
		resp[i] = *buildRawMaterialResponse(&materials[i])
	}
	return resp, nil
}

// UpdateRawMaterial applies partial changes to a raw material
func (s *Service) UpdateRawMaterial(ctx context.Context, id uuid.UUID, req transport.UpdateRawMaterialRequest) (*transport.RawMaterialResponse, error) {
	rm, err := s.repo.GetRawMaterialByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ItemID != nil {
		if _, err := s.repo.GetItemByID(ctx, *req.ItemID); err != nil {
			return nil, err
		}
		rm.ItemID = req.ItemID
	}
	if req.SupplierID != nil {
		rm.SupplierID = req.SupplierID
	}
	if req.Name != nil {
		rm.Name = *req.Name
	}
	if req.Code != nil {
		rm.Code = *req.Code
	}
	if req.PriceCents != nil {
		rm.PriceCents = *req.PriceCents
	}
	if req.AddInQuotation != nil {
		rm.AddInQuotation = *req.AddInQuotation
	}
	rm.UpdatedAt = time.Now()

	if err := s.repo.UpdateRawMaterial(ctx, rm); err != nil {
		return nil, err
	}
	return buildRawMaterialResponse(rm), nil
}

// DeleteRawMaterial removes a raw material
func (s *Service) DeleteRawMaterial(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteRawMaterial(ctx, id)
}

func buildItemResponse(it *repository.Item) *transport.ItemResponse {
	return &transport.ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Code:        it.Code,
		Description: it.Description,
		PriceCents:  it.PriceCents,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

func buildRawMaterialResponse(rm *repository.RawMaterial) *transport.RawMaterialResponse {
	return &transport.RawMaterialResponse{
		ID:             rm.ID,
		ItemID:         rm.ItemID,
		SupplierID:     rm.SupplierID,
		Name:           rm.Name,
		Code:           rm.Code,
		PriceCents:     rm.PriceCents,
		AddInQuotation: rm.AddInQuotation,
		CreatedAt:      rm.CreatedAt,
		UpdatedAt:      rm.UpdatedAt,
	}
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
