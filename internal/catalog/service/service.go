package service

import (
	"context"
	"time"

	"erp_backend/internal/catalog/repository"
	"erp_backend/internal/catalog/transport"

	"github.com/google/uuid"
)

// Service provides business logic for catalog metadata
type Service struct {
	repo *repository.Repository
}

// New creates a new catalog service
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// Create registers catalog metadata
func (s *Service) Create(ctx context.Context, req transport.CreateCatalogRequest) (*transport.CatalogResponse, error) {
	now := time.Now()
	c := repository.Catalog{
		ID:            uuid.New(),
		Name:          req.Name,
		FileName:      nilIfEmpty(req.FileName),
		FileType:      nilIfEmpty(req.FileType),
		FilePath:      nilIfEmpty(req.FilePath),
		FileSizeBytes: req.FileSizeBytes,
		Description:   nilIfEmpty(req.Description),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, &c); err != nil {
		return nil, err
	}
	return buildResponse(&c), nil
}

// GetByID retrieves a catalog
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*transport.CatalogResponse, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return buildResponse(c), nil
}

// List retrieves all catalogs
func (s *Service) List(ctx context.Context) ([]transport.CatalogResponse, error) {
	catalogs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]transport.CatalogResponse, len(catalogs))
	for i := range catalogs {
		resp[i] = *buildResponse(&catalogs[i])
	}
	return resp, nil
}

// GetByIDs retrieves the catalogs matching the given ids, skipping any
// that no longer exist
func (s *Service) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]transport.CatalogResponse, error) {
	catalogs, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	resp := make([]transport.CatalogResponse, len(catalogs))
	for i := range catalogs {
		resp[i] = *buildResponse(&catalogs[i])
	}
	return resp, nil
}

// Update applies partial changes to catalog metadata
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateCatalogRequest) (*transport.CatalogResponse, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.FileName != nil {
		c.FileName = req.FileName
	}
	if req.FileType != nil {
		c.FileType = req.FileType
	}
	if req.FilePath != nil {
		c.FilePath = req.FilePath
	}
	if req.FileSizeBytes != nil {
		c.FileSizeBytes = req.FileSizeBytes
	}
	if req.Description != nil {
		c.Description = req.Description
	}
	c.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return buildResponse(c), nil
}

// Delete removes a catalog
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func buildResponse(c *repository.Catalog) *transport.CatalogResponse {
	return &transport.CatalogResponse{
		ID:            c.ID,
		Name:          c.Name,
		FileName:      c.FileName,
		FileType:      c.FileType,
		FilePath:      c.FilePath,
		FileSizeBytes: c.FileSizeBytes,
		Description:   c.Description,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
