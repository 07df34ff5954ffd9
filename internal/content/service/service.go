package service

import (
	"context"
	"time"

	"erp_backend/internal/content/repository"
	"erp_backend/internal/content/transport"

	"github.com/google/uuid"
)

// Service provides business logic for sections and content blocks
type Service struct {
	repo *repository.Repository
}

// New creates a new content service
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// CreateSection creates a section
func (s *Service) CreateSection(ctx context.Context, req transport.CreateSectionRequest) (*transport.SectionResponse, error) {
	now := time.Now()
	sec := repository.Section{
		ID:        uuid.New(),
		Name:      req.Name,
		Sequence:  req.Sequence,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateSection(ctx, &sec); err != nil {
		return nil, err
	}
	return buildSectionResponse(&sec), nil
}

// ListSections retrieves all sections in display order
func (s *Service) ListSections(ctx context.Context) ([]transport.SectionResponse, error) {
	sections, err := s.repo.ListSections(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]transport.SectionResponse, len(sections))
	for i := range sections {
		resp[i] = *buildSectionResponse(&sections[i])
	}
	return resp, nil
}

// UpdateSection applies partial changes to a section
func (s *Service) UpdateSection(ctx context.Context, id uuid.UUID, req transport.UpdateSectionRequest) (*transport.SectionResponse, error) {
	sec, err := s.repo.GetSectionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		sec.Name = *req.Name
	}
	if req.Sequence != nil {
		sec.Sequence = *req.Sequence
	}
	sec.UpdatedAt = time.Now()

	if err := s.repo.UpdateSection(ctx, sec); err != nil {
		return nil, err
	}
	return buildSectionResponse(sec), nil
}

// DeleteSection removes a section
func (s *Service) DeleteSection(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteSection(ctx, id)
}

// CreateContent creates a content block. When a section is named it
// must exist.
func (s *Service) CreateContent(ctx context.Context, req transport.CreateContentRequest) (*transport.ContentResponse, error) {
	if req.SectionID != nil {
		if _, err := s.repo.GetSectionByID(ctx, *req.SectionID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	c := repository.Content{
		ID:        uuid.New(),
		SectionID: req.SectionID,
		Title:     req.Title,
		Body:      req.Body,
		ImageName: nilIfEmpty(req.ImageName),
		ImageType: nilIfEmpty(req.ImageType),
		Sequence:  req.Sequence,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateContent(ctx, &c); err != nil {
		return nil, err
	}
	return buildContentResponse(&c), nil
}

// ListContents retrieves content blocks, optionally scoped to a section
func (s *Service) ListContents(ctx context.Context, sectionID *uuid.UUID) ([]transport.ContentResponse, error) {
	contents, err := s.repo.ListContents(ctx, sectionID)
	if err != nil {
		return nil, err
	}

	resp := make([]transport.ContentResponse, len(contents))
	for i := range contents {
		resp[i] = *buildContentResponse(&contents[i])
	}
	return resp, nil
}

// UpdateContent applies partial changes to a content block
func (s *Service) UpdateContent(ctx context.Context, id uuid.UUID, req transport.UpdateContentRequest) (*transport.ContentResponse, error) {
	c, err := s.repo.GetContentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SectionID != nil {
		if _, err := s.repo.GetSectionByID(ctx, *req.SectionID); err != nil {
			return nil, err
		}
		c.SectionID = req.SectionID
	}
	if req.Title != nil {
		c.Title = *req.Title
	}
	if req.Body != nil {
		c.Body = *req.Body
	}
	if req.ImageName != nil {
		c.ImageName = req.ImageName
	}
	if req.ImageType != nil {
		c.ImageType = req.ImageType
	}
	if req.Sequence != nil {
		c.Sequence = *req.Sequence
	}
	c.UpdatedAt = time.Now()

	if err := s.repo.UpdateContent(ctx, c); err != nil {
		return nil, err
	}
	return buildContentResponse(c), nil
}

// DeleteContent removes a content block
func (s *Service) DeleteContent(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteContent(ctx, id)
}

func buildSectionResponse(s *repository.Section) *transport.SectionResponse {
	return &transport.SectionResponse{
		ID:        s.ID,
		Name:      s.Name,
		Sequence:  s.Sequence,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func buildContentResponse(c *repository.Content) *transport.ContentResponse {
	return &transport.ContentResponse{
		ID:        c.ID,
		SectionID: c.SectionID,
		Title:     c.Title,
		Body:      c.Body,
		ImageName: c.ImageName,
		ImageType: c.ImageType,
		Sequence:  c.Sequence,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
