package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreateSectionRequest is the request body for creating a section
type CreateSectionRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Sequence int    `json:"sequence" validate:"min=0"`
}

// UpdateSectionRequest is the request body for updating a section
type UpdateSectionRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=255"`
	Sequence *int    `json:"sequence" validate:"omitempty,min=0"`
}

// SectionResponse is the outward-facing section shape
type SectionResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Sequence  int       `json:"sequence"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateContentRequest is the request body for creating a content block
type CreateContentRequest struct {
	SectionID *uuid.UUID `json:"sectionId"`
	Title     string     `json:"title" validate:"required,min=1,max=500"`
	Body      string     `json:"body" validate:"required"`
	ImageName string     `json:"imageName" validate:"omitempty,max=500"`
	ImageType string     `json:"imageType" validate:"omitempty,max=100"`
	Sequence  int        `json:"sequence" validate:"min=0"`
}

// UpdateContentRequest is the request body for updating a content block
type UpdateContentRequest struct {
	SectionID *uuid.UUID `json:"sectionId"`
	Title     *string    `json:"title" validate:"omitempty,min=1,max=500"`
	Body      *string    `json:"body"`
	ImageName *string    `json:"imageName" validate:"omitempty,max=500"`
	ImageType *string    `json:"imageType" validate:"omitempty,max=100"`
	Sequence  *int       `json:"sequence" validate:"omitempty,min=0"`
}

// ContentResponse is the outward-facing content shape
type ContentResponse struct {
	ID        uuid.UUID  `json:"id"`
	SectionID *uuid.UUID `json:"sectionId"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	ImageName *string    `json:"imageName"`
	ImageType *string    `json:"imageType"`
	Sequence  int        `json:"sequence"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
