package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreateCatalogRequest is the request body for registering catalog
// metadata
type CreateCatalogRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=255"`
	FileName      string `json:"fileName" validate:"omitempty,max=500"`
	FileType      string `json:"fileType" validate:"omitempty,max=100"`
	FilePath      string `json:"filePath" validate:"omitempty,max=1000"`
	FileSizeBytes *int64 `json:"fileSizeBytes" validate:"omitempty,min=0"`
	Description   string `json:"description" validate:"omitempty,max=2000"`
}

// UpdateCatalogRequest is the request body for updating catalog metadata
type UpdateCatalogRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=255"`
	FileName      *string `json:"fileName" validate:"omitempty,max=500"`
	FileType      *string `json:"fileType" validate:"omitempty,max=100"`
	FilePath      *string `json:"filePath" validate:"omitempty,max=1000"`
	FileSizeBytes *int64  `json:"fileSizeBytes" validate:"omitempty,min=0"`
	Description   *string `json:"description" validate:"omitempty,max=2000"`
}

// CatalogResponse is the outward-facing catalog shape
type CatalogResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	FileName      *string   `json:"fileName"`
	FileType      *string   `json:"fileType"`
	FilePath      *string   `json:"filePath"`
	FileSizeBytes *int64    `json:"fileSizeBytes"`
	Description   *string   `json:"description"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
