package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"erp_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Section groups content blocks under a named heading with a display
// order
type Section struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Sequence  int       `db:"sequence"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Content is one block of display text inside a section. Image fields
// are metadata only; the bytes live in external storage.
type Content struct {
	ID        uuid.UUID  `db:"id"`
	SectionID *uuid.UUID `db:"section_id"`
	Title     string     `db:"title"`
	Body      string     `db:"body"`
	ImageName *string    `db:"image_name"`
	ImageType *string    `db:"image_type"`
	Sequence  int        `db:"sequence"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}

const (
	sectionNotFoundMsg = "section not found"
	contentNotFoundMsg = "content not found"
)

// Repository provides database operations for sections and contents
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new content repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateSection inserts a section
func (r *Repository) CreateSection(ctx context.Context, s *Section) error {
	query := `
		INSERT INTO sections (id, name, sequence, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.pool.Exec(ctx, query, s.ID, s.Name, s.Sequence, s.CreatedAt, s.UpdatedAt); err != nil {
		return fmt.Errorf("failed to insert section: %w", err)
	}
	return nil
}

// GetSectionByID retrieves one section
func (r *Repository) GetSectionByID(ctx context.Context, id uuid.UUID) (*Section, error) {
	var s Section
	query := `SELECT id, name, sequence, created_at, updated_at FROM sections WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.Sequence, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(sectionNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get section: %w", err)
	}
	return &s, nil
}

// ListSections retrieves all sections in display order
func (r *Repository) ListSections(ctx context.Context) ([]Section, error) {
	query := `SELECT id, name, sequence, created_at, updated_at FROM sections ORDER BY sequence ASC, created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sections: %w", err)
	}
	defer rows.Close()

	var sections []Section
	for rows.Next() {
		var s Section
		if err := rows.Scan(&s.ID, &s.Name, &s.Sequence, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		sections = append(sections, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sections: %w", err)
	}
	return sections, nil
}

// UpdateSection persists changes to a section
func (r *Repository) UpdateSection(ctx context.Context, s *Section) error {
	query := `UPDATE sections SET name = $2, sequence = $3, updated_at = $4 WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, s.ID, s.Name, s.Sequence, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update section: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(sectionNotFoundMsg)
	}
	return nil
}

// DeleteSection removes a section
func (r *Repository) DeleteSection(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM sections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete section: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(sectionNotFoundMsg)
	}
	return nil
}

// CreateContent inserts a content block
func (r *Repository) CreateContent(ctx context.Context, c *Content) error {
	query := `
		INSERT INTO contents (id, section_id, title, body, image_name, image_type, sequence, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	if _, err := r.pool.Exec(ctx, query,
		c.ID, c.SectionID, c.Title, c.Body, c.ImageName, c.ImageType, c.Sequence, c.CreatedAt, c.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert content: %w", err)
	}
	return nil
}

// GetContentByID retrieves one content block
func (r *Repository) GetContentByID(ctx context.Context, id uuid.UUID) (*Content, error) {
	var c Content
	query := `SELECT id, section_id, title, body, image_name, image_type, sequence, created_at, updated_at FROM contents WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.SectionID, &c.Title, &c.Body, &c.ImageName, &c.ImageType, &c.Sequence, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(contentNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get content: %w", err)
	}
	return &c, nil
}

// ListContents retrieves content blocks in display order, optionally
// scoped to one section
func (r *Repository) ListContents(ctx context.Context, sectionID *uuid.UUID) ([]Content, error) {
	var sectionParam interface{}
	if sectionID != nil {
		sectionParam = *sectionID
	}

	query := `
		SELECT id, section_id, title, body, image_name, image_type, sequence, created_at, updated_at
		FROM contents
		WHERE ($1::uuid IS NULL OR section_id = $1)
		ORDER BY sequence ASC, created_at ASC`

	rows, err := r.pool.Query(ctx, query, sectionParam)
	if err != nil {
		return nil, fmt.Errorf("failed to query contents: %w", err)
	}
	defer rows.Close()

	var contents []Content
	for rows.Next() {
		var c Content
		if err := rows.Scan(
			&c.ID, &c.SectionID, &c.Title, &c.Body, &c.ImageName, &c.ImageType, &c.Sequence, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan content: %w", err)
		}
		contents = append(contents, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contents: %w", err)
	}
	return contents, nil
}

// UpdateContent persists changes to a content block
func (r *Repository) UpdateContent(ctx context.Context, c *Content) error {
	query := `
		UPDATE contents SET section_id = $2, title = $3, body = $4, image_name = $5, image_type = $6, sequence = $7, updated_at = $8
		WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, c.ID, c.SectionID, c.Title, c.Body, c.ImageName, c.ImageType, c.Sequence, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update content: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(contentNotFoundMsg)
	}
	return nil
}

// DeleteContent removes a content block
func (r *Repository) DeleteContent(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM contents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(contentNotFoundMsg)
	}
	return nil
}
