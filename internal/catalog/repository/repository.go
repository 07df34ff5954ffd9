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

// Catalog is the database model for a catalog document's metadata. The
// file bytes themselves live in external storage and are out of scope
// here.
type Catalog struct {
	ID            uuid.UUID `db:"id"`
	Name          string    `db:"name"`
	FileName      *string   `db:"file_name"`
	FileType      *string   `db:"file_type"`
	FilePath      *string   `db:"file_path"`
	FileSizeBytes *int64    `db:"file_size_bytes"`
	Description   *string   `db:"description"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

const catalogNotFoundMsg = "catalog not found"

// Repository provides database operations for catalogs
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a catalog
func (r *Repository) Create(ctx context.Context, c *Catalog) error {
	query := `
		INSERT INTO catalogs (id, name, file_name, file_type, file_path, file_size_bytes, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	if _, err := r.pool.Exec(ctx, query,
		c.ID, c.Name, c.FileName, c.FileType, c.FilePath, c.FileSizeBytes, c.Description, c.CreatedAt, c.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert catalog: %w", err)
	}
	return nil
}

// GetByID retrieves a catalog by id
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Catalog, error) {
	var c Catalog
	query := `
		SELECT id, name, file_name, file_type, file_path, file_size_bytes, description, created_at, updated_at
		FROM catalogs WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.FileName, &c.FileType, &c.FilePath, &c.FileSizeBytes, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(catalogNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get catalog: %w", err)
	}
	return &c, nil
}

// GetByIDs retrieves the catalogs matching the given ids. Ids with no
// matching row are simply absent from the result, not errors.
func (r *Repository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Catalog, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, name, file_name, file_type, file_path, file_size_bytes, description, created_at, updated_at
		FROM catalogs WHERE id = ANY($1)
		ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalogs: %w", err)
	}
	defer rows.Close()

	return scanCatalogs(rows)
}

// List retrieves all catalogs ordered by name
func (r *Repository) List(ctx context.Context) ([]Catalog, error) {
	query := `
		SELECT id, name, file_name, file_type, file_path, file_size_bytes, description, created_at, updated_at
		FROM catalogs ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalogs: %w", err)
	}
	defer rows.Close()

	return scanCatalogs(rows)
}

func scanCatalogs(rows pgx.Rows) ([]Catalog, error) {
	var catalogs []Catalog
	for rows.Next() {
		var c Catalog
		if err := rows.Scan(
			&c.ID, &c.Name, &c.FileName, &c.FileType, &c.FilePath, &c.FileSizeBytes, &c.Description, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan catalog: %w", err)
		}
		catalogs = append(catalogs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate catalogs: %w", err)
	}
	return catalogs, nil
}

// Update persists changes to a catalog
func (r *Repository) Update(ctx context.Context, c *Catalog) error {
	query := `
		UPDATE catalogs SET
			name = $2, file_name = $3, file_type = $4, file_path = $5, file_size_bytes = $6, description = $7, updated_at = $8
		WHERE id = $1`

	result, err := r.pool.Exec(ctx, query,
		c.ID, c.Name, c.FileName, c.FileType, c.FilePath, c.FileSizeBytes, c.Description, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update catalog: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(catalogNotFoundMsg)
	}
	return nil
}

// Delete removes a catalog
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM catalogs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete catalog: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(catalogNotFoundMsg)
	}
	return nil
}
