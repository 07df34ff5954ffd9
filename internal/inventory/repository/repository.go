package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"erp_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Item is the database model for a sellable product or service
type Item struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Code        string    `db:"code"`
	Description *string   `db:"description"`
	PriceCents  int64     `db:"price_cents"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// RawMaterial is the master record for a material consumed by an item.
// Quotation lines reference these through their rawId field. The
// AddInQuotation flag marks materials that should be offered when a
// quotation line is built from the owning item.
type RawMaterial struct {
	ID             uuid.UUID  `db:"id"`
	ItemID         *uuid.UUID `db:"item_id"`
	SupplierID     *uuid.UUID `db:"supplier_id"`
	Name           string     `db:"name"`
	Code           string     `db:"code"`
	PriceCents     int64      `db:"price_cents"`
	AddInQuotation bool       `db:"add_in_quotation"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

const (
	itemNotFoundMsg        = "item not found"
	rawMaterialNotFoundMsg = "raw material not found"
	uniqueViolationCode    = "23505"
)

// Repository provides database operations for items and raw materials
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new inventory repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// =============================================================================
// Items
// =============================================================================

// CreateItem inserts an item. A duplicate code maps to Conflict.
func (r *Repository) CreateItem(ctx context.Context, it *Item) error {
	query := `
		INSERT INTO items (id, name, code, description, price_cents, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if _, err := r.pool.Exec(ctx, query,
		it.ID, it.Name, it.Code, it.Description, it.PriceCents, it.CreatedAt, it.UpdatedAt,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperr.Conflict("item code already in use")
		}
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

// GetItemByID retrieves one item
func (r *Repository) GetItemByID(ctx context.Context, id uuid.UUID) (*Item, error) {
	var it Item
	query := `
		SELECT id, name, code, description, price_cents, created_at, updated_at
		FROM items WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&it.ID, &it.Name, &it.Code, &it.Description, &it.PriceCents, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(itemNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return &it, nil
}

// ListItems retrieves items, optionally filtered by a name/code search
func (r *Repository) ListItems(ctx context.Context, search string) ([]Item, error) {
	var searchParam interface{}
	if search != "" {
		searchParam = "%" + search + "%"
	}

	query := `
		SELECT id, name, code, description, price_cents, created_at, updated_at
		FROM items
		WHERE ($1::text IS NULL OR name ILIKE $1 OR code ILIKE $1)
		ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query, searchParam)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.ID, &it.Name, &it.Code, &it.Description, &it.PriceCents, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}

// UpdateItem persists changes to an item
func (r *Repository) UpdateItem(ctx context.Context, it *Item) error {
	query := `
		UPDATE items SET name = $2, code = $3, description = $4, price_cents = $5, updated_at = $6
		WHERE id = $1`

	result, err := r.pool.Exec(ctx, query,
		it.ID, it.Name, it.Code, it.Description, it.PriceCents, it.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperr.Conflict("item code already in use")
		}
		return fmt.Errorf("failed to update item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(itemNotFoundMsg)
	}
	return nil
}

// DeleteItem removes an item
func (r *Repository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(itemNotFoundMsg)
	}
	return nil
}

// =============================================================================
// Raw Materials
// =============================================================================

// CreateRawMaterial inserts a raw material. A duplicate code maps to
// Conflict.
func (r *Repository) CreateRawMaterial(ctx context.Context, rm *RawMaterial) error {
	query := `
		INSERT INTO raw_materials (id, item_id, supplier_id, name, code, price_cents, add_in_quotation, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	if _, err := r.pool.Exec(ctx, query,
		rm.ID, rm.ItemID, rm.SupplierID, rm.Name, rm.Code, rm.PriceCents, rm.AddInQuotation, rm.CreatedAt, rm.UpdatedAt,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperr.Conflict("raw material code already in use")
		}
		return fmt.Errorf("failed to insert raw material: %w", err)
	}
	return nil
}

// GetRawMaterialByID retrieves one raw material
func (r *Repository) GetRawMaterialByID(ctx context.Context, id uuid.UUID) (*RawMaterial, error) {
	var rm RawMaterial
	query := `
		SELECT id, item_id, supplier_id, name, code, price_cents, add_in_quotation, created_at, updated_at
		FROM raw_materials WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&rm.ID, &rm.ItemID, &rm.SupplierID, &rm.Name, &rm.Code, &rm.PriceCents, &rm.AddInQuotation, &rm.CreatedAt, &rm.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(rawMaterialNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get raw material: %w", err)
	}
	return &rm, nil
}

// ListRawMaterials retrieves raw materials, optionally scoped to one
// item and optionally limited to those flagged for quotation use
func (r *Repository) ListRawMaterials(ctx context.Context, itemID *uuid.UUID, quotationOnly bool) ([]RawMaterial, error) {
	var itemParam interface{}
	if itemID != nil {
		itemParam = *itemID
	}

	query := `
		SELECT id, item_id, supplier_id, name, code, price_cents, add_in_quotation, created_at, updated_at
		FROM raw_materials
		WHERE ($1::uuid IS NULL OR item_id = $1)
			AND ($2::bool = false OR add_in_quotation = true)
		ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query, itemParam, quotationOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to query raw materials: %w", err)
	}
	defer rows.Close()

	var materials []RawMaterial
	for rows.Next() {
		var rm RawMaterial
		if err := rows.Scan(
			&rm.ID, &rm.ItemID, &rm.SupplierID, &rm.Name, &rm.Code, &rm.PriceCents, &rm.AddInQuotation, &rm.CreatedAt, &rm.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan raw material: %w", err)
		}
		materials = append(materials, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate raw materials: %w", err)
	}
	return materials, nil
}

// UpdateRawMaterial persists changes to a raw material
func (r *Repository) UpdateRawMaterial(ctx context.Context, rm *RawMaterial) error {
	query := `
		UPDATE raw_materials SET
			item_id = $2, supplier_id = $3, name = $4, code = $5, price_cents = $6, add_in_quotation = $7, updated_at = $8
		WHERE id = $1`

	result, err := r.pool.Exec(ctx, query,
		rm.ID, rm.ItemID, rm.SupplierID, rm.Name, rm.Code, rm.PriceCents, rm.AddInQuotation, rm.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperr.Conflict("raw material code already in use")
		}
		return fmt.Errorf("failed to update raw material: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(rawMaterialNotFoundMsg)
	}
	return nil
}

// DeleteRawMaterial removes a raw material
func (r *Repository) DeleteRawMaterial(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM raw_materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete raw material: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(rawMaterialNotFoundMsg)
	}
	return nil
}
