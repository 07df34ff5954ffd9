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

// =============================================================================
// Domain Models
// =============================================================================

// Quotation is the database model for a quotation header
type Quotation struct {
	ID         uuid.UUID  `db:"id"`
	Name       string     `db:"name"`
	Date       *time.Time `db:"quotation_date"`
	ExpiryDate *time.Time `db:"expiry_date"`
	Status     string     `db:"status"`
	CustomerID *uuid.UUID `db:"customer_id"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
}

// QuotationLine is the database model for a single quotation line.
// A main-item line has ParentItemID nil; a raw-material line points at
// the main-item line it belongs to. Removed lines stay in storage and
// are only filtered out of active views.
type QuotationLine struct {
	ID             uuid.UUID  `db:"id"`
	QuotationID    uuid.UUID  `db:"quotation_id"`
	Description    string     `db:"description"`
	Quantity       int64      `db:"quantity"`
	UnitPriceCents int64      `db:"unit_price_cents"`
	TotalCents     int64      `db:"total_cents"`
	IsRawMaterial  bool       `db:"is_raw_material"`
	ParentItemID   *uuid.UUID `db:"parent_item_id"`
	RawID          *uuid.UUID `db:"raw_id"`
	Removed        bool       `db:"removed"`
	Sequence       int        `db:"sequence"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

// QuotationSnapshot is the immutable point-in-time record written when a
// quotation is finalized. Rows are only ever inserted, never updated.
type QuotationSnapshot struct {
	ID          uuid.UUID `db:"id"`
	QuotationID uuid.UUID `db:"quotation_id"`
	Payload     []byte    `db:"payload"`
	CreatedAt   time.Time `db:"created_at"`
}

// ListParams contains parameters for listing quotations
type ListParams struct {
	Status    *string
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// ListResult contains the paginated result of listing quotations
type ListResult struct {
	Items      []Quotation
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// =============================================================================
// Repository
// =============================================================================

const (
	quotationNotFoundMsg = "quotation not found"
	lineNotFoundMsg      = "quotation line not found"
)

// Repository provides database operations for quotations
type Repository struct {
	pool *pgxpool.Pool
}

// querier is satisfied by both the pool and a transaction so the read
// helpers can run standalone or inside a caller's transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// New creates a new quotations repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateWithLines inserts a quotation header, its lines and its catalog
// links in a single transaction. Main-item lines must come first in the
// mains slice so raw-material parent references are satisfied at insert
// time.
func (r *Repository) CreateWithLines(ctx context.Context, q *Quotation, mains, raws []QuotationLine, catalogIDs []uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	headerQuery := `
		INSERT INTO quotations (
			id, name, quotation_date, expiry_date, status, customer_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if _, err := tx.Exec(ctx, headerQuery,
		q.ID, q.Name, q.Date, q.ExpiryDate, q.Status, q.CustomerID, q.CreatedAt, q.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert quotation: %w", err)
	}

	if err := r.insertLines(ctx, tx, mains); err != nil {
		return err
	}
	if err := r.insertLines(ctx, tx, raws); err != nil {
		return err
	}

	if err := r.replaceCatalogLinks(ctx, tx, q.ID, catalogIDs); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// UpdateWithLines updates a quotation header and optionally replaces its
// full line set and catalog links. When replaceLines is true the old
// lines are deleted and the new set is inserted, mains before raws.
func (r *Repository) UpdateWithLines(ctx context.Context, q *Quotation, mains, raws []QuotationLine, replaceLines bool, catalogIDs *[]uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	updateQuery := `
		UPDATE quotations SET
			name = $2, quotation_date = $3, expiry_date = $4, customer_id = $5, updated_at = $6
		WHERE id = $1`

	result, err := tx.Exec(ctx, updateQuery,
		q.ID, q.Name, q.Date, q.ExpiryDate, q.CustomerID, q.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update quotation: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(quotationNotFoundMsg)
	}

	if replaceLines {
		if _, err := tx.Exec(ctx, `DELETE FROM quotation_lines WHERE quotation_id = $1`, q.ID); err != nil {
			return fmt.Errorf("failed to delete old quotation lines: %w", err)
		}
		if err := r.insertLines(ctx, tx, mains); err != nil {
			return err
		}
		if err := r.insertLines(ctx, tx, raws); err != nil {
			return err
		}
	}

	if catalogIDs != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM quotation_catalogs WHERE quotation_id = $1`, q.ID); err != nil {
			return fmt.Errorf("failed to delete old catalog links: %w", err)
		}
		if err := r.replaceCatalogLinks(ctx, tx, q.ID, *catalogIDs); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *Repository) insertLines(ctx context.Context, tx pgx.Tx, lines []QuotationLine) error {
	lineQuery := `
		INSERT INTO quotation_lines (
			id, quotation_id, description, quantity, unit_price_cents, total_cents,
			is_raw_material, parent_item_id, raw_id, removed, sequence, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	for _, line := range lines {
		if _, err := tx.Exec(ctx, lineQuery,
			line.ID, line.QuotationID, line.Description,
			line.Quantity, line.UnitPriceCents, line.TotalCents,
			line.IsRawMaterial, line.ParentItemID, line.RawID,
			line.Removed, line.Sequence, line.CreatedAt, line.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert quotation line: %w", err)
		}
	}
	return nil
}

func (r *Repository) replaceCatalogLinks(ctx context.Context, tx pgx.Tx, quotationID uuid.UUID, catalogIDs []uuid.UUID) error {
	linkQuery := `
		INSERT INTO quotation_catalogs (quotation_id, catalog_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`

	for _, catalogID := range catalogIDs {
		if _, err := tx.Exec(ctx, linkQuery, quotationID, catalogID); err != nil {
			return fmt.Errorf("failed to link catalog: %w", err)
		}
	}
	return nil
}

// GetByID retrieves a quotation header by its ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Quotation, error) {
	return fetchQuotation(ctx, r.pool, id)
}

// GetLines retrieves all lines for a quotation, removed included, in
// display order. Insertion time breaks ties between equal sequences.
func (r *Repository) GetLines(ctx context.Context, quotationID uuid.UUID) ([]QuotationLine, error) {
	return fetchLines(ctx, r.pool, quotationID)
}

// GetByIDWithLines retrieves a quotation header together with all its
// lines, removed included, in a single repeatable-read transaction so
// both reads observe the same committed state even under a concurrent
// full replacement.
func (r *Repository) GetByIDWithLines(ctx context.Context, id uuid.UUID) (*Quotation, []QuotationLine, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	q, err := fetchQuotation(ctx, tx, id)
	if err != nil {
		return nil, nil, err
	}
	lines, err := fetchLines(ctx, tx, id)
	if err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return q, lines, nil
}

func fetchQuotation(ctx context.Context, db querier, id uuid.UUID) (*Quotation, error) {
	var q Quotation
	query := `
		SELECT id, name, quotation_date, expiry_date, status, customer_id, created_at, updated_at
		FROM quotations WHERE id = $1`

	err := db.QueryRow(ctx, query, id).Scan(
		&q.ID, &q.Name, &q.Date, &q.ExpiryDate, &q.Status, &q.CustomerID, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(quotationNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get quotation: %w", err)
	}
	return &q, nil
}

func fetchLines(ctx context.Context, db querier, quotationID uuid.UUID) ([]QuotationLine, error) {
	query := `
		SELECT id, quotation_id, description, quantity, unit_price_cents, total_cents,
			is_raw_material, parent_item_id, raw_id, removed, sequence, created_at, updated_at
		FROM quotation_lines WHERE quotation_id = $1
		ORDER BY sequence ASC, created_at ASC`

	rows, err := db.Query(ctx, query, quotationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quotation lines: %w", err)
	}
	defer rows.Close()

	var lines []QuotationLine
	for rows.Next() {
		var l QuotationLine
		if err := rows.Scan(
			&l.ID, &l.QuotationID, &l.Description,
			&l.Quantity, &l.UnitPriceCents, &l.TotalCents,
			&l.IsRawMaterial, &l.ParentItemID, &l.RawID,
			&l.Removed, &l.Sequence, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan quotation line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quotation lines: %w", err)
	}
	return lines, nil
}

// GetLineByID retrieves one line scoped to its quotation
func (r *Repository) GetLineByID(ctx context.Context, quotationID, lineID uuid.UUID) (*QuotationLine, error) {
	var l QuotationLine
	query := `
		SELECT id, quotation_id, description, quantity, unit_price_cents, total_cents,
			is_raw_material, parent_item_id, raw_id, removed, sequence, created_at, updated_at
		FROM quotation_lines WHERE id = $1 AND quotation_id = $2`

	err := r.pool.QueryRow(ctx, query, lineID, quotationID).Scan(
		&l.ID, &l.QuotationID, &l.Description,
		&l.Quantity, &l.UnitPriceCents, &l.TotalCents,
		&l.IsRawMaterial, &l.ParentItemID, &l.RawID,
		&l.Removed, &l.Sequence, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(lineNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get quotation line: %w", err)
	}
	return &l, nil
}

// UpdateLine persists an in-place edit of a single line
func (r *Repository) UpdateLine(ctx context.Context, line *QuotationLine) error {
	query := `
		UPDATE quotation_lines SET
			description = $3, quantity = $4, unit_price_cents = $5, total_cents = $6, updated_at = $7
		WHERE id = $1 AND quotation_id = $2`

	result, err := r.pool.Exec(ctx, query,
		line.ID, line.QuotationID,
		line.Description, line.Quantity, line.UnitPriceCents, line.TotalCents, line.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update quotation line: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(lineNotFoundMsg)
	}
	return nil
}

// SetLineRemoved flips the soft-delete flag on a line
func (r *Repository) SetLineRemoved(ctx context.Context, quotationID, lineID uuid.UUID, removed bool) error {
	query := `UPDATE quotation_lines SET removed = $3, updated_at = $4 WHERE id = $1 AND quotation_id = $2`
	result, err := r.pool.Exec(ctx, query, lineID, quotationID, removed, time.Now())
	if err != nil {
		return fmt.Errorf("failed to set removed flag: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(lineNotFoundMsg)
	}
	return nil
}

// GetCatalogIDs retrieves the catalog ids linked to a quotation
func (r *Repository) GetCatalogIDs(ctx context.Context, quotationID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `SELECT catalog_id FROM quotation_catalogs WHERE quotation_id = $1`, quotationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog links: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan catalog link: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate catalog links: %w", err)
	}
	return ids, nil
}

// Finalize flips a draft quotation to FINALIZED and writes its snapshot
// in one transaction, so a finalized quotation can never exist without
// its snapshot. The line set is read inside that same transaction and
// handed to buildPayload, so the snapshot reflects the line state at
// the commit point rather than an earlier read. Returns Conflict when
// the quotation is not in DRAFT. The header and lines as captured are
// returned for the caller's own use.
func (r *Repository) Finalize(ctx context.Context, quotationID, snapshotID uuid.UUID, now time.Time, buildPayload func(q *Quotation, lines []QuotationLine) ([]byte, error)) (*Quotation, []QuotationLine, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	statusQuery := `
		UPDATE quotations SET status = 'FINALIZED', updated_at = $2
		WHERE id = $1 AND status = 'DRAFT'`

	result, err := tx.Exec(ctx, statusQuery, quotationID, now)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to finalize quotation: %w", err)
	}
	if result.RowsAffected() == 0 {
		var status string
		err := tx.QueryRow(ctx, `SELECT status FROM quotations WHERE id = $1`, quotationID).Scan(&status)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperr.NotFound(quotationNotFoundMsg)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to check quotation status: %w", err)
		}
		return nil, nil, apperr.Conflict(fmt.Sprintf("quotation is %s, only DRAFT quotations can be finalized", status))
	}

	q, err := fetchQuotation(ctx, tx, quotationID)
	if err != nil {
		return nil, nil, err
	}
	lines, err := fetchLines(ctx, tx, quotationID)
	if err != nil {
		return nil, nil, err
	}

	payload, err := buildPayload(q, lines)
	if err != nil {
		return nil, nil, err
	}

	snapshotQuery := `
		INSERT INTO quotation_snapshots (id, quotation_id, payload, created_at)
		VALUES ($1, $2, $3, $4)`

	if _, err := tx.Exec(ctx, snapshotQuery, snapshotID, quotationID, payload, now); err != nil {
		return nil, nil, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return q, lines, nil
}

// GetSnapshots retrieves all snapshots for a quotation, newest first
func (r *Repository) GetSnapshots(ctx context.Context, quotationID uuid.UUID) ([]QuotationSnapshot, error) {
	query := `
		SELECT id, quotation_id, payload, created_at
		FROM quotation_snapshots WHERE quotation_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, quotationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []QuotationSnapshot
	for rows.Next() {
		var s QuotationSnapshot
		if err := rows.Scan(&s.ID, &s.QuotationID, &s.Payload, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}
	return snapshots, nil
}

// Delete removes a quotation (cascade deletes lines and catalog links;
// snapshots are kept as historical records)
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM quotations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete quotation: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(quotationNotFoundMsg)
	}
	return nil
}

// MarkExpired transitions every draft quotation past its expiry date to
// EXPIRED and returns the affected rows. Used by the periodic sweep.
func (r *Repository) MarkExpired(ctx context.Context, now time.Time) ([]Quotation, error) {
	query := `
		UPDATE quotations SET status = 'EXPIRED', updated_at = $1
		WHERE status = 'DRAFT' AND expiry_date IS NOT NULL AND expiry_date < $1
		RETURNING id, name, quotation_date, expiry_date, status, customer_id, created_at, updated_at`

	rows, err := r.pool.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to expire quotations: %w", err)
	}
	defer rows.Close()

	var expired []Quotation
	for rows.Next() {
		var q Quotation
		if err := rows.Scan(
			&q.ID, &q.Name, &q.Date, &q.ExpiryDate, &q.Status, &q.CustomerID, &q.CreatedAt, &q.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expired quotation: %w", err)
		}
		expired = append(expired, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expired quotations: %w", err)
	}
	return expired, nil
}

// List retrieves quotations with filtering and pagination
func (r *Repository) List(ctx context.Context, params ListParams) (*ListResult, error) {
	sortBy, err := resolveSortBy(params.SortBy)
	if err != nil {
		return nil, err
	}
	sortOrder, err := resolveSortOrder(params.SortOrder)
	if err != nil {
		return nil, err
	}

	var searchParam interface{}
	if params.Search != "" {
		searchParam = "%" + params.Search + "%"
	}

	var statusParam interface{}
	if params.Status != nil {
		statusParam = *params.Status
	}

	baseQuery := `
		FROM quotations
		WHERE ($1::text IS NULL OR status = $1)
			AND ($2::text IS NULL OR name ILIKE $2)
	`
	args := []interface{}{statusParam, searchParam}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count quotations: %w", err)
	}

	totalPages := (total + params.PageSize - 1) / params.PageSize
	offset := (params.Page - 1) * params.PageSize

	selectQuery := `
		SELECT id, name, quotation_date, expiry_date, status, customer_id, created_at, updated_at
		` + baseQuery + `
		ORDER BY
			CASE WHEN $3 = 'name' AND $4 = 'asc' THEN name END ASC,
			CASE WHEN $3 = 'name' AND $4 = 'desc' THEN name END DESC,
			CASE WHEN $3 = 'status' AND $4 = 'asc' THEN status END ASC,
			CASE WHEN $3 = 'status' AND $4 = 'desc' THEN status END DESC,
			CASE WHEN $3 = 'expiryDate' AND $4 = 'asc' THEN expiry_date END ASC,
			CASE WHEN $3 = 'expiryDate' AND $4 = 'desc' THEN expiry_date END DESC,
			CASE WHEN $3 = 'createdAt' AND $4 = 'asc' THEN created_at END ASC,
			CASE WHEN $3 = 'createdAt' AND $4 = 'desc' THEN created_at END DESC,
			created_at DESC
		LIMIT $5 OFFSET $6`

	args = append(args, sortBy, sortOrder, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotations: %w", err)
	}
	defer rows.Close()

	var items []Quotation
	for rows.Next() {
		var q Quotation
		if err := rows.Scan(
			&q.ID, &q.Name, &q.Date, &q.ExpiryDate, &q.Status, &q.CustomerID, &q.CreatedAt, &q.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan quotation: %w", err)
		}
		items = append(items, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quotations: %w", err)
	}

	return &ListResult{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}, nil
}

func resolveSortBy(sortBy string) (string, error) {
	if sortBy == "" {
		return "createdAt", nil
	}
	switch sortBy {
	case "name", "status", "expiryDate", "createdAt":
		return sortBy, nil
	default:
		return "", apperr.BadRequest("invalid sort field")
	}
}

func resolveSortOrder(sortOrder string) (string, error) {
	if sortOrder == "" {
		return "desc", nil
	}
	switch sortOrder {
	case "asc", "desc":
		return sortOrder, nil
	default:
		return "", apperr.BadRequest("invalid sort order")
	}
}
