package service

import (
	"context"
	"time"

	"erp_backend/internal/events"
	"erp_backend/internal/quotations/repository"
	"erp_backend/internal/quotations/transport"
	"erp_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// CustomerReader is the narrow interface the quotations service needs
// to resolve an optional customer reference to a display record.
// Implemented by an adapter wrapping the identity repository.
type CustomerReader interface {
	GetCustomerSummary(ctx context.Context, id uuid.UUID) (*transport.CustomerSummary, error)
}

// CatalogReader resolves catalog ids to summary records. Ids that no
// longer exist are skipped, not errors.
type CatalogReader interface {
	GetCatalogSummaries(ctx context.Context, ids []uuid.UUID) ([]transport.CatalogSummary, error)
}

// ViewMode selects which lines a quotation view includes
type ViewMode string

const (
	// ViewActive excludes soft-deleted lines
	ViewActive ViewMode = "active"
	// ViewFull includes every line, removed ones too
	ViewFull ViewMode = "full"
)

// Service provides business logic for quotations
type Service struct {
	repo      *repository.Repository
	customers CustomerReader // optional; nil means no customer resolution
	catalogs  CatalogReader  // optional; nil means catalog links render as bare ids
	bus       events.Bus     // optional; nil means no lifecycle events
	log       *logger.Logger
}

// New creates a new quotations service
func New(repo *repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// SetCustomerReader injects the customer lookup adapter.
func (s *Service) SetCustomerReader(r CustomerReader) {
	s.customers = r
}

// SetCatalogReader injects the catalog lookup adapter.
func (s *Service) SetCatalogReader(r CatalogReader) {
	s.catalogs = r
}

// SetEventBus injects the event bus for lifecycle events.
func (s *Service) SetEventBus(bus events.Bus) {
	s.bus = bus
}

// Create creates a new quotation with its initial line set. Every line
// starts not-removed; totals and sequences are computed server-side.
func (s *Service) Create(ctx context.Context, req transport.CreateQuotationRequest) (*transport.QuotationResponse, error) {
	now := time.Now()
	q := repository.Quotation{
		ID:         uuid.New(),
		Name:       req.Name,
		Date:       req.Date,
		ExpiryDate: req.ExpiryDate,
		Status:     string(transport.QuotationStatusDraft),
		CustomerID: req.CustomerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// Creation has no prior line set, so reconciliation sees an empty
	// map and every line defaults to not-removed unless flagged.
	mains, raws, unresolved := s.buildReplacementLines(q.ID, req.Lines, nil, now)

	if err := s.repo.CreateWithLines(ctx, &q, mains, raws, req.CatalogIDs); err != nil {
		return nil, err
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.NewQuotationCreated(q.ID, q.Name))
	}
	s.log.QuotationEvent("quotation_created", q.ID.String(), q.Status)

	return s.fetchResponse(ctx, q.ID, ViewFull, unresolved)
}

// Update applies header changes and, when a line batch is supplied,
// replaces the full line set. Reconciliation preserves the removed flag
// of re-submitted lines; parent links are resolved after main items
// have their identifiers assigned.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateQuotationRequest) (*transport.QuotationResponse, error) {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		q.Name = *req.Name
	}
	if req.Date != nil {
		q.Date = req.Date
	}
	if req.ExpiryDate != nil {
		q.ExpiryDate = req.ExpiryDate
	}
	if req.CustomerID != nil {
		q.CustomerID = req.CustomerID
	}
	q.UpdatedAt = time.Now()

	var mains, raws []repository.QuotationLine
	var unresolved []uuid.UUID
	if req.Lines != nil {
		existing, err := s.repo.GetLines(ctx, id)
		if err != nil {
			return nil, err
		}
		mains, raws, unresolved = s.buildReplacementLines(id, *req.Lines, existing, q.UpdatedAt)
	}

	if err := s.repo.UpdateWithLines(ctx, q, mains, raws, req.Lines != nil, req.CatalogIDs); err != nil {
		return nil, err
	}

	return s.fetchResponse(ctx, id, ViewFull, unresolved)
}

// buildReplacementLines turns an incoming flat batch into persistable
// rows in two passes. Pass 1 walks the main items in batch order,
// assigns each a fresh identifier and records both the old-to-new id
// remap and the position-to-id map. Pass 2 walks the raw materials and
// resolves each parent against that state. The returned slices keep
// batch order, mains first, so the repository can insert parents before
// the rows that reference them.
func (s *Service) buildReplacementLines(quotationID uuid.UUID, batch []transport.QuotationLineRequest, existing []repository.QuotationLine, now time.Time) (mains, raws []repository.QuotationLine, unresolved []uuid.UUID) {
	existingRemoved := make(map[uuid.UUID]bool, len(existing))
	for _, l := range existing {
		existingRemoved[l.ID] = l.Removed
	}

	links := newMainItemLinks()

	for pos, in := range batch {
		if in.IsRawMaterial {
			continue
		}
		assigned := uuid.New()
		if in.ID != nil {
			links.remap[*in.ID] = assigned
		}
		links.byPosition[pos] = assigned

		mains = append(mains, repository.QuotationLine{
			ID:             assigned,
			QuotationID:    quotationID,
			Description:    in.Description,
			Quantity:       valueOrZero(in.Quantity),
			UnitPriceCents: valueOrZero(in.UnitPriceCents),
			TotalCents:     CalculateTotalCents(in.Quantity, in.UnitPriceCents),
			IsRawMaterial:  false,
			ParentItemID:   nil, // main items never carry a parent
			RawID:          in.RawID,
			Removed:        reconcileRemoved(in.Removed, in.ID, existingRemoved),
			Sequence:       sequenceFor(in.Sequence, pos),
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}

	for pos, in := range batch {
		if !in.IsRawMaterial {
			continue
		}
		assigned := uuid.New()

		var parent *uuid.UUID
		if parentID, ok := resolveParentLink(in.ParentItemID, pos, links); ok {
			parent = &parentID
		} else {
			// Persisted anyway: a parentless raw material is a
			// data-quality condition the caller can inspect and repair.
			unresolved = append(unresolved, assigned)
			s.log.ResolutionGap(quotationID.String(), pos)
		}

		raws = append(raws, repository.QuotationLine{
			ID:             assigned,
			QuotationID:    quotationID,
			Description:    in.Description,
			Quantity:       valueOrZero(in.Quantity),
			UnitPriceCents: valueOrZero(in.UnitPriceCents),
			TotalCents:     CalculateTotalCents(in.Quantity, in.UnitPriceCents),
			IsRawMaterial:  true,
			ParentItemID:   parent,
			RawID:          in.RawID,
			Removed:        reconcileRemoved(in.Removed, in.ID, existingRemoved),
			Sequence:       sequenceFor(in.Sequence, pos),
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}

	return mains, raws, unresolved
}

// GetByID retrieves a quotation view. ViewActive filters out removed
// lines; ViewFull returns everything. Header and lines come from one
// combined fetch so the view is internally consistent.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, view ViewMode) (*transport.QuotationResponse, error) {
	return s.fetchResponse(ctx, id, view, nil)
}

// List retrieves quotations with filtering and pagination. Line sets
// for the current page are loaded concurrently.
func (s *Service) List(ctx context.Context, req transport.ListQuotationsRequest) (*transport.QuotationListResponse, error) {
	params := repository.ListParams{
		Status:    nilIfEmpty(req.Status),
		Search:    req.Search,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
		Page:      max(req.Page, 1),
		PageSize:  clampPageSize(req.PageSize),
	}

	result, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	items := make([]transport.QuotationResponse, len(result.Items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i := range result.Items {
		i := i
		g.Go(func() error {
			resp, err := s.fetchResponse(gctx, result.Items[i].ID, ViewActive, nil)
			if err != nil {
				return err
			}
			items[i] = *resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &transport.QuotationListResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}

// EditLine mutates description, quantity and unit price of one existing
// line in place and recomputes its total. The removed flag, parent link
// and sequence are never touched by this operation.
func (s *Service) EditLine(ctx context.Context, quotationID, lineID uuid.UUID, req transport.EditLineRequest) (*transport.QuotationLineResponse, error) {
	line, err := s.repo.GetLineByID(ctx, quotationID, lineID)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		line.Description = *req.Description
	}
	if req.Quantity != nil {
		line.Quantity = *req.Quantity
	}
	if req.UnitPriceCents != nil {
		line.UnitPriceCents = *req.UnitPriceCents
	}
	line.TotalCents = CalculateTotalCents(&line.Quantity, &line.UnitPriceCents)
	line.UpdatedAt = time.Now()

	if err := s.repo.UpdateLine(ctx, line); err != nil {
		return nil, err
	}

	resp := buildLineResponse(*line)
	return &resp, nil
}

// MarkRemoved soft-deletes a line. Idempotent, and permitted even on a
// finalized quotation.
func (s *Service) MarkRemoved(ctx context.Context, quotationID, lineID uuid.UUID) error {
	return s.repo.SetLineRemoved(ctx, quotationID, lineID, true)
}

// UndoRemoved restores a soft-deleted line. Idempotent.
func (s *Service) UndoRemoved(ctx context.Context, quotationID, lineID uuid.UUID) error {
	return s.repo.SetLineRemoved(ctx, quotationID, lineID, false)
}

// Finalize transitions a draft quotation to FINALIZED and captures an
// immutable snapshot of every line, removed ones included. The status
// change, the line read and the snapshot write all happen in one
// repository transaction, so the snapshot matches the line state at the
// commit point exactly.
func (s *Service) Finalize(ctx context.Context, id uuid.UUID) (*transport.QuotationResponse, error) {
	now := time.Now()
	q, lines, err := s.repo.Finalize(ctx, id, uuid.New(), now,
		func(q *repository.Quotation, lines []repository.QuotationLine) ([]byte, error) {
			return buildSnapshotPayload(q, lines, now)
		})
	if err != nil {
		return nil, err
	}

	if s.bus != nil {
		email, name := s.customerContact(ctx, q.CustomerID)
		s.bus.Publish(ctx, events.NewQuotationFinalized(q.ID, q.Name, activeTotalCents(lines), email, name))
	}
	s.log.QuotationEvent("quotation_finalized", q.ID.String(), q.Status)

	return s.assembleResponse(ctx, q, lines, ViewFull, nil)
}

// ListSnapshots returns the immutable snapshots of a quotation, newest
// first.
func (s *Service) ListSnapshots(ctx context.Context, quotationID uuid.UUID) ([]transport.SnapshotResponse, error) {
	if _, err := s.repo.GetByID(ctx, quotationID); err != nil {
		return nil, err
	}

	snapshots, err := s.repo.GetSnapshots(ctx, quotationID)
	if err != nil {
		return nil, err
	}

	resp := make([]transport.SnapshotResponse, len(snapshots))
	for i, snap := range snapshots {
		resp[i] = transport.SnapshotResponse{
			ID:          snap.ID,
			QuotationID: snap.QuotationID,
			Payload:     snap.Payload,
			CreatedAt:   snap.CreatedAt,
		}
	}
	return resp, nil
}

// Delete removes a quotation and its owned lines. Snapshots survive as
// historical records.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ExpireDue sweeps draft quotations past their expiry date into the
// EXPIRED state. Invoked by the periodic scheduler task.
func (s *Service) ExpireDue(ctx context.Context, now time.Time) (int, error) {
	expired, err := s.repo.MarkExpired(ctx, now)
	if err != nil {
		return 0, err
	}
	for _, q := range expired {
		if s.bus != nil {
			s.bus.Publish(ctx, events.NewQuotationExpired(q.ID, q.Name))
		}
		s.log.QuotationEvent("quotation_expired", q.ID.String(), q.Status)
	}
	return len(expired), nil
}

// =============================================================================
// Response assembly
// =============================================================================

// fetchResponse loads a quotation with its full line set in one
// combined read and assembles the outward-facing view from it.
func (s *Service) fetchResponse(ctx context.Context, id uuid.UUID, view ViewMode, unresolved []uuid.UUID) (*transport.QuotationResponse, error) {
	q, lines, err := s.repo.GetByIDWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.assembleResponse(ctx, q, lines, view, unresolved)
}

// assembleResponse builds the outward-facing quotation view: lines in
// display order filtered by view mode, the optional customer summary
// and linked catalog summaries.
func (s *Service) assembleResponse(ctx context.Context, q *repository.Quotation, lines []repository.QuotationLine, view ViewMode, unresolved []uuid.UUID) (*transport.QuotationResponse, error) {
	lineViews := make([]transport.QuotationLineResponse, 0, len(lines))
	var totalCents int64
	for _, l := range lines {
		if view == ViewActive && l.Removed {
			continue
		}
		if !l.Removed {
			totalCents += l.TotalCents
		}
		lineViews = append(lineViews, buildLineResponse(l))
	}

	resp := &transport.QuotationResponse{
		ID:                q.ID,
		Name:              q.Name,
		Date:              q.Date,
		ExpiryDate:        q.ExpiryDate,
		Status:            transport.QuotationStatus(q.Status),
		Catalogs:          []transport.CatalogSummary{},
		Lines:             lineViews,
		TotalCents:        totalCents,
		Total:             FormatCents(totalCents),
		UnresolvedParents: unresolved,
		CreatedAt:         q.CreatedAt,
		UpdatedAt:         q.UpdatedAt,
	}

	if q.CustomerID != nil && s.customers != nil {
		// Absence of the customer is tolerated, the view just omits it
		if summary, err := s.customers.GetCustomerSummary(ctx, *q.CustomerID); err == nil {
			resp.Customer = summary
		}
	}

	catalogIDs, err := s.repo.GetCatalogIDs(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	if len(catalogIDs) > 0 && s.catalogs != nil {
		summaries, err := s.catalogs.GetCatalogSummaries(ctx, catalogIDs)
		if err != nil {
			return nil, err
		}
		resp.Catalogs = summaries
	}

	return resp, nil
}

func buildLineResponse(l repository.QuotationLine) transport.QuotationLineResponse {
	return transport.QuotationLineResponse{
		ID:             l.ID,
		Description:    l.Description,
		Quantity:       l.Quantity,
		UnitPriceCents: l.UnitPriceCents,
		UnitPrice:      FormatCents(l.UnitPriceCents),
		TotalCents:     l.TotalCents,
		Total:          FormatCents(l.TotalCents),
		IsRawMaterial:  l.IsRawMaterial,
		ParentItemID:   l.ParentItemID,
		RawID:          l.RawID,
		Removed:        l.Removed,
		Sequence:       l.Sequence,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

func (s *Service) customerContact(ctx context.Context, customerID *uuid.UUID) (email, name string) {
	if customerID == nil || s.customers == nil {
		return "", ""
	}
	summary, err := s.customers.GetCustomerSummary(ctx, *customerID)
	if err != nil || summary == nil {
		return "", ""
	}
	return summary.Email, summary.Name
}

func activeTotalCents(lines []repository.QuotationLine) int64 {
	var total int64
	for _, l := range lines {
		if !l.Removed {
			total += l.TotalCents
		}
	}
	return total
}

// sequenceFor keeps an explicitly supplied sequence and otherwise
// assigns the line's position in the batch, preserving submission order.
func sequenceFor(explicit *int, position int) int {
	if explicit != nil {
		return *explicit
	}
	return position
}

func valueOrZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func clampPageSize(size int) int {
	if size < 1 || size > 100 {
		return 50
	}
	return size
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
