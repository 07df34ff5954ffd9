package adapters

import (
	"context"

	catalogrepo "erp_backend/internal/catalog/repository"
	"erp_backend/internal/quotations/transport"

	"github.com/google/uuid"
)

// CatalogReaderAdapter resolves linked catalog ids to summaries for
// quotation views.
type CatalogReaderAdapter struct {
	repo *catalogrepo.Repository
}

// NewCatalogReader creates a catalog reader backed by the catalog
// repository.
func NewCatalogReader(repo *catalogrepo.Repository) *CatalogReaderAdapter {
	return &CatalogReaderAdapter{repo: repo}
}

// GetCatalogSummaries implements service.CatalogReader. Ids that no
// longer resolve are skipped rather than failing the view.
func (a *CatalogReaderAdapter) GetCatalogSummaries(ctx context.Context, ids []uuid.UUID) ([]transport.CatalogSummary, error) {
	catalogs, err := a.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	summaries := make([]transport.CatalogSummary, len(catalogs))
	for i, c := range catalogs {
		summaries[i] = transport.CatalogSummary{
			ID:   c.ID,
			Name: c.Name,
		}
		if c.FileName != nil {
			summaries[i].FileName = *c.FileName
		}
	}
	return summaries, nil
}
