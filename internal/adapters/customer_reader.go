// Package adapters bridges domain modules without creating import
// cycles: each adapter implements a narrow interface declared by the
// consuming service and wraps another module's repository.
package adapters

import (
	"context"

	identityrepo "erp_backend/internal/identity/repository"
	"erp_backend/internal/quotations/transport"

	"github.com/google/uuid"
)

// CustomerReaderAdapter resolves a customer id to a display summary for
// quotation views.
type CustomerReaderAdapter struct {
	repo *identityrepo.Repository
}

// NewCustomerReader creates a customer reader backed by the identity
// repository.
func NewCustomerReader(repo *identityrepo.Repository) *CustomerReaderAdapter {
	return &CustomerReaderAdapter{repo: repo}
}

// GetCustomerSummary implements service.CustomerReader. A missing user
// propagates as NotFound; the quotation service treats that as an
// absent customer.
func (a *CustomerReaderAdapter) GetCustomerSummary(ctx context.Context, id uuid.UUID) (*transport.CustomerSummary, error) {
	u, err := a.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	summary := &transport.CustomerSummary{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
	if u.Mobile != nil {
		summary.Mobile = *u.Mobile
	}
	return summary, nil
}
