// Package catalog manages catalog document metadata. Quotations link
// to catalogs through summaries resolved by an adapter.
package catalog

import (
	apphttp "erp_backend/internal/http"
	"erp_backend/internal/catalog/handler"
	"erp_backend/internal/catalog/repository"
	"erp_backend/internal/catalog/service"
	"erp_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the catalog domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new catalog module with all dependencies wired
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	catalogs := ctx.V1.Group("/catalogs")
	m.handler.RegisterRoutes(catalogs)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
