// Package inventory manages items and raw material master records.
package inventory

import (
	apphttp "erp_backend/internal/http"
	"erp_backend/internal/inventory/handler"
	"erp_backend/internal/inventory/repository"
	"erp_backend/internal/inventory/service"
	"erp_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the inventory domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new inventory module with all dependencies wired
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
	return "inventory"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	items := ctx.V1.Group("/items")
	m.handler.RegisterItemRoutes(items)

	rawMaterials := ctx.V1.Group("/raw-materials")
	m.handler.RegisterRawMaterialRoutes(rawMaterials)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
