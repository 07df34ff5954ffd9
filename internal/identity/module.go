// Package identity provides user account management. Customers and
// suppliers are accounts with dedicated roles.
package identity

import (
	apphttp "erp_backend/internal/http"
	"erp_backend/internal/identity/handler"
	"erp_backend/internal/identity/repository"
	"erp_backend/internal/identity/service"
	"erp_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the identity domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new identity module with all dependencies wired
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
	return "identity"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	users := ctx.V1.Group("/users")
	m.handler.RegisterRoutes(users)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
