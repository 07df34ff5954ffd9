// Package content manages display sections and their content blocks.
package content

import (
	"erp_backend/internal/content/handler"
	"erp_backend/internal/content/repository"
	"erp_backend/internal/content/service"
	apphttp "erp_backend/internal/http"
	"erp_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the content domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new content module with all dependencies wired
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
	return "content"
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	sections := ctx.V1.Group("/sections")
	m.handler.RegisterSectionRoutes(sections)

	contents := ctx.V1.Group("/contents")
	m.handler.RegisterContentRoutes(contents)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
