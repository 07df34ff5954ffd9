package service

import (
	"context"
	"time"

	"erp_backend/internal/identity/repository"
	"erp_backend/internal/identity/transport"
	"erp_backend/platform/apperr"
	"erp_backend/platform/phone"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service provides business logic for user accounts
type Service struct {
	repo *repository.Repository
}

// New creates a new identity service
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new user. The password is bcrypt-hashed and the
// mobile number normalized to E.164 before storage.
func (s *Service) Create(ctx context.Context, req transport.CreateUserRequest) (*transport.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("failed to hash password")
	}

	now := time.Now()
	u := repository.User{
		ID:           uuid.New(),
		Username:     req.Username,
		PasswordHash: string(hash),
		Name:         req.Name,
		Email:        req.Email,
		Mobile:       normalizeMobile(req.Mobile),
		Role:         string(req.Role),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, &u); err != nil {
		return nil, err
	}

	return buildResponse(&u), nil
}

// GetByID retrieves a user
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*transport.UserResponse, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return buildResponse(u), nil
}

// List retrieves users, optionally filtered by role
func (s *Service) List(ctx context.Context, req transport.ListUsersRequest) ([]transport.UserResponse, error) {
	var role *string
	if req.Role != "" {
		role = &req.Role
	}

	users, err := s.repo.List(ctx, role)
	if err != nil {
		return nil, err
	}

	resp := make([]transport.UserResponse, len(users))
	for i := range users {
		resp[i] = *buildResponse(&users[i])
	}
	return resp, nil
}

// Update applies partial changes to a user
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateUserRequest) (*transport.UserResponse, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperr.Internal("failed to hash password")
		}
		u.PasswordHash = string(hash)
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Mobile != nil {
		u.Mobile = normalizeMobile(*req.Mobile)
	}
	if req.Role != nil {
		u.Role = string(*req.Role)
	}
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	return buildResponse(u), nil
}

// Delete removes a user
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// VerifyPassword checks a candidate password against the stored hash
func (s *Service) VerifyPassword(ctx context.Context, username, password string) (*transport.UserResponse, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Validation("invalid credentials")
	}
	return buildResponse(u), nil
}

func normalizeMobile(raw string) *string {
	if raw == "" {
		return nil
	}
	normalized := phone.NormalizeE164(raw)
	return &normalized
}

func buildResponse(u *repository.User) *transport.UserResponse {
	return &transport.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Email:     u.Email,
		Mobile:    u.Mobile,
		Role:      transport.Role(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
