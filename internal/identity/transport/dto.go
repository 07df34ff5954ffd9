package transport

import (
	"time"

	"github.com/google/uuid"
)

// Role defines the access role of a user
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleStaff    Role = "STAFF"
	RoleCustomer Role = "CUSTOMER"
	RoleSupplier Role = "SUPPLIER"
)

// CreateUserRequest is the request body for creating a user
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Mobile   string `json:"mobile"`
	Role     Role   `json:"role" validate:"required,oneof=ADMIN STAFF CUSTOMER SUPPLIER"`
}

// UpdateUserRequest is the request body for updating a user
type UpdateUserRequest struct {
	Password *string `json:"password" validate:"omitempty,min=8,max=128"`
	Name     *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Mobile   *string `json:"mobile"`
	Role     *Role   `json:"role" validate:"omitempty,oneof=ADMIN STAFF CUSTOMER SUPPLIER"`
}

// ListUsersRequest defines query parameters for listing users
type ListUsersRequest struct {
	Role string `form:"role" validate:"omitempty,oneof=ADMIN STAFF CUSTOMER SUPPLIER"`
}

// UserResponse is the outward-facing user shape. The password hash
// never leaves the service layer.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Mobile    *string   `json:"mobile"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
