package models

import "time"

const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// User is a back-office operator who maintains employees and lockers
type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`    // Never expose in JSON
	Role         string    `json:"role"` // admin or operator
	IsActive     bool      `json:"is_active"`
	TOTPSecret   string    `json:"-"`
	TOTPEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// CreateUserRequest represents the request body for creating an operator
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserRequest represents the request body for updating an operator
type UpdateUserRequest struct {
	Name     string `json:"name"`
	Password string `json:"password,omitempty"` // Optional
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}
