package services

import (
	"testing"

	"cleanguard-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateNewUser(t *testing.T) {
	req := &models.CreateUserRequest{Name: " 管理员 ", Email: " ops@example.com ", Password: "s3cretpass"}
	require.NoError(t, ValidateNewUser(req))
	assert.Equal(t, "管理员", req.Name)
	assert.Equal(t, "ops@example.com", req.Email)
	assert.Equal(t, models.RoleOperator, req.Role)

	tests := []struct {
		name string
		req  models.CreateUserRequest
	}{
		{"missing name", models.CreateUserRequest{Email: "a@b.c", Password: "12345678"}},
		{"bad email", models.CreateUserRequest{Name: "x", Email: "not-an-email", Password: "12345678"}},
		{"short password", models.CreateUserRequest{Name: "x", Email: "a@b.c", Password: "123"}},
		{"bad role", models.CreateUserRequest{Name: "x", Email: "a@b.c", Password: "12345678", Role: "root"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNewUser(&tt.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}
