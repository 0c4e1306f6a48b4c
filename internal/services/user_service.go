package services

import (
	"context"
	"net/mail"
	"strings"

	"cleanguard-backend/internal/auth"
	"cleanguard-backend/internal/logger"
	"cleanguard-backend/internal/models"
	"cleanguard-backend/internal/repositories"
)

const minPasswordLength = 8

type UserService struct {
	Repo       *repositories.UserRepository
	JWTManager *auth.JWTManager
	Logs       *SystemLogService
}

func NewUserService(repo *repositories.UserRepository, jwtManager *auth.JWTManager, logs *SystemLogService) *UserService {
	return &UserService{
		Repo:       repo,
		JWTManager: jwtManager,
		Logs:       logs,
	}
}

func validRole(role string) bool {
	return role == models.RoleAdmin || role == models.RoleOperator
}

// ValidateNewUser checks a create request and fills the default role
func ValidateNewUser(req *models.CreateUserRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return validationf("name, email, and password are required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return validationf("invalid email address: %s", req.Email)
	}
	if len(req.Password) < minPasswordLength {
		return validationf("password must be at least %d characters", minPasswordLength)
	}
	if req.Role == "" {
		req.Role = models.RoleOperator
	}
	if !validRole(req.Role) {
		return validationf("role must be %s or %s", models.RoleAdmin, models.RoleOperator)
	}
	return nil
}

// CreateUser adds an operator account
func (s *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest, operator string) (*models.User, error) {
	if err := ValidateNewUser(req); err != nil {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         req.Role,
		IsActive:     true,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, classify(err, "user not found", "user with this email already exists")
	}

	s.Logs.record(ctx, models.LogTypeAuth, operator, "user created: "+user.Email+" ("+user.Role+")")
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	user, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, classify(err, "user not found", "")
	}
	return user, nil
}

// ListUsers returns all users
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.Repo.List(ctx)
}

// UpdateUser changes name, role, active flag and optionally the password
func (s *UserService) UpdateUser(ctx context.Context, id int, req *models.UpdateUserRequest, operator string) (*models.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, validationf("name is required")
	}
	if !validRole(req.Role) {
		return nil, validationf("role must be %s or %s", models.RoleAdmin, models.RoleOperator)
	}

	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Name = req.Name
	user.Role = req.Role
	user.IsActive = req.IsActive
	user.PasswordHash = ""

	// If password is provided, hash it
	if req.Password != "" {
		if len(req.Password) < minPasswordLength {
			return nil, validationf("password must be at least %d characters", minPasswordLength)
		}
		hashedPassword, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashedPassword
	}

	if err := s.Repo.Update(ctx, user); err != nil {
		return nil, classify(err, "user not found", "")
	}

	s.Logs.record(ctx, models.LogTypeAuth, operator, "user updated: "+user.Email)
	return user, nil
}

// Login authenticates an operator. With TOTP enabled the result carries a
// temporary token instead of the session token.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, *models.LoginStep1Response, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, nil, validationf("email and password are required")
	}

	user, err := s.Repo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil || !auth.VerifyPassword(user.PasswordHash, req.Password) {
		logger.WarnLog(ctx, "[Auth] failed login for %s", req.Email)
		s.Logs.record(ctx, models.LogTypeAuth, req.Email, "login failed: "+req.Email)
		return nil, nil, unauthorizedf("invalid email or password")
	}
	if !user.IsActive {
		return nil, nil, unauthorizedf("account is disabled")
	}

	if user.TOTPEnabled {
		tempToken, err := s.JWTManager.GenerateTempToken(user)
		if err != nil {
			return nil, nil, err
		}
		return nil, &models.LoginStep1Response{
			Requires2FA: true,
			TempToken:   tempToken,
			Message:     "enter the code from your authenticator app",
		}, nil
	}

	resp, err := s.issue(ctx, user)
	return resp, nil, err
}

// issue creates the session token and records the login
func (s *UserService) issue(ctx context.Context, user *models.User) (*models.AuthResponse, error) {
	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	s.Logs.record(ctx, models.LogTypeAuth, user.Email, "login: "+user.Email)
	return &models.AuthResponse{
		Token: token,
		User:  user,
	}, nil
}

// EnsureAdmin creates the first administrator when no operator exists.
// It does nothing once any account is present.
func (s *UserService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	n, err := s.Repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if email == "" || password == "" {
		logger.WarnLog(ctx, "[Auth] no operators exist and ADMIN_EMAIL/ADMIN_PASSWORD are not set")
		return nil
	}

	_, err = s.CreateUser(ctx, &models.CreateUserRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     models.RoleAdmin,
	}, "system")
	if err != nil {
		return err
	}
	logger.InfoLog(ctx, "[Auth] created initial administrator %s", email)
	return nil
}
