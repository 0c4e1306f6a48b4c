package services

import (
	"context"

	"cleanguard-backend/internal/auth"
	"cleanguard-backend/internal/models"
	"cleanguard-backend/internal/repositories"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const totpIssuer = "CleanGuard"

// TOTPService handles optional two-factor login for operators
type TOTPService struct {
	userRepo *repositories.UserRepository
	users    *UserService
}

func NewTOTPService(userRepo *repositories.UserRepository, users *UserService) *TOTPService {
	return &TOTPService{
		userRepo: userRepo,
		users:    users,
	}
}

// GenerateSetup creates a new TOTP secret. 2FA stays off until Enable
// receives a valid code for it.
func (s *TOTPService) GenerateSetup(ctx context.Context, userID int) (*models.TOTPSetupResponse, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.TOTPEnabled {
		return nil, conflictf("2FA is already enabled")
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, err
	}

	// Store the secret (not yet enabled)
	if err := s.userRepo.SetTOTPSecret(ctx, user.ID, key.Secret()); err != nil {
		return nil, err
	}

	return &models.TOTPSetupResponse{
		Secret:      key.Secret(),
		OTPAuthURL:  key.URL(),
		Issuer:      totpIssuer,
		AccountName: user.Email,
	}, nil
}

// Enable verifies a code against the pending secret and turns 2FA on
func (s *TOTPService) Enable(ctx context.Context, userID int, code string) error {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.TOTPSecret == "" {
		return validationf("2FA setup not initiated")
	}
	if !totp.Validate(code, user.TOTPSecret) {
		return unauthorizedf("invalid verification code")
	}
	if err := s.userRepo.EnableTOTP(ctx, userID); err != nil {
		return err
	}
	s.users.Logs.record(ctx, models.LogTypeAuth, user.Email, "2FA enabled: "+user.Email)
	return nil
}

// Disable turns 2FA off after checking the password and a current code
func (s *TOTPService) Disable(ctx context.Context, userID int, password, code string) error {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if !user.TOTPEnabled {
		return validationf("2FA is not enabled")
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		return unauthorizedf("invalid password")
	}
	if !totp.Validate(code, user.TOTPSecret) {
		return unauthorizedf("invalid verification code")
	}
	if err := s.userRepo.DisableTOTP(ctx, userID); err != nil {
		return err
	}
	s.users.Logs.record(ctx, models.LogTypeAuth, user.Email, "2FA disabled: "+user.Email)
	return nil
}

// VerifyLogin exchanges the temporary login token and a code for a session token
func (s *TOTPService) VerifyLogin(ctx context.Context, req *models.TOTPVerifyRequest) (*models.AuthResponse, error) {
	claims, err := s.users.JWTManager.ValidateTempToken(req.TempToken)
	if err != nil {
		return nil, unauthorizedf("login session expired, sign in again")
	}

	user, err := s.users.GetUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive || !user.TOTPEnabled {
		return nil, unauthorizedf("login session is no longer valid")
	}
	if !totp.Validate(req.Code, user.TOTPSecret) {
		s.users.Logs.record(ctx, models.LogTypeAuth, user.Email, "2FA code rejected: "+user.Email)
		return nil, unauthorizedf("invalid verification code")
	}

	return s.users.issue(ctx, user)
}
