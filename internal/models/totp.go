package models

// TOTPSetupResponse returned when initiating 2FA setup
type TOTPSetupResponse struct {
	Secret      string `json:"secret"` // Base32 secret for manual entry
	OTPAuthURL  string `json:"otpauth_url"`
	Issuer      string `json:"issuer"`
	AccountName string `json:"account_name"`
}

// TOTPCodeRequest carries a 6-digit code for enabling or disabling 2FA
type TOTPCodeRequest struct {
	Code string `json:"code"`
}

// TOTPVerifyRequest for login 2FA verification
type TOTPVerifyRequest struct {
	TempToken string `json:"temp_token"` // Temporary token from step 1
	Code      string `json:"code"`
}

// LoginStep1Response when 2FA is required after password verification
type LoginStep1Response struct {
	Requires2FA bool   `json:"requires_2fa"`
	TempToken   string `json:"temp_token,omitempty"`
	Message     string `json:"message,omitempty"`
}
