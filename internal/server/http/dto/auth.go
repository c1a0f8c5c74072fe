package dto

// RegisterRequest describes the signup payload.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

// LoginRequest describes the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest carries old-password proof and the replacement.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// UpdateProfileRequest describes a display-attribute change.
type UpdateProfileRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// ConfirmVerificationRequest carries a one-time verification token.
type ConfirmVerificationRequest struct {
	Token string `json:"token"`
}

// ResetPasswordRequest is the administrative password reset payload.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

// AuthResponse pairs an issued token with the account it identifies.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// MessageResponse is a plain client-visible message.
type MessageResponse struct {
	Message string `json:"message"`
}

// VerificationResponse returns an issued verification token.
type VerificationResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}
