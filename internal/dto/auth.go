package dto

// LoginRequest carries email/password credentials for local login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token   string          `json:"token"`
	Profile ProfileResponse `json:"profile"`
}

// GoogleCallbackRequest carries the ID token obtained from Google sign-in.
type GoogleCallbackRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}
