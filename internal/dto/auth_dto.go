package dto

// LoginRequest carries the credentials presented to either login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Identity is the authenticated principal attached to a request.
type Identity struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// TokenResponse is returned by a successful JWT login.
type TokenResponse struct {
	Token     string   `json:"token"`
	ExpiresIn int64    `json:"expiresIn"`
	User      Identity `json:"user"`
}

// IdentityResponse wraps the caller's identity for the me endpoints.
type IdentityResponse struct {
	User Identity `json:"user"`
}
