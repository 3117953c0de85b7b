package auth

// TokenRequest exchanges the shared operator API key for a token pair
type TokenRequest struct {
	APIKey string `json:"api_key" validate:"required"`
	Name   string `json:"name" validate:"required"`
}

// RefreshRequest carries a refresh token to exchange for a new access token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}
