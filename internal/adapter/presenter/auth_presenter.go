package presenter

import (
	authdto "github.com/johnquangdev/boardroom-simulator/internal/adapter/dto/auth"
	"github.com/johnquangdev/boardroom-simulator/internal/usecase/auth"
)

// ToTokenResponse converts an issued token pair to its response DTO
func ToTokenResponse(pair *auth.TokenPair) *authdto.TokenResponse {
	return &authdto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    pair.ExpiresIn,
	}
}
