package auth

import (
	"crypto/subtle"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/boardroom-simulator/errors"
	"github.com/johnquangdev/boardroom-simulator/pkg/jwt"
)

// OperatorRole is the role claim stamped into every issued access token.
// Sessions are operated by a single class of caller; per-operator roles can
// land here if the product ever needs them.
const OperatorRole = "operator"

// TokenPair is an issued access/refresh token pair
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// Service exchanges the shared operator API key for JWT pairs and refreshes
// expired access tokens. It keeps no state: refresh tokens are validated by
// signature alone.
type Service struct {
	manager     *jwt.Manager
	operatorKey string
	logger      *zap.Logger
}

// NewService creates the auth service
func NewService(manager *jwt.Manager, operatorKey string, logger *zap.Logger) *Service {
	return &Service{
		manager:     manager,
		operatorKey: operatorKey,
		logger:      logger,
	}
}

// IssueTokenPair validates the operator API key and mints a fresh token pair
// for a new operator identity
func (s *Service) IssueTokenPair(apiKey, name string) (*TokenPair, error) {
	if subtle.ConstantTimeCompare([]byte(apiKey), []byte(s.operatorKey)) != 1 {
		s.logger.Warn("token request with invalid operator key")
		return nil, errors.ErrInvalidAPIKey()
	}

	operatorID := uuid.New()
	access, err := s.manager.GenerateAccessToken(operatorID, name, OperatorRole)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}
	refresh, err := s.manager.GenerateRefreshToken(operatorID)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}

	s.logger.Info("operator token pair issued",
		zap.String("operator_id", operatorID.String()),
		zap.String("name", name))
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.manager.GetAccessExpiry().Seconds()),
	}, nil
}

// Refresh validates the refresh token and mints a new access token for the
// same operator. The refresh token itself is returned unchanged; it stays
// valid until its own expiry.
func (s *Service) Refresh(refreshToken string) (*TokenPair, error) {
	operatorID, err := s.manager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, errors.ErrInvalidToken()
	}

	access, err := s.manager.GenerateAccessToken(operatorID, "", OperatorRole)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}

	s.logger.Info("operator access token refreshed",
		zap.String("operator_id", operatorID.String()))
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.manager.GetAccessExpiry().Seconds()),
	}, nil
}
